package repository

import (
	"errors"

	"github.com/police23/IS402-CloudComputing-sub001/internal/models"

	"gorm.io/gorm"
)

// InvoiceRepository 销售发票数据访问接口
type InvoiceRepository interface {
	GetByID(id uint) (*models.Invoice, error)
	GetByInvoiceNo(invoiceNo string) (*models.Invoice, error)
	Create(invoice *models.Invoice) error
	List(filter InvoiceListFilter) ([]models.Invoice, int64, error)
	WithTx(tx *gorm.DB) *GormInvoiceRepository
}

// GormInvoiceRepository GORM 实现
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository 创建发票仓库
func NewInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// WithTx 绑定事务
func (r *GormInvoiceRepository) WithTx(tx *gorm.DB) *GormInvoiceRepository {
	if tx == nil {
		return r
	}
	return &GormInvoiceRepository{db: tx}
}

// GetByID 获取发票（含明细）
func (r *GormInvoiceRepository) GetByID(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.Preload("Items").First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

// GetByInvoiceNo 根据发票号获取发票
func (r *GormInvoiceRepository) GetByInvoiceNo(invoiceNo string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.Preload("Items").Where("invoice_no = ?", invoiceNo).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

// Create 创建发票（级联写入明细）
func (r *GormInvoiceRepository) Create(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

// List 获取发票列表
func (r *GormInvoiceRepository) List(filter InvoiceListFilter) ([]models.Invoice, int64, error) {
	var invoices []models.Invoice
	query := r.db.Model(&models.Invoice{})

	if filter.InvoiceNo != "" {
		query = query.Where("invoice_no = ?", filter.InvoiceNo)
	}
	if filter.CustomerPhone != "" {
		query = query.Where("customer_phone = ?", filter.CustomerPhone)
	}
	if filter.AdminID > 0 {
		query = query.Where("admin_id = ?", filter.AdminID)
	}
	if filter.PromotionID > 0 {
		query = query.Where("promotion_id = ?", filter.PromotionID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at < ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Preload("Items").Order("id desc").Find(&invoices).Error; err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}
