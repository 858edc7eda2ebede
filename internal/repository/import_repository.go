package repository

import (
	"errors"

	"github.com/police23/IS402-CloudComputing-sub001/internal/models"

	"gorm.io/gorm"
)

// ImportRepository 进货单数据访问接口
type ImportRepository interface {
	GetByID(id uint) (*models.Import, error)
	Create(record *models.Import) error
	List(filter ImportListFilter) ([]models.Import, int64, error)
	WithTx(tx *gorm.DB) *GormImportRepository
}

// GormImportRepository GORM 实现
type GormImportRepository struct {
	db *gorm.DB
}

// NewImportRepository 创建进货单仓库
func NewImportRepository(db *gorm.DB) *GormImportRepository {
	return &GormImportRepository{db: db}
}

// WithTx 绑定事务
func (r *GormImportRepository) WithTx(tx *gorm.DB) *GormImportRepository {
	if tx == nil {
		return r
	}
	return &GormImportRepository{db: tx}
}

// GetByID 获取进货单（含明细）
func (r *GormImportRepository) GetByID(id uint) (*models.Import, error) {
	var record models.Import
	if err := r.db.Preload("Items").First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Create 创建进货单（级联写入明细）
func (r *GormImportRepository) Create(record *models.Import) error {
	return r.db.Create(record).Error
}

// List 获取进货单列表
func (r *GormImportRepository) List(filter ImportListFilter) ([]models.Import, int64, error) {
	var records []models.Import
	query := r.db.Model(&models.Import{})

	if filter.SupplierID > 0 {
		query = query.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.AdminID > 0 {
		query = query.Where("admin_id = ?", filter.AdminID)
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

	if err := query.Preload("Items").Order("id desc").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
