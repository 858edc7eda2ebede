package repository

import (
	"errors"

	"github.com/police23/IS402-CloudComputing-sub001/internal/models"

	"gorm.io/gorm"
)

// SupplierRepository 供应商数据访问接口
type SupplierRepository interface {
	GetByID(id uint) (*models.Supplier, error)
	GetByName(name string) (*models.Supplier, error)
	Create(supplier *models.Supplier) error
	Update(supplier *models.Supplier) error
	Delete(id uint) error
	List(filter SupplierListFilter) ([]models.Supplier, int64, error)
}

// GormSupplierRepository GORM 实现
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository 创建供应商仓库
func NewSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// GetByID 根据ID获取供应商
func (r *GormSupplierRepository) GetByID(id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

// GetByName 根据名称获取供应商
func (r *GormSupplierRepository) GetByName(name string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.Where("name = ?", name).First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

// Create 创建供应商
func (r *GormSupplierRepository) Create(supplier *models.Supplier) error {
	return r.db.Create(supplier).Error
}

// Update 更新供应商
func (r *GormSupplierRepository) Update(supplier *models.Supplier) error {
	return r.db.Save(supplier).Error
}

// Delete 删除供应商
func (r *GormSupplierRepository) Delete(id uint) error {
	return r.db.Delete(&models.Supplier{}, id).Error
}

// List 获取供应商列表
func (r *GormSupplierRepository) List(filter SupplierListFilter) ([]models.Supplier, int64, error) {
	var suppliers []models.Supplier
	query := r.db.Model(&models.Supplier{})

	if filter.Keyword != "" {
		condition, args := keywordCondition(r.db, filter.Keyword, "name", "phone", "email")
		if condition != "" {
			query = query.Where(condition, args...)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id asc").Find(&suppliers).Error; err != nil {
		return nil, 0, err
	}
	return suppliers, total, nil
}
