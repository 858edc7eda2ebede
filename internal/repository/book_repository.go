package repository

import (
	"errors"

	"github.com/police23/IS402-CloudComputing-sub001/internal/models"

	"gorm.io/gorm"
)

// BookRepository 图书数据访问接口
type BookRepository interface {
	GetByID(id uint) (*models.Book, error)
	ListByIDs(ids []uint) ([]models.Book, error)
	Create(book *models.Book) error
	Update(book *models.Book) error
	Delete(id uint) error
	List(filter BookListFilter) ([]models.Book, int64, error)
	IncrementStock(id uint, delta int) error
	DecrementStockGuarded(id uint, quantity, minStockAfter int) (bool, error)
	ListBelowStock(threshold int) ([]models.Book, error)
	WithTx(tx *gorm.DB) *GormBookRepository
}

// GormBookRepository GORM 实现
type GormBookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓库
func NewBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBookRepository) WithTx(tx *gorm.DB) *GormBookRepository {
	if tx == nil {
		return r
	}
	return &GormBookRepository{db: tx}
}

// GetByID 根据ID获取图书
func (r *GormBookRepository) GetByID(id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

// ListByIDs 批量获取图书
func (r *GormBookRepository) ListByIDs(ids []uint) ([]models.Book, error) {
	if len(ids) == 0 {
		return []models.Book{}, nil
	}
	var books []models.Book
	if err := r.db.Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Create 创建图书
func (r *GormBookRepository) Create(book *models.Book) error {
	return r.db.Create(book).Error
}

// Update 更新图书
func (r *GormBookRepository) Update(book *models.Book) error {
	return r.db.Save(book).Error
}

// Delete 删除图书
func (r *GormBookRepository) Delete(id uint) error {
	return r.db.Delete(&models.Book{}, id).Error
}

// List 获取图书列表
func (r *GormBookRepository) List(filter BookListFilter) ([]models.Book, int64, error) {
	var books []models.Book
	query := r.db.Model(&models.Book{})

	if filter.Keyword != "" {
		condition, args := keywordCondition(r.db, filter.Keyword, "title", "author", "publisher")
		if condition != "" {
			query = query.Where(condition, args...)
		}
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SupplierID > 0 {
		query = query.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.MaxStock != nil {
		query = query.Where("stock <= ?", *filter.MaxStock)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&books).Error; err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// IncrementStock 增加库存（进货入库）
func (r *GormBookRepository) IncrementStock(id uint, delta int) error {
	if delta <= 0 {
		return nil
	}
	return r.db.Model(&models.Book{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta)).Error
}

// DecrementStockGuarded 原子扣减库存。
// 仅当扣减后剩余库存不低于 minStockAfter 时生效，返回 false 表示库存不足。
func (r *GormBookRepository) DecrementStockGuarded(id uint, quantity, minStockAfter int) (bool, error) {
	if quantity <= 0 {
		return true, nil
	}
	if minStockAfter < 0 {
		minStockAfter = 0
	}
	result := r.db.Model(&models.Book{}).
		Where("id = ?", id).
		Where("stock - ? >= ?", quantity, minStockAfter).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListBelowStock 获取库存不高于阈值的图书（供低库存巡检任务使用）
func (r *GormBookRepository) ListBelowStock(threshold int) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Where("stock <= ?", threshold).
		Order("stock asc").
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}
