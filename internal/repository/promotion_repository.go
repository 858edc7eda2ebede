package repository

import (
	"errors"
	"fmt"

	"github.com/police23/IS402-CloudComputing-sub001/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository 促销数据访问接口
type PromotionRepository interface {
	GetByID(id uint) (*models.Promotion, error)
	GetByCode(code string) (*models.Promotion, error)
	Create(promotion *models.Promotion) error
	Update(promotion *models.Promotion) error
	Delete(id uint) error
	List(filter PromotionListFilter) ([]models.Promotion, int64, error)
	IncrementUsedQuantity(id uint, delta int) (bool, error)
	DecrementUsedQuantity(id uint, delta int) error
	ListExpiredBefore(day models.Date, limit int) ([]models.Promotion, error)
	WithTx(tx *gorm.DB) *GormPromotionRepository
}

// GormPromotionRepository GORM 实现
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建促销仓库
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromotionRepository) WithTx(tx *gorm.DB) *GormPromotionRepository {
	if tx == nil {
		return r
	}
	return &GormPromotionRepository{db: tx}
}

// GetByID 根据ID获取促销
func (r *GormPromotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// GetByCode 根据促销码获取促销
func (r *GormPromotionRepository) GetByCode(code string) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.Where("code = ?", code).First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// Create 创建促销
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

// Update 更新促销
func (r *GormPromotionRepository) Update(promotion *models.Promotion) error {
	return r.db.Save(promotion).Error
}

// Delete 删除促销
func (r *GormPromotionRepository) Delete(id uint) error {
	return r.db.Delete(&models.Promotion{}, id).Error
}

// List 获取促销列表
func (r *GormPromotionRepository) List(filter PromotionListFilter) ([]models.Promotion, int64, error) {
	var promotions []models.Promotion
	query := r.db.Model(&models.Promotion{})

	if filter.Code != "" {
		query = query.Where("code = ?", filter.Code)
	}
	if filter.Keyword != "" {
		condition, args := keywordCondition(r.db, filter.Keyword, "name", "code")
		if condition != "" {
			query = query.Where(condition, args...)
		}
	}
	if filter.BookID > 0 {
		// book_ids 存储格式为 JSON 数组（例如 [1,2,3]），按边界匹配避免误命中（如 1 命中 11）。
		exact := fmt.Sprintf("[%d]", filter.BookID)
		prefix := fmt.Sprintf("[%d,%%", filter.BookID)
		middle := fmt.Sprintf("%%,%d,%%", filter.BookID)
		suffix := fmt.Sprintf("%%,%d]", filter.BookID)
		query = query.Where(
			"(book_ids = ? OR book_ids LIKE ? OR book_ids LIKE ? OR book_ids LIKE ?)",
			exact,
			prefix,
			middle,
			suffix,
		)
	}
	if filter.ActiveOn != "" {
		query = query.Where("start_date <= ? AND end_date >= ?", filter.ActiveOn, filter.ActiveOn)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&promotions).Error; err != nil {
		return nil, 0, err
	}
	return promotions, total, nil
}

// IncrementUsedQuantity 原子核销一次促销码。
// 条件更新确保检查与自增在同一条语句内完成：quantity 为 0 表示不限量，
// 否则仅当 used_quantity 仍低于 quantity 时才会生效。
// 返回 false 表示可用量已耗尽（或促销不存在），调用方据此拒绝核销。
func (r *GormPromotionRepository) IncrementUsedQuantity(id uint, delta int) (bool, error) {
	if delta <= 0 {
		delta = 1
	}
	result := r.db.Model(&models.Promotion{}).
		Where("id = ?", id).
		Where("quantity = 0 OR used_quantity + ? <= quantity", delta).
		UpdateColumn("used_quantity", gorm.Expr("used_quantity + ?", delta))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DecrementUsedQuantity 回退核销次数（发票作废等场景）
func (r *GormPromotionRepository) DecrementUsedQuantity(id uint, delta int) error {
	if delta <= 0 {
		delta = 1
	}
	return r.db.Model(&models.Promotion{}).
		Where("id = ?", id).
		Where("used_quantity >= ?", delta).
		UpdateColumn("used_quantity", gorm.Expr("used_quantity - ?", delta)).Error
}

// ListExpiredBefore 获取在指定日期前已结束的促销（供后台清理任务使用）
func (r *GormPromotionRepository) ListExpiredBefore(day models.Date, limit int) ([]models.Promotion, error) {
	if limit <= 0 {
		limit = 100
	}
	var promotions []models.Promotion
	if err := r.db.Where("end_date < ?", day.String()).
		Order("end_date asc").
		Limit(limit).
		Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}
