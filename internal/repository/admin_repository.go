package repository

import (
	"errors"
	"time"

	"github.com/police23/IS402-CloudComputing-sub001/internal/models"

	"gorm.io/gorm"
)

// AdminRepository 后台账号数据访问接口
type AdminRepository interface {
	GetByID(id uint) (*models.Admin, error)
	GetByUsername(username string) (*models.Admin, error)
	Create(admin *models.Admin) error
	Update(admin *models.Admin) error
	Delete(id uint) error
	List(filter AdminListFilter) ([]models.Admin, int64, error)
	UpdateLastLogin(id uint, at time.Time) error
	BumpTokenVersion(id uint) error
}

// GormAdminRepository GORM 实现
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository 创建后台账号仓库
func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// GetByID 根据ID获取账号
func (r *GormAdminRepository) GetByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// GetByUsername 根据用户名获取账号
func (r *GormAdminRepository) GetByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// Create 创建账号
func (r *GormAdminRepository) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

// Update 更新账号
func (r *GormAdminRepository) Update(admin *models.Admin) error {
	return r.db.Save(admin).Error
}

// Delete 删除账号
func (r *GormAdminRepository) Delete(id uint) error {
	return r.db.Delete(&models.Admin{}, id).Error
}

// List 获取账号列表
func (r *GormAdminRepository) List(filter AdminListFilter) ([]models.Admin, int64, error) {
	var admins []models.Admin
	query := r.db.Model(&models.Admin{})

	if filter.Keyword != "" {
		condition, args := keywordCondition(r.db, filter.Keyword, "username", "full_name")
		if condition != "" {
			query = query.Where(condition, args...)
		}
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id asc").Find(&admins).Error; err != nil {
		return nil, 0, err
	}
	return admins, total, nil
}

// UpdateLastLogin 更新最后登录时间
func (r *GormAdminRepository) UpdateLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.Admin{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

// BumpTokenVersion 提升 Token 版本，使已签发的 Token 全部失效
func (r *GormAdminRepository) BumpTokenVersion(id uint) error {
	return r.db.Model(&models.Admin{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error
}
