package service

import (
	"context"
	"strings"

	"github.com/police23/IS402-CloudComputing-sub001/internal/cache"
	"github.com/police23/IS402-CloudComputing-sub001/internal/constants"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"
)

// AdminUserService 后台账号管理服务
type AdminUserService struct {
	repo repository.AdminRepository
	auth *AuthService
}

// NewAdminUserService 创建后台账号管理服务
func NewAdminUserService(repo repository.AdminRepository, auth *AuthService) *AdminUserService {
	return &AdminUserService{repo: repo, auth: auth}
}

// CreateAdminInput 创建账号输入
type CreateAdminInput struct {
	Username string
	Password string
	FullName string
	Role     string
}

// UpdateAdminInput 更新账号输入
type UpdateAdminInput struct {
	FullName string
	Role     string
	IsActive *bool
}

func normalizeRole(role string) (string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role != constants.RoleManager && role != constants.RoleStaff {
		return "", ErrRoleInvalid
	}
	return role, nil
}

// Create 创建后台账号
func (s *AdminUserService) Create(input CreateAdminInput) (*models.Admin, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrInvalidCredentials
	}
	role, err := normalizeRole(input.Role)
	if err != nil {
		return nil, err
	}

	exist, err := s.repo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUsernameTaken
	}

	if err := s.auth.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	hash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Username:     username,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Update 更新账号资料与角色
func (s *AdminUserService) Update(id uint, input UpdateAdminInput) (*models.Admin, error) {
	admin, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}

	role, err := normalizeRole(input.Role)
	if err != nil {
		return nil, err
	}

	admin.FullName = strings.TrimSpace(input.FullName)
	admin.Role = role
	if input.IsActive != nil {
		admin.IsActive = *input.IsActive
	}
	if err := s.repo.Update(admin); err != nil {
		return nil, err
	}

	// 角色或状态变化后刷新鉴权快照，避免旧 Token 拿到过期角色
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	return admin, nil
}

// Disable 停用账号并吊销其全部已签发 Token
func (s *AdminUserService) Disable(id uint) error {
	admin, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}

	admin.IsActive = false
	if err := s.repo.Update(admin); err != nil {
		return err
	}
	if err := s.repo.BumpTokenVersion(id); err != nil {
		return err
	}
	return cache.DelAdminAuthState(context.Background(), id)
}

// Delete 删除账号
func (s *AdminUserService) Delete(id uint) error {
	admin, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	return cache.DelAdminAuthState(context.Background(), id)
}

// GetByID 获取账号详情
func (s *AdminUserService) GetByID(id uint) (*models.Admin, error) {
	admin, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

// List 获取账号列表
func (s *AdminUserService) List(filter repository.AdminListFilter) ([]models.Admin, int64, error) {
	return s.repo.List(filter)
}
