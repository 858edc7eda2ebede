package service

import (
	"strings"

	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"
)

// SupplierService 供应商管理服务
type SupplierService struct {
	repo repository.SupplierRepository
}

// NewSupplierService 创建供应商服务
func NewSupplierService(repo repository.SupplierRepository) *SupplierService {
	return &SupplierService{repo: repo}
}

// SupplierInput 创建/更新供应商输入
type SupplierInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// Create 创建供应商
func (s *SupplierService) Create(input SupplierInput) (*models.Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSupplierNotFound
	}
	exist, err := s.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrSupplierNameTaken
	}

	supplier := &models.Supplier{
		Name:    name,
		Phone:   strings.TrimSpace(input.Phone),
		Email:   strings.TrimSpace(input.Email),
		Address: strings.TrimSpace(input.Address),
	}
	if err := s.repo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Update 更新供应商
func (s *SupplierService) Update(id uint, input SupplierInput) (*models.Supplier, error) {
	supplier, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, ErrSupplierNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSupplierNotFound
	}
	if name != supplier.Name {
		conflict, err := s.repo.GetByName(name)
		if err != nil {
			return nil, err
		}
		if conflict != nil && conflict.ID != id {
			return nil, ErrSupplierNameTaken
		}
	}

	supplier.Name = name
	supplier.Phone = strings.TrimSpace(input.Phone)
	supplier.Email = strings.TrimSpace(input.Email)
	supplier.Address = strings.TrimSpace(input.Address)
	if err := s.repo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete 删除供应商
func (s *SupplierService) Delete(id uint) error {
	supplier, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return ErrSupplierNotFound
	}
	return s.repo.Delete(id)
}

// GetByID 获取供应商详情
func (s *SupplierService) GetByID(id uint) (*models.Supplier, error) {
	supplier, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, ErrSupplierNotFound
	}
	return supplier, nil
}

// List 获取供应商列表
func (s *SupplierService) List(filter repository.SupplierListFilter) ([]models.Supplier, int64, error) {
	return s.repo.List(filter)
}
