package service

import (
	"strings"

	"github.com/police23/IS402-CloudComputing-sub001/internal/constants"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"

	"github.com/shopspring/decimal"
)

// PromotionAdminService 促销管理服务
type PromotionAdminService struct {
	repo  repository.PromotionRepository
	rules *RulesService
}

// NewPromotionAdminService 创建促销管理服务
func NewPromotionAdminService(repo repository.PromotionRepository, rules *RulesService) *PromotionAdminService {
	return &PromotionAdminService{repo: repo, rules: rules}
}

// PromotionInput 创建/更新促销输入
type PromotionInput struct {
	Name          string
	Code          string
	Type          string
	DiscountValue models.Money
	MinPrice      models.Money
	Quantity      int
	BookIDs       []uint
	StartDate     models.Date
	EndDate       models.Date
}

func (s *PromotionAdminService) validateInput(input PromotionInput) (PromotionInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return input, ErrPromotionNameRequired
	}
	input.Code = strings.TrimSpace(input.Code)
	if input.Code == "" {
		return input, ErrPromotionNotFound
	}

	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	if input.Type != constants.PromotionTypeFixed && input.Type != constants.PromotionTypePercent {
		return input, ErrPromotionTypeInvalid
	}
	if input.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) {
		return input, ErrPromotionValueInvalid
	}
	if input.Type == constants.PromotionTypePercent && input.DiscountValue.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return input, ErrPromotionValueInvalid
	}
	if input.MinPrice.Decimal.LessThan(decimal.Zero) {
		return input, ErrPromotionValueInvalid
	}
	if input.Quantity < 0 {
		return input, ErrPromotionValueInvalid
	}

	if input.StartDate.IsZero() || input.EndDate.IsZero() || input.EndDate.Before(input.StartDate) {
		return input, ErrPromotionDateInvalid
	}
	rules, err := s.rules.Get()
	if err != nil {
		return input, err
	}
	if rules.MaxPromotionDuration > 0 &&
		models.DaysBetweenInclusive(input.StartDate, input.EndDate) > rules.MaxPromotionDuration {
		return input, ErrPromotionDurationExceeded
	}

	return input, nil
}

// Create 创建促销
func (s *PromotionAdminService) Create(input PromotionInput) (*models.Promotion, error) {
	input, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	exist, err := s.repo.GetByCode(input.Code)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrPromotionCodeTaken
	}

	promotion := &models.Promotion{
		Name:          input.Name,
		Code:          input.Code,
		Type:          input.Type,
		DiscountValue: input.DiscountValue,
		MinPrice:      input.MinPrice,
		Quantity:      input.Quantity,
		UsedQuantity:  0,
		BookIDs:       models.UintArray(input.BookIDs),
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
	}

	if err := s.repo.Create(promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// Update 更新促销
func (s *PromotionAdminService) Update(id uint, input PromotionInput) (*models.Promotion, error) {
	if id == 0 {
		return nil, ErrPromotionNotFound
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrPromotionNotFound
	}

	input, err = s.validateInput(input)
	if err != nil {
		return nil, err
	}
	// 上限不能低于已使用数量，否则 used_quantity <= quantity 不再成立
	if input.Quantity > 0 && input.Quantity < existing.UsedQuantity {
		return nil, ErrPromotionQuantityTooLow
	}

	if input.Code != existing.Code {
		conflict, err := s.repo.GetByCode(input.Code)
		if err != nil {
			return nil, err
		}
		if conflict != nil && conflict.ID != id {
			return nil, ErrPromotionCodeTaken
		}
	}

	existing.Name = input.Name
	existing.Code = input.Code
	existing.Type = input.Type
	existing.DiscountValue = input.DiscountValue
	existing.MinPrice = input.MinPrice
	existing.Quantity = input.Quantity
	existing.BookIDs = models.UintArray(input.BookIDs)
	existing.StartDate = input.StartDate
	existing.EndDate = input.EndDate

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 删除促销
func (s *PromotionAdminService) Delete(id uint) error {
	if id == 0 {
		return ErrPromotionNotFound
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrPromotionNotFound
	}
	return s.repo.Delete(id)
}

// GetByID 获取促销详情
func (s *PromotionAdminService) GetByID(id uint) (*models.Promotion, error) {
	promotion, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	return promotion, nil
}

// List 获取促销列表
func (s *PromotionAdminService) List(filter repository.PromotionListFilter) ([]models.Promotion, int64, error) {
	return s.repo.List(filter)
}
