package service

import (
	"strings"

	"github.com/police23/IS402-CloudComputing-sub001/internal/constants"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"

	"github.com/shopspring/decimal"
)

// PromotionQuote 促销试算结果
type PromotionQuote struct {
	Promotion      *models.Promotion `json:"promotion"`
	Subtotal       models.Money      `json:"subtotal"`
	DiscountAmount models.Money      `json:"discount_amount"`
	Payable        models.Money      `json:"payable"`
}

// PromotionService 促销核销服务
type PromotionService struct {
	promotionRepo repository.PromotionRepository
}

// NewPromotionService 创建促销服务
func NewPromotionService(promotionRepo repository.PromotionRepository) *PromotionService {
	return &PromotionService{promotionRepo: promotionRepo}
}

// ValidateAndPrice 校验促销码并计算折扣。
// 检查按固定顺序执行：存在性 → 时间窗口 → 可用量 → 使用门槛 → 折扣计算。
func (s *PromotionService) ValidateAndPrice(code string, orderTotal models.Money) (*PromotionQuote, error) {
	return s.validateAndPrice(code, orderTotal, nil, models.Date{})
}

// ValidateAndPriceOn 按指定日期试算（后台预览历史/未来窗口时使用）
func (s *PromotionService) ValidateAndPriceOn(code string, orderTotal models.Money, day models.Date) (*PromotionQuote, error) {
	return s.validateAndPrice(code, orderTotal, nil, day)
}

// ValidateAndPriceForBooks 在订单商品范围内校验促销码。
// 促销限定了图书范围时，订单中至少要有一本在范围内。
func (s *PromotionService) ValidateAndPriceForBooks(code string, orderTotal models.Money, bookIDs []uint) (*PromotionQuote, error) {
	return s.validateAndPrice(code, orderTotal, bookIDs, models.Date{})
}

func (s *PromotionService) validateAndPrice(code string, orderTotal models.Money, bookIDs []uint, day models.Date) (*PromotionQuote, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, ErrPromotionNotFound
	}

	promotion, err := s.promotionRepo.GetByCode(trimmed)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}

	if day.IsZero() {
		day = models.Today()
	}
	if !promotion.ActiveOn(day) {
		return nil, ErrPromotionExpired
	}

	if promotion.Exhausted() {
		return nil, ErrPromotionExhausted
	}

	if bookIDs != nil && !promotion.IsStoreWide() {
		matched := false
		for _, id := range bookIDs {
			if promotion.BookIDs.Contains(id) {
				matched = true
				break
			}
		}
		if !matched {
			return nil, ErrPromotionNotApplicable
		}
	}

	if orderTotal.Decimal.Cmp(promotion.MinPrice.Decimal) < 0 {
		return nil, &PromotionMinPriceError{
			MinPrice:  promotion.MinPrice,
			Shortfall: models.NewMoneyFromDecimal(promotion.MinPrice.Decimal.Sub(orderTotal.Decimal)),
		}
	}

	discount, err := s.calculateDiscount(promotion, orderTotal)
	if err != nil {
		return nil, err
	}

	return &PromotionQuote{
		Promotion:      promotion,
		Subtotal:       orderTotal,
		DiscountAmount: discount,
		Payable:        models.NewMoneyFromDecimal(orderTotal.Decimal.Sub(discount.Decimal)),
	}, nil
}

// calculateDiscount 计算折扣金额，统一收敛到 [0, orderTotal] 区间。
func (s *PromotionService) calculateDiscount(promotion *models.Promotion, orderTotal models.Money) (models.Money, error) {
	var discount decimal.Decimal
	switch strings.ToLower(strings.TrimSpace(promotion.Type)) {
	case constants.PromotionTypeFixed:
		if promotion.DiscountValue.Decimal.LessThan(decimal.Zero) {
			return models.Money{}, ErrPromotionValueInvalid
		}
		discount = promotion.DiscountValue.Decimal
	case constants.PromotionTypePercent:
		if promotion.DiscountValue.Decimal.LessThan(decimal.Zero) {
			return models.Money{}, ErrPromotionValueInvalid
		}
		percent := promotion.DiscountValue.Decimal.Div(decimal.NewFromInt(100))
		discount = orderTotal.Decimal.Mul(percent)
	default:
		return models.Money{}, ErrPromotionTypeInvalid
	}

	if discount.LessThan(decimal.Zero) {
		discount = decimal.Zero
	}
	if discount.GreaterThan(orderTotal.Decimal) {
		discount = orderTotal.Decimal
	}
	return models.NewMoneyFromDecimal(discount), nil
}

// CommitRedemption 核销一次促销码。
// 检查与自增由仓库层的条件更新原子完成，并发打满上限时只会有一个赢家。
func (s *PromotionService) CommitRedemption(id uint) error {
	return commitRedemption(s.promotionRepo, id)
}

func commitRedemption(repo repository.PromotionRepository, id uint) error {
	promotion, err := repo.GetByID(id)
	if err != nil {
		return err
	}
	if promotion == nil {
		return ErrPromotionNotFound
	}
	ok, err := repo.IncrementUsedQuantity(id, 1)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPromotionExhausted
	}
	return nil
}

// ValidateDuration 校验促销时长不超过规定上限。
// 天数按闭区间计算：同一天记 1 天。maxDays 不大于 0 表示不限制。
func (s *PromotionService) ValidateDuration(start, end models.Date, maxDays int) error {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return ErrPromotionDateInvalid
	}
	if maxDays <= 0 {
		return nil
	}
	if models.DaysBetweenInclusive(start, end) > maxDays {
		return ErrPromotionDurationExceeded
	}
	return nil
}
