package service

import (
	"github.com/police23/IS402-CloudComputing-sub001/internal/constants"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"
)

// BusinessRules 经营规则配置（单例，后台可调整）
type BusinessRules struct {
	MinImportQuantity    int `json:"min_import_quantity"`    // 单次进货最低数量
	MinStockBeforeImport int `json:"min_stock_before_import"` // 可进货的库存上限
	MinStockAfterSale    int `json:"min_stock_after_sale"`    // 售出后需保留的最低库存
	MaxPromotionDuration int `json:"max_promotion_duration"`  // 促销最长持续天数
}

// DefaultBusinessRules 默认经营规则
func DefaultBusinessRules() BusinessRules {
	return BusinessRules{
		MinImportQuantity:    30,
		MinStockBeforeImport: 50,
		MinStockAfterSale:    5,
		MaxPromotionDuration: 30,
	}
}

// Validate 校验规则取值。四个字段整体校验，任一非法则拒绝整份更新。
func (r BusinessRules) Validate() error {
	if r.MinImportQuantity < 0 || r.MinStockBeforeImport < 0 || r.MinStockAfterSale < 0 {
		return ErrRulesInvalid
	}
	if r.MaxPromotionDuration <= 0 {
		return ErrRulesInvalid
	}
	return nil
}

// RulesService 经营规则服务
type RulesService struct {
	repo repository.SettingRepository
}

// NewRulesService 创建经营规则服务
func NewRulesService(repo repository.SettingRepository) *RulesService {
	return &RulesService{repo: repo}
}

// Get 获取当前经营规则（settings 为空时回退默认值）
func (s *RulesService) Get() (BusinessRules, error) {
	fallback := DefaultBusinessRules()
	if s == nil || s.repo == nil {
		return fallback, nil
	}
	setting, err := s.repo.GetByKey(constants.SettingKeyBusinessRules)
	if err != nil {
		return fallback, err
	}
	if setting == nil || len(setting.ValueJSON) == 0 {
		return fallback, nil
	}
	return rulesFromJSON(setting.ValueJSON, fallback), nil
}

// Update 整体更新经营规则
func (s *RulesService) Update(rules BusinessRules) (BusinessRules, error) {
	if err := rules.Validate(); err != nil {
		return BusinessRules{}, err
	}
	if _, err := s.repo.Upsert(constants.SettingKeyBusinessRules, rulesToJSON(rules)); err != nil {
		return BusinessRules{}, err
	}
	return rules, nil
}

func rulesToJSON(rules BusinessRules) models.JSON {
	return models.JSON{
		"min_import_quantity":     rules.MinImportQuantity,
		"min_stock_before_import": rules.MinStockBeforeImport,
		"min_stock_after_sale":    rules.MinStockAfterSale,
		"max_promotion_duration":  rules.MaxPromotionDuration,
	}
}

func rulesFromJSON(raw models.JSON, fallback BusinessRules) BusinessRules {
	result := fallback
	if value, exists := raw["min_import_quantity"]; exists {
		if parsed, ok := parseSettingInt(value); ok {
			result.MinImportQuantity = parsed
		}
	}
	if value, exists := raw["min_stock_before_import"]; exists {
		if parsed, ok := parseSettingInt(value); ok {
			result.MinStockBeforeImport = parsed
		}
	}
	if value, exists := raw["min_stock_after_sale"]; exists {
		if parsed, ok := parseSettingInt(value); ok {
			result.MinStockAfterSale = parsed
		}
	}
	if value, exists := raw["max_promotion_duration"]; exists {
		if parsed, ok := parseSettingInt(value); ok {
			result.MaxPromotionDuration = parsed
		}
	}
	if result.Validate() != nil {
		return fallback
	}
	return result
}

// parseSettingInt 宽松解析设置值（JSON 反序列化后数字为 float64）
func parseSettingInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
