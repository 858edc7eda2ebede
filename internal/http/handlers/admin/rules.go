package admin

import (
	"github.com/police23/IS402-CloudComputing-sub001/internal/http/response"
	"github.com/police23/IS402-CloudComputing-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// GetRules 获取经营规则
func (h *Handler) GetRules(c *gin.Context) {
	rules, err := h.RulesService.Get()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, rules)
}

// UpdateRulesRequest 更新经营规则请求
type UpdateRulesRequest struct {
	MinImportQuantity    int `json:"min_import_quantity"`
	MinStockBeforeImport int `json:"min_stock_before_import"`
	MinStockAfterSale    int `json:"min_stock_after_sale"`
	MaxPromotionDuration int `json:"max_promotion_duration"`
}

// UpdateRules 更新经营规则。
// 四个参数整体校验、整体生效，不允许部分更新。
func (h *Handler) UpdateRules(c *gin.Context) {
	var req UpdateRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	rules, err := h.RulesService.Update(service.BusinessRules{
		MinImportQuantity:    req.MinImportQuantity,
		MinStockBeforeImport: req.MinStockBeforeImport,
		MinStockAfterSale:    req.MinStockAfterSale,
		MaxPromotionDuration: req.MaxPromotionDuration,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, rules)
}
