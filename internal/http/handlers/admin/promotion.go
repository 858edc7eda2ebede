package admin

import (
	"strconv"
	"strings"

	"github.com/police23/IS402-CloudComputing-sub001/internal/http/response"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"
	"github.com/police23/IS402-CloudComputing-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PromotionRequest 创建/更新促销请求
type PromotionRequest struct {
	Name          string  `json:"name" binding:"required"`
	Code          string  `json:"code" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	DiscountValue float64 `json:"discount_value" binding:"required"`
	MinPrice      float64 `json:"min_price"`
	Quantity      int     `json:"quantity"`
	BookIDs       []uint  `json:"book_ids"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       string  `json:"end_date" binding:"required"`
}

func (r PromotionRequest) toInput() (service.PromotionInput, error) {
	start, err := models.ParseDate(r.StartDate)
	if err != nil {
		return service.PromotionInput{}, err
	}
	end, err := models.ParseDate(r.EndDate)
	if err != nil {
		return service.PromotionInput{}, err
	}
	return service.PromotionInput{
		Name:          r.Name,
		Code:          r.Code,
		Type:          r.Type,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromFloat(r.DiscountValue)),
		MinPrice:      models.NewMoneyFromDecimal(decimal.NewFromFloat(r.MinPrice)),
		Quantity:      r.Quantity,
		BookIDs:       r.BookIDs,
		StartDate:     start,
		EndDate:       end,
	}, nil
}

// GetPromotions 获取促销列表
func (h *Handler) GetPromotions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	bookID, _ := strconv.ParseUint(c.Query("book_id"), 10, 64)

	promotions, total, err := h.PromotionAdminService.List(repository.PromotionListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     c.Query("code"),
		Keyword:  c.Query("search"),
		BookID:   uint(bookID),
		ActiveOn: c.Query("active_on"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, promotions, response.NewPagination(page, pageSize, total))
}

// GetPromotion 获取促销详情
func (h *Handler) GetPromotion(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	promotion, err := h.PromotionAdminService.GetByID(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, promotion)
}

// CreatePromotion 创建促销
func (h *Handler) CreatePromotion(c *gin.Context) {
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	promotion, err := h.PromotionAdminService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, promotion)
}

// UpdatePromotion 更新促销
func (h *Handler) UpdatePromotion(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	promotion, err := h.PromotionAdminService.Update(uint(id), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, promotion)
}

// DeletePromotion 删除促销
func (h *Handler) DeletePromotion(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.PromotionAdminService.Delete(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ValidatePromotionRequest 促销码试算请求
type ValidatePromotionRequest struct {
	Code       string  `json:"code" binding:"required"`
	OrderTotal float64 `json:"order_total"`
	BookIDs    []uint  `json:"book_ids"`
	OnDate     string  `json:"on_date"`
}

// ValidatePromotion 校验促销码并试算折扣（不消耗使用次数）
func (h *Handler) ValidatePromotion(c *gin.Context) {
	var req ValidatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	orderTotal := models.NewMoneyFromDecimal(decimal.NewFromFloat(req.OrderTotal))

	var quote *service.PromotionQuote
	var err error
	switch {
	case strings.TrimSpace(req.OnDate) != "":
		day, parseErr := models.ParseDate(req.OnDate)
		if parseErr != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", parseErr)
			return
		}
		quote, err = h.PromotionService.ValidateAndPriceOn(req.Code, orderTotal, day)
	case len(req.BookIDs) > 0:
		quote, err = h.PromotionService.ValidateAndPriceForBooks(req.Code, orderTotal, req.BookIDs)
	default:
		quote, err = h.PromotionService.ValidateAndPrice(req.Code, orderTotal)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, quote)
}
