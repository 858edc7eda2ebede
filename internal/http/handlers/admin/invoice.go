package admin

import (
	"strconv"

	"github.com/police23/IS402-CloudComputing-sub001/internal/http/response"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"
	"github.com/police23/IS402-CloudComputing-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// InvoiceItemRequest 销售明细请求
type InvoiceItemRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

// CreateInvoiceRequest 创建发票请求
type CreateInvoiceRequest struct {
	CustomerName  string               `json:"customer_name"`
	CustomerPhone string               `json:"customer_phone"`
	PromotionCode string               `json:"promotion_code"`
	Items         []InvoiceItemRequest `json:"items" binding:"required"`
}

// CreateInvoice 创建销售发票
func (h *Handler) CreateInvoice(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	items := make([]service.InvoiceItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.InvoiceItemInput{
			BookID:   item.BookID,
			Quantity: item.Quantity,
		})
	}

	invoice, err := h.InvoiceService.Create(service.CreateInvoiceInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		AdminID:       adminID,
		PromotionCode: req.PromotionCode,
		Items:         items,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, invoice)
}

// GetInvoice 获取发票详情
func (h *Handler) GetInvoice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	invoice, err := h.InvoiceService.GetByID(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, invoice)
}

// GetInvoices 获取发票列表
func (h *Handler) GetInvoices(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	adminID, _ := strconv.ParseUint(c.Query("admin_id"), 10, 64)
	promotionID, _ := strconv.ParseUint(c.Query("promotion_id"), 10, 64)

	filter := repository.InvoiceListFilter{
		Page:          page,
		PageSize:      pageSize,
		InvoiceNo:     c.Query("invoice_no"),
		CustomerPhone: c.Query("customer_phone"),
		AdminID:       uint(adminID),
		PromotionID:   uint(promotionID),
	}
	filter.CreatedFrom = parseDayStart(c.Query("from"))
	filter.CreatedTo = parseDayEnd(c.Query("to"))

	invoices, total, err := h.InvoiceService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, invoices, response.NewPagination(page, pageSize, total))
}
