package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/police23/IS402-CloudComputing-sub001/internal/http/response"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"
	"github.com/police23/IS402-CloudComputing-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ImportItemRequest 进货明细请求
type ImportItemRequest struct {
	BookID   uint    `json:"book_id" binding:"required"`
	Quantity int     `json:"quantity" binding:"required"`
	UnitCost float64 `json:"unit_cost"`
}

// CreateImportRequest 创建进货单请求
type CreateImportRequest struct {
	SupplierID uint                `json:"supplier_id" binding:"required"`
	Note       string              `json:"note"`
	Items      []ImportItemRequest `json:"items" binding:"required"`
}

// CreateImport 创建进货单并入库
func (h *Handler) CreateImport(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req CreateImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	items := make([]service.ImportItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.ImportItemInput{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			UnitCost: models.NewMoneyFromDecimal(decimal.NewFromFloat(item.UnitCost)),
		})
	}

	record, err := h.ImportService.Create(service.CreateImportInput{
		SupplierID: req.SupplierID,
		AdminID:    adminID,
		Note:       req.Note,
		Items:      items,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, record)
}

// GetImport 获取进货单详情
func (h *Handler) GetImport(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	record, err := h.ImportService.GetByID(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, record)
}

// GetImports 获取进货单列表
func (h *Handler) GetImports(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	supplierID, _ := strconv.ParseUint(c.Query("supplier_id"), 10, 64)
	adminID, _ := strconv.ParseUint(c.Query("admin_id"), 10, 64)

	filter := repository.ImportListFilter{
		Page:       page,
		PageSize:   pageSize,
		SupplierID: uint(supplierID),
		AdminID:    uint(adminID),
	}
	filter.CreatedFrom = parseDayStart(c.Query("from"))
	filter.CreatedTo = parseDayEnd(c.Query("to"))

	records, total, err := h.ImportService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, records, response.NewPagination(page, pageSize, total))
}

// parseDayStart 把 yyyy-mm-dd 转为当天零点，空串返回 nil
func parseDayStart(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	day, err := models.ParseDate(raw)
	if err != nil {
		return nil
	}
	t := time.Date(day.Year, day.Month, day.Day, 0, 0, 0, 0, time.Local)
	return &t
}

// parseDayEnd 把 yyyy-mm-dd 转为次日零点（闭区间右端），空串返回 nil
func parseDayEnd(raw string) *time.Time {
	start := parseDayStart(raw)
	if start == nil {
		return nil
	}
	t := start.AddDate(0, 0, 1)
	return &t
}
