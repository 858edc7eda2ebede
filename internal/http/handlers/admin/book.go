package admin

import (
	"strconv"

	"github.com/police23/IS402-CloudComputing-sub001/internal/http/response"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"
	"github.com/police23/IS402-CloudComputing-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BookRequest 创建/更新图书请求
type BookRequest struct {
	Title           string  `json:"title" binding:"required"`
	Author          string  `json:"author"`
	Publisher       string  `json:"publisher"`
	PublicationYear int     `json:"publication_year"`
	CategoryID      uint    `json:"category_id" binding:"required"`
	SupplierID      uint    `json:"supplier_id" binding:"required"`
	Price           float64 `json:"price"`
	Description     string  `json:"description"`
}

func (r BookRequest) toInput() service.BookInput {
	return service.BookInput{
		Title:           r.Title,
		Author:          r.Author,
		Publisher:       r.Publisher,
		PublicationYear: r.PublicationYear,
		CategoryID:      r.CategoryID,
		SupplierID:      r.SupplierID,
		Price:           models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Price)),
		Description:     r.Description,
	}
}

// GetBooks 获取图书列表
func (h *Handler) GetBooks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	supplierID, _ := strconv.ParseUint(c.Query("supplier_id"), 10, 64)

	filter := repository.BookListFilter{
		Page:       page,
		PageSize:   pageSize,
		Keyword:    c.Query("search"),
		CategoryID: uint(categoryID),
		SupplierID: uint(supplierID),
	}
	if raw := c.Query("max_stock"); raw != "" {
		if maxStock, err := strconv.Atoi(raw); err == nil {
			filter.MaxStock = &maxStock
		}
	}

	books, total, err := h.BookService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, books, response.NewPagination(page, pageSize, total))
}

// GetBook 获取图书详情
func (h *Handler) GetBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	book, err := h.BookService.GetByID(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, book)
}

// CreateBook 创建图书
func (h *Handler) CreateBook(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	book, err := h.BookService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, book)
}

// UpdateBook 更新图书
func (h *Handler) UpdateBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	book, err := h.BookService.Update(uint(id), req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, book)
}

// DeleteBook 删除图书
func (h *Handler) DeleteBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.BookService.Delete(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
