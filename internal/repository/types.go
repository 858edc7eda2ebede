package repository

import "time"

// BookListFilter 查询图书列表的过滤条件
type BookListFilter struct {
	Page       int
	PageSize   int
	Keyword    string
	CategoryID uint
	SupplierID uint
	MaxStock   *int
}

// CategoryListFilter 查询分类列表的过滤条件
type CategoryListFilter struct {
	Page     int
	PageSize int
	Keyword  string
}

// SupplierListFilter 查询供应商列表的过滤条件
type SupplierListFilter struct {
	Page     int
	PageSize int
	Keyword  string
}

// AdminListFilter 查询后台账号列表的过滤条件
type AdminListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
	IsActive *bool
}

// PromotionListFilter 查询促销列表的过滤条件
type PromotionListFilter struct {
	Page     int
	PageSize int
	Code     string
	Keyword  string
	BookID   uint
	ActiveOn string // yyyy-mm-dd，过滤指定日期生效的促销
}

// ImportListFilter 查询进货单列表的过滤条件
type ImportListFilter struct {
	Page        int
	PageSize    int
	SupplierID  uint
	AdminID     uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// InvoiceListFilter 查询发票列表的过滤条件
type InvoiceListFilter struct {
	Page          int
	PageSize      int
	InvoiceNo     string
	CustomerPhone string
	AdminID       uint
	PromotionID   uint
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}
