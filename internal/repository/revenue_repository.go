package repository

import (
	"fmt"

	"github.com/police23/IS402-CloudComputing-sub001/internal/models"

	"gorm.io/gorm"
)

// RevenueRepository 营收聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type RevenueRepository interface {
	GetMonthlyTotals(year int) ([]RevenuePeriodRow, error)
	GetDailyTotals(year, month int) ([]RevenuePeriodRow, error)
	GetTopSoldBooks(year, month, limit int) ([]TopSoldBookRow, error)
}

// RevenuePeriodRow 按期聚合的营收原始行（period 为月份或日序号）
type RevenuePeriodRow struct {
	Period       int
	TotalRevenue float64
	TotalSold    int64
}

// TopSoldBookRow 畅销图书原始行
type TopSoldBookRow struct {
	BookID       uint
	Title        string
	Author       string
	TotalSold    int64
	TotalRevenue float64
}

// GormRevenueRepository GORM 营收聚合实现
type GormRevenueRepository struct {
	db *gorm.DB
}

// NewRevenueRepository 创建营收仓库
func NewRevenueRepository(db *gorm.DB) *GormRevenueRepository {
	return &GormRevenueRepository{db: db}
}

// GetMonthlyTotals 按月聚合指定年份的营收与销量
func (r *GormRevenueRepository) GetMonthlyTotals(year int) ([]RevenuePeriodRow, error) {
	periodExpr := monthExpr(r.db, "invoices.created_at")
	return r.periodTotals(periodExpr, r.db.Where(fmt.Sprintf("%s = ?", yearExpr(r.db, "invoices.created_at")), year))
}

// GetDailyTotals 按日聚合指定年月的营收与销量
func (r *GormRevenueRepository) GetDailyTotals(year, month int) ([]RevenuePeriodRow, error) {
	periodExpr := dayExpr(r.db, "invoices.created_at")
	scope := r.db.
		Where(fmt.Sprintf("%s = ?", yearExpr(r.db, "invoices.created_at")), year).
		Where(fmt.Sprintf("%s = ?", monthExpr(r.db, "invoices.created_at")), month)
	return r.periodTotals(periodExpr, scope)
}

func (r *GormRevenueRepository) periodTotals(periodExpr string, scope *gorm.DB) ([]RevenuePeriodRow, error) {
	// 营收按发票实付金额聚合，销量按明细数量聚合，分两条语句避免 JOIN 放大金额。
	type revenueRow struct {
		Period       int
		TotalRevenue float64
	}
	var revenueRows []revenueRow
	if err := r.db.Model(&models.Invoice{}).
		Select(fmt.Sprintf("%s AS period, COALESCE(SUM(total_amount), 0) AS total_revenue", periodExpr)).
		Where(scope).
		Group("period").
		Scan(&revenueRows).Error; err != nil {
		return nil, err
	}

	type soldRow struct {
		Period    int
		TotalSold int64
	}
	var soldRows []soldRow
	if err := r.db.Model(&models.InvoiceItem{}).
		Select(fmt.Sprintf("%s AS period, COALESCE(SUM(invoice_items.quantity), 0) AS total_sold", periodExpr)).
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id AND invoices.deleted_at IS NULL").
		Where(scope).
		Group("period").
		Scan(&soldRows).Error; err != nil {
		return nil, err
	}

	merged := make(map[int]*RevenuePeriodRow)
	for _, row := range revenueRows {
		merged[row.Period] = &RevenuePeriodRow{Period: row.Period, TotalRevenue: row.TotalRevenue}
	}
	for _, row := range soldRows {
		if existing, ok := merged[row.Period]; ok {
			existing.TotalSold = row.TotalSold
			continue
		}
		merged[row.Period] = &RevenuePeriodRow{Period: row.Period, TotalSold: row.TotalSold}
	}

	rows := make([]RevenuePeriodRow, 0, len(merged))
	for _, row := range merged {
		rows = append(rows, *row)
	}
	return rows, nil
}

// GetTopSoldBooks 获取指定年月销量最高的图书
func (r *GormRevenueRepository) GetTopSoldBooks(year, month, limit int) ([]TopSoldBookRow, error) {
	if limit <= 0 {
		return []TopSoldBookRow{}, nil
	}
	var rows []TopSoldBookRow
	err := r.db.Model(&models.InvoiceItem{}).
		Select("invoice_items.book_id AS book_id, " +
			"books.title AS title, " +
			"books.author AS author, " +
			"COALESCE(SUM(invoice_items.quantity), 0) AS total_sold, " +
			"COALESCE(SUM(invoice_items.total_price), 0) AS total_revenue").
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id AND invoices.deleted_at IS NULL").
		Joins("JOIN books ON books.id = invoice_items.book_id").
		Where(fmt.Sprintf("%s = ?", yearExpr(r.db, "invoices.created_at")), year).
		Where(fmt.Sprintf("%s = ?", monthExpr(r.db, "invoices.created_at")), month).
		Group("invoice_items.book_id, books.title, books.author").
		Order("total_sold DESC, book_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
