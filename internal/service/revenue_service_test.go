package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRevenueServiceTest(t *testing.T) (*RevenueService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:revenue_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Book{}, &models.Invoice{}, &models.InvoiceItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewRevenueService(repository.NewRevenueRepository(db), 0), db
}

func seedRevenueInvoice(t *testing.T, db *gorm.DB, at time.Time, total int64, bookID uint, quantity int) {
	t.Helper()
	invoice := models.Invoice{
		InvoiceNo:   fmt.Sprintf("HD%d", time.Now().UnixNano()),
		AdminID:     1,
		Subtotal:    models.NewMoneyFromInt(total),
		TotalAmount: models.NewMoneyFromInt(total),
		CreatedAt:   at,
		Items: []models.InvoiceItem{
			{
				BookID:     bookID,
				Quantity:   quantity,
				UnitPrice:  models.NewMoneyFromInt(total / int64(quantity)),
				TotalPrice: models.NewMoneyFromInt(total),
			},
		},
	}
	if err := db.Create(&invoice).Error; err != nil {
		t.Fatalf("create invoice failed: %v", err)
	}
	// AutoCreateTime 会覆盖传入值，落库后再校正
	if err := db.Model(&models.Invoice{}).Where("id = ?", invoice.ID).
		UpdateColumn("created_at", at).Error; err != nil {
		t.Fatalf("fix created_at failed: %v", err)
	}
}

func TestRevenueServiceYearlySeriesDense(t *testing.T) {
	svc, db := setupRevenueServiceTest(t)
	seedRevenueInvoice(t, db, time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC), 200000, 1, 2)
	seedRevenueInvoice(t, db, time.Date(2025, time.March, 20, 15, 0, 0, 0, time.UTC), 100000, 2, 1)
	seedRevenueInvoice(t, db, time.Date(2025, time.August, 5, 11, 0, 0, 0, time.UTC), 50000, 1, 1)
	// 其他年份的数据不计入
	seedRevenueInvoice(t, db, time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC), 999000, 1, 3)

	series, err := svc.YearlySeries(context.Background(), 2025)
	if err != nil {
		t.Fatalf("yearly series failed: %v", err)
	}
	if len(series) != 12 {
		t.Fatalf("expected 12 periods, got %d", len(series))
	}
	for i, point := range series {
		if point.Period != i+1 {
			t.Fatalf("expected period %d at index %d, got %d", i+1, i, point.Period)
		}
	}
	if series[2].TotalRevenue != "300000.00" || series[2].TotalSold != 3 {
		t.Fatalf("unexpected march totals: %+v", series[2])
	}
	if series[7].TotalRevenue != "50000.00" || series[7].TotalSold != 1 {
		t.Fatalf("unexpected august totals: %+v", series[7])
	}
	if series[0].TotalRevenue != "0.00" || series[0].TotalSold != 0 {
		t.Fatalf("expected zero-filled january, got %+v", series[0])
	}
}

func TestRevenueServiceDailySeriesLength(t *testing.T) {
	svc, db := setupRevenueServiceTest(t)
	seedRevenueInvoice(t, db, time.Date(2024, time.February, 29, 10, 0, 0, 0, time.UTC), 120000, 1, 2)

	// 闰年二月 29 期
	series, err := svc.DailySeries(context.Background(), 2, 2024)
	if err != nil {
		t.Fatalf("daily series failed: %v", err)
	}
	if len(series) != 29 {
		t.Fatalf("expected 29 days for feb 2024, got %d", len(series))
	}
	if series[28].TotalRevenue != "120000.00" || series[28].TotalSold != 2 {
		t.Fatalf("unexpected feb 29 totals: %+v", series[28])
	}

	// 平年二月 28 期
	series, err = svc.DailySeries(context.Background(), 2, 2023)
	if err != nil {
		t.Fatalf("daily series failed: %v", err)
	}
	if len(series) != 28 {
		t.Fatalf("expected 28 days for feb 2023, got %d", len(series))
	}

	series, err = svc.DailySeries(context.Background(), 7, 2024)
	if err != nil {
		t.Fatalf("daily series failed: %v", err)
	}
	if len(series) != 31 {
		t.Fatalf("expected 31 days for july, got %d", len(series))
	}
}

func TestRevenueServiceParamValidation(t *testing.T) {
	svc, _ := setupRevenueServiceTest(t)
	ctx := context.Background()

	if _, err := svc.YearlySeries(ctx, 0); !errors.Is(err, ErrRevenueParamsMissing) {
		t.Fatalf("expected ErrRevenueParamsMissing, got %v", err)
	}
	if _, err := svc.DailySeries(ctx, 13, 2025); !errors.Is(err, ErrRevenueParamsMissing) {
		t.Fatalf("expected ErrRevenueParamsMissing for month 13, got %v", err)
	}
	if _, err := svc.DailySeries(ctx, 5, 0); !errors.Is(err, ErrRevenueParamsMissing) {
		t.Fatalf("expected ErrRevenueParamsMissing for year 0, got %v", err)
	}
	if _, err := svc.TopSellers(ctx, 0, 2025, 10); !errors.Is(err, ErrRevenueParamsMissing) {
		t.Fatalf("expected ErrRevenueParamsMissing for month 0, got %v", err)
	}
	if _, err := svc.TopSellers(ctx, 5, 2025, -1); !errors.Is(err, ErrRevenueLimitInvalid) {
		t.Fatalf("expected ErrRevenueLimitInvalid, got %v", err)
	}
}

func TestRevenueServiceTopSellers(t *testing.T) {
	svc, db := setupRevenueServiceTest(t)
	books := []models.Book{
		{Title: "Bán chạy nhất", Author: "A", CategoryID: 1, Price: models.NewMoneyFromInt(50000), Stock: 100},
		{Title: "Bán chạy nhì", Author: "B", CategoryID: 1, Price: models.NewMoneyFromInt(40000), Stock: 100},
		{Title: "Ế hàng", Author: "C", CategoryID: 1, Price: models.NewMoneyFromInt(30000), Stock: 100},
	}
	for i := range books {
		if err := db.Create(&books[i]).Error; err != nil {
			t.Fatalf("create book failed: %v", err)
		}
	}
	at := time.Date(2025, time.May, 12, 10, 0, 0, 0, time.UTC)
	seedRevenueInvoice(t, db, at, 250000, books[0].ID, 5)
	seedRevenueInvoice(t, db, at, 120000, books[1].ID, 3)
	seedRevenueInvoice(t, db, at, 30000, books[2].ID, 1)

	top, err := svc.TopSellers(context.Background(), 5, 2025, 2)
	if err != nil {
		t.Fatalf("top sellers failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Title != "Bán chạy nhất" || top[0].TotalSold != 5 {
		t.Fatalf("unexpected first entry: %+v", top[0])
	}
	if top[1].Title != "Bán chạy nhì" || top[1].TotalSold != 3 {
		t.Fatalf("unexpected second entry: %+v", top[1])
	}
}
