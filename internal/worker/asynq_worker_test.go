package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/provider"
	"github.com/police23/IS402-CloudComputing-sub001/internal/queue"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"
	"github.com/police23/IS402-CloudComputing-sub001/internal/service"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Book{}, &models.Promotion{}, &models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	consumer := NewConsumer(&provider.Container{
		BookRepo:      repository.NewBookRepository(db),
		PromotionRepo: repository.NewPromotionRepository(db),
		RulesService:  service.NewRulesService(repository.NewSettingRepository(db)),
	})
	return consumer, db
}

func TestConsumerScanLowStock(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	books := []models.Book{
		{Title: "Sắp hết", Author: "A", CategoryID: 1, Price: models.NewMoneyFromInt(50000), Stock: 3},
		{Title: "Còn nhiều", Author: "B", CategoryID: 1, Price: models.NewMoneyFromInt(50000), Stock: 200},
	}
	for i := range books {
		if err := db.Create(&books[i]).Error; err != nil {
			t.Fatalf("create book failed: %v", err)
		}
	}

	if err := consumer.ScanLowStock(context.Background(), 1, "invoice_created"); err != nil {
		t.Fatalf("scan low stock failed: %v", err)
	}
}

func TestConsumerHandleBookLowStockScanTask(t *testing.T) {
	consumer, _ := setupConsumerTest(t)
	task, err := queue.NewBookLowStockScanTask(queue.BookLowStockScanPayload{
		InvoiceID: 7,
		Reason:    "invoice_created",
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleBookLowStockScan(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}
}

func TestConsumerSweepExpiredPromotions(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	promotion := models.Promotion{
		Name:          "Đã kết thúc",
		Code:          "KETTHUC",
		Type:          "percent",
		DiscountValue: models.NewMoneyFromInt(10),
		StartDate:     models.NewDate(2025, time.April, 1),
		EndDate:       models.NewDate(2025, time.April, 15),
	}
	if err := db.Create(&promotion).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	if err := consumer.SweepExpiredPromotions(models.NewDate(2025, time.May, 1)); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
}

func TestConsumerHandlePromotionExpirySweepBadDate(t *testing.T) {
	consumer, _ := setupConsumerTest(t)
	task, err := queue.NewPromotionExpirySweepTask(queue.PromotionExpirySweepPayload{Before: "15/04/2025"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	// 日期格式错误只记录日志，不触发重试
	if err := consumer.handlePromotionExpirySweep(context.Background(), task); err != nil {
		t.Fatalf("expected bad date to be swallowed, got %v", err)
	}
}
