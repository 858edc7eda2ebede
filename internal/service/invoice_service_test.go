package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/police23/IS402-CloudComputing-sub001/internal/constants"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupInvoiceServiceTest(t *testing.T) (*InvoiceService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:invoice_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Book{},
		&models.Promotion{},
		&models.Setting{},
		&models.Invoice{},
		&models.InvoiceItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	bookRepo := repository.NewBookRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	rules := NewRulesService(repository.NewSettingRepository(db))
	svc := NewInvoiceService(
		repository.NewInvoiceRepository(db),
		bookRepo,
		promotionRepo,
		NewPromotionService(promotionRepo),
		rules,
		nil,
	)
	return svc, db
}

func seedInvoiceBook(t *testing.T, db *gorm.DB, title string, price int64, stock int) *models.Book {
	t.Helper()
	book := &models.Book{
		Title:      title,
		Author:     "Tác giả",
		CategoryID: 1,
		Price:      models.NewMoneyFromInt(price),
		Stock:      stock,
	}
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("create book failed: %v", err)
	}
	return book
}

func TestInvoiceServiceCreate(t *testing.T) {
	svc, db := setupInvoiceServiceTest(t)
	book := seedInvoiceBook(t, db, "Sách bán chạy", 80000, 20)

	invoice, err := svc.Create(CreateInvoiceInput{
		CustomerName:  "Nguyễn Văn A",
		CustomerPhone: "0901234567",
		AdminID:       1,
		Items:         []InvoiceItemInput{{BookID: book.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("create invoice failed: %v", err)
	}
	if invoice.ID == 0 || !strings.HasPrefix(invoice.InvoiceNo, "HD") {
		t.Fatalf("unexpected invoice: %+v", invoice)
	}
	if invoice.Subtotal.Decimal.String() != "240000" {
		t.Fatalf("unexpected subtotal: %s", invoice.Subtotal.Decimal)
	}
	if invoice.TotalAmount.Decimal.String() != "240000" {
		t.Fatalf("unexpected total: %s", invoice.TotalAmount.Decimal)
	}

	got, err := repository.NewBookRepository(db).GetByID(book.ID)
	if err != nil {
		t.Fatalf("get book failed: %v", err)
	}
	if got.Stock != 17 {
		t.Fatalf("expected stock=17, got %d", got.Stock)
	}
}

func TestInvoiceServiceStockFloor(t *testing.T) {
	svc, db := setupInvoiceServiceTest(t)
	// 默认规则：售出后库存不得低于 5
	book := seedInvoiceBook(t, db, "Sách gần hết", 60000, 8)

	// 8 - 4 < 5，必须拒绝且不落发票
	_, err := svc.Create(CreateInvoiceInput{
		AdminID: 1,
		Items:   []InvoiceItemInput{{BookID: book.ID, Quantity: 4}},
	})
	if !errors.Is(err, ErrInvoiceStockInsufficient) {
		t.Fatalf("expected ErrInvoiceStockInsufficient, got %v", err)
	}

	got, err := repository.NewBookRepository(db).GetByID(book.ID)
	if err != nil {
		t.Fatalf("get book failed: %v", err)
	}
	if got.Stock != 8 {
		t.Fatalf("expected stock untouched at 8, got %d", got.Stock)
	}
	var count int64
	if err := db.Model(&models.Invoice{}).Count(&count).Error; err != nil {
		t.Fatalf("count invoices failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no invoice persisted, got %d", count)
	}

	// 8 - 3 = 5，正好落在下限上
	if _, err := svc.Create(CreateInvoiceInput{
		AdminID: 1,
		Items:   []InvoiceItemInput{{BookID: book.ID, Quantity: 3}},
	}); err != nil {
		t.Fatalf("boundary sale should pass: %v", err)
	}
}

func TestInvoiceServiceWithPromotion(t *testing.T) {
	svc, db := setupInvoiceServiceTest(t)
	book := seedInvoiceBook(t, db, "Sách khuyến mãi", 100000, 50)
	promotion := &models.Promotion{
		Name:          "Giảm 20%",
		Code:          "GIAM20",
		Type:          constants.PromotionTypePercent,
		DiscountValue: models.NewMoneyFromInt(20),
		Quantity:      1,
		StartDate:     models.Today().AddDays(-1),
		EndDate:       models.Today().AddDays(5),
	}
	if err := db.Create(promotion).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	invoice, err := svc.Create(CreateInvoiceInput{
		AdminID:       1,
		PromotionCode: "GIAM20",
		Items:         []InvoiceItemInput{{BookID: book.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create invoice failed: %v", err)
	}
	if invoice.DiscountAmount.Decimal.String() != "40000" {
		t.Fatalf("unexpected discount: %s", invoice.DiscountAmount.Decimal)
	}
	if invoice.TotalAmount.Decimal.String() != "160000" {
		t.Fatalf("unexpected total: %s", invoice.TotalAmount.Decimal)
	}
	if invoice.PromotionID == nil || *invoice.PromotionID != promotion.ID {
		t.Fatalf("expected promotion linked, got %+v", invoice.PromotionID)
	}

	// 核销与开票同事务：可用量已耗尽
	var got models.Promotion
	if err := db.First(&got, promotion.ID).Error; err != nil {
		t.Fatalf("get promotion failed: %v", err)
	}
	if got.UsedQuantity != 1 {
		t.Fatalf("expected used_quantity=1, got %d", got.UsedQuantity)
	}
	if _, err := svc.Create(CreateInvoiceInput{
		AdminID:       1,
		PromotionCode: "GIAM20",
		Items:         []InvoiceItemInput{{BookID: book.ID, Quantity: 1}},
	}); !errors.Is(err, ErrPromotionExhausted) {
		t.Fatalf("expected ErrPromotionExhausted, got %v", err)
	}
}

func TestInvoiceServiceInputValidation(t *testing.T) {
	svc, db := setupInvoiceServiceTest(t)
	book := seedInvoiceBook(t, db, "Sách hợp lệ", 50000, 30)

	if _, err := svc.Create(CreateInvoiceInput{AdminID: 1}); !errors.Is(err, ErrInvoiceEmpty) {
		t.Fatalf("expected ErrInvoiceEmpty, got %v", err)
	}
	if _, err := svc.Create(CreateInvoiceInput{
		AdminID: 1,
		Items:   []InvoiceItemInput{{BookID: book.ID, Quantity: 0}},
	}); !errors.Is(err, ErrInvoiceQuantityInvalid) {
		t.Fatalf("expected ErrInvoiceQuantityInvalid, got %v", err)
	}
	if _, err := svc.Create(CreateInvoiceInput{
		AdminID: 1,
		Items:   []InvoiceItemInput{{BookID: 9999, Quantity: 1}},
	}); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}
