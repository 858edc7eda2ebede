package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupImportServiceTest(t *testing.T) (*ImportService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:import_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Supplier{},
		&models.Book{},
		&models.Setting{},
		&models.Import{},
		&models.ImportItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewImportService(
		repository.NewImportRepository(db),
		repository.NewBookRepository(db),
		repository.NewSupplierRepository(db),
		NewRulesService(repository.NewSettingRepository(db)),
	)
	return svc, db
}

func seedImportFixtures(t *testing.T, db *gorm.DB, stock int) (*models.Supplier, *models.Book) {
	t.Helper()
	supplier := &models.Supplier{Name: fmt.Sprintf("NXB Test %d", time.Now().UnixNano()), Phone: "0281234567"}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("create supplier failed: %v", err)
	}
	book := &models.Book{
		Title:      "Sách cần nhập",
		Author:     "Tác giả",
		CategoryID: 1,
		Price:      models.NewMoneyFromInt(70000),
		Stock:      stock,
	}
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("create book failed: %v", err)
	}
	return supplier, book
}

func TestImportServiceCreate(t *testing.T) {
	svc, db := setupImportServiceTest(t)
	supplier, book := seedImportFixtures(t, db, 10)

	record, err := svc.Create(CreateImportInput{
		SupplierID: supplier.ID,
		AdminID:    1,
		Items: []ImportItemInput{
			{BookID: book.ID, Quantity: 40, UnitCost: models.NewMoneyFromInt(45000)},
		},
	})
	if err != nil {
		t.Fatalf("create import failed: %v", err)
	}
	if record.ID == 0 || len(record.Items) != 1 {
		t.Fatalf("unexpected import record: %+v", record)
	}
	if record.TotalCost.Decimal.String() != "1800000" {
		t.Fatalf("unexpected total cost: %s", record.TotalCost.Decimal)
	}

	got, err := repository.NewBookRepository(db).GetByID(book.ID)
	if err != nil {
		t.Fatalf("get book failed: %v", err)
	}
	if got.Stock != 50 {
		t.Fatalf("expected stock=50 after import, got %d", got.Stock)
	}
}

func TestImportServiceQuantityFloor(t *testing.T) {
	svc, db := setupImportServiceTest(t)
	supplier, book := seedImportFixtures(t, db, 10)

	// 默认规则：单次进货每种图书不低于 30
	_, err := svc.Create(CreateImportInput{
		SupplierID: supplier.ID,
		AdminID:    1,
		Items: []ImportItemInput{
			{BookID: book.ID, Quantity: 29, UnitCost: models.NewMoneyFromInt(45000)},
		},
	})
	if !errors.Is(err, ErrImportQuantityTooLow) {
		t.Fatalf("expected ErrImportQuantityTooLow, got %v", err)
	}

	// 正好 30 可以通过
	if _, err := svc.Create(CreateImportInput{
		SupplierID: supplier.ID,
		AdminID:    1,
		Items: []ImportItemInput{
			{BookID: book.ID, Quantity: 30, UnitCost: models.NewMoneyFromInt(45000)},
		},
	}); err != nil {
		t.Fatalf("boundary import should pass: %v", err)
	}
}

func TestImportServiceStockCeiling(t *testing.T) {
	svc, db := setupImportServiceTest(t)
	// 默认规则：库存不低于 50 的图书不允许再进货
	supplier, book := seedImportFixtures(t, db, 50)

	_, err := svc.Create(CreateImportInput{
		SupplierID: supplier.ID,
		AdminID:    1,
		Items: []ImportItemInput{
			{BookID: book.ID, Quantity: 40, UnitCost: models.NewMoneyFromInt(45000)},
		},
	})
	if !errors.Is(err, ErrImportStockTooHigh) {
		t.Fatalf("expected ErrImportStockTooHigh, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Import{}).Count(&count).Error; err != nil {
		t.Fatalf("count imports failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no import persisted, got %d", count)
	}
}

func TestImportServiceValidation(t *testing.T) {
	svc, db := setupImportServiceTest(t)
	supplier, book := seedImportFixtures(t, db, 5)

	if _, err := svc.Create(CreateImportInput{SupplierID: supplier.ID, AdminID: 1}); !errors.Is(err, ErrImportEmpty) {
		t.Fatalf("expected ErrImportEmpty, got %v", err)
	}
	if _, err := svc.Create(CreateImportInput{
		SupplierID: 9999,
		AdminID:    1,
		Items:      []ImportItemInput{{BookID: book.ID, Quantity: 30, UnitCost: models.NewMoneyFromInt(1000)}},
	}); !errors.Is(err, ErrSupplierNotFound) {
		t.Fatalf("expected ErrSupplierNotFound, got %v", err)
	}
	if _, err := svc.Create(CreateImportInput{
		SupplierID: supplier.ID,
		AdminID:    1,
		Items:      []ImportItemInput{{BookID: 9999, Quantity: 30, UnitCost: models.NewMoneyFromInt(1000)}},
	}); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}
