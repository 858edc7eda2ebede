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

func setupBookServiceTest(t *testing.T) (*BookService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:book_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Supplier{}, &models.Book{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewBookService(
		repository.NewBookRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewSupplierRepository(db),
	)
	return svc, db
}

func seedBookCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	category := &models.Category{Name: fmt.Sprintf("Văn học %d", time.Now().UnixNano())}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func TestBookServiceCreate(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	category := seedBookCategory(t, db)

	book, err := svc.Create(BookInput{
		Title:           "  Nhà giả kim  ",
		Author:          "Paulo Coelho",
		PublicationYear: 2021,
		CategoryID:      category.ID,
		Price:           models.NewMoneyFromInt(79000),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if book.Title != "Nhà giả kim" {
		t.Fatalf("expected title trimmed, got %q", book.Title)
	}
	// 库存只通过进货与销售变动
	if book.Stock != 0 {
		t.Fatalf("expected initial stock 0, got %d", book.Stock)
	}
}

func TestBookServiceValidation(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	category := seedBookCategory(t, db)

	if _, err := svc.Create(BookInput{CategoryID: category.ID}); !errors.Is(err, ErrBookTitleRequired) {
		t.Fatalf("expected ErrBookTitleRequired, got %v", err)
	}
	if _, err := svc.Create(BookInput{
		Title: "Sách", CategoryID: category.ID,
		Price: models.NewMoneyFromInt(-1),
	}); !errors.Is(err, ErrBookPriceInvalid) {
		t.Fatalf("expected ErrBookPriceInvalid, got %v", err)
	}
	if _, err := svc.Create(BookInput{
		Title: "Sách", CategoryID: 9999,
		Price: models.NewMoneyFromInt(10000),
	}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if _, err := svc.Create(BookInput{
		Title: "Sách", CategoryID: category.ID, SupplierID: 9999,
		Price: models.NewMoneyFromInt(10000),
	}); !errors.Is(err, ErrSupplierNotFound) {
		t.Fatalf("expected ErrSupplierNotFound, got %v", err)
	}
}

func TestBookServiceUpdateKeepsStock(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	category := seedBookCategory(t, db)

	book, err := svc.Create(BookInput{
		Title: "Bản cũ", Author: "A", CategoryID: category.ID,
		Price: models.NewMoneyFromInt(50000),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := db.Model(&models.Book{}).Where("id = ?", book.ID).
		UpdateColumn("stock", 42).Error; err != nil {
		t.Fatalf("seed stock failed: %v", err)
	}

	updated, err := svc.Update(book.ID, BookInput{
		Title: "Bản mới", Author: "A", CategoryID: category.ID,
		Price: models.NewMoneyFromInt(60000),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Bản mới" {
		t.Fatalf("unexpected title: %s", updated.Title)
	}

	got, err := svc.GetByID(book.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Stock != 42 {
		t.Fatalf("update must not touch stock, got %d", got.Stock)
	}
}

func TestBookServiceDelete(t *testing.T) {
	svc, db := setupBookServiceTest(t)
	category := seedBookCategory(t, db)
	book, err := svc.Create(BookInput{
		Title: "Sẽ xoá", CategoryID: category.ID, Price: models.NewMoneyFromInt(10000),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(book.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetByID(book.ID); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}
