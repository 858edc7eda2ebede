package service

import (
	"strings"

	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"

	"github.com/shopspring/decimal"
)

// BookService 图书管理服务
type BookService struct {
	bookRepo     repository.BookRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

// NewBookService 创建图书服务
func NewBookService(
	bookRepo repository.BookRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) *BookService {
	return &BookService{
		bookRepo:     bookRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
	}
}

// BookInput 创建/更新图书输入
type BookInput struct {
	Title           string
	Author          string
	Publisher       string
	PublicationYear int
	CategoryID      uint
	SupplierID      uint
	Price           models.Money
	Description     string
}

func (s *BookService) validateInput(input BookInput) (BookInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return input, ErrBookTitleRequired
	}
	input.Author = strings.TrimSpace(input.Author)
	input.Publisher = strings.TrimSpace(input.Publisher)
	if input.Price.Decimal.LessThan(decimal.Zero) {
		return input, ErrBookPriceInvalid
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return input, err
	}
	if category == nil {
		return input, ErrCategoryNotFound
	}

	if input.SupplierID > 0 {
		supplier, err := s.supplierRepo.GetByID(input.SupplierID)
		if err != nil {
			return input, err
		}
		if supplier == nil {
			return input, ErrSupplierNotFound
		}
	}
	return input, nil
}

// Create 创建图书（初始库存为 0，库存只通过进货与销售变动）
func (s *BookService) Create(input BookInput) (*models.Book, error) {
	input, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:           input.Title,
		Author:          input.Author,
		Publisher:       input.Publisher,
		PublicationYear: input.PublicationYear,
		CategoryID:      input.CategoryID,
		SupplierID:      input.SupplierID,
		Price:           input.Price,
		Stock:           0,
		Description:     input.Description,
	}
	if err := s.bookRepo.Create(book); err != nil {
		return nil, err
	}
	return book, nil
}

// Update 更新图书基础信息（不直接改库存）
func (s *BookService) Update(id uint, input BookInput) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}

	input, err = s.validateInput(input)
	if err != nil {
		return nil, err
	}

	book.Title = input.Title
	book.Author = input.Author
	book.Publisher = input.Publisher
	book.PublicationYear = input.PublicationYear
	book.CategoryID = input.CategoryID
	book.SupplierID = input.SupplierID
	book.Price = input.Price
	book.Description = input.Description

	if err := s.bookRepo.Update(book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete 删除图书
func (s *BookService) Delete(id uint) error {
	book, err := s.bookRepo.GetByID(id)
	if err != nil {
		return err
	}
	if book == nil {
		return ErrBookNotFound
	}
	return s.bookRepo.Delete(id)
}

// GetByID 获取图书详情
func (s *BookService) GetByID(id uint) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// List 获取图书列表
func (s *BookService) List(filter repository.BookListFilter) ([]models.Book, int64, error) {
	return s.bookRepo.List(filter)
}
