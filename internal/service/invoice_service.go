package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/police23/IS402-CloudComputing-sub001/internal/logger"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/queue"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceService 销售开票服务。
// 扣减库存、核销促销码与写入发票在同一事务内完成，
// 库存守护（售后不得低于下限）由仓库层的条件更新保证。
type InvoiceService struct {
	invoiceRepo   repository.InvoiceRepository
	bookRepo      repository.BookRepository
	promotionRepo repository.PromotionRepository
	promotionSvc  *PromotionService
	rules         *RulesService
	queueClient   *queue.Client
}

// NewInvoiceService 创建开票服务
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	bookRepo repository.BookRepository,
	promotionRepo repository.PromotionRepository,
	promotionSvc *PromotionService,
	rules *RulesService,
	queueClient *queue.Client,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:   invoiceRepo,
		bookRepo:      bookRepo,
		promotionRepo: promotionRepo,
		promotionSvc:  promotionSvc,
		rules:         rules,
		queueClient:   queueClient,
	}
}

// InvoiceItemInput 销售明细输入
type InvoiceItemInput struct {
	BookID   uint
	Quantity int
}

// CreateInvoiceInput 创建发票输入
type CreateInvoiceInput struct {
	CustomerName  string
	CustomerPhone string
	AdminID       uint
	PromotionCode string
	Items         []InvoiceItemInput
}

// Create 创建销售发票
func (s *InvoiceService) Create(input CreateInvoiceInput) (*models.Invoice, error) {
	if len(input.Items) == 0 {
		return nil, ErrInvoiceEmpty
	}

	rules, err := s.rules.Get()
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	bookIDs := make([]uint, 0, len(input.Items))
	items := make([]models.InvoiceItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvoiceQuantityInvalid
		}

		book, err := s.bookRepo.GetByID(item.BookID)
		if err != nil {
			return nil, err
		}
		if book == nil {
			return nil, ErrBookNotFound
		}

		lineTotal := book.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		bookIDs = append(bookIDs, item.BookID)
		items = append(items, models.InvoiceItem{
			BookID:     item.BookID,
			Quantity:   item.Quantity,
			UnitPrice:  book.Price,
			TotalPrice: models.NewMoneyFromDecimal(lineTotal),
		})
	}

	subtotalMoney := models.NewMoneyFromDecimal(subtotal)
	discount := models.NewMoneyFromInt(0)
	var promotionID *uint
	if strings.TrimSpace(input.PromotionCode) != "" {
		quote, err := s.promotionSvc.ValidateAndPriceForBooks(input.PromotionCode, subtotalMoney, bookIDs)
		if err != nil {
			return nil, err
		}
		discount = quote.DiscountAmount
		id := quote.Promotion.ID
		promotionID = &id
	}

	invoice := &models.Invoice{
		InvoiceNo:      generateInvoiceNo(),
		CustomerName:   input.CustomerName,
		CustomerPhone:  input.CustomerPhone,
		AdminID:        input.AdminID,
		PromotionID:    promotionID,
		Subtotal:       subtotalMoney,
		DiscountAmount: discount,
		TotalAmount:    models.NewMoneyFromDecimal(subtotal.Sub(discount.Decimal)),
		Items:          items,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		bookRepo := s.bookRepo.WithTx(tx)
		for _, item := range invoice.Items {
			ok, err := bookRepo.DecrementStockGuarded(item.BookID, item.Quantity, rules.MinStockAfterSale)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInvoiceStockInsufficient
			}
		}
		if promotionID != nil {
			if err := commitRedemption(s.promotionRepo.WithTx(tx), *promotionID); err != nil {
				return err
			}
		}
		return s.invoiceRepo.WithTx(tx).Create(invoice)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("invoice_created",
		"invoice_id", invoice.ID,
		"invoice_no", invoice.InvoiceNo,
		"admin_id", invoice.AdminID,
		"items", len(invoice.Items),
		"total_amount", invoice.TotalAmount.String(),
	)

	if s.queueClient != nil {
		if err := s.queueClient.EnqueueBookLowStockScan(queue.BookLowStockScanPayload{
			InvoiceID: invoice.ID,
			Reason:    "invoice_created",
		}); err != nil {
			logger.Warnw("enqueue_low_stock_scan_failed", "invoice_id", invoice.ID, "error", err)
		}
	}

	return invoice, nil
}

// GetByID 获取发票详情
func (s *InvoiceService) GetByID(id uint) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

// List 获取发票列表
func (s *InvoiceService) List(filter repository.InvoiceListFilter) ([]models.Invoice, int64, error) {
	return s.invoiceRepo.List(filter)
}

func generateInvoiceNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("HD%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
