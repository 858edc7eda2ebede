package service

import (
	"github.com/police23/IS402-CloudComputing-sub001/internal/logger"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ImportService 进货服务。
// 进货受经营规则约束：单次数量不得低于下限，且只对库存低于阈值的图书补货。
type ImportService struct {
	importRepo   repository.ImportRepository
	bookRepo     repository.BookRepository
	supplierRepo repository.SupplierRepository
	rules        *RulesService
}

// NewImportService 创建进货服务
func NewImportService(
	importRepo repository.ImportRepository,
	bookRepo repository.BookRepository,
	supplierRepo repository.SupplierRepository,
	rules *RulesService,
) *ImportService {
	return &ImportService{
		importRepo:   importRepo,
		bookRepo:     bookRepo,
		supplierRepo: supplierRepo,
		rules:        rules,
	}
}

// ImportItemInput 进货明细输入
type ImportItemInput struct {
	BookID   uint
	Quantity int
	UnitCost models.Money
}

// CreateImportInput 创建进货单输入
type CreateImportInput struct {
	SupplierID uint
	AdminID    uint
	Note       string
	Items      []ImportItemInput
}

// Create 创建进货单并入库
func (s *ImportService) Create(input CreateImportInput) (*models.Import, error) {
	if len(input.Items) == 0 {
		return nil, ErrImportEmpty
	}

	supplier, err := s.supplierRepo.GetByID(input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, ErrSupplierNotFound
	}

	rules, err := s.rules.Get()
	if err != nil {
		return nil, err
	}

	totalCost := decimal.Zero
	items := make([]models.ImportItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity < rules.MinImportQuantity {
			return nil, ErrImportQuantityTooLow
		}
		if item.UnitCost.Decimal.LessThan(decimal.Zero) {
			return nil, ErrImportCostInvalid
		}

		book, err := s.bookRepo.GetByID(item.BookID)
		if err != nil {
			return nil, err
		}
		if book == nil {
			return nil, ErrBookNotFound
		}
		// 仅对库存低于阈值的图书补货
		if rules.MinStockBeforeImport > 0 && book.Stock >= rules.MinStockBeforeImport {
			return nil, ErrImportStockTooHigh
		}

		totalCost = totalCost.Add(item.UnitCost.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
		items = append(items, models.ImportItem{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			UnitCost: item.UnitCost,
		})
	}

	record := &models.Import{
		SupplierID: input.SupplierID,
		AdminID:    input.AdminID,
		TotalCost:  models.NewMoneyFromDecimal(totalCost),
		Note:       input.Note,
		Items:      items,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		importRepo := s.importRepo.WithTx(tx)
		bookRepo := s.bookRepo.WithTx(tx)

		if err := importRepo.Create(record); err != nil {
			return err
		}
		for _, item := range record.Items {
			if err := bookRepo.IncrementStock(item.BookID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("import_created",
		"import_id", record.ID,
		"supplier_id", record.SupplierID,
		"items", len(record.Items),
		"total_cost", record.TotalCost.String(),
	)
	return record, nil
}

// GetByID 获取进货单详情
func (s *ImportService) GetByID(id uint) (*models.Import, error) {
	record, err := s.importRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrImportNotFound
	}
	return record, nil
}

// List 获取进货单列表
func (s *ImportService) List(filter repository.ImportListFilter) ([]models.Import, int64, error) {
	return s.importRepo.List(filter)
}
