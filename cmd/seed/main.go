package main

import (
	"github.com/police23/IS402-CloudComputing-sub001/internal/config"
	"github.com/police23/IS402-CloudComputing-sub001/internal/constants"
	"github.com/police23/IS402-CloudComputing-sub001/internal/logger"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "Văn học", Description: "Tiểu thuyết, truyện ngắn, thơ"},
		{Name: "Kinh tế", Description: "Quản trị, tài chính, khởi nghiệp"},
		{Name: "Thiếu nhi", Description: "Sách cho trẻ em"},
		{Name: "Kỹ năng sống", Description: "Phát triển bản thân"},
	}
	for _, category := range categories {
		var existing models.Category
		if err := models.DB.Where("name = ?", category.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&category).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", category.Name, err)
			} else {
				stdLog.Printf("Created category: %s", category.Name)
			}
		} else {
			stdLog.Printf("Category already exists: %s", category.Name)
		}
	}

	// 添加供应商
	suppliers := []models.Supplier{
		{Name: "NXB Trẻ", Phone: "02839316289", Email: "lienhe@nxbtre.com.vn", Address: "161B Lý Chính Thắng, Q.3, TP.HCM"},
		{Name: "NXB Kim Đồng", Phone: "02439434730", Email: "info@nxbkimdong.com.vn", Address: "55 Quang Trung, Hai Bà Trưng, Hà Nội"},
		{Name: "Công ty Nhã Nam", Phone: "02435146875", Email: "info@nhanam.vn", Address: "59 Đỗ Quang, Cầu Giấy, Hà Nội"},
	}
	for _, supplier := range suppliers {
		var existing models.Supplier
		if err := models.DB.Where("name = ?", supplier.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&supplier).Error; err != nil {
				stdLog.Printf("Failed to create supplier %s: %v", supplier.Name, err)
			} else {
				stdLog.Printf("Created supplier: %s", supplier.Name)
			}
		} else {
			stdLog.Printf("Supplier already exists: %s", supplier.Name)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	models.DB.Find(&categoryList)
	for _, category := range categoryList {
		categoryIDs[category.Name] = category.ID
	}
	supplierIDs := map[string]uint{}
	var supplierList []models.Supplier
	models.DB.Find(&supplierList)
	for _, supplier := range supplierList {
		supplierIDs[supplier.Name] = supplier.ID
	}

	// 添加图书
	books := []models.Book{
		{
			Title:           "Số đỏ",
			Author:          "Vũ Trọng Phụng",
			Publisher:       "NXB Trẻ",
			PublicationYear: 2019,
			CategoryID:      categoryIDs["Văn học"],
			SupplierID:      supplierIDs["NXB Trẻ"],
			Price:           models.NewMoneyFromInt(86000),
			Description:     "Tiểu thuyết trào phúng kinh điển",
		},
		{
			Title:           "Dế Mèn phiêu lưu ký",
			Author:          "Tô Hoài",
			Publisher:       "NXB Kim Đồng",
			PublicationYear: 2020,
			CategoryID:      categoryIDs["Thiếu nhi"],
			SupplierID:      supplierIDs["NXB Kim Đồng"],
			Price:           models.NewMoneyFromInt(65000),
			Description:     "Tác phẩm thiếu nhi nổi tiếng",
		},
		{
			Title:           "Nhà giả kim",
			Author:          "Paulo Coelho",
			Publisher:       "Nhã Nam",
			PublicationYear: 2021,
			CategoryID:      categoryIDs["Kỹ năng sống"],
			SupplierID:      supplierIDs["Công ty Nhã Nam"],
			Price:           models.NewMoneyFromInt(79000),
			Description:     "Hành trình theo đuổi vận mệnh",
		},
		{
			Title:           "Quốc gia khởi nghiệp",
			Author:          "Dan Senor, Saul Singer",
			Publisher:       "NXB Trẻ",
			PublicationYear: 2018,
			CategoryID:      categoryIDs["Kinh tế"],
			SupplierID:      supplierIDs["NXB Trẻ"],
			Price:           models.NewMoneyFromInt(125000),
			Description:     "Câu chuyện kinh tế Israel",
		},
	}
	for _, book := range books {
		var existing models.Book
		if err := models.DB.Where("title = ?", book.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&book).Error; err != nil {
				stdLog.Printf("Failed to create book %s: %v", book.Title, err)
			} else {
				stdLog.Printf("Created book: %s", book.Title)
			}
		} else {
			stdLog.Printf("Book already exists: %s", book.Title)
		}
	}

	// 初始化经营规则
	var existingSetting models.Setting
	if err := models.DB.Where("key = ?", constants.SettingKeyBusinessRules).First(&existingSetting).Error; err != nil {
		setting := models.Setting{
			Key: constants.SettingKeyBusinessRules,
			ValueJSON: models.JSON(map[string]interface{}{
				"min_import_quantity":     30,
				"min_stock_before_import": 50,
				"min_stock_after_sale":    5,
				"max_promotion_duration":  30,
			}),
		}
		if err := models.DB.Create(&setting).Error; err != nil {
			stdLog.Printf("Failed to seed business rules: %v", err)
		} else {
			stdLog.Printf("Seeded business rules")
		}
	} else {
		stdLog.Printf("Business rules already configured")
	}

	stdLog.Printf("Seed completed")
}
