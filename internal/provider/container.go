package provider

import (
	"github.com/police23/IS402-CloudComputing-sub001/internal/authz"
	"github.com/police23/IS402-CloudComputing-sub001/internal/cache"
	"github.com/police23/IS402-CloudComputing-sub001/internal/config"
	"github.com/police23/IS402-CloudComputing-sub001/internal/logger"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/queue"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"
	"github.com/police23/IS402-CloudComputing-sub001/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo     repository.AdminRepository
	BookRepo      repository.BookRepository
	CategoryRepo  repository.CategoryRepository
	SupplierRepo  repository.SupplierRepository
	PromotionRepo repository.PromotionRepository
	ImportRepo    repository.ImportRepository
	InvoiceRepo   repository.InvoiceRepository
	SettingRepo   repository.SettingRepository
	RevenueRepo   repository.RevenueRepository

	// Services
	AuthzService          *authz.Service
	AuthService           *service.AuthService
	AdminUserService      *service.AdminUserService
	BookService           *service.BookService
	CategoryService       *service.CategoryService
	SupplierService       *service.SupplierService
	RulesService          *service.RulesService
	PromotionService      *service.PromotionService
	PromotionAdminService *service.PromotionAdminService
	ImportService         *service.ImportService
	InvoiceService        *service.InvoiceService
	RevenueService        *service.RevenueService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.BookRepo = repository.NewBookRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.SupplierRepo = repository.NewSupplierRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.ImportRepo = repository.NewImportRepository(db)
	c.InvoiceRepo = repository.NewInvoiceRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.RevenueRepo = repository.NewRevenueRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.AdminUserService = service.NewAdminUserService(c.AdminRepo, c.AuthService)
	c.BookService = service.NewBookService(c.BookRepo, c.CategoryRepo, c.SupplierRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.SupplierService = service.NewSupplierService(c.SupplierRepo)
	c.RulesService = service.NewRulesService(c.SettingRepo)
	c.PromotionService = service.NewPromotionService(c.PromotionRepo)
	c.PromotionAdminService = service.NewPromotionAdminService(c.PromotionRepo, c.RulesService)
	c.ImportService = service.NewImportService(c.ImportRepo, c.BookRepo, c.SupplierRepo, c.RulesService)
	c.InvoiceService = service.NewInvoiceService(c.InvoiceRepo, c.BookRepo, c.PromotionRepo, c.PromotionService, c.RulesService, c.QueueClient)
	c.RevenueService = service.NewRevenueService(c.RevenueRepo, c.Config.Revenue.CacheTTLSeconds)

	if err := c.syncAdminRoles(); err != nil {
		logger.Warnw("provider_sync_admin_roles_failed", "error", err)
	}
}

// syncAdminRoles 把账号表中的角色同步到授权引擎
func (c *Container) syncAdminRoles() error {
	admins, _, err := c.AdminRepo.List(repository.AdminListFilter{})
	if err != nil {
		return err
	}
	for _, admin := range admins {
		if err := c.AuthzService.SetAdminRoles(admin.ID, []string{admin.Role}); err != nil {
			return err
		}
	}
	return nil
}
