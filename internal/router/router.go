package router

import (
	"fmt"
	"strings"

	"github.com/police23/IS402-CloudComputing-sub001/internal/cache"
	"github.com/police23/IS402-CloudComputing-sub001/internal/config"
	adminhandlers "github.com/police23/IS402-CloudComputing-sub001/internal/http/handlers/admin"
	"github.com/police23/IS402-CloudComputing-sub001/internal/logger"
	"github.com/police23/IS402-CloudComputing-sub001/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bs"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				// 当前账号
				authorized.GET("/me", adminHandler.GetMe)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 图书管理
				authorized.GET("/books", adminHandler.GetBooks)
				authorized.GET("/books/:id", adminHandler.GetBook)
				authorized.POST("/books", adminHandler.CreateBook)
				authorized.PUT("/books/:id", adminHandler.UpdateBook)
				authorized.DELETE("/books/:id", adminHandler.DeleteBook)

				// 分类管理
				authorized.GET("/categories", adminHandler.GetCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				// 供应商管理
				authorized.GET("/suppliers", adminHandler.GetSuppliers)
				authorized.POST("/suppliers", adminHandler.CreateSupplier)
				authorized.PUT("/suppliers/:id", adminHandler.UpdateSupplier)
				authorized.DELETE("/suppliers/:id", adminHandler.DeleteSupplier)

				// 促销管理
				authorized.GET("/promotions", adminHandler.GetPromotions)
				authorized.GET("/promotions/:id", adminHandler.GetPromotion)
				authorized.POST("/promotions", adminHandler.CreatePromotion)
				authorized.PUT("/promotions/:id", adminHandler.UpdatePromotion)
				authorized.DELETE("/promotions/:id", adminHandler.DeletePromotion)
				authorized.POST("/promotions/validate", adminHandler.ValidatePromotion)

				// 进货管理
				authorized.GET("/imports", adminHandler.GetImports)
				authorized.GET("/imports/:id", adminHandler.GetImport)
				authorized.POST("/imports", adminHandler.CreateImport)

				// 销售开票
				authorized.GET("/invoices", adminHandler.GetInvoices)
				authorized.GET("/invoices/:id", adminHandler.GetInvoice)
				authorized.POST("/invoices", adminHandler.CreateInvoice)

				// 营收统计
				authorized.GET("/revenue/yearly", adminHandler.GetYearlyRevenue)
				authorized.GET("/revenue/daily", adminHandler.GetDailyRevenue)
				authorized.GET("/revenue/top-sellers", adminHandler.GetTopSellers)

				// 经营规则
				authorized.GET("/rules", adminHandler.GetRules)
				authorized.PUT("/rules", adminHandler.UpdateRules)

				// 账号管理
				authorized.GET("/admins", adminHandler.GetAdmins)
				authorized.POST("/admins", adminHandler.CreateAdmin)
				authorized.PUT("/admins/:id", adminHandler.UpdateAdmin)
				authorized.POST("/admins/:id/disable", adminHandler.DisableAdmin)
				authorized.DELETE("/admins/:id", adminHandler.DeleteAdmin)
			}
		}
	}

	return r
}
