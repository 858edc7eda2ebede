package constants

// 促销折扣类型常量
const (
	PromotionTypePercent = "percent"
	PromotionTypeFixed   = "fixed"
)

// 后台角色常量
const (
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// 系统设置键常量
const (
	SettingKeyBusinessRules = "business_rules"
)

// 异步任务类型常量
const (
	TaskBookLowStockScan     = "book:low_stock_scan"
	TaskPromotionExpirySweep = "promotion:expiry_sweep"
)

// 异步队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 营收统计常量
const (
	RevenueTopSellersDefaultLimit = 10
	RevenueTopSellersMaxLimit     = 100
)

// 缓存键前缀常量
const (
	CacheKeyRevenueYearly  = "revenue:yearly"
	CacheKeyRevenueDaily   = "revenue:daily"
	CacheKeyRevenueTop     = "revenue:top"
	CacheKeyAdminAuthState = "admin:auth_state"
	CacheKeyLowStockBooks  = "book:low_stock"
)
