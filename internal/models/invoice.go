package models

import (
	"time"

	"gorm.io/gorm"
)

// Invoice 销售发票
type Invoice struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	InvoiceNo      string         `gorm:"uniqueIndex;not null" json:"invoice_no"`                       // 发票号
	CustomerName   string         `json:"customer_name"`                                                // 客户姓名
	CustomerPhone  string         `gorm:"index" json:"customer_phone"`                                  // 客户电话
	AdminID        uint           `gorm:"index;not null" json:"admin_id"`                               // 开票人
	PromotionID    *uint          `gorm:"index" json:"promotion_id"`                                    // 使用的促销（可空）
	Subtotal       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`        // 折前小计
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 折扣金额
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // 实付金额
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 开票时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"` // 明细
}

// TableName 指定表名
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem 销售发票明细
type InvoiceItem struct {
	ID         uint  `gorm:"primarykey" json:"id"`                                      // 主键
	InvoiceID  uint  `gorm:"index;not null" json:"invoice_id"`                          // 所属发票
	BookID     uint  `gorm:"index;not null" json:"book_id"`                             // 图书
	Quantity   int   `gorm:"not null" json:"quantity"`                                  // 购买数量
	UnitPrice  Money `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`   // 成交单价
	TotalPrice Money `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`  // 行合计
}

// TableName 指定表名
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
