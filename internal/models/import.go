package models

import (
	"time"

	"gorm.io/gorm"
)

// Import 进货单
type Import struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                   // 主键
	SupplierID uint           `gorm:"index;not null" json:"supplier_id"`                      // 供应商
	AdminID    uint           `gorm:"index;not null" json:"admin_id"`                         // 经办人
	TotalCost  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_cost"` // 进货总成本
	Note       string         `gorm:"type:text" json:"note"`                                  // 备注
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间

	Items []ImportItem `gorm:"foreignKey:ImportID" json:"items"` // 明细
}

// TableName 指定表名
func (Import) TableName() string {
	return "imports"
}

// ImportItem 进货单明细
type ImportItem struct {
	ID       uint  `gorm:"primarykey" json:"id"`                                  // 主键
	ImportID uint  `gorm:"index;not null" json:"import_id"`                       // 所属进货单
	BookID   uint  `gorm:"index;not null" json:"book_id"`                         // 图书
	Quantity int   `gorm:"not null" json:"quantity"`                              // 进货数量
	UnitCost Money `gorm:"type:decimal(20,2);not null;default:0" json:"unit_cost"` // 单册成本
}

// TableName 指定表名
func (ImportItem) TableName() string {
	return "import_items"
}
