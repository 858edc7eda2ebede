package models

import (
	"time"

	"gorm.io/gorm"
)

// Supplier 供应商表
type Supplier struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	Name      string         `gorm:"uniqueIndex;not null" json:"name"` // 供应商名称
	Phone     string         `json:"phone"`                            // 联系电话
	Email     string         `json:"email"`                            // 联系邮箱
	Address   string         `gorm:"type:text" json:"address"`         // 地址
	CreatedAt time.Time      `gorm:"index" json:"created_at"`          // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                       // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间
}

// TableName 指定表名
func (Supplier) TableName() string {
	return "suppliers"
}
