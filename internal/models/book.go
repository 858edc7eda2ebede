package models

import (
	"time"

	"gorm.io/gorm"
)

// Book 图书表
type Book struct {
	ID              uint           `gorm:"primarykey" json:"id"`                              // 主键
	Title           string         `gorm:"not null;index" json:"title"`                       // 书名
	Author          string         `gorm:"not null" json:"author"`                            // 作者
	Publisher       string         `json:"publisher"`                                         // 出版社
	PublicationYear int            `gorm:"not null;default:0" json:"publication_year"`        // 出版年份
	CategoryID      uint           `gorm:"index;not null" json:"category_id"`                 // 分类
	SupplierID      uint           `gorm:"index" json:"supplier_id"`                          // 默认供应商
	Price           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 售价
	Stock           int            `gorm:"not null;default:0" json:"stock"`                   // 当前库存
	Description     string         `gorm:"type:text" json:"description"`                      // 简介
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                        // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间
}

// TableName 指定表名
func (Book) TableName() string {
	return "books"
}
