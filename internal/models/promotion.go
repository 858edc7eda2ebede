package models

import (
	"time"

	"gorm.io/gorm"
)

// Promotion 促销活动（基于促销码的折扣）
type Promotion struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                         // 主键
	Name          string         `gorm:"not null" json:"name"`                                         // 活动名称
	Code          string         `gorm:"uniqueIndex;not null" json:"code"`                             // 促销码（唯一）
	Type          string         `gorm:"not null" json:"type"`                                         // 折扣类型（percent/fixed）
	DiscountValue Money          `gorm:"type:decimal(20,2);not null" json:"discount_value"`            // 折扣数值（百分比或固定金额）
	MinPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_price"`       // 订单使用门槛
	Quantity      int            `gorm:"not null;default:0" json:"quantity"`                           // 可用总量（0 表示不限量）
	UsedQuantity  int            `gorm:"not null;default:0" json:"used_quantity"`                      // 已核销数量
	BookIDs       UintArray      `gorm:"type:text" json:"book_ids"`                                    // 适用图书ID集合（空表示全场）
	StartDate     Date           `gorm:"index;not null" json:"start_date"`                             // 生效日期（含当天）
	EndDate       Date           `gorm:"index;not null" json:"end_date"`                               // 失效日期（含当天）
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}

// IsStoreWide 是否全场通用（未限定图书范围）
func (p *Promotion) IsStoreWide() bool {
	return len(p.BookIDs) == 0
}

// AppliesTo 判断促销是否覆盖指定图书
func (p *Promotion) AppliesTo(bookID uint) bool {
	if p.IsStoreWide() {
		return true
	}
	return p.BookIDs.Contains(bookID)
}

// ActiveOn 判断指定日期是否落在促销窗口内（闭区间）
func (p *Promotion) ActiveOn(day Date) bool {
	if day.Before(p.StartDate) {
		return false
	}
	return !day.After(p.EndDate)
}

// Exhausted 判断可用量是否已耗尽（quantity 为 0 表示不限量）
func (p *Promotion) Exhausted() bool {
	return p.Quantity > 0 && p.UsedQuantity >= p.Quantity
}
