package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// yearExpr 构建取时间列年份的表达式，兼容 sqlite 与 postgres。
func yearExpr(db *gorm.DB, column string) string {
	switch dbDialectName(db) {
	case "postgres", "postgresql":
		return fmt.Sprintf("EXTRACT(YEAR FROM %s)::int", column)
	default:
		return fmt.Sprintf("CAST(strftime('%%Y', %s) AS INTEGER)", column)
	}
}

// monthExpr 构建取时间列月份（1-12）的表达式。
func monthExpr(db *gorm.DB, column string) string {
	switch dbDialectName(db) {
	case "postgres", "postgresql":
		return fmt.Sprintf("EXTRACT(MONTH FROM %s)::int", column)
	default:
		return fmt.Sprintf("CAST(strftime('%%m', %s) AS INTEGER)", column)
	}
}

// dayExpr 构建取时间列“当月第几天”的表达式。
func dayExpr(db *gorm.DB, column string) string {
	switch dbDialectName(db) {
	case "postgres", "postgresql":
		return fmt.Sprintf("EXTRACT(DAY FROM %s)::int", column)
	default:
		return fmt.Sprintf("CAST(strftime('%%d', %s) AS INTEGER)", column)
	}
}

// likeOperator 返回当前方言下的不区分大小写匹配操作符。
func likeOperator(db *gorm.DB) string {
	switch dbDialectName(db) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// keywordCondition 构建多列关键字匹配条件，返回条件串与参数列表。
func keywordCondition(db *gorm.DB, keyword string, columns ...string) (string, []interface{}) {
	operator := likeOperator(db)
	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	like := "%" + keyword + "%"
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", trimmed, operator))
		args = append(args, like)
	}
	return strings.Join(parts, " OR "), args
}
