package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleVI = "vi"
	LocaleEN = "en"
)

// DefaultLocale 默认语言
const DefaultLocale = LocaleVI

// catalog 文案表（按语言 -> 键）
var catalog = map[string]map[string]string{
	LocaleVI: {
		"error.bad_request":            "tham số không hợp lệ",
		"error.unauthorized":           "chưa đăng nhập hoặc phiên đã hết hạn",
		"error.forbidden":              "không có quyền thực hiện thao tác này",
		"error.not_found":              "không tìm thấy dữ liệu",
		"error.internal":               "lỗi hệ thống, vui lòng thử lại sau",
		"error.auth_header_missing":    "thiếu thông tin xác thực",
		"error.auth_header_invalid":    "thông tin xác thực không hợp lệ",
		"error.jwt_secret_missing":     "hệ thống chưa cấu hình khóa xác thực",
		"error.token_invalid":          "phiên đăng nhập không hợp lệ",
		"error.token_revoked":          "phiên đăng nhập đã bị thu hồi",
		"error.account_disabled":       "tài khoản đã bị vô hiệu hóa",
		"error.rate_limited":           "thao tác quá thường xuyên, thử lại sau %d giây",
		"error.login_too_many":         "đăng nhập sai quá nhiều lần, thử lại sau %d giây",
		"error.rate_limit_unavailable": "hệ thống đang bận, vui lòng thử lại sau",
	},
	LocaleEN: {
		"error.bad_request":            "invalid request parameters",
		"error.unauthorized":           "not signed in or session expired",
		"error.forbidden":              "permission denied",
		"error.not_found":              "record not found",
		"error.internal":               "internal error, please retry later",
		"error.auth_header_missing":    "missing authorization header",
		"error.auth_header_invalid":    "invalid authorization header",
		"error.jwt_secret_missing":     "auth secret not configured",
		"error.token_invalid":          "invalid session token",
		"error.token_revoked":          "session token revoked",
		"error.account_disabled":       "account disabled",
		"error.rate_limited":           "too many requests, retry after %d seconds",
		"error.login_too_many":         "too many failed logins, retry after %d seconds",
		"error.rate_limit_unavailable": "service busy, please retry later",
	},
}

// ResolveLocale 从请求解析语言（query 优先，其次 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := normalize(c.Query("lang")); lang != "" {
		return lang
	}
	if lang := normalize(c.GetHeader("Accept-Language")); lang != "" {
		return lang
	}
	return DefaultLocale
}

func normalize(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return ""
	}
	// Accept-Language 形如 "en-US,en;q=0.9"，取首段语言码
	if idx := strings.IndexAny(raw, ",;"); idx >= 0 {
		raw = raw[:idx]
	}
	if idx := strings.Index(raw, "-"); idx >= 0 {
		raw = raw[:idx]
	}
	switch raw {
	case LocaleVI, LocaleEN:
		return raw
	}
	return ""
}

// T 查找文案，未命中时回退默认语言，最终回退键本身
func T(locale, key string) string {
	if messages, ok := catalog[locale]; ok {
		if message, ok := messages[key]; ok {
			return message
		}
	}
	if locale != DefaultLocale {
		if message, ok := catalog[DefaultLocale][key]; ok {
			return message
		}
	}
	return key
}

// Sprintf 带参数的文案格式化
func Sprintf(locale, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
