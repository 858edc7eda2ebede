package service

import (
	"unicode"

	"github.com/police23/IS402-CloudComputing-sub001/internal/config"
)

// validatePassword 按配置策略校验密码强度。
// 任一规则不满足都返回 ErrPasswordTooWeak，避免向外泄露具体规则细节。
func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength <= 0 &&
		!policy.RequireUpper &&
		!policy.RequireLower &&
		!policy.RequireNumber &&
		!policy.RequireSpecial {
		return nil
	}

	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return ErrPasswordTooWeak
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	if policy.RequireUpper && !hasUpper {
		return ErrPasswordTooWeak
	}
	if policy.RequireLower && !hasLower {
		return ErrPasswordTooWeak
	}
	if policy.RequireNumber && !hasNumber {
		return ErrPasswordTooWeak
	}
	if policy.RequireSpecial && !hasSpecial {
		return ErrPasswordTooWeak
	}

	return nil
}
