package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/police23/IS402-CloudComputing-sub001/internal/config"
	"github.com/police23/IS402-CloudComputing-sub001/internal/constants"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:   "unit-test-secret-key-0123456789abcdef",
			ExpireHours: 24,
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		},
	}
}

func setupAuthServiceTest(t *testing.T) (*AuthService, repository.AdminRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	repo := repository.NewAdminRepository(db)
	return NewAuthService(authTestConfig(), repo), repo
}

func seedAdmin(t *testing.T, svc *AuthService, repo repository.AdminRepository, username, password string, active bool) *models.Admin {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{
		Username:     username,
		PasswordHash: hash,
		FullName:     "Trần Thị B",
		Role:         constants.RoleStaff,
		IsActive:     active,
	}
	if err := repo.Create(admin); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return admin
}

func TestAuthServiceLogin(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	seedAdmin(t, svc, repo, "nhanvien1", "MatKhau123", true)

	admin, token, expiresAt, err := svc.Login("nhanvien1", "MatKhau123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || expiresAt.Before(time.Now()) {
		t.Fatalf("unexpected token result: token=%q expires=%v", token, expiresAt)
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("expected last login to be recorded")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Username != "nhanvien1" || claims.Role != constants.RoleStaff {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthServiceLoginFailures(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	seedAdmin(t, svc, repo, "nhanvien2", "MatKhau123", true)
	seedAdmin(t, svc, repo, "bikhoa", "MatKhau123", false)

	if _, _, _, err := svc.Login("nhanvien2", "saimatkhau"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("khongton", "MatKhau123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, _, _, err := svc.Login("bikhoa", "MatKhau123"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestAuthServiceChangePassword(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	admin := seedAdmin(t, svc, repo, "doimatkhau", "MatKhauCu1", true)

	if err := svc.ChangePassword(admin.ID, "saicu", "MatKhauMoi2"); !errors.Is(err, ErrOldPasswordWrong) {
		t.Fatalf("expected ErrOldPasswordWrong, got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "MatKhauCu1", "yeu"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected ErrPasswordTooWeak, got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "MatKhauCu1", "MatKhauMoi2"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	// 改密后旧 Token 版本作废
	updated, err := repo.GetByID(admin.ID)
	if err != nil {
		t.Fatalf("get admin failed: %v", err)
	}
	if updated.TokenVersion != admin.TokenVersion+1 {
		t.Fatalf("expected token version bump, got %d", updated.TokenVersion)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatalf("expected token invalid-before to be set")
	}
	if _, _, _, err := svc.Login("doimatkhau", "MatKhauMoi2"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestAuthServiceParseJWTRejectsTampering(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	admin := seedAdmin(t, svc, repo, "kythuat", "MatKhau123", true)

	token, _, err := svc.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}
	if _, err := svc.ParseJWT(token + "x"); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}

	other := NewAuthService(&config.Config{JWT: config.JWTConfig{SecretKey: "another-secret-key-for-verification", ExpireHours: 1}}, repo)
	if _, err := other.ParseJWT(token); err == nil {
		t.Fatalf("expected token signed with different key to be rejected")
	}
}
