package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/police23/IS402-CloudComputing-sub001/internal/constants"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAdminUserServiceTest(t *testing.T) (*AdminUserService, repository.AdminRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:admin_user_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	repo := repository.NewAdminRepository(db)
	return NewAdminUserService(repo, NewAuthService(authTestConfig(), repo)), repo
}

func TestAdminUserServiceCreate(t *testing.T) {
	svc, _ := setupAdminUserServiceTest(t)

	admin, err := svc.Create(CreateAdminInput{
		Username: "quanly1",
		Password: "MatKhau123",
		FullName: "Lê Văn C",
		Role:     "Manager",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if admin.Role != constants.RoleManager {
		t.Fatalf("expected role normalized to manager, got %s", admin.Role)
	}
	if !admin.IsActive {
		t.Fatalf("expected new account to be active")
	}

	if _, err := svc.Create(CreateAdminInput{
		Username: "quanly1", Password: "MatKhau123", Role: constants.RoleStaff,
	}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := svc.Create(CreateAdminInput{
		Username: "saivaitro", Password: "MatKhau123", Role: "admin",
	}); !errors.Is(err, ErrRoleInvalid) {
		t.Fatalf("expected ErrRoleInvalid, got %v", err)
	}
	if _, err := svc.Create(CreateAdminInput{
		Username: "matkhauyeu", Password: "123", Role: constants.RoleStaff,
	}); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected ErrPasswordTooWeak, got %v", err)
	}
}

func TestAdminUserServiceUpdate(t *testing.T) {
	svc, _ := setupAdminUserServiceTest(t)
	admin, err := svc.Create(CreateAdminInput{
		Username: "capnhat", Password: "MatKhau123", FullName: "Tên cũ", Role: constants.RoleStaff,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inactive := false
	updated, err := svc.Update(admin.ID, UpdateAdminInput{
		FullName: "Tên mới",
		Role:     constants.RoleManager,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.FullName != "Tên mới" || updated.Role != constants.RoleManager || updated.IsActive {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := svc.Update(9999, UpdateAdminInput{Role: constants.RoleStaff}); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}

func TestAdminUserServiceDisable(t *testing.T) {
	svc, repo := setupAdminUserServiceTest(t)
	admin, err := svc.Create(CreateAdminInput{
		Username: "sekhoa", Password: "MatKhau123", Role: constants.RoleStaff,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Disable(admin.ID); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	got, err := repo.GetByID(admin.ID)
	if err != nil {
		t.Fatalf("get admin failed: %v", err)
	}
	if got.IsActive {
		t.Fatalf("expected account disabled")
	}
	// 停用须同步吊销已签发 Token
	if got.TokenVersion != admin.TokenVersion+1 {
		t.Fatalf("expected token version bump, got %d", got.TokenVersion)
	}
}

func TestAdminUserServiceDelete(t *testing.T) {
	svc, _ := setupAdminUserServiceTest(t)
	admin, err := svc.Create(CreateAdminInput{
		Username: "sexoa", Password: "MatKhau123", Role: constants.RoleStaff,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(admin.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetByID(admin.ID); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound after delete, got %v", err)
	}
	if err := svc.Delete(admin.ID); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound for double delete, got %v", err)
	}
}

func TestAdminUserServiceList(t *testing.T) {
	svc, _ := setupAdminUserServiceTest(t)
	for i := 0; i < 3; i++ {
		if _, err := svc.Create(CreateAdminInput{
			Username: fmt.Sprintf("nhanvien%d", i),
			Password: "MatKhau123",
			Role:     constants.RoleStaff,
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if _, err := svc.Create(CreateAdminInput{
		Username: "quanly", Password: "MatKhau123", Role: constants.RoleManager,
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	admins, total, err := svc.List(repository.AdminListFilter{Role: constants.RoleStaff})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(admins) != 3 {
		t.Fatalf("expected 3 staff accounts, got total=%d len=%d", total, len(admins))
	}
}
