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

func setupPromotionAdminServiceTest(t *testing.T) *PromotionAdminService {
	t.Helper()
	dsn := fmt.Sprintf("file:promotion_admin_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Promotion{}, &models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	rules := NewRulesService(repository.NewSettingRepository(db))
	return NewPromotionAdminService(repository.NewPromotionRepository(db), rules)
}

func validPromotionInput() PromotionInput {
	start := models.NewDate(2025, time.September, 1)
	return PromotionInput{
		Name:          "Khuyến mãi tháng 9",
		Code:          "THANG9",
		Type:          constants.PromotionTypePercent,
		DiscountValue: models.NewMoneyFromInt(10),
		Quantity:      100,
		StartDate:     start,
		EndDate:       start.AddDays(13),
	}
}

func TestPromotionAdminServiceCreate(t *testing.T) {
	svc := setupPromotionAdminServiceTest(t)
	promotion, err := svc.Create(validPromotionInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if promotion.ID == 0 || promotion.Code != "THANG9" {
		t.Fatalf("unexpected promotion: %+v", promotion)
	}

	// 促销码唯一
	if _, err := svc.Create(validPromotionInput()); !errors.Is(err, ErrPromotionCodeTaken) {
		t.Fatalf("expected ErrPromotionCodeTaken, got %v", err)
	}
}

func TestPromotionAdminServiceDurationCap(t *testing.T) {
	svc := setupPromotionAdminServiceTest(t)

	// 默认上限 30 天：闭区间 31 天必须拒绝
	input := validPromotionInput()
	input.EndDate = input.StartDate.AddDays(30)
	if _, err := svc.Create(input); !errors.Is(err, ErrPromotionDurationExceeded) {
		t.Fatalf("expected ErrPromotionDurationExceeded for 31-day span, got %v", err)
	}

	// 正好 30 天可以通过
	input = validPromotionInput()
	input.Code = "DUNG30"
	input.EndDate = input.StartDate.AddDays(29)
	if _, err := svc.Create(input); err != nil {
		t.Fatalf("30-day span should pass: %v", err)
	}
}

func TestPromotionAdminServiceValidation(t *testing.T) {
	svc := setupPromotionAdminServiceTest(t)

	input := validPromotionInput()
	input.Name = "  "
	if _, err := svc.Create(input); !errors.Is(err, ErrPromotionNameRequired) {
		t.Fatalf("expected ErrPromotionNameRequired, got %v", err)
	}

	input = validPromotionInput()
	input.Type = "giam_gia"
	if _, err := svc.Create(input); !errors.Is(err, ErrPromotionTypeInvalid) {
		t.Fatalf("expected ErrPromotionTypeInvalid, got %v", err)
	}

	input = validPromotionInput()
	input.DiscountValue = models.NewMoneyFromInt(120)
	if _, err := svc.Create(input); !errors.Is(err, ErrPromotionValueInvalid) {
		t.Fatalf("expected ErrPromotionValueInvalid for percent > 100, got %v", err)
	}

	input = validPromotionInput()
	input.EndDate = input.StartDate.AddDays(-1)
	if _, err := svc.Create(input); !errors.Is(err, ErrPromotionDateInvalid) {
		t.Fatalf("expected ErrPromotionDateInvalid, got %v", err)
	}
}

func TestPromotionAdminServiceUpdate(t *testing.T) {
	svc := setupPromotionAdminServiceTest(t)
	promotion, err := svc.Create(validPromotionInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	input := validPromotionInput()
	input.Name = "Tên mới"
	input.Quantity = 50
	updated, err := svc.Update(promotion.ID, input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Tên mới" || updated.Quantity != 50 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := svc.Update(9999, input); !errors.Is(err, ErrPromotionNotFound) {
		t.Fatalf("expected ErrPromotionNotFound, got %v", err)
	}
}

func TestPromotionAdminServiceUpdateQuantityBelowUsed(t *testing.T) {
	dsn := fmt.Sprintf("file:promotion_admin_used_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Promotion{}, &models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	repo := repository.NewPromotionRepository(db)
	svc := NewPromotionAdminService(repo, NewRulesService(repository.NewSettingRepository(db)))

	input := validPromotionInput()
	input.Quantity = 5
	promotion, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		ok, err := repo.IncrementUsedQuantity(promotion.ID, 1)
		if err != nil || !ok {
			t.Fatalf("increment %d failed: ok=%v err=%v", i, ok, err)
		}
	}

	// 上限不能降到已使用数量之下
	input.Quantity = 1
	if _, err := svc.Update(promotion.ID, input); !errors.Is(err, ErrPromotionQuantityTooLow) {
		t.Fatalf("expected ErrPromotionQuantityTooLow, got %v", err)
	}

	// 正好等于已使用数量可以通过
	input.Quantity = 3
	if _, err := svc.Update(promotion.ID, input); err != nil {
		t.Fatalf("update to used quantity should pass: %v", err)
	}

	// 0 表示不限量
	input.Quantity = 0
	updated, err := svc.Update(promotion.ID, input)
	if err != nil {
		t.Fatalf("update to unlimited should pass: %v", err)
	}
	if updated.Quantity != 0 || updated.UsedQuantity != 3 {
		t.Fatalf("unexpected state after update: %+v", updated)
	}
}

func TestPromotionAdminServiceDelete(t *testing.T) {
	svc := setupPromotionAdminServiceTest(t)
	promotion, err := svc.Create(validPromotionInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(promotion.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetByID(promotion.ID); !errors.Is(err, ErrPromotionNotFound) {
		t.Fatalf("expected ErrPromotionNotFound after delete, got %v", err)
	}
}
