package authz

import (
	"fmt"

	"github.com/police23/IS402-CloudComputing-sub001/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵。
// 店长拥有全部后台权限；店员只负责日常销售与进货，
// 经营规则、人员管理与促销配置保留给店长。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleStaff,
			Policies: []Policy{
				{Object: "/admin/books", Action: "GET"},
				{Object: "/admin/books/:id", Action: "GET"},
				{Object: "/admin/categories", Action: "GET"},
				{Object: "/admin/suppliers", Action: "GET"},
				{Object: "/admin/promotions/validate", Action: "POST"},
				{Object: "/admin/invoices", Action: "*"},
				{Object: "/admin/invoices/:id", Action: "GET"},
				{Object: "/admin/imports", Action: "*"},
				{Object: "/admin/imports/:id", Action: "GET"},
				{Object: "/admin/rules", Action: "GET"},
			},
		},
		{
			Role:     constants.RoleManager,
			Inherits: []string{constants.RoleStaff},
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor); err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
