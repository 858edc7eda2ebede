package admin

import (
	"strconv"
	"strings"

	"github.com/police23/IS402-CloudComputing-sub001/internal/http/response"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"
	"github.com/police23/IS402-CloudComputing-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateAdminRequest 创建账号请求
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Role     string `json:"role" binding:"required"`
}

// UpdateAdminRequest 更新账号请求
type UpdateAdminRequest struct {
	FullName string `json:"full_name"`
	Role     string `json:"role" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// GetAdmins 获取账号列表
func (h *Handler) GetAdmins(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.AdminListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("search"),
		Role:     c.Query("role"),
	}
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			filter.IsActive = &active
		}
	}

	admins, total, err := h.AdminUserService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, admins, response.NewPagination(page, pageSize, total))
}

// CreateAdmin 创建账号
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	admin, err := h.AdminUserService.Create(service.CreateAdminInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := h.AuthzService.SetAdminRoles(admin.ID, []string{admin.Role}); err != nil {
		requestLog(c).Warnw("admin_role_sync_failed", "admin_id", admin.ID, "error", err)
	}
	response.Success(c, admin)
}

// UpdateAdmin 更新账号资料与角色
func (h *Handler) UpdateAdmin(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var req UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	admin, err := h.AdminUserService.Update(uint(id), service.UpdateAdminInput{
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := h.AuthzService.SetAdminRoles(admin.ID, []string{admin.Role}); err != nil {
		requestLog(c).Warnw("admin_role_sync_failed", "admin_id", admin.ID, "error", err)
	}
	response.Success(c, admin)
}

// DisableAdmin 停用账号并吊销全部 Token
func (h *Handler) DisableAdmin(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AdminUserService.Disable(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteAdmin 删除账号
func (h *Handler) DeleteAdmin(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AdminUserService.Delete(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
