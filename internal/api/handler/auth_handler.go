package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Kyliee2004/sems-backend/internal/dto"
	"github.com/Kyliee2004/sems-backend/internal/service"
	"github.com/Kyliee2004/sems-backend/pkg/jwt"
	"github.com/Kyliee2004/sems-backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
// 登录/找回密码按角色分路由注册，处理逻辑共用
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 登录
// POST /students/login | /teachers/login | /admins/login
func (h *AuthHandler) Login(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}

		result, err := h.authSvc.Login(c.Request.Context(), role, &req)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				response.Unauthorized(c, 12001, "用户名或密码错误")
				return
			}
			response.InternalError(c)
			return
		}
		response.OK(c, result)
	}
}

// Logout 注销当前 token
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ForgotPassword 找回密码：发送重置码
// POST /students/forgot-password | /teachers/forgot-password | /admin/forgot-password
func (h *AuthHandler) ForgotPassword(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}

		if err := h.authSvc.ForgotPassword(c.Request.Context(), role, req.Email); err != nil {
			if errors.Is(err, service.ErrAccountNotFound) {
				response.NotFound(c, 12002, "账户不存在")
				return
			}
			response.InternalError(c)
			return
		}
		response.OK(c, gin.H{"message": "重置码已发送"})
	}
}

// ResetPassword 重置密码
// POST /students/reset-password | /teachers/reset-password | /admin/reset-password
func (h *AuthHandler) ResetPassword(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}

		if err := h.authSvc.ResetPassword(c.Request.Context(), role, &req); err != nil {
			h.handleAuthError(c, err)
			return
		}
		response.OK(c, gin.H{"message": "密码已重置"})
	}
}

// ChangePassword 修改密码（已登录）
// PUT /admin/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	accountID, ok := MustGetAccountID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), role, accountID, &req); err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "密码已修改"})
}

// handleAuthError 统一处理认证模块业务错误
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		response.NotFound(c, 12002, "账户不存在")
	case errors.Is(err, service.ErrInvalidResetCode):
		response.BadRequest(c, 12003, "重置码无效")
	case errors.Is(err, service.ErrResetCodeExpired):
		response.BadRequest(c, 12004, "重置码已过期")
	case errors.Is(err, service.ErrWrongPassword):
		response.BadRequest(c, 12005, "当前密码错误")
	default:
		response.InternalError(c)
	}
}
