package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求（学生 / 教师 / 管理员共用）
type LoginRequest struct {
	Username   string `json:"username"   binding:"required,max=100"`
	Password   string `json:"password"   binding:"required,max=100"`
	RememberMe bool   `json:"rememberMe"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    int64       `json:"expiresIn"`
	Account      interface{} `json:"account"`
}

// ForgotPasswordRequest 找回密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Email       string `json:"email"       binding:"required,email"`
	ResetCode   string `json:"resetCode"   binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=100"`
}

// ChangePasswordRequest 修改密码请求（已登录）
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required,max=100"`
	NewPassword     string `json:"newPassword"     binding:"required,min=6,max=100"`
}
