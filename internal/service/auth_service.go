package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Kyliee2004/sems-backend/config"
	"github.com/Kyliee2004/sems-backend/internal/dto"
	"github.com/Kyliee2004/sems-backend/internal/repository"
	"github.com/Kyliee2004/sems-backend/pkg/jwt"
	"github.com/Kyliee2004/sems-backend/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrAccountNotFound    = errors.New("账户不存在")
	ErrInvalidResetCode   = errors.New("重置码无效")
	ErrResetCodeExpired   = errors.New("重置码已过期")
	ErrWrongPassword      = errors.New("当前密码错误")
)

// 登录角色
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// AuthService 认证业务接口
type AuthService interface {
	// Login 按角色登录，签发 access/refresh token 对
	Login(ctx context.Context, role string, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout 将当前 token 的 jti 加入黑名单，剩余有效期内拒绝复用
	Logout(ctx context.Context, claims *jwt.Claims) error
	// ForgotPassword 生成 6 位重置码并发送邮件
	ForgotPassword(ctx context.Context, role, email string) error
	// ResetPassword 校验重置码并设置新密码
	ResetPassword(ctx context.Context, role string, req *dto.ResetPasswordRequest) error
	// ChangePassword 已登录状态下修改密码
	ChangePassword(ctx context.Context, role, accountID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	repo     *repository.Repository
	jwtMgr   *jwt.Manager
	cache    *redis.Client
	notifier NotificationService
	cfg      *config.Config
	logger   *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, cache *redis.Client, notifier NotificationService, cfg *config.Config, logger *zap.Logger) AuthService {
	return &authService{repo: repo, jwtMgr: jwtMgr, cache: cache, notifier: notifier, cfg: cfg, logger: logger}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, role string, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)

	var (
		accountID    string
		passwordHash string
		account      interface{}
	)

	switch role {
	case RoleStudent:
		student, err := s.repo.Student.GetByUsername(ctx, username)
		if err != nil {
			return nil, s.loginLookupErr(err, username)
		}
		accountID, passwordHash, account = student.ID, student.PasswordHash, student
	case RoleTeacher:
		teacher, err := s.repo.Teacher.GetByUsername(ctx, username)
		if err != nil {
			return nil, s.loginLookupErr(err, username)
		}
		accountID, passwordHash, account = teacher.ID, teacher.PasswordHash, teacher
	case RoleAdmin:
		admin, err := s.repo.Admin.GetByUsername(ctx, username)
		if err != nil {
			return nil, s.loginLookupErr(err, username)
		}
		accountID, passwordHash, account = admin.ID, admin.PasswordHash, admin
	default:
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(accountID, role)
	if err != nil {
		s.logger.Error("签发 access token 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(accountID, role, req.RememberMe)
	if err != nil {
		s.logger.Error("签发 refresh token 失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("登录成功", zap.String("role", role), zap.String("accountId", accountID))

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtMgr.AccessTokenTTL().Seconds()),
		Account:      account,
	}, nil
}

// loginLookupErr 登录查询错误归一：账户不存在与密码错误对外不可区分
func (s *authService) loginLookupErr(err error, username string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidCredentials
	}
	s.logger.Error("登录查询失败", zap.String("username", username), zap.Error(err))
	return err
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("注销 token 失败", zap.String("jti", claims.ID), zap.Error(err))
		return err
	}
	s.logger.Info("已注销", zap.String("accountId", claims.AccountID), zap.String("jti", claims.ID))
	return nil
}

// ────────────────────── ForgotPassword ──────────────────────

func (s *authService) ForgotPassword(ctx context.Context, role, email string) error {
	code, err := generateResetCode()
	if err != nil {
		s.logger.Error("生成重置码失败", zap.Error(err))
		return err
	}
	expiry := time.Now().Add(s.cfg.Auth.ResetCodeTTL)

	var (
		name      string
		recipient string
	)

	switch role {
	case RoleStudent:
		student, err := s.repo.Student.GetByEmail(ctx, email)
		if err != nil {
			return s.resetLookupErr(err, email)
		}
		student.ResetCode = code
		student.ResetCodeExpiry = &expiry
		if err := s.repo.Student.Update(ctx, student); err != nil {
			s.logger.Error("保存重置码失败", zap.Error(err))
			return err
		}
		name, recipient = student.FullName(), student.Email
	case RoleTeacher:
		teacher, err := s.repo.Teacher.GetByEmail(ctx, email)
		if err != nil {
			return s.resetLookupErr(err, email)
		}
		teacher.ResetCode = code
		teacher.ResetCodeExpiry = &expiry
		if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
			s.logger.Error("保存重置码失败", zap.Error(err))
			return err
		}
		name, recipient = teacher.FullName(), teacher.Email
	case RoleAdmin:
		admin, err := s.repo.Admin.GetByEmail(ctx, email)
		if err != nil {
			return s.resetLookupErr(err, email)
		}
		admin.ResetCode = code
		admin.ResetCodeExpiry = &expiry
		if err := s.repo.Admin.Update(ctx, admin); err != nil {
			s.logger.Error("保存重置码失败", zap.Error(err))
			return err
		}
		// 管理员优先使用 preferredEmail 接收重置码
		name, recipient = admin.FullName(), admin.ResetEmail()
	default:
		return ErrAccountNotFound
	}

	if err := s.notifier.NotifyPasswordReset(ctx, recipient, name, code); err != nil {
		s.logger.Warn("重置码通知入队失败", zap.String("email", email), zap.Error(err))
	}

	s.logger.Info("重置码已生成", zap.String("role", role), zap.String("email", email))
	return nil
}

func (s *authService) resetLookupErr(err error, email string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAccountNotFound
	}
	s.logger.Error("查询账户失败", zap.String("email", email), zap.Error(err))
	return err
}

// ────────────────────── ResetPassword ──────────────────────

func (s *authService) ResetPassword(ctx context.Context, role string, req *dto.ResetPasswordRequest) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	verify := func(code string, expiry *time.Time) error {
		if code == "" || code != req.ResetCode {
			return ErrInvalidResetCode
		}
		if expiry == nil || time.Now().After(*expiry) {
			return ErrResetCodeExpired
		}
		return nil
	}

	switch role {
	case RoleStudent:
		student, err := s.repo.Student.GetByEmail(ctx, req.Email)
		if err != nil {
			return s.resetLookupErr(err, req.Email)
		}
		if err := verify(student.ResetCode, student.ResetCodeExpiry); err != nil {
			return err
		}
		student.PasswordHash = string(hash)
		student.ResetCode = ""
		student.ResetCodeExpiry = nil
		return s.repo.Student.Update(ctx, student)
	case RoleTeacher:
		teacher, err := s.repo.Teacher.GetByEmail(ctx, req.Email)
		if err != nil {
			return s.resetLookupErr(err, req.Email)
		}
		if err := verify(teacher.ResetCode, teacher.ResetCodeExpiry); err != nil {
			return err
		}
		teacher.PasswordHash = string(hash)
		teacher.ResetCode = ""
		teacher.ResetCodeExpiry = nil
		return s.repo.Teacher.Update(ctx, teacher)
	case RoleAdmin:
		admin, err := s.repo.Admin.GetByEmail(ctx, req.Email)
		if err != nil {
			return s.resetLookupErr(err, req.Email)
		}
		if err := verify(admin.ResetCode, admin.ResetCodeExpiry); err != nil {
			return err
		}
		admin.PasswordHash = string(hash)
		admin.ResetCode = ""
		admin.ResetCodeExpiry = nil
		return s.repo.Admin.Update(ctx, admin)
	}
	return ErrAccountNotFound
}

// ────────────────────── ChangePassword ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, role, accountID string, req *dto.ChangePasswordRequest) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	switch role {
	case RoleStudent:
		student, err := s.repo.Student.GetByID(ctx, accountID)
		if err != nil {
			return s.resetLookupErr(err, accountID)
		}
		if bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.CurrentPassword)) != nil {
			return ErrWrongPassword
		}
		student.PasswordHash = string(hash)
		return s.repo.Student.Update(ctx, student)
	case RoleTeacher:
		teacher, err := s.repo.Teacher.GetByID(ctx, accountID)
		if err != nil {
			return s.resetLookupErr(err, accountID)
		}
		if bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte(req.CurrentPassword)) != nil {
			return ErrWrongPassword
		}
		teacher.PasswordHash = string(hash)
		return s.repo.Teacher.Update(ctx, teacher)
	case RoleAdmin:
		admin, err := s.repo.Admin.GetByID(ctx, accountID)
		if err != nil {
			return s.resetLookupErr(err, accountID)
		}
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.CurrentPassword)) != nil {
			return ErrWrongPassword
		}
		admin.PasswordHash = string(hash)
		return s.repo.Admin.Update(ctx, admin)
	}
	return ErrAccountNotFound
}

// generateResetCode 生成 6 位数字重置码（密码学随机）
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
