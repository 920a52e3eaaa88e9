package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kyliee2004/sems-backend/config"
	"github.com/Kyliee2004/sems-backend/internal/dto"
	"github.com/Kyliee2004/sems-backend/internal/model"
	"github.com/Kyliee2004/sems-backend/internal/repository"
	"github.com/Kyliee2004/sems-backend/pkg/jwt"
)

// ── 测试辅助 ──

type authFixture struct {
	svc      AuthService
	students *mockStudentRepo
	teachers *mockTeacherRepo
	admins   *mockAdminRepo
	outbox   *mockOutboxRepo
	jwtMgr   *jwt.Manager
}

func setupAuthService() *authFixture {
	students := newMockStudentRepo()
	teachers := newMockTeacherRepo()
	admins := newMockAdminRepo()
	outbox := newMockOutboxRepo()
	repo := &repository.Repository{
		Student:     students,
		Teacher:     teachers,
		Admin:       admins,
		ExitRequest: newMockExitRequestRepo(),
		Outbox:      outbox,
		Dashboard:   newMockDashboardRepo(),
		Feedback:    newMockFeedbackRepo(),
	}
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "unit-test-secret-0123456789",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
			ResetCodeTTL:            15 * time.Minute,
		},
		Mail: config.MailConfig{SecurityEmail: "security@sems.edu"},
	}
	logger := zap.NewNop()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	notifier := NewNotificationService(repo, cfg, logger)
	svc := NewAuthService(repo, jwtMgr, nil, notifier, cfg, logger)
	return &authFixture{svc: svc, students: students, teachers: teachers, admins: admins, outbox: outbox, jwtMgr: jwtMgr}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	return string(hash)
}

// ── Login 测试 ──

func TestAuthService_Login_StudentSuccess(t *testing.T) {
	f := setupAuthService()
	_ = f.students.Create(context.Background(), &model.Student{
		StudentID:    "2021-001",
		Username:     "juan",
		PasswordHash: hashOf(t, "secret123"),
	})

	result, err := f.svc.Login(context.Background(), RoleStudent, &dto.LoginRequest{
		Username: "juan",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("期望签发 token 对")
	}

	claims, err := f.jwtMgr.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("access token 应可解析: %v", err)
	}
	if claims.Role != RoleStudent {
		t.Errorf("期望角色 student，实际: %s", claims.Role)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := setupAuthService()
	_ = f.students.Create(context.Background(), &model.Student{
		StudentID:    "2021-001",
		Username:     "juan",
		PasswordHash: hashOf(t, "secret123"),
	})

	_, err := f.svc.Login(context.Background(), RoleStudent, &dto.LoginRequest{
		Username: "juan",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownUserSameError(t *testing.T) {
	f := setupAuthService()

	// 账户不存在与密码错误返回同一错误，避免枚举用户名
	_, err := f.svc.Login(context.Background(), RoleTeacher, &dto.LoginRequest{
		Username: "ghost",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_RoleIsolation(t *testing.T) {
	f := setupAuthService()
	_ = f.students.Create(context.Background(), &model.Student{
		StudentID:    "2021-001",
		Username:     "juan",
		PasswordHash: hashOf(t, "secret123"),
	})

	// 学生凭据不能从教师入口登录
	_, err := f.svc.Login(context.Background(), RoleTeacher, &dto.LoginRequest{
		Username: "juan",
		Password: "secret123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── ForgotPassword / ResetPassword 测试 ──

func TestAuthService_PasswordResetRoundTrip(t *testing.T) {
	f := setupAuthService()
	student := &model.Student{
		StudentID:    "2021-001",
		Username:     "juan",
		Email:        "juan@example.edu",
		PasswordHash: hashOf(t, "old-password"),
	}
	_ = f.students.Create(context.Background(), student)

	if err := f.svc.ForgotPassword(context.Background(), RoleStudent, "juan@example.edu"); err != nil {
		t.Fatalf("ForgotPassword 应成功: %v", err)
	}
	if student.ResetCode == "" || len(student.ResetCode) != 6 {
		t.Fatalf("期望 6 位重置码，实际: %q", student.ResetCode)
	}
	if student.ResetCodeExpiry == nil || student.ResetCodeExpiry.Before(time.Now()) {
		t.Fatal("期望重置码带未来过期时间")
	}
	if got := len(f.outbox.byKind(model.MailKindPasswordReset)); got != 1 {
		t.Fatalf("期望 1 封重置码邮件，实际: %d", got)
	}

	err := f.svc.ResetPassword(context.Background(), RoleStudent, &dto.ResetPasswordRequest{
		Email:       "juan@example.edu",
		ResetCode:   student.ResetCode,
		NewPassword: "new-password",
	})
	if err != nil {
		t.Fatalf("ResetPassword 应成功: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte("new-password")) != nil {
		t.Error("新密码应已生效")
	}
	if student.ResetCode != "" || student.ResetCodeExpiry != nil {
		t.Error("重置码应在使用后清除")
	}
}

func TestAuthService_ResetPassword_WrongCode(t *testing.T) {
	f := setupAuthService()
	student := &model.Student{
		StudentID:       "2021-001",
		Email:           "juan@example.edu",
		PasswordHash:    hashOf(t, "old"),
		ResetCode:       "123456",
		ResetCodeExpiry: timePtr(time.Now().Add(10 * time.Minute)),
	}
	_ = f.students.Create(context.Background(), student)

	err := f.svc.ResetPassword(context.Background(), RoleStudent, &dto.ResetPasswordRequest{
		Email:       "juan@example.edu",
		ResetCode:   "654321",
		NewPassword: "new-password",
	})
	if !errors.Is(err, ErrInvalidResetCode) {
		t.Errorf("期望 ErrInvalidResetCode，实际: %v", err)
	}
}

func TestAuthService_ResetPassword_ExpiredCode(t *testing.T) {
	f := setupAuthService()
	student := &model.Student{
		StudentID:       "2021-001",
		Email:           "juan@example.edu",
		PasswordHash:    hashOf(t, "old"),
		ResetCode:       "123456",
		ResetCodeExpiry: timePtr(time.Now().Add(-time.Minute)),
	}
	_ = f.students.Create(context.Background(), student)

	err := f.svc.ResetPassword(context.Background(), RoleStudent, &dto.ResetPasswordRequest{
		Email:       "juan@example.edu",
		ResetCode:   "123456",
		NewPassword: "new-password",
	})
	if !errors.Is(err, ErrResetCodeExpired) {
		t.Errorf("期望 ErrResetCodeExpired，实际: %v", err)
	}
}

func TestAuthService_ForgotPassword_AdminPreferredEmail(t *testing.T) {
	f := setupAuthService()
	_ = f.admins.Create(context.Background(), &model.Admin{
		AdminID:        "A-01",
		Email:          "admin@sems.edu",
		PreferredEmail: "personal@gmail.com",
		PasswordHash:   hashOf(t, "old"),
	})

	if err := f.svc.ForgotPassword(context.Background(), RoleAdmin, "admin@sems.edu"); err != nil {
		t.Fatalf("ForgotPassword 应成功: %v", err)
	}

	mails := f.outbox.byKind(model.MailKindPasswordReset)
	if len(mails) != 1 {
		t.Fatalf("期望 1 封重置码邮件，实际: %d", len(mails))
	}
	if mails[0].Recipient != "personal@gmail.com" {
		t.Errorf("管理员重置码应发往 preferredEmail，实际: %s", mails[0].Recipient)
	}
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	f := setupAuthService()

	err := f.svc.ForgotPassword(context.Background(), RoleStudent, "nobody@example.edu")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("期望 ErrAccountNotFound，实际: %v", err)
	}
}

// ── ChangePassword 测试 ──

func TestAuthService_ChangePassword(t *testing.T) {
	f := setupAuthService()
	admin := &model.Admin{
		AdminID:      "A-01",
		Email:        "admin@sems.edu",
		PasswordHash: hashOf(t, "current"),
	}
	_ = f.admins.Create(context.Background(), admin)

	err := f.svc.ChangePassword(context.Background(), RoleAdmin, admin.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "next-password",
	})
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("期望 ErrWrongPassword，实际: %v", err)
	}

	err = f.svc.ChangePassword(context.Background(), RoleAdmin, admin.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "current",
		NewPassword:     "next-password",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("next-password")) != nil {
		t.Error("新密码应已生效")
	}
}

func timePtr(t time.Time) *time.Time { return &t }
