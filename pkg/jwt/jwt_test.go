package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/Kyliee2004/sems-backend/config"
)

func newTestManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:               "unit-test-secret-0123456789",
		AccessTokenTTL:          accessTTL,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 7 * 24 * time.Hour,
	})
}

func TestManager_AccessToken_RoundTrip(t *testing.T) {
	mgr := newTestManager(15 * time.Minute)

	token, err := mgr.GenerateAccessToken("T-1001", "teacher")
	if err != nil {
		t.Fatalf("生成 AccessToken 失败: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.AccountID != "T-1001" {
		t.Errorf("期望 AccountID=T-1001，实际=%s", claims.AccountID)
	}
	if claims.Role != "teacher" {
		t.Errorf("期望 Role=teacher，实际=%s", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("期望 TokenType=access，实际=%s", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("期望生成非空 jti")
	}
}

func TestManager_RefreshToken_RememberMeTTL(t *testing.T) {
	mgr := newTestManager(15 * time.Minute)

	token, err := mgr.GenerateRefreshToken("S-2001", "student", true)
	if err != nil {
		t.Fatalf("生成 RefreshToken 失败: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("期望 TokenType=refresh，实际=%s", claims.TokenType)
	}

	// remember_me 模式下有效期应明显长于默认 24h
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 6*24*time.Hour {
		t.Errorf("期望 remember_me 有效期约 7 天，实际剩余 %v", ttl)
	}
}

func TestManager_ParseToken_Expired(t *testing.T) {
	mgr := newTestManager(-time.Minute)

	token, err := mgr.GenerateAccessToken("A-1", "admin")
	if err != nil {
		t.Fatalf("生成 AccessToken 失败: %v", err)
	}

	if _, err := mgr.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestManager_ParseToken_WrongSecret(t *testing.T) {
	mgr := newTestManager(15 * time.Minute)
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-9876543210",
		AccessTokenTTL: 15 * time.Minute,
	})

	token, err := mgr.GenerateAccessToken("A-1", "admin")
	if err != nil {
		t.Fatalf("生成 AccessToken 失败: %v", err)
	}

	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
