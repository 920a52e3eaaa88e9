package service

import (
	"go.uber.org/zap"

	"github.com/Kyliee2004/sems-backend/config"
	"github.com/Kyliee2004/sems-backend/internal/repository"
	"github.com/Kyliee2004/sems-backend/pkg/jwt"
	"github.com/Kyliee2004/sems-backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Account      AccountService
	ExitRequest  ExitRequestService
	Notification NotificationService
	Dashboard    DashboardService
	Feedback     FeedbackService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	notifier := NewNotificationService(repo, cfg, logger)
	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, cache, notifier, cfg, logger),
		Account:      NewAccountService(repo, notifier, logger),
		ExitRequest:  NewExitRequestService(repo, notifier, logger),
		Notification: notifier,
		Dashboard:    NewDashboardService(repo, logger),
		Feedback:     NewFeedbackService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
