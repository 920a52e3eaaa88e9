package handler

import "github.com/Kyliee2004/sems-backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	Account     *AccountHandler
	ExitRequest *ExitRequestHandler
	Dashboard   *DashboardHandler
	Feedback    *FeedbackHandler
	Health      *HealthHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Account:     NewAccountHandler(svc.Account),
		ExitRequest: NewExitRequestHandler(svc.ExitRequest, svc.Export),
		Dashboard:   NewDashboardHandler(svc.Dashboard),
		Feedback:    NewFeedbackHandler(svc.Feedback),
		Health:      NewHealthHandler(),
	}
}
