package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Kyliee2004/sems-backend/internal/dto"
	"github.com/Kyliee2004/sems-backend/internal/repository"
)

// DashboardService 管理端处理记录业务接口
type DashboardService interface {
	// List 按处理时间倒序返回全部记录，附带申请人实时头像
	List(ctx context.Context) ([]dto.EnrichedDashboardEntry, error)
	// DeleteByIDs 按 id 批量删除，返回实际删除条数
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	// DeleteAll 清空全部记录，返回删除条数
	DeleteAll(ctx context.Context) (int64, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) List(ctx context.Context) ([]dto.EnrichedDashboardEntry, error) {
	entries, err := s.repo.Dashboard.List(ctx)
	if err != nil {
		s.logger.Error("查询处理记录失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EnrichedDashboardEntry, 0, len(entries))
	for i := range entries {
		enriched := dto.EnrichedDashboardEntry{DashboardEntry: entries[i]}
		student, err := s.repo.Student.GetByStudentID(ctx, entries[i].StudentID)
		if err == nil {
			enriched.ProfilePicture = student.ProfilePicture
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("查询申请人头像失败", zap.String("studentID", entries[i].StudentID), zap.Error(err))
		}
		result = append(result, enriched)
	}
	return result, nil
}

func (s *dashboardService) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	count, err := s.repo.Dashboard.DeleteByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("批量删除处理记录失败", zap.Error(err))
		return 0, err
	}
	s.logger.Info("处理记录已批量删除", zap.Int64("deletedCount", count))
	return count, nil
}

func (s *dashboardService) DeleteAll(ctx context.Context) (int64, error) {
	count, err := s.repo.Dashboard.DeleteAll(ctx)
	if err != nil {
		s.logger.Error("清空处理记录失败", zap.Error(err))
		return 0, err
	}
	s.logger.Info("处理记录已清空", zap.Int64("deletedCount", count))
	return count, nil
}
