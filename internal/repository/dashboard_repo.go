package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Kyliee2004/sems-backend/internal/model"
)

// DashboardRepository 管理端处理记录数据访问接口
type DashboardRepository interface {
	Create(ctx context.Context, entry *model.DashboardEntry) error
	List(ctx context.Context) ([]model.DashboardEntry, error)
	// DeleteByIDs 按 id 批量删除，返回实际删除条数
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	// DeleteAll 清空全部记录，返回删除条数
	DeleteAll(ctx context.Context) (int64, error)
}

// dashboardRepo DashboardRepository 的 GORM 实现
type dashboardRepo struct {
	db *gorm.DB
}

// NewDashboardRepo 创建 DashboardRepository 实例
func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db: db}
}

func (r *dashboardRepo) Create(ctx context.Context, entry *model.DashboardEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *dashboardRepo) List(ctx context.Context) ([]model.DashboardEntry, error) {
	var entries []model.DashboardEntry
	err := r.db.WithContext(ctx).Order("processed_at DESC").Find(&entries).Error
	return entries, err
}

func (r *dashboardRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.DashboardEntry{})
	return result.RowsAffected, result.Error
}

func (r *dashboardRepo) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.DashboardEntry{})
	return result.RowsAffected, result.Error
}
