package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Kyliee2004/sems-backend/internal/model"
)

// OutboxRepository 邮件 outbox 数据访问接口
type OutboxRepository interface {
	// Enqueue 批量写入待发送记录；空批次为 no-op
	Enqueue(ctx context.Context, emails []*model.OutboxEmail) error
	// ListDue 返回到期待发送的记录（status=pending 且 next_attempt_at <= now）
	ListDue(ctx context.Context, now time.Time, limit int) ([]model.OutboxEmail, error)
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
	// MarkRetry 记录一次失败并安排下次尝试
	MarkRetry(ctx context.Context, id string, attempts int, lastError string, nextAttemptAt time.Time) error
	// MarkFailed 达到最大尝试次数后终止
	MarkFailed(ctx context.Context, id string, attempts int, lastError string) error
}

// outboxRepo OutboxRepository 的 GORM 实现
type outboxRepo struct {
	db *gorm.DB
}

// NewOutboxRepo 创建 OutboxRepository 实例
func NewOutboxRepo(db *gorm.DB) OutboxRepository {
	return &outboxRepo{db: db}
}

func (r *outboxRepo) Enqueue(ctx context.Context, emails []*model.OutboxEmail) error {
	if len(emails) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(emails).Error
}

func (r *outboxRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]model.OutboxEmail, error) {
	var emails []model.OutboxEmail
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_attempt_at <= ?", model.OutboxPending, now).
		Order("next_attempt_at ASC").
		Limit(limit).
		Find(&emails).Error
	return emails, err
}

func (r *outboxRepo) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.OutboxEmail{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  model.OutboxSent,
			"sent_at": sentAt,
		}).Error
}

func (r *outboxRepo) MarkRetry(ctx context.Context, id string, attempts int, lastError string, nextAttemptAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.OutboxEmail{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":        attempts,
			"last_error":      lastError,
			"next_attempt_at": nextAttemptAt,
		}).Error
}

func (r *outboxRepo) MarkFailed(ctx context.Context, id string, attempts int, lastError string) error {
	return r.db.WithContext(ctx).
		Model(&model.OutboxEmail{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     model.OutboxFailed,
			"attempts":   attempts,
			"last_error": lastError,
		}).Error
}
