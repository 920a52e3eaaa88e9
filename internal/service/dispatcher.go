package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Kyliee2004/sems-backend/config"
	"github.com/Kyliee2004/sems-backend/internal/model"
	"github.com/Kyliee2004/sems-backend/internal/repository"
	"github.com/Kyliee2004/sems-backend/pkg/mailer"
)

// OutboxDispatcher 邮件 outbox 后台调度器
//
// 周期扫描到期的 pending 记录并逐条发送；失败按指数退避重试，
// 达到最大尝试次数后标记 failed。发送结果只落在 outbox 记录上，
// 不影响任何业务写入
type OutboxDispatcher struct {
	repo   *repository.Repository
	mailer mailer.Mailer
	cfg    config.NotifyConfig
	logger *zap.Logger
}

// NewOutboxDispatcher 创建 OutboxDispatcher 实例
func NewOutboxDispatcher(repo *repository.Repository, m mailer.Mailer, cfg config.NotifyConfig, logger *zap.Logger) *OutboxDispatcher {
	return &OutboxDispatcher{repo: repo, mailer: m, cfg: cfg, logger: logger}
}

// Run 启动调度循环，阻塞直到 ctx 取消
func (d *OutboxDispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	d.logger.Info("outbox 调度器已启动",
		zap.Duration("pollInterval", d.cfg.PollInterval),
		zap.Int("maxAttempts", d.cfg.MaxAttempts))

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("outbox 调度器已停止")
			return
		case <-ticker.C:
			d.DispatchDue(ctx)
		}
	}
}

// DispatchDue 处理一轮到期记录
func (d *OutboxDispatcher) DispatchDue(ctx context.Context) {
	emails, err := d.repo.Outbox.ListDue(ctx, time.Now(), d.cfg.BatchSize)
	if err != nil {
		d.logger.Error("扫描待发送邮件失败", zap.Error(err))
		return
	}

	for i := range emails {
		if ctx.Err() != nil {
			return
		}
		d.dispatchOne(ctx, &emails[i])
	}
}

func (d *OutboxDispatcher) dispatchOne(ctx context.Context, email *model.OutboxEmail) {
	sendCtx, cancel := context.WithTimeout(ctx, d.cfg.SendTimeout)
	err := d.mailer.Send(sendCtx, &mailer.Message{
		To:      email.Recipient,
		Subject: email.Subject,
		HTML:    email.Body,
	})
	cancel()

	if err == nil {
		if err := d.repo.Outbox.MarkSent(ctx, email.ID, time.Now()); err != nil {
			d.logger.Error("标记邮件已发送失败", zap.String("id", email.ID), zap.Error(err))
		}
		d.logger.Info("邮件已发送",
			zap.String("id", email.ID),
			zap.String("kind", email.Kind),
			zap.String("recipient", email.Recipient))
		return
	}

	attempts := email.Attempts + 1
	if attempts >= d.cfg.MaxAttempts {
		if markErr := d.repo.Outbox.MarkFailed(ctx, email.ID, attempts, err.Error()); markErr != nil {
			d.logger.Error("标记邮件发送失败状态出错", zap.String("id", email.ID), zap.Error(markErr))
		}
		d.logger.Error("邮件发送失败，已达最大尝试次数",
			zap.String("id", email.ID),
			zap.String("kind", email.Kind),
			zap.Int("attempts", attempts),
			zap.Error(err))
		return
	}

	next := time.Now().Add(backoffDelay(d.cfg.Backoff, attempts))
	if markErr := d.repo.Outbox.MarkRetry(ctx, email.ID, attempts, err.Error(), next); markErr != nil {
		d.logger.Error("安排邮件重试失败", zap.String("id", email.ID), zap.Error(markErr))
	}
	d.logger.Warn("邮件发送失败，稍后重试",
		zap.String("id", email.ID),
		zap.String("kind", email.Kind),
		zap.Int("attempts", attempts),
		zap.Time("nextAttemptAt", next),
		zap.Error(err))
}

// backoffDelay 第 n 次失败后的重试间隔：base * 2^(n-1)
func backoffDelay(base time.Duration, attempts int) time.Duration {
	delay := base
	for i := 1; i < attempts; i++ {
		delay *= 2
	}
	return delay
}
