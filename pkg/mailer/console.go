package mailer

import (
	"context"

	"go.uber.org/zap"
)

// ConsoleMailer 开发环境邮件实现：仅写日志，不发送
type ConsoleMailer struct {
	logger *zap.Logger
}

// NewConsoleMailer 创建 ConsoleMailer
func NewConsoleMailer(logger *zap.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger}
}

// Send 将邮件内容输出到日志
func (m *ConsoleMailer) Send(_ context.Context, msg *Message) error {
	m.logger.Info("邮件（console 模式，未实际发送）",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.HTML)),
	)
	return nil
}
