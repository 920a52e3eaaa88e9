package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/Kyliee2004/sems-backend/config"
)

// SendgridMailer 基于 SendGrid API 的生产环境邮件实现
type SendgridMailer struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

// NewSendgridMailer 创建 SendgridMailer
func NewSendgridMailer(cfg *config.MailConfig) *SendgridMailer {
	return &SendgridMailer{
		client: sendgrid.NewSendClient(cfg.SendgridAPIKey),
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
	}
}

// Send 通过 SendGrid 发送单封 HTML 邮件
// 调用方通过 ctx 控制超时
func (m *SendgridMailer) Send(ctx context.Context, msg *Message) error {
	mail := sgmail.NewSingleEmail(m.from, msg.Subject, sgmail.NewEmail("", msg.To), "", msg.HTML)

	resp, err := m.client.SendWithContext(ctx, mail)
	if err != nil {
		return fmt.Errorf("sendgrid 请求失败: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid 返回错误状态 %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
