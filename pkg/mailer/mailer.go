package mailer

import "context"

// Message 一封待发送的邮件
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer 邮件发送接口
// 实现方不做重试；重试与退避由 outbox 调度器负责
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}
