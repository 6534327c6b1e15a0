package notification

import (
	"context"

	"creator_studio/config"
	"creator_studio/internal/api/events"

	"gopkg.in/gomail.v2"
)

// EmailChannel gửi thông báo workflow qua SMTP.
type EmailChannel struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewEmailChannel tạo kênh email từ cấu hình SMTP.
func NewEmailChannel(cfg *config.Configuration) *EmailChannel {
	return &EmailChannel{
		dialer: gomail.NewDialer(cfg.SMTP_Host, cfg.SMTP_Port, cfg.SMTP_Username, cfg.SMTP_Password),
		from:   cfg.SMTP_From,
		to:     cfg.SMTP_To,
	}
}

// Name trả về tên kênh.
func (ch *EmailChannel) Name() string {
	return "email"
}

// Send gửi một email thông báo. Lỗi SMTP trả về cho dispatcher log, không retry.
func (ch *EmailChannel) Send(_ context.Context, e events.WorkflowEvent) error {
	subject, body := summarize(e)

	msg := gomail.NewMessage()
	msg.SetHeader("From", ch.from)
	msg.SetHeader("To", ch.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return ch.dialer.DialAndSend(msg)
}
