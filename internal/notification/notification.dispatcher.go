// Package notification chuyển sự kiện workflow thành thông báo qua các kênh đã cấu hình.
// Dispatcher đăng ký vào event bus; kênh nào lỗi chỉ được log, không retry:
// event chỉ phát sau khi transaction commit nên chấp nhận mất thông báo,
// không chấp nhận gửi trùng.
package notification

import (
	"context"
	"fmt"
	"time"

	"creator_studio/config"
	"creator_studio/internal/api/events"
	"creator_studio/internal/logger"

	"github.com/sirupsen/logrus"
)

// Channel là một kênh gửi thông báo workflow.
type Channel interface {
	Name() string
	Send(ctx context.Context, e events.WorkflowEvent) error
}

// Dispatcher fan-out sự kiện workflow tới các kênh.
type Dispatcher struct {
	channels []Channel
}

// NewDispatcher tạo dispatcher với các kênh bật theo config:
// email khi có SMTP_Host, webhook khi có WebhookURL.
func NewDispatcher(cfg *config.Configuration) *Dispatcher {
	d := &Dispatcher{}
	if cfg.SMTP_Host != "" && cfg.SMTP_To != "" {
		d.channels = append(d.channels, NewEmailChannel(cfg))
	}
	if cfg.WebhookURL != "" {
		d.channels = append(d.channels, NewWebhookChannel(cfg.WebhookURL))
	}
	return d
}

// Register đăng ký dispatcher vào event bus. Gọi một lần khi khởi động.
func (d *Dispatcher) Register() {
	events.OnWorkflowEvent(d.handle)
	logger.GetAppLogger().WithFields(logrus.Fields{
		"channels": len(d.channels),
	}).Info("📣 Notification dispatcher đã đăng ký")
}

// handle chạy trong goroutine riêng của event bus; context của request có thể đã
// kết thúc nên mỗi lần gửi dùng context độc lập có timeout.
func (d *Dispatcher) handle(_ context.Context, e events.WorkflowEvent) {
	sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	for _, ch := range d.channels {
		if err := ch.Send(sendCtx, e); err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"channel":       ch.Name(),
				"eventType":     e.Type,
				"contentItemId": e.ContentItemID.Hex(),
				"error":         err.Error(),
			}).Warn("❌ Gửi thông báo workflow thất bại")
		}
	}
}

// summarize tạo nội dung thông báo ngắn gọn từ event.
func summarize(e events.WorkflowEvent) (subject string, body string) {
	switch e.Type {
	case events.WorkflowSubmitted:
		subject = "Nội dung được gửi duyệt"
	case events.WorkflowApproved:
		subject = "Nội dung đã được duyệt"
	case events.WorkflowChangesRequested:
		subject = "Nội dung bị yêu cầu chỉnh sửa"
	case events.WorkflowPublished:
		subject = "Nội dung đã được xuất bản"
	default:
		subject = "Nội dung đổi trạng thái"
	}
	body = fmt.Sprintf("Content item %s: %s → %s (actor %s)",
		e.ContentItemID.Hex(), e.FromStatus, e.ToStatus, e.ActorID.Hex())
	if e.Feedback != "" {
		body += "\nFeedback: " + e.Feedback
	}
	return subject, body
}
