package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"creator_studio/internal/api/events"
)

// WebhookChannel POST sự kiện workflow dạng JSON tới một URL cấu hình sẵn.
type WebhookChannel struct {
	url    string
	client *http.Client
}

// NewWebhookChannel tạo kênh webhook.
func NewWebhookChannel(url string) *WebhookChannel {
	return &WebhookChannel{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name trả về tên kênh.
func (ch *WebhookChannel) Name() string {
	return "webhook"
}

// webhookPayload là body JSON gửi tới webhook receiver.
type webhookPayload struct {
	Type          string `json:"type"`
	ContentItemID string `json:"contentItemId"`
	TeamID        string `json:"teamId,omitempty"`
	ActorID       string `json:"actorId"`
	FromStatus    string `json:"fromStatus"`
	ToStatus      string `json:"toStatus"`
	Feedback      string `json:"feedback,omitempty"`
	OccurredAt    int64  `json:"occurredAt"`
}

// Send POST event tới webhook URL. Status ngoài 2xx coi là lỗi.
func (ch *WebhookChannel) Send(ctx context.Context, e events.WorkflowEvent) error {
	payload := webhookPayload{
		Type:          e.Type,
		ContentItemID: e.ContentItemID.Hex(),
		ActorID:       e.ActorID.Hex(),
		FromStatus:    e.FromStatus,
		ToStatus:      e.ToStatus,
		Feedback:      e.Feedback,
		OccurredAt:    e.OccurredAt,
	}
	if !e.TeamID.IsZero() {
		payload.TeamID = e.TeamID.Hex()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ch.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ch.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook trả về status %d", resp.StatusCode)
	}
	return nil
}
