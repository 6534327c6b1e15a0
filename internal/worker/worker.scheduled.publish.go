// Package worker chứa các background worker chạy định kỳ của server.
package worker

import (
	"context"
	"time"

	contentmodels "creator_studio/internal/api/content/models"
	contentsvc "creator_studio/internal/api/content/service"
	"creator_studio/internal/common"
	"creator_studio/internal/logger"
	"creator_studio/internal/utility"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// batchSize giới hạn số item xử lý mỗi chu kỳ quét.
const batchSize = 100

// ScheduledPublishWorker quét định kỳ các content item scheduled đã tới hạn
// và chuyển chúng sang published qua đúng đường transition có validate.
// Xung đột version (một writer khác vừa sửa item) chỉ bỏ qua, chu kỳ sau quét lại.
type ScheduledPublishWorker struct {
	contentItemService *contentsvc.ContentItemService
	interval           time.Duration
	stop               chan struct{}
}

// NewScheduledPublishWorker tạo worker với chu kỳ quét cho trước.
func NewScheduledPublishWorker(interval time.Duration) (*ScheduledPublishWorker, error) {
	contentItemService, err := contentsvc.NewContentItemService()
	if err != nil {
		return nil, err
	}
	return &ScheduledPublishWorker{
		contentItemService: contentItemService,
		interval:           interval,
		stop:               make(chan struct{}),
	}, nil
}

// Start chạy vòng quét trong goroutine riêng cho tới khi Stop được gọi.
func (w *ScheduledPublishWorker) Start() {
	go utility.GoProtect(func() {
		logger.GetAppLogger().WithFields(logrus.Fields{
			"interval": w.interval.String(),
		}).Info("⏰ Scheduled publish worker bắt đầu")

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.stop:
				logger.GetAppLogger().Info("⏰ Scheduled publish worker dừng")
				return
			case <-ticker.C:
				w.scanOnce()
			}
		}
	})
}

// Stop dừng worker. Idempotent không cần thiết: chỉ gọi một lần khi shutdown.
func (w *ScheduledPublishWorker) Stop() {
	close(w.stop)
}

// scanOnce quét một lượt và publish các item đến hạn.
func (w *ScheduledPublishWorker) scanOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := utility.CurrentTimeInMilli()
	due, err := w.contentItemService.FindDueScheduled(ctx, now, batchSize)
	if err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("❌ Quét nội dung đến hạn xuất bản thất bại")
		return
	}

	for _, item := range due {
		_, err := w.contentItemService.UpdateStatus(ctx, item.ID, item.Version, primitive.NilObjectID, contentmodels.StatusPublished)
		if err != nil {
			if err == common.ErrConcurrencyConflict {
				// Một writer khác vừa sửa item, chu kỳ sau quét lại
				continue
			}
			logger.GetAppLogger().WithFields(logrus.Fields{
				"contentItemId": item.ID.Hex(),
				"error":         err.Error(),
			}).Warn("❌ Xuất bản tự động thất bại")
			continue
		}
		logger.GetAppLogger().WithFields(logrus.Fields{
			"contentItemId": item.ID.Hex(),
		}).Info("🚀 Nội dung scheduled đã được xuất bản tự động")
	}
}
