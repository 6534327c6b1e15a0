package contentsvc

import (
	"context"
	"fmt"

	contentmodels "creator_studio/internal/api/content/models"
	basesvc "creator_studio/internal/api/base/service"
	"creator_studio/internal/api/events"
	"creator_studio/internal/common"
	"creator_studio/internal/global"
	"creator_studio/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContentItemService là service quản lý content items và vòng đời của chúng.
// Mọi mutation đi theo pattern load → mutate (method thuần trên model) → commit CAS:
// commit chỉ ghi đè khi version trên DB vẫn bằng version client đã đọc.
type ContentItemService struct {
	*basesvc.BaseServiceMongoImpl[contentmodels.ContentItem]
}

// NewContentItemService tạo mới ContentItemService
func NewContentItemService() (*ContentItemService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ContentItems)
	if !exist {
		return nil, fmt.Errorf("failed to get content_items collection: %v", common.ErrNotFound)
	}
	return &ContentItemService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[contentmodels.ContentItem](collection),
	}, nil
}

// CreateItem tạo content item mới ở trạng thái idea cho owner.
func (s *ContentItemService) CreateItem(ctx context.Context, ownerID primitive.ObjectID, teamID *primitive.ObjectID, title string, notes string, platformTags []string) (*contentmodels.ContentItem, error) {
	item, err := contentmodels.NewContentItem(ownerID, teamID, title, notes)
	if err != nil {
		return nil, err
	}
	if len(platformTags) > 0 {
		if _, err := item.SetPlatformTags(platformTags); err != nil {
			return nil, err
		}
	}
	// SetPlatformTags đã bump version, item mới luôn bắt đầu từ 1
	item.Version = 1

	created, err := s.InsertOne(ctx, *item)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// LoadItem tìm content item theo ID, chuẩn hóa not-found về lỗi domain.
func (s *ContentItemService) LoadItem(ctx context.Context, id primitive.ObjectID) (*contentmodels.ContentItem, error) {
	item, err := s.FindOneById(ctx, id)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.ErrContentItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// CommitItem ghi item về DB bằng compare-and-swap trên version.
// Filter khớp cả _id lẫn version client đã đọc: nếu một writer khác đã commit
// trước, MatchedCount = 0 và caller nhận ErrConcurrencyConflict (không retry hộ).
// Dùng ReplaceOne thay vì $set để các field omitempty đã bị xóa (vd scheduledAt)
// thực sự biến mất khỏi document.
func (s *ContentItemService) CommitItem(ctx context.Context, item *contentmodels.ContentItem, expectedVersion int64) error {
	filter := bson.M{"_id": item.ID, "version": expectedVersion}
	result, err := s.Collection().ReplaceOne(ctx, filter, item)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.MatchedCount == 0 {
		return common.ErrConcurrencyConflict
	}
	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: global.MongoDB_ColNames.ContentItems,
		Operation:      events.OpUpdate,
		Document:       *item,
	})
	return nil
}

// mutateItem load item, kiểm tra version client đọc, áp mutation rồi commit CAS.
// Mutation trả về changed=false là no-op: không ghi DB, trả item hiện tại.
func (s *ContentItemService) mutateItem(ctx context.Context, id primitive.ObjectID, expectedVersion int64, mutate func(*contentmodels.ContentItem) (bool, error)) (*contentmodels.ContentItem, error) {
	item, err := s.LoadItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Version != expectedVersion {
		return nil, common.ErrConcurrencyConflict
	}

	changed, err := mutate(item)
	if err != nil {
		return nil, err
	}
	if !changed {
		return item, nil
	}

	if err := s.CommitItem(ctx, item, expectedVersion); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemContent sửa title/notes với kiểm soát version.
func (s *ContentItemService) UpdateItemContent(ctx context.Context, id primitive.ObjectID, expectedVersion int64, title string, notes string) (*contentmodels.ContentItem, error) {
	return s.mutateItem(ctx, id, expectedVersion, func(item *contentmodels.ContentItem) (bool, error) {
		return item.UpdateContent(title, notes)
	})
}

// UpdateStatus chuyển trạng thái trực tiếp (không qua workflow duyệt).
// Phát event status_changed sau khi ghi thành công; trạng thái không đổi không phát event.
func (s *ContentItemService) UpdateStatus(ctx context.Context, id primitive.ObjectID, expectedVersion int64, actorID primitive.ObjectID, newStatus contentmodels.ContentStatus) (*contentmodels.ContentItem, error) {
	var fromStatus contentmodels.ContentStatus
	var changed bool

	item, err := s.mutateItem(ctx, id, expectedVersion, func(item *contentmodels.ContentItem) (bool, error) {
		fromStatus = item.Status
		var err error
		changed, err = item.UpdateStatus(newStatus)
		return changed, err
	})
	if err != nil {
		return nil, err
	}

	if changed {
		eventType := events.WorkflowStatusChanged
		if newStatus == contentmodels.StatusPublished {
			eventType = events.WorkflowPublished
		}
		var teamID primitive.ObjectID
		if item.TeamID != nil {
			teamID = *item.TeamID
		}
		events.EmitWorkflow(ctx, events.WorkflowEvent{
			Type:          eventType,
			ContentItemID: item.ID,
			TeamID:        teamID,
			ActorID:       actorID,
			FromStatus:    string(fromStatus),
			ToStatus:      string(newStatus),
			OccurredAt:    utility.CurrentTimeInMilli(),
		})
	}
	return item, nil
}

// AddPlatformTag thêm một platform tag vào item.
func (s *ContentItemService) AddPlatformTag(ctx context.Context, id primitive.ObjectID, expectedVersion int64, tag string) (*contentmodels.ContentItem, error) {
	return s.mutateItem(ctx, id, expectedVersion, func(item *contentmodels.ContentItem) (bool, error) {
		return item.AddPlatformTag(tag)
	})
}

// RemovePlatformTag xóa một platform tag khỏi item.
func (s *ContentItemService) RemovePlatformTag(ctx context.Context, id primitive.ObjectID, expectedVersion int64, tag string) (*contentmodels.ContentItem, error) {
	return s.mutateItem(ctx, id, expectedVersion, func(item *contentmodels.ContentItem) (bool, error) {
		return item.RemovePlatformTag(tag)
	})
}

// SetPlatformTags thay toàn bộ tag set của item.
func (s *ContentItemService) SetPlatformTags(ctx context.Context, id primitive.ObjectID, expectedVersion int64, tags []string) (*contentmodels.ContentItem, error) {
	return s.mutateItem(ctx, id, expectedVersion, func(item *contentmodels.ContentItem) (bool, error) {
		return item.SetPlatformTags(tags)
	})
}

// SoftDeleteItem đánh dấu item đã xóa (giữ nguyên document và audit history).
func (s *ContentItemService) SoftDeleteItem(ctx context.Context, id primitive.ObjectID, expectedVersion int64) (*contentmodels.ContentItem, error) {
	return s.mutateItem(ctx, id, expectedVersion, func(item *contentmodels.ContentItem) (bool, error) {
		return item.SoftDelete(), nil
	})
}

// RestoreItem khôi phục item đã soft-delete.
func (s *ContentItemService) RestoreItem(ctx context.Context, id primitive.ObjectID, expectedVersion int64) (*contentmodels.ContentItem, error) {
	item, err := s.LoadItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Version != expectedVersion {
		return nil, common.ErrConcurrencyConflict
	}
	if !item.Restore() {
		return item, nil
	}
	if err := s.CommitItem(ctx, item, expectedVersion); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateScheduledDate đặt thời gian lên lịch đăng cho item.
func (s *ContentItemService) UpdateScheduledDate(ctx context.Context, id primitive.ObjectID, expectedVersion int64, scheduledAt int64) (*contentmodels.ContentItem, error) {
	return s.mutateItem(ctx, id, expectedVersion, func(item *contentmodels.ContentItem) (bool, error) {
		return item.UpdateScheduledDate(scheduledAt)
	})
}

// ClearScheduledDate xóa thời gian lên lịch của item.
func (s *ContentItemService) ClearScheduledDate(ctx context.Context, id primitive.ObjectID, expectedVersion int64) (*contentmodels.ContentItem, error) {
	return s.mutateItem(ctx, id, expectedVersion, func(item *contentmodels.ContentItem) (bool, error) {
		return item.ClearScheduledDate()
	})
}

// FindDueScheduled tìm các item scheduled đã tới hạn đăng (scheduledAt <= now),
// bỏ qua item đã soft-delete. Dùng bởi worker xuất bản tự động.
func (s *ContentItemService) FindDueScheduled(ctx context.Context, now int64, limit int64) ([]contentmodels.ContentItem, error) {
	filter := map[string]interface{}{
		"status":      contentmodels.StatusScheduled,
		"isDeleted":   false,
		"scheduledAt": map[string]interface{}{"$lte": now},
	}
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "scheduledAt", Value: 1}})
	return s.Find(ctx, filter, opts)
}
