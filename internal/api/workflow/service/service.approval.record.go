package workflowsvc

import (
	"context"
	"fmt"

	basesvc "creator_studio/internal/api/base/service"
	workflowmodels "creator_studio/internal/api/workflow/models"
	"creator_studio/internal/common"
	"creator_studio/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ApprovalRecordService là service đọc audit trail duyệt nội dung.
// Việc ghi record chỉ diễn ra trong transaction của WorkflowService,
// service này không expose thao tác ghi nào khác.
type ApprovalRecordService struct {
	*basesvc.BaseServiceMongoImpl[workflowmodels.ApprovalRecord]
}

// NewApprovalRecordService tạo mới ApprovalRecordService
func NewApprovalRecordService() (*ApprovalRecordService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ApprovalRecords)
	if !exist {
		return nil, fmt.Errorf("failed to get approval_records collection: %v", common.ErrNotFound)
	}
	return &ApprovalRecordService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[workflowmodels.ApprovalRecord](collection),
	}, nil
}

// GetLatestByContentItemID trả về record mới nhất của một content item, nil nếu chưa có.
func (s *ApprovalRecordService) GetLatestByContentItemID(ctx context.Context, contentItemID primitive.ObjectID) (*workflowmodels.ApprovalRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	record, err := s.FindOne(ctx, map[string]interface{}{"contentItemId": contentItemID}, opts)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// GetHistoryByContentItemID trả về toàn bộ lịch sử duyệt của một content item, mới nhất trước.
func (s *ApprovalRecordService) GetHistoryByContentItemID(ctx context.Context, contentItemID primitive.ObjectID) ([]workflowmodels.ApprovalRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return s.Find(ctx, map[string]interface{}{"contentItemId": contentItemID}, opts)
}
