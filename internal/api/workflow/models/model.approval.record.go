package workflowmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApprovalAction là loại hành động được ghi lại trong audit trail duyệt nội dung.
type ApprovalAction string

const (
	ActionSubmitted        ApprovalAction = "submitted"         // Gửi duyệt lần đầu (từ draft)
	ActionResubmitted      ApprovalAction = "resubmitted"       // Gửi duyệt lại (từ changes_requested)
	ActionApproved         ApprovalAction = "approved"          // Được duyệt
	ActionChangesRequested ApprovalAction = "changes_requested" // Bị yêu cầu chỉnh sửa
)

// ApprovalRecord là một bản ghi audit bất biến trong lịch sử duyệt của content item.
// Collection này append-only: record không bao giờ được sửa hay xóa,
// kể cả khi content item bị soft-delete.
type ApprovalRecord struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của record

	ContentItemID primitive.ObjectID `json:"contentItemId" bson:"contentItemId" index:"single:1"` // Content item liên quan
	TeamID        primitive.ObjectID `json:"teamId" bson:"teamId" index:"single:1"`               // Team tại thời điểm hành động
	ActorID       primitive.ObjectID `json:"actorId" bson:"actorId"`                              // Người thực hiện hành động

	Action     ApprovalAction `json:"action" bson:"action"`                   // Loại hành động
	FromStatus string         `json:"fromStatus" bson:"fromStatus"`           // Trạng thái trước hành động
	ToStatus   string         `json:"toStatus" bson:"toStatus"`               // Trạng thái sau hành động
	Feedback   string         `json:"feedback,omitempty" bson:"feedback,omitempty"` // Phản hồi của reviewer (changes_requested)

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"` // Thời điểm hành động
}
