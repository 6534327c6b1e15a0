package teammodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamRole là vai trò của một thành viên trong team.
type TeamRole string

const (
	RoleOwner       TeamRole = "owner"       // Chủ team, toàn quyền
	RoleAdmin       TeamRole = "admin"       // Quản trị team, cấu hình workflow
	RoleEditor      TeamRole = "editor"      // Biên tập, có quyền duyệt mặc định
	RoleContributor TeamRole = "contributor" // Đóng góp nội dung
	RoleViewer      TeamRole = "viewer"      // Chỉ xem
)

// IsValid kiểm tra role có thuộc enum không.
func (r TeamRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleEditor, RoleContributor, RoleViewer:
		return true
	}
	return false
}

// TeamMember là một thành viên của team kèm vai trò.
type TeamMember struct {
	UserID primitive.ObjectID `json:"userId" bson:"userId"` // ID của user
	Role   TeamRole           `json:"role" bson:"role"`     // Vai trò trong team
}

// WorkflowPolicy cấu hình quy trình duyệt nội dung của team.
// ApproverIDs rỗng nghĩa là dùng quy tắc mặc định theo vai trò
// (owner/admin/editor được duyệt), KHÔNG phải là không ai được duyệt.
type WorkflowPolicy struct {
	RequiresApproval bool                 `json:"requiresApproval" bson:"requiresApproval"`       // Nội dung có phải qua duyệt không
	ApproverIDs      []primitive.ObjectID `json:"approverIds,omitempty" bson:"approverIds,omitempty"` // Danh sách approver chỉ định (tùy chọn)
}

// Team đại diện cho một team cộng tác sản xuất nội dung.
type Team struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của team

	Name    string             `json:"name" bson:"name"`                        // Tên team
	OwnerID primitive.ObjectID `json:"ownerId" bson:"ownerId" index:"single:1"` // Chủ team

	// Members không chứa owner; owner luôn được coi là thành viên với role owner.
	Members []TeamMember `json:"members,omitempty" bson:"members,omitempty"`

	Workflow WorkflowPolicy `json:"workflow" bson:"workflow"` // Chính sách duyệt nội dung

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// IsOwner kiểm tra user có phải chủ team không.
func (t *Team) IsOwner(userID primitive.ObjectID) bool {
	return t.OwnerID == userID
}

// IsMember kiểm tra user có thuộc team không (owner tính là thành viên).
func (t *Team) IsMember(userID primitive.ObjectID) bool {
	if t.IsOwner(userID) {
		return true
	}
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// MemberRole trả về vai trò của user trong team, false nếu không phải thành viên.
func (t *Team) MemberRole(userID primitive.ObjectID) (TeamRole, bool) {
	if t.IsOwner(userID) {
		return RoleOwner, true
	}
	for _, m := range t.Members {
		if m.UserID == userID {
			return m.Role, true
		}
	}
	return "", false
}

// CanApprove kiểm tra user có quyền duyệt nội dung của team không.
// Có danh sách approver chỉ định thì chỉ những người trong danh sách được duyệt;
// danh sách rỗng thì rơi về quy tắc vai trò: owner, admin, editor.
func (t *Team) CanApprove(userID primitive.ObjectID) bool {
	if len(t.Workflow.ApproverIDs) > 0 {
		for _, id := range t.Workflow.ApproverIDs {
			if id == userID {
				return true
			}
		}
		return false
	}
	role, ok := t.MemberRole(userID)
	if !ok {
		return false
	}
	return role == RoleOwner || role == RoleAdmin || role == RoleEditor
}

// CanConfigureWorkflow kiểm tra user có quyền thay đổi workflow policy không (owner, admin).
func (t *Team) CanConfigureWorkflow(userID primitive.ObjectID) bool {
	role, ok := t.MemberRole(userID)
	if !ok {
		return false
	}
	return role == RoleOwner || role == RoleAdmin
}
