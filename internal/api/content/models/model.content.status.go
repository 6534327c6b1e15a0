package contentmodels

import (
	"creator_studio/internal/common"
)

// ContentStatus là trạng thái vòng đời của một content item.
type ContentStatus string

const (
	StatusIdea             ContentStatus = "idea"              // Ý tưởng ban đầu
	StatusDraft            ContentStatus = "draft"             // Bản nháp đang soạn
	StatusInReview         ContentStatus = "in_review"         // Đang chờ duyệt
	StatusApproved         ContentStatus = "approved"          // Đã được duyệt
	StatusChangesRequested ContentStatus = "changes_requested" // Bị yêu cầu chỉnh sửa
	StatusScheduled        ContentStatus = "scheduled"         // Đã lên lịch đăng
	StatusPublished        ContentStatus = "published"         // Đã đăng
)

// AllStatuses trả về danh sách tất cả trạng thái hợp lệ theo thứ tự workflow.
func AllStatuses() []ContentStatus {
	return []ContentStatus{
		StatusIdea,
		StatusDraft,
		StatusInReview,
		StatusApproved,
		StatusChangesRequested,
		StatusScheduled,
		StatusPublished,
	}
}

// IsValid kiểm tra trạng thái có thuộc enum không.
func (s ContentStatus) IsValid() bool {
	switch s {
	case StatusIdea, StatusDraft, StatusInReview, StatusApproved,
		StatusChangesRequested, StatusScheduled, StatusPublished:
		return true
	}
	return false
}

// ValidateStatusTransition kiểm tra một bước chuyển trạng thái có hợp lệ không.
// Hàm thuần, không side effect. Trạng thái bằng nhau trả về nil và caller phải
// coi là no-op (không ghi audit record mới).
//
// Switch exhaustive trên from: thêm trạng thái mới bắt buộc phải bổ sung nhánh
// ở đây, tránh bỏ sót bước chuyển.
func ValidateStatusTransition(from, to ContentStatus) error {
	if !from.IsValid() || !to.IsValid() {
		return common.NewInvalidTransitionError(string(from), string(to))
	}
	if from == to {
		return nil
	}

	var allowed bool
	switch from {
	case StatusIdea:
		allowed = to == StatusDraft
	case StatusDraft:
		allowed = to == StatusIdea || to == StatusInReview
	case StatusInReview:
		allowed = to == StatusDraft || to == StatusApproved || to == StatusChangesRequested
	case StatusApproved:
		allowed = to == StatusInReview || to == StatusScheduled
	case StatusChangesRequested:
		allowed = to == StatusDraft || to == StatusInReview
	case StatusScheduled:
		allowed = to == StatusApproved || to == StatusPublished
	case StatusPublished:
		allowed = to == StatusScheduled
	}

	if !allowed {
		return common.NewInvalidTransitionError(string(from), string(to))
	}
	return nil
}
