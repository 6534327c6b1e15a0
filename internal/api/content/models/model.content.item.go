package contentmodels

import (
	"fmt"
	"strings"

	"creator_studio/internal/common"
	"creator_studio/internal/utility"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Giới hạn dữ liệu của content item.
const (
	MaxTitleLength  = 200  // Độ dài tối đa của title
	MaxNotesLength  = 5000 // Độ dài tối đa của notes
	MaxPlatformTags = 10   // Số lượng platform tag tối đa
)

// ContentItem đại diện cho một nội dung trong pipeline sản xuất của creator.
// Mọi mutation đi qua các method thuần bên dưới: method trả về (changed, error),
// tự bump Version khi có thay đổi và từ chối mutation khi item đã soft-delete.
type ContentItem struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của content item

	// ===== OWNERSHIP =====
	OwnerID primitive.ObjectID  `json:"ownerId" bson:"ownerId" index:"single:1"`           // Creator sở hữu nội dung
	TeamID  *primitive.ObjectID `json:"teamId,omitempty" bson:"teamId,omitempty" index:"single:1"` // Team nội dung thuộc về (tùy chọn)

	// ===== CONTENT =====
	Title        string   `json:"title" bson:"title"`                                 // Tiêu đề (bắt buộc, ≤200 ký tự)
	Notes        string   `json:"notes,omitempty" bson:"notes,omitempty"`             // Ghi chú (tùy chọn, ≤5000 ký tự)
	PlatformTags []string `json:"platformTags,omitempty" bson:"platformTags,omitempty"` // Platform tags (≤10, lowercase, unique)

	// ===== WORKFLOW =====
	Status ContentStatus `json:"status" bson:"status" index:"single:1"` // Trạng thái vòng đời hiện tại

	// ===== SCHEDULING =====
	ScheduledAt *int64 `json:"scheduledAt,omitempty" bson:"scheduledAt,omitempty" index:"single:1"` // Thời gian lên lịch đăng, UTC mili giây (tùy chọn)

	// ===== SOFT DELETE =====
	IsDeleted bool   `json:"isDeleted" bson:"isDeleted" index:"single:1"`    // Đã soft-delete chưa
	DeletedAt *int64 `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"` // Thời điểm soft-delete

	// ===== CONCURRENCY =====
	Version int64 `json:"version" bson:"version"` // Optimistic concurrency token, tăng trên mọi mutation

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// NewContentItem tạo content item mới ở trạng thái idea.
func NewContentItem(ownerID primitive.ObjectID, teamID *primitive.ObjectID, title string, notes string) (*ContentItem, error) {
	if err := validateContent(title, notes); err != nil {
		return nil, err
	}
	now := utility.CurrentTimeInMilli()
	return &ContentItem{
		OwnerID:   ownerID,
		TeamID:    teamID,
		Title:     strings.TrimSpace(title),
		Notes:     notes,
		Status:    StatusIdea,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// validateContent kiểm tra title và notes theo giới hạn độ dài.
func validateContent(title string, notes string) error {
	if strings.TrimSpace(title) == "" {
		return common.NewError(common.ErrCodeValidationInput, "Title không được để trống", common.StatusBadRequest, nil)
	}
	if len([]rune(title)) > MaxTitleLength {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Title vượt quá độ dài cho phép (%d ký tự)", MaxTitleLength),
			common.StatusBadRequest,
			nil,
		)
	}
	if len([]rune(notes)) > MaxNotesLength {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Notes vượt quá độ dài cho phép (%d ký tự)", MaxNotesLength),
			common.StatusBadRequest,
			nil,
		)
	}
	return nil
}

// ensureMutable từ chối mọi mutation khi item đã soft-delete.
func (m *ContentItem) ensureMutable() error {
	if m.IsDeleted {
		return common.ErrItemDeleted
	}
	return nil
}

// touch bump Version và cập nhật UpdatedAt. Gọi sau mỗi mutation thành công.
func (m *ContentItem) touch() {
	m.Version++
	m.UpdatedAt = utility.CurrentTimeInMilli()
}

// UpdateContent cập nhật title và notes.
func (m *ContentItem) UpdateContent(title string, notes string) (bool, error) {
	if err := m.ensureMutable(); err != nil {
		return false, err
	}
	if err := validateContent(title, notes); err != nil {
		return false, err
	}
	title = strings.TrimSpace(title)
	if m.Title == title && m.Notes == notes {
		return false, nil
	}
	m.Title = title
	m.Notes = notes
	m.touch()
	return true, nil
}

// UpdateStatus chuyển trạng thái qua validator. Trạng thái không đổi là no-op.
func (m *ContentItem) UpdateStatus(newStatus ContentStatus) (bool, error) {
	if err := m.ensureMutable(); err != nil {
		return false, err
	}
	if err := ValidateStatusTransition(m.Status, newStatus); err != nil {
		return false, err
	}
	if m.Status == newStatus {
		return false, nil
	}
	m.Status = newStatus
	m.touch()
	return true, nil
}

// NormalizeTag chuẩn hóa một platform tag: trim và lowercase.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// AddPlatformTag thêm một platform tag.
// Tag trùng hoặc vượt quá giới hạn là no-op trả về false, không phải lỗi.
func (m *ContentItem) AddPlatformTag(tag string) (bool, error) {
	if err := m.ensureMutable(); err != nil {
		return false, err
	}
	tag = NormalizeTag(tag)
	if tag == "" {
		return false, nil
	}
	if utility.Contains(m.PlatformTags, tag) {
		return false, nil
	}
	if len(m.PlatformTags) >= MaxPlatformTags {
		return false, nil
	}
	m.PlatformTags = append(m.PlatformTags, tag)
	m.touch()
	return true, nil
}

// RemovePlatformTag xóa một platform tag. Tag không tồn tại là no-op.
func (m *ContentItem) RemovePlatformTag(tag string) (bool, error) {
	if err := m.ensureMutable(); err != nil {
		return false, err
	}
	tag = NormalizeTag(tag)
	for i, t := range m.PlatformTags {
		if t == tag {
			m.PlatformTags = append(m.PlatformTags[:i], m.PlatformTags[i+1:]...)
			m.touch()
			return true, nil
		}
	}
	return false, nil
}

// SetPlatformTags thay toàn bộ tag set: chuẩn hóa, dedupe, cắt tại giới hạn.
func (m *ContentItem) SetPlatformTags(tags []string) (bool, error) {
	if err := m.ensureMutable(); err != nil {
		return false, err
	}

	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = NormalizeTag(tag)
		if tag == "" || utility.Contains(normalized, tag) {
			continue
		}
		normalized = append(normalized, tag)
		if len(normalized) == MaxPlatformTags {
			break
		}
	}

	if equalStrings(m.PlatformTags, normalized) {
		return false, nil
	}
	m.PlatformTags = normalized
	m.touch()
	return true, nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SoftDelete đánh dấu item đã xóa. Idempotent: item đã xóa là no-op.
func (m *ContentItem) SoftDelete() bool {
	if m.IsDeleted {
		return false
	}
	now := utility.CurrentTimeInMilli()
	m.IsDeleted = true
	m.DeletedAt = &now
	m.touch()
	return true
}

// Restore khôi phục item đã soft-delete. Idempotent: item chưa xóa là no-op.
func (m *ContentItem) Restore() bool {
	if !m.IsDeleted {
		return false
	}
	m.IsDeleted = false
	m.DeletedAt = nil
	m.touch()
	return true
}

// UpdateScheduledDate cập nhật thời gian lên lịch (UTC mili giây).
// Chênh lệch dưới một giây coi như không đổi (no-op) để tránh notification thừa.
func (m *ContentItem) UpdateScheduledDate(scheduledAt int64) (bool, error) {
	if err := m.ensureMutable(); err != nil {
		return false, err
	}
	if m.ScheduledAt != nil {
		diff := *m.ScheduledAt - scheduledAt
		if diff < 0 {
			diff = -diff
		}
		if diff < 1000 {
			return false, nil
		}
	}
	m.ScheduledAt = &scheduledAt
	m.touch()
	return true, nil
}

// ClearScheduledDate xóa thời gian lên lịch. Chưa có lịch là no-op.
func (m *ContentItem) ClearScheduledDate() (bool, error) {
	if err := m.ensureMutable(); err != nil {
		return false, err
	}
	if m.ScheduledAt == nil {
		return false, nil
	}
	m.ScheduledAt = nil
	m.touch()
	return true, nil
}
