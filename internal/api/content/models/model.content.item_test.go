// Package contentmodels - Test các mutation thuần trên ContentItem.
package contentmodels

import (
	"strings"
	"testing"

	"creator_studio/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestItem(t *testing.T) *ContentItem {
	t.Helper()
	item, err := NewContentItem(primitive.NewObjectID(), nil, "Video ra mắt sản phẩm", "kịch bản nháp")
	if err != nil {
		t.Fatalf("NewContentItem lỗi: %v", err)
	}
	return item
}

func TestNewContentItem_Defaults(t *testing.T) {
	item := newTestItem(t)
	if item.Status != StatusIdea {
		t.Errorf("item mới phải ở trạng thái idea, nhận %s", item.Status)
	}
	if item.Version != 1 {
		t.Errorf("item mới phải có version 1, nhận %d", item.Version)
	}
	if item.IsDeleted {
		t.Error("item mới không được đánh dấu deleted")
	}
}

func TestNewContentItem_Validation(t *testing.T) {
	if _, err := NewContentItem(primitive.NewObjectID(), nil, "   ", ""); err == nil {
		t.Error("title rỗng phải bị từ chối")
	}
	if _, err := NewContentItem(primitive.NewObjectID(), nil, strings.Repeat("a", MaxTitleLength+1), ""); err == nil {
		t.Error("title quá dài phải bị từ chối")
	}
	if _, err := NewContentItem(primitive.NewObjectID(), nil, "ok", strings.Repeat("b", MaxNotesLength+1)); err == nil {
		t.Error("notes quá dài phải bị từ chối")
	}
}

func TestUpdateContent_BumpsVersion(t *testing.T) {
	item := newTestItem(t)
	changed, err := item.UpdateContent("Tiêu đề mới", "ghi chú mới")
	if err != nil {
		t.Fatalf("UpdateContent lỗi: %v", err)
	}
	if !changed {
		t.Error("UpdateContent với nội dung khác phải trả về changed=true")
	}
	if item.Version != 2 {
		t.Errorf("version phải tăng lên 2, nhận %d", item.Version)
	}

	// Cùng nội dung là no-op, version giữ nguyên
	changed, err = item.UpdateContent("Tiêu đề mới", "ghi chú mới")
	if err != nil {
		t.Fatalf("UpdateContent no-op lỗi: %v", err)
	}
	if changed {
		t.Error("UpdateContent cùng nội dung phải là no-op")
	}
	if item.Version != 2 {
		t.Errorf("version không được tăng khi no-op, nhận %d", item.Version)
	}
}

func TestUpdateStatus_FollowsTransitionTable(t *testing.T) {
	item := newTestItem(t)
	if _, err := item.UpdateStatus(StatusDraft); err != nil {
		t.Fatalf("idea -> draft phải hợp lệ: %v", err)
	}
	if _, err := item.UpdateStatus(StatusPublished); err == nil {
		t.Error("draft -> published phải bị từ chối")
	}
	changed, err := item.UpdateStatus(StatusDraft)
	if err != nil {
		t.Fatalf("draft -> draft phải là no-op: %v", err)
	}
	if changed {
		t.Error("trạng thái không đổi phải trả về changed=false")
	}
}

func TestPlatformTags_NormalizeAndDedupe(t *testing.T) {
	item := newTestItem(t)
	if changed, _ := item.AddPlatformTag("  YouTube  "); !changed {
		t.Fatal("thêm tag mới phải trả về changed=true")
	}
	if item.PlatformTags[0] != "youtube" {
		t.Errorf("tag phải được trim và lowercase, nhận %q", item.PlatformTags[0])
	}
	if changed, _ := item.AddPlatformTag("YOUTUBE"); changed {
		t.Error("tag trùng (sau chuẩn hóa) phải là no-op")
	}
	if changed, _ := item.AddPlatformTag(""); changed {
		t.Error("tag rỗng phải là no-op")
	}
}

func TestPlatformTags_CapIsNoop(t *testing.T) {
	item := newTestItem(t)
	tags := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	for _, tag := range tags {
		if changed, err := item.AddPlatformTag(tag); err != nil || !changed {
			t.Fatalf("thêm tag %q lỗi: changed=%v err=%v", tag, changed, err)
		}
	}
	versionBefore := item.Version
	changed, err := item.AddPlatformTag("k")
	if err != nil {
		t.Fatalf("thêm tag vượt giới hạn không được trả lỗi: %v", err)
	}
	if changed {
		t.Error("thêm tag vượt giới hạn phải là no-op, không phải lỗi")
	}
	if item.Version != versionBefore {
		t.Error("no-op không được bump version")
	}
	if len(item.PlatformTags) != MaxPlatformTags {
		t.Errorf("tag set phải giữ %d phần tử, nhận %d", MaxPlatformTags, len(item.PlatformTags))
	}
}

func TestSetPlatformTags_TruncatesAtCap(t *testing.T) {
	item := newTestItem(t)
	input := []string{"A", "a", " b ", "c", "d", "e", "f", "g", "h", "i", "j", "k"}
	if _, err := item.SetPlatformTags(input); err != nil {
		t.Fatalf("SetPlatformTags lỗi: %v", err)
	}
	if len(item.PlatformTags) != MaxPlatformTags {
		t.Errorf("tag set phải bị cắt còn %d, nhận %d: %v", MaxPlatformTags, len(item.PlatformTags), item.PlatformTags)
	}
	if item.PlatformTags[0] != "a" || item.PlatformTags[1] != "b" {
		t.Errorf("tag phải được chuẩn hóa và dedupe theo thứ tự, nhận %v", item.PlatformTags)
	}
}

func TestSoftDelete_RefusesMutations(t *testing.T) {
	item := newTestItem(t)
	if !item.SoftDelete() {
		t.Fatal("soft delete lần đầu phải trả về true")
	}
	if item.SoftDelete() {
		t.Error("soft delete lặp lại phải là no-op")
	}
	if item.DeletedAt == nil {
		t.Error("DeletedAt phải được set khi soft delete")
	}

	if _, err := item.UpdateContent("x", "y"); err != common.ErrItemDeleted {
		t.Errorf("mutation trên item đã xóa phải trả ErrItemDeleted, nhận %v", err)
	}
	if _, err := item.UpdateStatus(StatusDraft); err != common.ErrItemDeleted {
		t.Errorf("đổi trạng thái trên item đã xóa phải trả ErrItemDeleted, nhận %v", err)
	}
	if _, err := item.AddPlatformTag("tiktok"); err != common.ErrItemDeleted {
		t.Errorf("thêm tag trên item đã xóa phải trả ErrItemDeleted, nhận %v", err)
	}

	if !item.Restore() {
		t.Fatal("restore item đã xóa phải trả về true")
	}
	if item.Restore() {
		t.Error("restore lặp lại phải là no-op")
	}
	if item.DeletedAt != nil {
		t.Error("DeletedAt phải bị xóa khi restore")
	}
	if _, err := item.UpdateContent("tiêu đề sau restore", ""); err != nil {
		t.Errorf("mutation sau restore phải hoạt động lại: %v", err)
	}
}

func TestScheduledDate_SubSecondIsNoop(t *testing.T) {
	item := newTestItem(t)
	base := int64(1_700_000_000_000)
	if changed, err := item.UpdateScheduledDate(base); err != nil || !changed {
		t.Fatalf("đặt lịch lần đầu: changed=%v err=%v", changed, err)
	}
	versionBefore := item.Version

	// Chênh lệch dưới 1 giây coi như không đổi
	if changed, _ := item.UpdateScheduledDate(base + 500); changed {
		t.Error("chênh lệch dưới 1 giây phải là no-op")
	}
	if item.Version != versionBefore {
		t.Error("no-op không được bump version")
	}

	// Chênh lệch tính theo khoảng cách tuyệt đối, không theo mốc giây:
	// 1 ms qua ranh giới giây vẫn là no-op
	if changed, _ := item.UpdateScheduledDate(base + 999); changed {
		t.Error("chênh lệch 999ms phải là no-op")
	}
	if changed, _ := item.UpdateScheduledDate(base - 1); changed {
		t.Error("chênh lệch 1ms qua ranh giới giây phải là no-op")
	}

	if changed, _ := item.UpdateScheduledDate(base + 1500); !changed {
		t.Error("chênh lệch trên 1 giây phải là thay đổi thật")
	}

	if changed, _ := item.ClearScheduledDate(); !changed {
		t.Error("xóa lịch khi đang có phải trả về changed=true")
	}
	if item.ScheduledAt != nil {
		t.Error("ScheduledAt phải bị xóa")
	}
	if changed, _ := item.ClearScheduledDate(); changed {
		t.Error("xóa lịch khi không có phải là no-op")
	}
}
