// Package contentmodels - Test bảng chuyển trạng thái vòng đời nội dung.
package contentmodels

import (
	"errors"
	"testing"

	"creator_studio/internal/common"
)

func TestValidateStatusTransition_AllowedPairs(t *testing.T) {
	allowed := []struct {
		from ContentStatus
		to   ContentStatus
	}{
		{StatusIdea, StatusDraft},
		{StatusDraft, StatusIdea},
		{StatusDraft, StatusInReview},
		{StatusInReview, StatusDraft},
		{StatusInReview, StatusApproved},
		{StatusInReview, StatusChangesRequested},
		{StatusApproved, StatusInReview},
		{StatusApproved, StatusScheduled},
		{StatusChangesRequested, StatusDraft},
		{StatusChangesRequested, StatusInReview},
		{StatusScheduled, StatusApproved},
		{StatusScheduled, StatusPublished},
		{StatusPublished, StatusScheduled},
	}
	for _, tc := range allowed {
		if err := ValidateStatusTransition(tc.from, tc.to); err != nil {
			t.Errorf("bước chuyển %s -> %s phải hợp lệ, nhận lỗi: %v", tc.from, tc.to, err)
		}
	}
}

func TestValidateStatusTransition_SameStatusIsNoop(t *testing.T) {
	for _, s := range AllStatuses() {
		if err := ValidateStatusTransition(s, s); err != nil {
			t.Errorf("chuyển %s -> %s (không đổi) phải là no-op, nhận lỗi: %v", s, s, err)
		}
	}
}

// TestValidateStatusTransition_FullGrid quét toàn bộ lưới cặp trạng thái:
// mọi cặp ngoài bảng chuyển (và không phải cùng trạng thái) phải bị từ chối.
func TestValidateStatusTransition_FullGrid(t *testing.T) {
	allowed := map[ContentStatus][]ContentStatus{
		StatusIdea:             {StatusDraft},
		StatusDraft:            {StatusIdea, StatusInReview},
		StatusInReview:         {StatusDraft, StatusApproved, StatusChangesRequested},
		StatusApproved:         {StatusInReview, StatusScheduled},
		StatusChangesRequested: {StatusDraft, StatusInReview},
		StatusScheduled:        {StatusApproved, StatusPublished},
		StatusPublished:        {StatusScheduled},
	}
	isAllowed := func(from, to ContentStatus) bool {
		if from == to {
			return true
		}
		for _, s := range allowed[from] {
			if s == to {
				return true
			}
		}
		return false
	}

	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			err := ValidateStatusTransition(from, to)
			if isAllowed(from, to) {
				if err != nil {
					t.Errorf("bước chuyển %s -> %s phải hợp lệ, nhận lỗi: %v", from, to, err)
				}
				continue
			}
			if err == nil {
				t.Errorf("bước chuyển %s -> %s phải bị từ chối", from, to)
				continue
			}
			var customErr *common.Error
			if !errors.As(err, &customErr) {
				t.Errorf("lỗi transition phải là *common.Error, nhận %T", err)
				continue
			}
			if customErr.Code != common.ErrCodeWorkflowTransition {
				t.Errorf("lỗi transition %s -> %s phải có code WorkflowTransition, nhận %v", from, to, customErr.Code)
			}
		}
	}
}

func TestValidateStatusTransition_InvalidEnum(t *testing.T) {
	if err := ValidateStatusTransition(ContentStatus("archived"), StatusDraft); err == nil {
		t.Error("trạng thái ngoài enum phải bị từ chối")
	}
	if err := ValidateStatusTransition(StatusDraft, ContentStatus("")); err == nil {
		t.Error("trạng thái đích rỗng phải bị từ chối")
	}
}

func TestAllStatuses_Count(t *testing.T) {
	if got := len(AllStatuses()); got != 7 {
		t.Errorf("vòng đời phải có 7 trạng thái, nhận %d", got)
	}
}
