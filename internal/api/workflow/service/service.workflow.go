package workflowsvc

import (
	"context"
	"fmt"

	contentmodels "creator_studio/internal/api/content/models"
	contentsvc "creator_studio/internal/api/content/service"
	"creator_studio/internal/api/events"
	teammodels "creator_studio/internal/api/team/models"
	teamsvc "creator_studio/internal/api/team/service"
	workflowmodels "creator_studio/internal/api/workflow/models"
	"creator_studio/internal/common"
	"creator_studio/internal/global"
	"creator_studio/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WorkflowService điều phối quy trình duyệt nội dung: submit, approve, request changes.
// Mỗi command là một transaction: đổi trạng thái item (CAS trên version) và ghi
// approval record trong cùng transaction; event chỉ phát SAU khi commit thành công.
type WorkflowService struct {
	contentItemService    *contentsvc.ContentItemService
	teamService           *teamsvc.TeamService
	approvalRecordService *ApprovalRecordService
}

// NewWorkflowService tạo mới WorkflowService
func NewWorkflowService() (*WorkflowService, error) {
	contentItemService, err := contentsvc.NewContentItemService()
	if err != nil {
		return nil, fmt.Errorf("failed to create content item service: %v", err)
	}
	teamService, err := teamsvc.NewTeamService()
	if err != nil {
		return nil, fmt.Errorf("failed to create team service: %v", err)
	}
	approvalRecordService, err := NewApprovalRecordService()
	if err != nil {
		return nil, fmt.Errorf("failed to create approval record service: %v", err)
	}
	return &WorkflowService{
		contentItemService:    contentItemService,
		teamService:           teamService,
		approvalRecordService: approvalRecordService,
	}, nil
}

// ApprovalRecords trả về service đọc audit trail (dùng bởi handler và router).
func (s *WorkflowService) ApprovalRecords() *ApprovalRecordService {
	return s.approvalRecordService
}

// commitTransition ghi item (CAS trên version) và approval record trong cùng transaction.
// MatchedCount = 0 nghĩa là một writer khác đã commit trước: trả ErrConcurrencyConflict,
// engine không tự retry.
func (s *WorkflowService) commitTransition(ctx context.Context, item *contentmodels.ContentItem, expectedVersion int64, record *workflowmodels.ApprovalRecord) error {
	session, err := global.MongoDB_Session.StartSession()
	if err != nil {
		return common.ConvertMongoError(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{"_id": item.ID, "version": expectedVersion}
		result, err := s.contentItemService.Collection().ReplaceOne(sc, filter, item)
		if err != nil {
			return nil, common.ConvertMongoError(err)
		}
		if result.MatchedCount == 0 {
			return nil, common.ErrConcurrencyConflict
		}

		insertResult, err := s.approvalRecordService.Collection().InsertOne(sc, record)
		if err != nil {
			return nil, common.ConvertMongoError(err)
		}
		if oid, ok := insertResult.InsertedID.(primitive.ObjectID); ok {
			record.ID = oid
		}
		return nil, nil
	})
	return err
}

// Submit gửi một content item vào quy trình duyệt của team.
// teamID tùy chọn: nil thì dùng team hiện tại của item.
// Điều kiện theo thứ tự: item tồn tại, team tồn tại, actor là owner của item,
// actor là thành viên team, team đã bật duyệt, trạng thái là draft hoặc changes_requested.
func (s *WorkflowService) Submit(ctx context.Context, itemID primitive.ObjectID, teamID *primitive.ObjectID, actorID primitive.ObjectID) (*contentmodels.ContentItem, error) {
	item, err := s.contentItemService.LoadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.IsDeleted {
		return nil, common.ErrItemDeleted
	}
	targetTeamID := teamID
	if targetTeamID == nil {
		targetTeamID = item.TeamID
	}
	if targetTeamID == nil {
		return nil, common.ErrTeamNotFound
	}
	if teamID != nil && item.TeamID != nil && *item.TeamID != *teamID {
		return nil, common.NewWorkflowRuleError(
			common.RuleInvalidTeam,
			"Nội dung không thuộc team được chỉ định",
			map[string]interface{}{"teamId": teamID.Hex()},
		)
	}
	team, err := s.teamService.LoadTeam(ctx, *targetTeamID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != actorID {
		return nil, common.ErrNotContentOwner
	}
	if !team.IsMember(actorID) {
		return nil, common.ErrNotTeamMember
	}
	if !team.Workflow.RequiresApproval {
		return nil, common.NewWorkflowRuleError(
			common.RuleWorkflowNotEnabled,
			"Team chưa bật yêu cầu duyệt nội dung",
			map[string]interface{}{"teamId": team.ID.Hex()},
		)
	}
	if item.Status != contentmodels.StatusDraft && item.Status != contentmodels.StatusChangesRequested {
		return nil, common.NewWorkflowRuleError(
			common.RuleInvalidStatus,
			"Chỉ gửi duyệt được nội dung ở trạng thái draft hoặc changes_requested",
			map[string]interface{}{"status": string(item.Status)},
		)
	}

	action := workflowmodels.ActionSubmitted
	if item.Status == contentmodels.StatusChangesRequested {
		action = workflowmodels.ActionResubmitted
	}
	fromStatus := item.Status
	expectedVersion := item.Version

	if _, err := item.UpdateStatus(contentmodels.StatusInReview); err != nil {
		return nil, err
	}

	record := &workflowmodels.ApprovalRecord{
		ContentItemID: item.ID,
		TeamID:        team.ID,
		ActorID:       actorID,
		Action:        action,
		FromStatus:    string(fromStatus),
		ToStatus:      string(item.Status),
		CreatedAt:     utility.CurrentTimeInMilli(),
	}
	if err := s.commitTransition(ctx, item, expectedVersion, record); err != nil {
		return nil, err
	}

	events.EmitWorkflow(ctx, events.WorkflowEvent{
		Type:          events.WorkflowSubmitted,
		ContentItemID: item.ID,
		TeamID:        team.ID,
		ActorID:       actorID,
		FromStatus:    string(fromStatus),
		ToStatus:      string(item.Status),
		OccurredAt:    record.CreatedAt,
	})
	return item, nil
}

// resolveReviewContext load item, record mới nhất và team cho approve/request-changes.
// Team mục tiêu: teamID chỉ định, không có thì team hiện tại của item, cuối cùng là
// team trên record. Record mới nhất phải tham chiếu đúng team mục tiêu: nội dung
// gửi duyệt ở team khác không duyệt được ở đây.
func (s *WorkflowService) resolveReviewContext(ctx context.Context, itemID primitive.ObjectID, teamID *primitive.ObjectID) (*contentmodels.ContentItem, *workflowmodels.ApprovalRecord, *teammodels.Team, error) {
	item, err := s.contentItemService.LoadItem(ctx, itemID)
	if err != nil {
		return nil, nil, nil, err
	}
	if item.IsDeleted {
		return nil, nil, nil, common.ErrItemDeleted
	}

	record, err := s.approvalRecordService.GetLatestByContentItemID(ctx, itemID)
	if err != nil {
		return nil, nil, nil, err
	}
	if record == nil {
		return nil, nil, nil, common.NewWorkflowRuleError(
			common.RuleInvalidTeam,
			"Nội dung chưa được gửi duyệt",
			map[string]interface{}{"contentItemId": item.ID.Hex()},
		)
	}

	targetTeamID := teamID
	if targetTeamID == nil {
		targetTeamID = item.TeamID
	}
	if targetTeamID == nil {
		targetTeamID = &record.TeamID
	}
	if record.TeamID != *targetTeamID {
		return nil, nil, nil, common.NewWorkflowRuleError(
			common.RuleInvalidTeam,
			"Nội dung chưa được gửi duyệt trong team này",
			map[string]interface{}{"contentItemId": item.ID.Hex(), "teamId": targetTeamID.Hex()},
		)
	}

	team, err := s.teamService.LoadTeam(ctx, record.TeamID)
	if err != nil {
		return nil, nil, nil, err
	}
	return item, record, team, nil
}

// Approve duyệt một content item đang in_review. Feedback tùy chọn, được lưu vào record.
func (s *WorkflowService) Approve(ctx context.Context, itemID primitive.ObjectID, teamID *primitive.ObjectID, actorID primitive.ObjectID, feedback string) (*contentmodels.ContentItem, error) {
	item, _, team, err := s.resolveReviewContext(ctx, itemID, teamID)
	if err != nil {
		return nil, err
	}
	if !team.CanApprove(actorID) {
		return nil, common.NewAccessDeniedError("permission to approve")
	}
	if item.Status != contentmodels.StatusInReview {
		return nil, common.NewWorkflowRuleError(
			common.RuleInvalidStatus,
			"Chỉ duyệt được nội dung ở trạng thái in_review",
			map[string]interface{}{"status": string(item.Status)},
		)
	}

	fromStatus := item.Status
	expectedVersion := item.Version
	if _, err := item.UpdateStatus(contentmodels.StatusApproved); err != nil {
		return nil, err
	}

	record := &workflowmodels.ApprovalRecord{
		ContentItemID: item.ID,
		TeamID:        team.ID,
		ActorID:       actorID,
		Action:        workflowmodels.ActionApproved,
		FromStatus:    string(fromStatus),
		ToStatus:      string(item.Status),
		Feedback:      feedback,
		CreatedAt:     utility.CurrentTimeInMilli(),
	}
	if err := s.commitTransition(ctx, item, expectedVersion, record); err != nil {
		return nil, err
	}

	events.EmitWorkflow(ctx, events.WorkflowEvent{
		Type:          events.WorkflowApproved,
		ContentItemID: item.ID,
		TeamID:        team.ID,
		ActorID:       actorID,
		FromStatus:    string(fromStatus),
		ToStatus:      string(item.Status),
		Feedback:      feedback,
		OccurredAt:    record.CreatedAt,
	})
	return item, nil
}

// RequestChanges yêu cầu chỉnh sửa một content item đang in_review, kèm feedback.
// Feedback rỗng được chấp nhận.
func (s *WorkflowService) RequestChanges(ctx context.Context, itemID primitive.ObjectID, teamID *primitive.ObjectID, actorID primitive.ObjectID, feedback string) (*contentmodels.ContentItem, error) {
	item, _, team, err := s.resolveReviewContext(ctx, itemID, teamID)
	if err != nil {
		return nil, err
	}
	if !team.CanApprove(actorID) {
		return nil, common.NewAccessDeniedError("permission to request changes")
	}
	if item.Status != contentmodels.StatusInReview {
		return nil, common.NewWorkflowRuleError(
			common.RuleInvalidStatus,
			"Chỉ yêu cầu chỉnh sửa được nội dung ở trạng thái in_review",
			map[string]interface{}{"status": string(item.Status)},
		)
	}

	fromStatus := item.Status
	expectedVersion := item.Version
	if _, err := item.UpdateStatus(contentmodels.StatusChangesRequested); err != nil {
		return nil, err
	}

	record := &workflowmodels.ApprovalRecord{
		ContentItemID: item.ID,
		TeamID:        team.ID,
		ActorID:       actorID,
		Action:        workflowmodels.ActionChangesRequested,
		FromStatus:    string(fromStatus),
		ToStatus:      string(item.Status),
		Feedback:      feedback,
		CreatedAt:     utility.CurrentTimeInMilli(),
	}
	if err := s.commitTransition(ctx, item, expectedVersion, record); err != nil {
		return nil, err
	}

	events.EmitWorkflow(ctx, events.WorkflowEvent{
		Type:          events.WorkflowChangesRequested,
		ContentItemID: item.ID,
		TeamID:        team.ID,
		ActorID:       actorID,
		FromStatus:    string(fromStatus),
		ToStatus:      string(item.Status),
		Feedback:      feedback,
		OccurredAt:    record.CreatedAt,
	})
	return item, nil
}
