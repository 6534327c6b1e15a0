package workflowhdl

import (
	"fmt"

	basehdl "creator_studio/internal/api/base/handler"
	"creator_studio/internal/api/middleware"
	workflowdto "creator_studio/internal/api/workflow/dto"
	workflowmodels "creator_studio/internal/api/workflow/models"
	workflowsvc "creator_studio/internal/api/workflow/service"
	"creator_studio/internal/common"
	"creator_studio/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkflowHandler xử lý các workflow command: submit, approve, request changes.
type WorkflowHandler struct {
	*basehdl.BaseHandler[interface{}, interface{}, interface{}]
	WorkflowService *workflowsvc.WorkflowService
}

// NewWorkflowHandler tạo mới WorkflowHandler
func NewWorkflowHandler() (*WorkflowHandler, error) {
	workflowService, err := workflowsvc.NewWorkflowService()
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow service: %v", err)
	}
	return &WorkflowHandler{
		BaseHandler:     basehdl.NewBaseHandler[interface{}, interface{}, interface{}](nil),
		WorkflowService: workflowService,
	}, nil
}

// parseItemID parse và validate :id từ URL.
func (h *WorkflowHandler) parseItemID(c fiber.Ctx) (primitive.ObjectID, error) {
	var params workflowdto.WorkflowItemParams
	if err := h.ParseRequestParams(c, &params); err != nil {
		return primitive.NilObjectID, err
	}
	if !primitive.IsValidObjectID(params.ID) {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, nil)
	}
	return utility.String2ObjectID(params.ID), nil
}

// parseTeamID chuyển teamId tùy chọn trong body thành ObjectID, "" thành nil.
func (h *WorkflowHandler) parseTeamID(raw string) (*primitive.ObjectID, error) {
	if raw == "" {
		return nil, nil
	}
	if !primitive.IsValidObjectID(raw) {
		return nil, common.NewError(common.ErrCodeValidationFormat, "TeamID không hợp lệ", common.StatusBadRequest, nil)
	}
	id := utility.String2ObjectID(raw)
	return &id, nil
}

// HandleSubmit POST /:id/submit - gửi nội dung vào quy trình duyệt của team.
// Body tùy chọn: teamId (mặc định team hiện tại của item).
func (h *WorkflowHandler) HandleSubmit(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actorID, err := middleware.ActorFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		itemID, err := h.parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input workflowdto.SubmitInput
		if len(c.Body()) > 0 {
			if err := h.ParseRequestBody(c, &input); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
		}
		teamID, err := h.parseTeamID(input.TeamID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		item, err := h.WorkflowService.Submit(c.Context(), itemID, teamID, actorID)
		h.HandleResponse(c, item, err)
		return nil
	})
}

// HandleApprove POST /:id/approve - duyệt nội dung đang in_review, feedback tùy chọn
func (h *WorkflowHandler) HandleApprove(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actorID, err := middleware.ActorFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		itemID, err := h.parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		// Body có thể vắng mặt hoàn toàn
		var input workflowdto.ApproveInput
		if len(c.Body()) > 0 {
			if err := h.ParseRequestBody(c, &input); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
		}
		teamID, err := h.parseTeamID(input.TeamID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		item, err := h.WorkflowService.Approve(c.Context(), itemID, teamID, actorID, input.Feedback)
		h.HandleResponse(c, item, err)
		return nil
	})
}

// HandleRequestChanges POST /:id/request-changes - yêu cầu chỉnh sửa kèm feedback
func (h *WorkflowHandler) HandleRequestChanges(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actorID, err := middleware.ActorFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		itemID, err := h.parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		// Feedback rỗng được chấp nhận, body vắng mặt coi như feedback rỗng
		var input workflowdto.RequestChangesInput
		if len(c.Body()) > 0 {
			if err := h.ParseRequestBody(c, &input); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
		}
		teamID, err := h.parseTeamID(input.TeamID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		item, err := h.WorkflowService.RequestChanges(c.Context(), itemID, teamID, actorID, input.Feedback)
		h.HandleResponse(c, item, err)
		return nil
	})
}

// HandleApprovalHistory GET /:id/approval-history - toàn bộ lịch sử duyệt của một item
func (h *WorkflowHandler) HandleApprovalHistory(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := h.parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		history, err := h.WorkflowService.ApprovalRecords().GetHistoryByContentItemID(c.Context(), itemID)
		if history == nil && err == nil {
			history = []workflowmodels.ApprovalRecord{}
		}
		h.HandleResponse(c, history, err)
		return nil
	})
}
