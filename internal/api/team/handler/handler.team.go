package teamhdl

import (
	"fmt"

	basehdl "creator_studio/internal/api/base/handler"
	"creator_studio/internal/api/middleware"
	teamdto "creator_studio/internal/api/team/dto"
	teammodels "creator_studio/internal/api/team/models"
	teamsvc "creator_studio/internal/api/team/service"
	"creator_studio/internal/common"
	"creator_studio/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamHandler xử lý các request liên quan đến Team
type TeamHandler struct {
	*basehdl.BaseHandler[teammodels.Team, teamdto.TeamCreateInput, teamdto.TeamUpdateInput]
	TeamService *teamsvc.TeamService
}

// NewTeamHandler tạo mới TeamHandler
func NewTeamHandler() (*TeamHandler, error) {
	teamService, err := teamsvc.NewTeamService()
	if err != nil {
		return nil, fmt.Errorf("failed to create team service: %v", err)
	}
	hdl := &TeamHandler{
		TeamService: teamService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[teammodels.Team, teamdto.TeamCreateInput, teamdto.TeamUpdateInput](teamService.BaseServiceMongoImpl)
	return hdl, nil
}

// parseTeamID parse và validate :id từ URL.
func (h *TeamHandler) parseTeamID(c fiber.Ctx) (primitive.ObjectID, error) {
	var params teamdto.TeamIDParams
	if err := h.ParseRequestParams(c, &params); err != nil {
		return primitive.NilObjectID, err
	}
	if !primitive.IsValidObjectID(params.ID) {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, nil)
	}
	return utility.String2ObjectID(params.ID), nil
}

// InsertOne override CRUD mặc định: owner là user đã xác thực.
func (h *TeamHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actorID, err := middleware.ActorFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input teamdto.TeamCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		team, err := h.TeamService.CreateTeam(c.Context(), actorID, input.Name)
		h.HandleResponse(c, team, err)
		return nil
	})
}

// HandleConfigureWorkflow PUT /:id/workflow - ghi đè workflow policy của team
func (h *TeamHandler) HandleConfigureWorkflow(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actorID, err := middleware.ActorFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		teamID, err := h.parseTeamID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input teamdto.ConfigureWorkflowInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		approverIDs := make([]primitive.ObjectID, 0, len(input.ApproverIDs))
		for _, id := range input.ApproverIDs {
			if !primitive.IsValidObjectID(id) {
				h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ApproverID không hợp lệ", common.StatusBadRequest, nil))
				return nil
			}
			approverIDs = append(approverIDs, utility.String2ObjectID(id))
		}

		team, err := h.TeamService.ConfigureWorkflow(c.Context(), teamID, actorID, input.RequiresApproval, approverIDs)
		h.HandleResponse(c, team, err)
		return nil
	})
}

// HandleAddMember POST /:id/members - thêm thành viên
func (h *TeamHandler) HandleAddMember(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actorID, err := middleware.ActorFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		teamID, err := h.parseTeamID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input teamdto.TeamMemberInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if !primitive.IsValidObjectID(input.UserID) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "UserID không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		team, err := h.TeamService.AddMember(c.Context(), teamID, actorID, utility.String2ObjectID(input.UserID), teammodels.TeamRole(input.Role))
		h.HandleResponse(c, team, err)
		return nil
	})
}

// HandleUpdateMemberRole PUT /:id/members - đổi vai trò thành viên
func (h *TeamHandler) HandleUpdateMemberRole(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actorID, err := middleware.ActorFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		teamID, err := h.parseTeamID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input teamdto.TeamMemberInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if !primitive.IsValidObjectID(input.UserID) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "UserID không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		team, err := h.TeamService.UpdateMemberRole(c.Context(), teamID, actorID, utility.String2ObjectID(input.UserID), teammodels.TeamRole(input.Role))
		h.HandleResponse(c, team, err)
		return nil
	})
}

// HandleRemoveMember DELETE /:id/members - xóa thành viên
func (h *TeamHandler) HandleRemoveMember(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actorID, err := middleware.ActorFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		teamID, err := h.parseTeamID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input teamdto.TeamMemberRemoveInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if !primitive.IsValidObjectID(input.UserID) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "UserID không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		team, err := h.TeamService.RemoveMember(c.Context(), teamID, actorID, utility.String2ObjectID(input.UserID))
		h.HandleResponse(c, team, err)
		return nil
	})
}
