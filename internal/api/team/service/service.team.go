package teamsvc

import (
	"context"
	"fmt"

	basesvc "creator_studio/internal/api/base/service"
	teammodels "creator_studio/internal/api/team/models"
	"creator_studio/internal/common"
	"creator_studio/internal/global"
	"creator_studio/internal/utility"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamService là service quản lý teams, thành viên và workflow policy.
type TeamService struct {
	*basesvc.BaseServiceMongoImpl[teammodels.Team]
}

// NewTeamService tạo mới TeamService
func NewTeamService() (*TeamService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Teams)
	if !exist {
		return nil, fmt.Errorf("failed to get teams collection: %v", common.ErrNotFound)
	}
	return &TeamService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[teammodels.Team](collection),
	}, nil
}

// CreateTeam tạo team mới với actor là owner. Workflow mặc định không yêu cầu duyệt.
func (s *TeamService) CreateTeam(ctx context.Context, ownerID primitive.ObjectID, name string) (*teammodels.Team, error) {
	now := utility.CurrentTimeInMilli()
	team := teammodels.Team{
		Name:      name,
		OwnerID:   ownerID,
		Workflow:  teammodels.WorkflowPolicy{RequiresApproval: false},
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.InsertOne(ctx, team)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// LoadTeam tìm team theo ID, chuẩn hóa not-found về lỗi domain.
func (s *TeamService) LoadTeam(ctx context.Context, id primitive.ObjectID) (*teammodels.Team, error) {
	team, err := s.FindOneById(ctx, id)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// saveTeam ghi lại members/workflow sau khi sửa in-memory.
func (s *TeamService) saveTeam(ctx context.Context, team *teammodels.Team) (*teammodels.Team, error) {
	team.UpdatedAt = utility.CurrentTimeInMilli()
	updated, err := s.UpdateById(ctx, team.ID, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"members":   team.Members,
			"workflow":  team.Workflow,
			"updatedAt": team.UpdatedAt,
		},
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ConfigureWorkflow ghi đè workflow policy của team.
// Chỉ owner/admin được cấu hình; approver chỉ định phải là thành viên team.
// Policy mới KHÔNG hồi tố: item đang in_review vẫn duyệt được theo record đã có.
func (s *TeamService) ConfigureWorkflow(ctx context.Context, teamID primitive.ObjectID, actorID primitive.ObjectID, requiresApproval bool, approverIDs []primitive.ObjectID) (*teammodels.Team, error) {
	team, err := s.LoadTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !team.CanConfigureWorkflow(actorID) {
		return nil, common.NewAccessDeniedError("permission to configure workflow")
	}

	// Dedupe và kiểm tra từng approver là thành viên
	unique := make([]primitive.ObjectID, 0, len(approverIDs))
	for _, id := range approverIDs {
		seen := false
		for _, u := range unique {
			if u == id {
				seen = true
				break
			}
		}
		if seen {
			continue
		}
		if !team.IsMember(id) {
			return nil, common.NewError(
				common.ErrCodeValidationInput,
				"Approver chỉ định phải là thành viên của team",
				common.StatusBadRequest,
				map[string]interface{}{"userId": id.Hex()},
			)
		}
		unique = append(unique, id)
	}

	team.Workflow = teammodels.WorkflowPolicy{
		RequiresApproval: requiresApproval,
		ApproverIDs:      unique,
	}
	return s.saveTeam(ctx, team)
}

// AddMember thêm thành viên vào team. Chỉ owner/admin được thêm; không thêm được role owner.
func (s *TeamService) AddMember(ctx context.Context, teamID primitive.ObjectID, actorID primitive.ObjectID, userID primitive.ObjectID, role teammodels.TeamRole) (*teammodels.Team, error) {
	team, err := s.LoadTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !team.CanConfigureWorkflow(actorID) {
		return nil, common.NewAccessDeniedError("permission to manage members")
	}
	if !role.IsValid() || role == teammodels.RoleOwner {
		return nil, common.NewError(common.ErrCodeValidationInput, "Vai trò không hợp lệ", common.StatusBadRequest, nil)
	}
	if team.IsMember(userID) {
		return nil, common.ErrDuplicate
	}
	team.Members = append(team.Members, teammodels.TeamMember{UserID: userID, Role: role})
	return s.saveTeam(ctx, team)
}

// UpdateMemberRole đổi vai trò một thành viên. Không đổi được role của owner.
func (s *TeamService) UpdateMemberRole(ctx context.Context, teamID primitive.ObjectID, actorID primitive.ObjectID, userID primitive.ObjectID, role teammodels.TeamRole) (*teammodels.Team, error) {
	team, err := s.LoadTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !team.CanConfigureWorkflow(actorID) {
		return nil, common.NewAccessDeniedError("permission to manage members")
	}
	if !role.IsValid() || role == teammodels.RoleOwner {
		return nil, common.NewError(common.ErrCodeValidationInput, "Vai trò không hợp lệ", common.StatusBadRequest, nil)
	}
	if team.IsOwner(userID) {
		return nil, common.NewError(common.ErrCodeValidationInput, "Không thể đổi vai trò của owner", common.StatusBadRequest, nil)
	}
	for i := range team.Members {
		if team.Members[i].UserID == userID {
			team.Members[i].Role = role
			return s.saveTeam(ctx, team)
		}
	}
	return nil, common.ErrNotFound
}

// RemoveMember xóa thành viên khỏi team. Không xóa được owner.
// Thành viên bị xóa cũng bị loại khỏi danh sách approver chỉ định.
func (s *TeamService) RemoveMember(ctx context.Context, teamID primitive.ObjectID, actorID primitive.ObjectID, userID primitive.ObjectID) (*teammodels.Team, error) {
	team, err := s.LoadTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !team.CanConfigureWorkflow(actorID) {
		return nil, common.NewAccessDeniedError("permission to manage members")
	}
	if team.IsOwner(userID) {
		return nil, common.NewError(common.ErrCodeValidationInput, "Không thể xóa owner khỏi team", common.StatusBadRequest, nil)
	}
	found := false
	for i, m := range team.Members {
		if m.UserID == userID {
			team.Members = append(team.Members[:i], team.Members[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return nil, common.ErrNotFound
	}
	for i, id := range team.Workflow.ApproverIDs {
		if id == userID {
			team.Workflow.ApproverIDs = append(team.Workflow.ApproverIDs[:i], team.Workflow.ApproverIDs[i+1:]...)
			break
		}
	}
	return s.saveTeam(ctx, team)
}
