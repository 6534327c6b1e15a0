// Package teammodels - Test membership và quyền duyệt theo workflow policy.
package teammodels

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestTeam() (*Team, primitive.ObjectID, primitive.ObjectID, primitive.ObjectID, primitive.ObjectID) {
	owner := primitive.NewObjectID()
	admin := primitive.NewObjectID()
	editor := primitive.NewObjectID()
	contributor := primitive.NewObjectID()
	team := &Team{
		ID:      primitive.NewObjectID(),
		Name:    "Creator Team",
		OwnerID: owner,
		Members: []TeamMember{
			{UserID: admin, Role: RoleAdmin},
			{UserID: editor, Role: RoleEditor},
			{UserID: contributor, Role: RoleContributor},
		},
	}
	return team, owner, admin, editor, contributor
}

func TestIsMember_OwnerCounts(t *testing.T) {
	team, owner, _, _, contributor := newTestTeam()
	if !team.IsMember(owner) {
		t.Error("owner phải được tính là thành viên")
	}
	if !team.IsMember(contributor) {
		t.Error("contributor phải là thành viên")
	}
	if team.IsMember(primitive.NewObjectID()) {
		t.Error("user lạ không được tính là thành viên")
	}
}

func TestMemberRole(t *testing.T) {
	team, owner, admin, _, _ := newTestTeam()
	if role, ok := team.MemberRole(owner); !ok || role != RoleOwner {
		t.Errorf("owner phải có role owner, nhận %q ok=%v", role, ok)
	}
	if role, ok := team.MemberRole(admin); !ok || role != RoleAdmin {
		t.Errorf("admin phải có role admin, nhận %q ok=%v", role, ok)
	}
	if _, ok := team.MemberRole(primitive.NewObjectID()); ok {
		t.Error("user lạ không được có role")
	}
}

func TestCanApprove_RoleFallback(t *testing.T) {
	team, owner, admin, editor, contributor := newTestTeam()
	// Không có approver chỉ định: owner/admin/editor được duyệt
	if !team.CanApprove(owner) || !team.CanApprove(admin) || !team.CanApprove(editor) {
		t.Error("owner, admin, editor phải được duyệt khi không có approver chỉ định")
	}
	if team.CanApprove(contributor) {
		t.Error("contributor không được duyệt theo quy tắc mặc định")
	}
	if team.CanApprove(primitive.NewObjectID()) {
		t.Error("user ngoài team không được duyệt")
	}
}

func TestCanApprove_ExplicitListOverridesRoles(t *testing.T) {
	team, owner, admin, _, contributor := newTestTeam()
	team.Workflow.ApproverIDs = []primitive.ObjectID{contributor}

	if !team.CanApprove(contributor) {
		t.Error("approver chỉ định phải được duyệt dù role thấp")
	}
	// Danh sách chỉ định thay thế hoàn toàn quy tắc vai trò
	if team.CanApprove(owner) {
		t.Error("owner ngoài danh sách chỉ định không được duyệt")
	}
	if team.CanApprove(admin) {
		t.Error("admin ngoài danh sách chỉ định không được duyệt")
	}
}

func TestCanConfigureWorkflow(t *testing.T) {
	team, owner, admin, editor, contributor := newTestTeam()
	if !team.CanConfigureWorkflow(owner) {
		t.Error("owner phải được cấu hình workflow")
	}
	if !team.CanConfigureWorkflow(admin) {
		t.Error("admin phải được cấu hình workflow")
	}
	if team.CanConfigureWorkflow(editor) {
		t.Error("editor không được cấu hình workflow")
	}
	if team.CanConfigureWorkflow(contributor) {
		t.Error("contributor không được cấu hình workflow")
	}
}

func TestTeamRole_IsValid(t *testing.T) {
	for _, r := range []TeamRole{RoleOwner, RoleAdmin, RoleEditor, RoleContributor, RoleViewer} {
		if !r.IsValid() {
			t.Errorf("role %q phải hợp lệ", r)
		}
	}
	if TeamRole("manager").IsValid() {
		t.Error("role ngoài enum không được hợp lệ")
	}
}
