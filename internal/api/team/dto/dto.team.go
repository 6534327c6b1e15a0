package teamdto

// TeamCreateInput dữ liệu đầu vào khi tạo team
type TeamCreateInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// TeamUpdateInput dữ liệu đầu vào khi cập nhật team qua CRUD chung
type TeamUpdateInput struct {
	Name string `json:"name,omitempty" validate:"omitempty,max=100"`
}

// TeamIDParams params từ URL cho các action trên một team
type TeamIDParams struct {
	ID string `uri:"id" validate:"required"`
}

// ConfigureWorkflowInput dữ liệu đầu vào khi cấu hình workflow policy của team
type ConfigureWorkflowInput struct {
	RequiresApproval bool     `json:"requiresApproval"`
	ApproverIDs      []string `json:"approverIds,omitempty" validate:"omitempty,dive,len=24"`
}

// TeamMemberInput dữ liệu đầu vào khi thêm hoặc đổi vai trò thành viên
type TeamMemberInput struct {
	UserID string `json:"userId" validate:"required,len=24"`
	Role   string `json:"role" validate:"required"`
}

// TeamMemberRemoveInput dữ liệu đầu vào khi xóa thành viên
type TeamMemberRemoveInput struct {
	UserID string `json:"userId" validate:"required,len=24"`
}
