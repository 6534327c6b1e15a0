package workflowdto

// WorkflowItemParams params từ URL cho các workflow command trên một content item
type WorkflowItemParams struct {
	ID string `uri:"id" validate:"required"`
}

// SubmitInput dữ liệu đầu vào khi gửi duyệt.
// TeamID tùy chọn: nếu bỏ trống dùng team hiện tại của content item.
type SubmitInput struct {
	TeamID string `json:"teamId,omitempty" validate:"omitempty,len=24"`
}

// ApproveInput dữ liệu đầu vào khi duyệt, feedback tùy chọn
type ApproveInput struct {
	TeamID   string `json:"teamId,omitempty" validate:"omitempty,len=24"`
	Feedback string `json:"feedback,omitempty" validate:"omitempty,max=2000"`
}

// RequestChangesInput dữ liệu đầu vào khi yêu cầu chỉnh sửa.
// Feedback có thể là chuỗi rỗng, không bị từ chối.
type RequestChangesInput struct {
	TeamID   string `json:"teamId,omitempty" validate:"omitempty,len=24"`
	Feedback string `json:"feedback" validate:"omitempty,max=2000"`
}
