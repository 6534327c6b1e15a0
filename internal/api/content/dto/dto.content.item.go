package contentdto

// ContentItemCreateInput dữ liệu đầu vào khi tạo content item
type ContentItemCreateInput struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Notes        string   `json:"notes,omitempty" validate:"omitempty,max=5000"`
	TeamID       string   `json:"teamId,omitempty" transform:"str_objectid_ptr,optional"`
	PlatformTags []string `json:"platformTags,omitempty" validate:"omitempty,max=10"`
}

// ContentItemUpdateInput dữ liệu đầu vào khi cập nhật content item qua CRUD chung
type ContentItemUpdateInput struct {
	Title string `json:"title,omitempty" validate:"omitempty,max=200"`
	Notes string `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

// ContentItemIDParams params từ URL cho các action trên một content item
type ContentItemIDParams struct {
	ID string `uri:"id" validate:"required"`
}

// ContentItemUpdateContentInput dữ liệu đầu vào khi sửa title/notes có kiểm soát version
type ContentItemUpdateContentInput struct {
	Title   string `json:"title" validate:"required,max=200"`
	Notes   string `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Version int64  `json:"version" validate:"required,min=1"`
}

// ContentItemUpdateStatusInput dữ liệu đầu vào khi chuyển trạng thái trực tiếp
type ContentItemUpdateStatusInput struct {
	Status  string `json:"status" validate:"required"`
	Version int64  `json:"version" validate:"required,min=1"`
}

// ContentItemScheduleInput dữ liệu đầu vào khi đặt lịch đăng (UTC mili giây)
type ContentItemScheduleInput struct {
	ScheduledAt int64 `json:"scheduledAt" validate:"required,min=1"`
	Version     int64 `json:"version" validate:"required,min=1"`
}

// ContentItemVersionInput dữ liệu đầu vào cho các action chỉ cần version (clear schedule, soft delete...)
type ContentItemVersionInput struct {
	Version int64 `json:"version" validate:"required,min=1"`
}

// ContentItemTagInput dữ liệu đầu vào khi thêm/xóa một platform tag
type ContentItemTagInput struct {
	Tag     string `json:"tag" validate:"required,max=50"`
	Version int64  `json:"version" validate:"required,min=1"`
}

// ContentItemSetTagsInput dữ liệu đầu vào khi thay toàn bộ platform tags
type ContentItemSetTagsInput struct {
	Tags    []string `json:"tags" validate:"required"`
	Version int64    `json:"version" validate:"required,min=1"`
}
