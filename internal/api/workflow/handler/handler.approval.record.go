package workflowhdl

import (
	"fmt"

	basehdl "creator_studio/internal/api/base/handler"
	workflowmodels "creator_studio/internal/api/workflow/models"
	workflowsvc "creator_studio/internal/api/workflow/service"
)

// ApprovalRecordHandler expose audit trail duyệt nội dung ở dạng read-only.
// Router chỉ đăng ký các route đọc; record được ghi duy nhất qua workflow command.
type ApprovalRecordHandler struct {
	*basehdl.BaseHandler[workflowmodels.ApprovalRecord, workflowmodels.ApprovalRecord, workflowmodels.ApprovalRecord]
	ApprovalRecordService *workflowsvc.ApprovalRecordService
}

// NewApprovalRecordHandler tạo mới ApprovalRecordHandler
func NewApprovalRecordHandler() (*ApprovalRecordHandler, error) {
	approvalRecordService, err := workflowsvc.NewApprovalRecordService()
	if err != nil {
		return nil, fmt.Errorf("failed to create approval record service: %v", err)
	}
	hdl := &ApprovalRecordHandler{
		ApprovalRecordService: approvalRecordService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[workflowmodels.ApprovalRecord, workflowmodels.ApprovalRecord, workflowmodels.ApprovalRecord](approvalRecordService.BaseServiceMongoImpl)
	return hdl, nil
}
