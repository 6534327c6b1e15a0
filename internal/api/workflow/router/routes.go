// Package router đăng ký các route thuộc domain Workflow: command duyệt nội dung và audit trail.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"creator_studio/internal/api/middleware"
	apirouter "creator_studio/internal/api/router"
	workflowhdl "creator_studio/internal/api/workflow/handler"
)

// Register đăng ký tất cả route workflow lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	workflowHandler, err := workflowhdl.NewWorkflowHandler()
	if err != nil {
		return fmt.Errorf("create workflow handler: %w", err)
	}

	auth := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/content/items", "POST", "/:id/submit", []fiber.Handler{auth}, workflowHandler.HandleSubmit)
	apirouter.RegisterRouteWithMiddleware(v1, "/content/items", "POST", "/:id/approve", []fiber.Handler{auth}, workflowHandler.HandleApprove)
	apirouter.RegisterRouteWithMiddleware(v1, "/content/items", "POST", "/:id/request-changes", []fiber.Handler{auth}, workflowHandler.HandleRequestChanges)
	apirouter.RegisterRouteWithMiddleware(v1, "/content/items", "GET", "/:id/approval-history", []fiber.Handler{auth}, workflowHandler.HandleApprovalHistory)

	approvalRecordHandler, err := workflowhdl.NewApprovalRecordHandler()
	if err != nil {
		return fmt.Errorf("create approval record handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/workflow/approval-records", approvalRecordHandler, apirouter.ReadOnlyConfig)

	return nil
}
