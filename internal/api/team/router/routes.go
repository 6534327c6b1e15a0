// Package router đăng ký các route thuộc domain Team: teams, thành viên và workflow policy.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"creator_studio/internal/api/middleware"
	apirouter "creator_studio/internal/api/router"
	teamhdl "creator_studio/internal/api/team/handler"
)

// Register đăng ký tất cả route team lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	teamHandler, err := teamhdl.NewTeamHandler()
	if err != nil {
		return fmt.Errorf("create team handler: %w", err)
	}
	// Chỉ đọc + insert-one: sửa thành viên và workflow policy phải đi qua các route
	// bên dưới, nơi service kiểm tra quyền owner/admin.
	r.RegisterCRUDRoutes(v1, "/teams", teamHandler, apirouter.ReadCreateConfig)

	auth := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/teams", "PUT", "/:id/workflow", []fiber.Handler{auth}, teamHandler.HandleConfigureWorkflow)
	apirouter.RegisterRouteWithMiddleware(v1, "/teams", "POST", "/:id/members", []fiber.Handler{auth}, teamHandler.HandleAddMember)
	apirouter.RegisterRouteWithMiddleware(v1, "/teams", "PUT", "/:id/members", []fiber.Handler{auth}, teamHandler.HandleUpdateMemberRole)
	apirouter.RegisterRouteWithMiddleware(v1, "/teams", "DELETE", "/:id/members", []fiber.Handler{auth}, teamHandler.HandleRemoveMember)

	return nil
}
