// Package router đăng ký các route thuộc domain Content: content items và các action vòng đời.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	contenthdl "creator_studio/internal/api/content/handler"
	"creator_studio/internal/api/middleware"
	apirouter "creator_studio/internal/api/router"
)

// Register đăng ký tất cả route content item lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	contentItemHandler, err := contenthdl.NewContentItemHandler()
	if err != nil {
		return fmt.Errorf("create content item handler: %w", err)
	}
	// Chỉ đọc + insert-one: content items không bao giờ bị xóa cứng, mọi mutation
	// đi qua các route bên dưới (CAS version, soft-delete, validator trạng thái).
	r.RegisterCRUDRoutes(v1, "/content/items", contentItemHandler, apirouter.ReadCreateConfig)

	auth := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/content/items", "PUT", "/:id/content", []fiber.Handler{auth}, contentItemHandler.HandleUpdateContent)
	apirouter.RegisterRouteWithMiddleware(v1, "/content/items", "POST", "/:id/status", []fiber.Handler{auth}, contentItemHandler.HandleUpdateStatus)
	apirouter.RegisterRouteWithMiddleware(v1, "/content/items", "POST", "/:id/soft-delete", []fiber.Handler{auth}, contentItemHandler.HandleSoftDelete)
	apirouter.RegisterRouteWithMiddleware(v1, "/content/items", "POST", "/:id/restore", []fiber.Handler{auth}, contentItemHandler.HandleRestore)
	apirouter.RegisterRouteWithMiddleware(v1, "/content/items", "POST", "/:id/schedule", []fiber.Handler{auth}, contentItemHandler.HandleSchedule)
	apirouter.RegisterRouteWithMiddleware(v1, "/content/items", "DELETE", "/:id/schedule", []fiber.Handler{auth}, contentItemHandler.HandleClearSchedule)
	apirouter.RegisterRouteWithMiddleware(v1, "/content/items", "POST", "/:id/tags", []fiber.Handler{auth}, contentItemHandler.HandleAddTag)
	apirouter.RegisterRouteWithMiddleware(v1, "/content/items", "DELETE", "/:id/tags", []fiber.Handler{auth}, contentItemHandler.HandleRemoveTag)
	apirouter.RegisterRouteWithMiddleware(v1, "/content/items", "PUT", "/:id/tags", []fiber.Handler{auth}, contentItemHandler.HandleSetTags)

	return nil
}
