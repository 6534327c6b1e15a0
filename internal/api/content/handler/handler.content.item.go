package contenthdl

import (
	"fmt"

	basehdl "creator_studio/internal/api/base/handler"
	contentdto "creator_studio/internal/api/content/dto"
	contentmodels "creator_studio/internal/api/content/models"
	contentsvc "creator_studio/internal/api/content/service"
	"creator_studio/internal/api/middleware"
	"creator_studio/internal/common"
	"creator_studio/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentItemHandler xử lý các request liên quan đến Content Item
type ContentItemHandler struct {
	*basehdl.BaseHandler[contentmodels.ContentItem, contentdto.ContentItemCreateInput, contentdto.ContentItemUpdateInput]
	ContentItemService *contentsvc.ContentItemService
}

// NewContentItemHandler tạo mới ContentItemHandler
func NewContentItemHandler() (*ContentItemHandler, error) {
	contentItemService, err := contentsvc.NewContentItemService()
	if err != nil {
		return nil, fmt.Errorf("failed to create content item service: %v", err)
	}
	hdl := &ContentItemHandler{
		ContentItemService: contentItemService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[contentmodels.ContentItem, contentdto.ContentItemCreateInput, contentdto.ContentItemUpdateInput](contentItemService.BaseServiceMongoImpl)
	return hdl, nil
}

// parseItemID parse và validate :id từ URL.
func (h *ContentItemHandler) parseItemID(c fiber.Ctx) (primitive.ObjectID, error) {
	var params contentdto.ContentItemIDParams
	if err := h.ParseRequestParams(c, &params); err != nil {
		return primitive.NilObjectID, err
	}
	if !primitive.IsValidObjectID(params.ID) {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, nil)
	}
	return utility.String2ObjectID(params.ID), nil
}

// InsertOne override CRUD mặc định: owner là user đã xác thực, item tạo ra luôn ở trạng thái idea.
func (h *ContentItemHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actorID, err := middleware.ActorFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input contentdto.ContentItemCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var teamID *primitive.ObjectID
		if input.TeamID != "" {
			if !primitive.IsValidObjectID(input.TeamID) {
				h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "TeamID không hợp lệ", common.StatusBadRequest, nil))
				return nil
			}
			id := utility.String2ObjectID(input.TeamID)
			teamID = &id
		}

		item, err := h.ContentItemService.CreateItem(c.Context(), actorID, teamID, input.Title, input.Notes, input.PlatformTags)
		h.HandleResponse(c, item, err)
		return nil
	})
}

// HandleUpdateContent PUT /:id/content - sửa title/notes với kiểm soát version
func (h *ContentItemHandler) HandleUpdateContent(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := h.parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input contentdto.ContentItemUpdateContentInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		item, err := h.ContentItemService.UpdateItemContent(c.Context(), itemID, input.Version, input.Title, input.Notes)
		h.HandleResponse(c, item, err)
		return nil
	})
}

// HandleUpdateStatus POST /:id/status - chuyển trạng thái trực tiếp theo bảng transition
func (h *ContentItemHandler) HandleUpdateStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actorID, err := middleware.ActorFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		itemID, err := h.parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input contentdto.ContentItemUpdateStatusInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		item, err := h.ContentItemService.UpdateStatus(c.Context(), itemID, input.Version, actorID, contentmodels.ContentStatus(input.Status))
		h.HandleResponse(c, item, err)
		return nil
	})
}

// HandleSoftDelete POST /:id/soft-delete
func (h *ContentItemHandler) HandleSoftDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := h.parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input contentdto.ContentItemVersionInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		item, err := h.ContentItemService.SoftDeleteItem(c.Context(), itemID, input.Version)
		h.HandleResponse(c, item, err)
		return nil
	})
}

// HandleRestore POST /:id/restore
func (h *ContentItemHandler) HandleRestore(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := h.parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input contentdto.ContentItemVersionInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		item, err := h.ContentItemService.RestoreItem(c.Context(), itemID, input.Version)
		h.HandleResponse(c, item, err)
		return nil
	})
}

// HandleSchedule POST /:id/schedule - đặt thời gian lên lịch đăng
func (h *ContentItemHandler) HandleSchedule(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := h.parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input contentdto.ContentItemScheduleInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		item, err := h.ContentItemService.UpdateScheduledDate(c.Context(), itemID, input.Version, input.ScheduledAt)
		h.HandleResponse(c, item, err)
		return nil
	})
}

// HandleClearSchedule DELETE /:id/schedule - xóa thời gian lên lịch
func (h *ContentItemHandler) HandleClearSchedule(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := h.parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input contentdto.ContentItemVersionInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		item, err := h.ContentItemService.ClearScheduledDate(c.Context(), itemID, input.Version)
		h.HandleResponse(c, item, err)
		return nil
	})
}

// HandleAddTag POST /:id/tags - thêm một platform tag
func (h *ContentItemHandler) HandleAddTag(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := h.parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input contentdto.ContentItemTagInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		item, err := h.ContentItemService.AddPlatformTag(c.Context(), itemID, input.Version, input.Tag)
		h.HandleResponse(c, item, err)
		return nil
	})
}

// HandleRemoveTag DELETE /:id/tags - xóa một platform tag
func (h *ContentItemHandler) HandleRemoveTag(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := h.parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input contentdto.ContentItemTagInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		item, err := h.ContentItemService.RemovePlatformTag(c.Context(), itemID, input.Version, input.Tag)
		h.HandleResponse(c, item, err)
		return nil
	})
}

// HandleSetTags PUT /:id/tags - thay toàn bộ platform tags
func (h *ContentItemHandler) HandleSetTags(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := h.parseItemID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input contentdto.ContentItemSetTagsInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		item, err := h.ContentItemService.SetPlatformTags(c.Context(), itemID, input.Version, input.Tags)
		h.HandleResponse(c, item, err)
		return nil
	})
}
