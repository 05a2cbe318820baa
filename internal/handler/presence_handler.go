package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/satmoko/studio-backend/internal/middleware"
	"github.com/satmoko/studio-backend/internal/models"
	"github.com/satmoko/studio-backend/internal/service"
)

type PresenceHandler struct {
	presenceService *service.PresenceService
}

func NewPresenceHandler(presenceService *service.PresenceService) *PresenceHandler {
	return &PresenceHandler{
		presenceService: presenceService,
	}
}

func (h *PresenceHandler) Heartbeat(c *fiber.Ctx) error {
	email, ok := middleware.MemberEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Not authenticated"))
	}

	h.presenceService.Heartbeat(email)
	return c.JSON(models.SuccessResponse(nil, ""))
}

func (h *PresenceHandler) Get(c *fiber.Ctx) error {
	presence, err := h.presenceService.Get(c.Params("email"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Member not found"))
	}
	return c.JSON(models.SuccessResponse(presence, ""))
}
