package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/satmoko/studio-backend/internal/middleware"
	"github.com/satmoko/studio-backend/internal/models"
	"github.com/satmoko/studio-backend/internal/service"
	"github.com/satmoko/studio-backend/pkg/notify"
	"github.com/satmoko/studio-backend/pkg/utils"
)

type MessageHandler struct {
	messageService *service.MessageService
	notifier       notify.Notifier
	validator      *utils.Validator
}

func NewMessageHandler(messageService *service.MessageService, notifier notify.Notifier, validator *utils.Validator) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		notifier:       notifier,
		validator:      validator,
	}
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	email, ok := middleware.MemberEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Not authenticated"))
	}

	var req models.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	message, err := h.messageService.Send(email, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(message, "Message sent"))
}

func (h *MessageHandler) GetConversation(c *fiber.Ctx) error {
	email, ok := middleware.MemberEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Not authenticated"))
	}

	messages, err := h.messageService.Conversation(email, c.Params("email"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(messages, ""))
}

func (h *MessageHandler) GetPartners(c *fiber.Ctx) error {
	email, ok := middleware.MemberEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Not authenticated"))
	}

	partners, err := h.messageService.Partners(email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(partners, ""))
}

// Relay forwards a message to the operator bot. Upstream failure maps
// to 502; the relay is never on a critical path.
func (h *MessageHandler) Relay(c *fiber.Ctx) error {
	var req models.NotifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 15*time.Second)
	defer cancel()
	if err := h.notifier.Send(ctx, req.Message); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(models.ErrorResponse("Notification delivery failed"))
	}

	return c.JSON(models.SuccessResponse(nil, "Notification sent"))
}
