package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/satmoko/studio-backend/internal/middleware"
	"github.com/satmoko/studio-backend/internal/models"
	"github.com/satmoko/studio-backend/internal/repository"
	"github.com/satmoko/studio-backend/internal/service"
	"github.com/satmoko/studio-backend/pkg/utils"
)

type TopupHandler struct {
	topupService *service.TopupService
	validator    *utils.Validator
}

func NewTopupHandler(topupService *service.TopupService, validator *utils.Validator) *TopupHandler {
	return &TopupHandler{
		topupService: topupService,
		validator:    validator,
	}
}

// Create accepts multipart form data: amount, price and either a
// receipt file or a receipt_url field.
func (h *TopupHandler) Create(c *fiber.Ctx) error {
	email, ok := middleware.MemberEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Not authenticated"))
	}

	var req models.CreateTopupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	var (
		receipt     io.Reader
		receiptName string
		contentType string
	)
	if file, err := c.FormFile("receipt"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Cannot read receipt file"))
		}
		defer f.Close()
		receipt = f
		receiptName = file.Filename
		contentType = file.Header.Get("Content-Type")
	}

	topup, err := h.topupService.Create(c.UserContext(), email, req, receipt, receiptName, contentType, c.FormValue("receipt_url"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(topup, "Topup request submitted"))
}

func (h *TopupHandler) ListPending(c *fiber.Ctx) error {
	topups, err := h.topupService.ListPending()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(topups, ""))
}

func (h *TopupHandler) ListMine(c *fiber.Ctx) error {
	email, ok := middleware.MemberEmail(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Not authenticated"))
	}

	topups, err := h.topupService.ListByEmail(email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(topups, ""))
}

func (h *TopupHandler) Approve(c *fiber.Ctx) error {
	if err := h.topupService.Approve(c.Params("tid")); err != nil {
		return h.decisionError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Topup approved"))
}

func (h *TopupHandler) Reject(c *fiber.Ctx) error {
	if err := h.topupService.Reject(c.Params("tid")); err != nil {
		return h.decisionError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Topup rejected"))
}

func (h *TopupHandler) decisionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrTopupNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Topup request not found"))
	case errors.Is(err, service.ErrTopupAlreadyDecided):
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse("Topup request already decided"))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
}
