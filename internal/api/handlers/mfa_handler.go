package handlers

import (
	"ahorrapp/internal/dto"
	"ahorrapp/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MFAHandler struct {
	mfaService *service.MFAService
	logger     *zap.Logger
}

func NewMFAHandler(mfaService *service.MFAService, logger *zap.Logger) *MFAHandler {
	return &MFAHandler{
		mfaService: mfaService,
		logger:     logger,
	}
}

// Enroll godoc
// @Summary Enroll a TOTP factor
// @Description Generates a new TOTP secret. Any previously enrolled factor is replaced.
// @Tags mfa
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.MFAEnrollResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/mfa/enroll [post]
func (h *MFAHandler) Enroll(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	resp, err := h.mfaService.Enroll(c.Context(), userID, getEmail(c))
	if err != nil {
		status, msg := statusForError(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to enroll MFA factor", zap.Error(err))
			msg = "Failed to enroll MFA factor"
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(resp)
}

// Verify godoc
// @Summary Verify a pending TOTP factor
// @Tags mfa
// @Accept json
// @Produce json
// @Param request body dto.MFAVerifyRequest true "TOTP code"
// @Security Bearer
// @Success 200 {object} dto.MFAStatusResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/mfa/verify [post]
func (h *MFAHandler) Verify(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req dto.MFAVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.mfaService.Verify(c.Context(), userID, req.Code); err != nil {
		status, msg := statusForError(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to verify MFA factor", zap.Error(err))
			msg = "Failed to verify MFA factor"
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(dto.MFAStatusResponse{Enrolled: true, Status: "verified"})
}

// Unenroll godoc
// @Summary Remove the enrolled TOTP factor
// @Tags mfa
// @Produce json
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/mfa [delete]
func (h *MFAHandler) Unenroll(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := h.mfaService.Unenroll(c.Context(), userID); err != nil {
		status, msg := statusForError(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to remove MFA factor", zap.Error(err))
			msg = "Failed to remove MFA factor"
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Status godoc
// @Summary Current MFA enrollment state
// @Tags mfa
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.MFAStatusResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/mfa [get]
func (h *MFAHandler) Status(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	resp, err := h.mfaService.Status(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to read MFA status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read MFA status"})
	}

	return c.JSON(resp)
}
