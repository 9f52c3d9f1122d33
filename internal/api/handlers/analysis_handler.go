package handlers

import (
	"ahorrapp/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalysisHandler struct {
	analysisService *service.AnalysisService
	logger          *zap.Logger
}

func NewAnalysisHandler(analysisService *service.AnalysisService, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		logger:          logger,
	}
}

// Summary godoc
// @Summary Income, expense and balance totals
// @Tags analysis
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.SummaryResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/analysis/summary [get]
func (h *AnalysisHandler) Summary(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	summary, err := h.analysisService.Summary(c.Context(), userID)
	if err != nil {
		status, msg := statusForError(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to build summary", zap.Error(err))
			msg = "Failed to build summary"
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(summary)
}

// Categories godoc
// @Summary Expense totals grouped by category
// @Tags analysis
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.CategoryTotalResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/analysis/categories [get]
func (h *AnalysisHandler) Categories(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	totals, err := h.analysisService.ExpensesByCategory(c.Context(), userID)
	if err != nil {
		status, msg := statusForError(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to build category totals", zap.Error(err))
			msg = "Failed to build category totals"
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(totals)
}

// Monthly godoc
// @Summary Monthly income and expense series
// @Tags analysis
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.MonthlySeriesResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/analysis/monthly [get]
func (h *AnalysisHandler) Monthly(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	series, err := h.analysisService.MonthlySeries(c.Context(), userID)
	if err != nil {
		status, msg := statusForError(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to build monthly series", zap.Error(err))
			msg = "Failed to build monthly series"
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(series)
}
