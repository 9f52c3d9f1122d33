package handlers

import (
	"ahorrapp/internal/dto"
	"ahorrapp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService *service.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

// List godoc
// @Summary List budgets with derived spending
// @Tags budgets
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.BudgetResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	budgets, err := h.budgetService.ListWithSpending(c.Context(), userID)
	if err != nil {
		status, msg := statusForError(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to list budgets", zap.Error(err))
			msg = "Failed to load budgets"
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	resp := make([]dto.BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		resp = append(resp, budgetResponse(&b))
	}
	return c.JSON(resp)
}

// Create godoc
// @Summary Add a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body dto.BudgetRequest true "Budget"
// @Security Bearer
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req dto.BudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	b, err := h.budgetService.Add(c.Context(), userID, &req)
	if err != nil {
		status, msg := statusForError(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to add budget", zap.Error(err))
			msg = "Failed to add budget"
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.Status(fiber.StatusCreated).JSON(budgetResponse(&service.BudgetWithSpending{
		Budget:          *b,
		RemainingAmount: b.Amount,
	}))
}

// Update godoc
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param request body dto.BudgetRequest true "Budget"
// @Security Bearer
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid budget ID"})
	}

	var req dto.BudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	b, err := h.budgetService.Update(c.Context(), userID, id, &req)
	if err != nil {
		status, msg := statusForError(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to update budget", zap.Error(err))
			msg = "Failed to update budget"
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(budgetResponse(&service.BudgetWithSpending{
		Budget:          *b,
		RemainingAmount: b.Amount,
	}))
}

// Delete godoc
// @Summary Delete a budget
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid budget ID"})
	}

	if err := h.budgetService.Delete(c.Context(), userID, id); err != nil {
		status, msg := statusForError(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to delete budget", zap.Error(err))
			msg = "Failed to delete budget"
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func budgetResponse(b *service.BudgetWithSpending) dto.BudgetResponse {
	resp := dto.BudgetResponse{
		ID:              b.ID.String(),
		Category:        b.Category,
		Amount:          b.Amount,
		StartDate:       b.StartDate.Format(dateLayout),
		SpentAmount:     b.SpentAmount,
		RemainingAmount: b.RemainingAmount,
		Overspent:       b.Overspent,
		FullySpent:      b.FullySpent,
	}
	if b.EndDate != nil {
		resp.EndDate = b.EndDate.Format(dateLayout)
	}
	return resp
}
