package handlers

import (
	"ahorrapp/internal/dto"
	"ahorrapp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

// List godoc
// @Summary List transactions
// @Description Filtered, sorted, paginated view of the user's transactions
// @Tags transactions
// @Produce json
// @Param type query string false "Type filter: all, income or expense"
// @Param date query string false "Single-day filter, YYYY-MM-DD"
// @Param sort query string false "Sort key: date, amount or description"
// @Param order query string false "Sort order: asc or desc"
// @Param page query int false "Page number, 1-indexed"
// @Security Bearer
// @Success 200 {object} dto.TransactionListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	query := service.ListQuery{
		Type:  c.Query("type"),
		Date:  c.Query("date"),
		Sort:  c.Query("sort"),
		Order: c.Query("order"),
		Page:  c.QueryInt("page", 1),
	}

	result, err := h.txService.List(c.Context(), userID, query)
	if err != nil {
		status, msg := statusForError(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to list transactions", zap.Error(err))
			msg = "Failed to load transactions"
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	items := make([]dto.TransactionResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, transactionResponse(&result.Items[i]))
	}

	return c.JSON(dto.TransactionListResponse{
		Items:      items,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		TotalCount: result.TotalCount,
	})
}

// Save godoc
// @Summary Save a transaction
// @Description Inserts when the body carries no id, updates otherwise
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.TransactionRequest true "Transaction"
// @Security Bearer
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Save(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req dto.TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if id := c.Params("id"); id != "" {
		req.ID = id
	}

	saved, err := h.txService.Save(c.Context(), userID, &req)
	if err != nil {
		status, msg := statusForError(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to save transaction", zap.Error(err))
			msg = "Failed to save transaction"
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	status := fiber.StatusOK
	if req.ID == "" {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(transactionResponse(saved))
}

// Delete godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Security Bearer
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	if err := h.txService.Delete(c.Context(), userID, id); err != nil {
		status, msg := statusForError(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to delete transaction", zap.Error(err))
			msg = "Failed to delete transaction"
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
