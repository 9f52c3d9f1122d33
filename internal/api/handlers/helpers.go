package handlers

import (
	"errors"

	"ahorrapp/internal/dto"
	"ahorrapp/internal/models"
	"ahorrapp/internal/repository"
	"ahorrapp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, errors.New("missing user id in context")
	}
	return uuid.Parse(raw)
}

func getEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("email").(string)
	return email
}

// statusForError maps service errors onto HTTP statuses; anything
// unrecognized is a 500 and the caller logs it.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNoSession):
		return fiber.StatusUnauthorized, "No active session"
	case errors.Is(err, service.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return fiber.StatusNotFound, "Record not found"
	case errors.Is(err, service.ErrMFANotEnrolled):
		return fiber.StatusNotFound, "No MFA factor enrolled"
	case errors.Is(err, service.ErrInvalidMFACode):
		return fiber.StatusUnauthorized, "Invalid MFA code"
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Invalid credentials"
	default:
		return fiber.StatusInternalServerError, ""
	}
}

func transactionResponse(tx *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          tx.ID.String(),
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        string(tx.Type),
		Category:    tx.Category,
		Date:        tx.Date.Format(dateLayout),
		CreatedAt:   tx.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
