package handlers

import (
	"io"

	"ahorrapp/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const maxReceiptBytes = 10 << 20

type ReceiptHandler struct {
	receiptService *service.ReceiptService
	logger         *zap.Logger
}

func NewReceiptHandler(receiptService *service.ReceiptService, logger *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		logger:         logger,
	}
}

// Scan godoc
// @Summary Scan a receipt image
// @Description Runs OCR over the uploaded image and returns a best-effort
// @Description transaction pre-fill. Unreadable images return ok=false, not an error.
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Receipt image"
// @Security Bearer
// @Success 200 {object} dto.ReceiptScanResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/receipts/scan [post]
func (h *ReceiptHandler) Scan(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Receipt image is required"})
	}
	if fileHeader.Size > maxReceiptBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Receipt image is too large"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded receipt", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read receipt image"})
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded receipt", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read receipt image"})
	}

	return c.JSON(h.receiptService.Scan(c.Context(), image))
}
