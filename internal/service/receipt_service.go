package service

import (
	"context"
	"strings"

	"ahorrapp/internal/dto"
	"ahorrapp/pkg/config"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

// TextExtractor turns a receipt image into raw text.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// TesseractExtractor runs a local tesseract instance through gosseract.
// A client is created per call; gosseract clients are not safe for
// concurrent use.
type TesseractExtractor struct {
	languages []string
}

func NewTesseractExtractor(cfg *config.OCRConfig) *TesseractExtractor {
	return &TesseractExtractor{languages: strings.Split(cfg.Languages, "+")}
}

func (e *TesseractExtractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if len(e.languages) > 0 {
		if err := client.SetLanguage(e.languages...); err != nil {
			return "", err
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", err
	}
	return client.Text()
}

// ReceiptService pre-fills the transaction entry form from a photographed
// receipt. Extraction is best effort: the user reviews every field before
// submitting, so parse failures degrade to an empty pre-fill, never to an
// error response.
type ReceiptService struct {
	extractor TextExtractor
	logger    *zap.Logger
}

func NewReceiptService(extractor TextExtractor, logger *zap.Logger) *ReceiptService {
	return &ReceiptService{
		extractor: extractor,
		logger:    logger,
	}
}

func (s *ReceiptService) Scan(ctx context.Context, image []byte) *dto.ReceiptScanResponse {
	text, err := s.extractor.ExtractText(ctx, image)
	if err != nil {
		s.logger.Warn("Receipt OCR failed", zap.Error(err))
		return &dto.ReceiptScanResponse{OK: false}
	}

	parsed := parseReceiptText(text)
	if parsed.Description == "" && parsed.Amount == 0 && parsed.Date == "" {
		return &dto.ReceiptScanResponse{OK: false}
	}

	parsed.OK = true
	return parsed
}
