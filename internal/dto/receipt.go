package dto

// ReceiptScanResponse is a best-effort form pre-fill. OK is false when
// nothing usable could be extracted; the fields are never authoritative.
type ReceiptScanResponse struct {
	OK          bool    `json:"ok"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Date        string  `json:"date,omitempty"`
}
