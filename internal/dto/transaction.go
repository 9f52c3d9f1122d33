package dto

// TransactionRequest covers both insert (empty ID) and update (ID set).
type TransactionRequest struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Date        string  `json:"date"` // YYYY-MM-DD
}

type TransactionResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"created_at"`
}

type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"total_pages"`
	TotalCount int                   `json:"total_count"`
}
