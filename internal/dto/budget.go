package dto

type BudgetRequest struct {
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	StartDate string  `json:"start_date"`         // YYYY-MM-DD
	EndDate   string  `json:"end_date,omitempty"` // empty means open-ended
}

type BudgetResponse struct {
	ID              string  `json:"id"`
	Category        string  `json:"category"`
	Amount          float64 `json:"amount"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date,omitempty"`
	SpentAmount     float64 `json:"spent_amount"`
	RemainingAmount float64 `json:"remaining_amount"`
	Overspent       bool    `json:"overspent"`
	FullySpent      bool    `json:"fully_spent"`
}
