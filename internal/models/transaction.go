package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Default categories offered by the entry form. Free-text categories are
// accepted as well.
var DefaultCategories = []string{
	"Comida",
	"Vivienda",
	"Transporte",
	"Ocio",
	"Salario",
	"Otros",
}

// Transaction amounts are always positive; the sign is derived from Type.
type Transaction struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	Description string          `db:"description"`
	Amount      float64         `db:"amount"`
	Type        TransactionType `db:"type"`
	Category    string          `db:"category"`
	Date        time.Time       `db:"date"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
