package models

import (
	"time"

	"github.com/google/uuid"
)

// Budget caps expense spending for one category over a date range.
// EndDate nil means open-ended.
type Budget struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	Category  string     `db:"category"`
	Amount    float64    `db:"amount"`
	StartDate time.Time  `db:"start_date"`
	EndDate   *time.Time `db:"end_date"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}
