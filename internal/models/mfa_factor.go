package models

import (
	"time"

	"github.com/google/uuid"
)

type MFAFactorStatus string

const (
	MFAFactorUnverified MFAFactorStatus = "unverified"
	MFAFactorVerified   MFAFactorStatus = "verified"
)

// MFAFactor is a TOTP enrollment. A user holds at most one; re-enrolling
// replaces the existing factor.
type MFAFactor struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Secret    string          `db:"secret"`
	Status    MFAFactorStatus `db:"status"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}
