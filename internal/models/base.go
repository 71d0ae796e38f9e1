package models

import "time"

// Base contains common columns for mutable ledger tables.
// Ledger deletes are real deletes, so there is no soft-delete column.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
