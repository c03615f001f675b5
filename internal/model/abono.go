package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Abono is an immutable debt payment. The customer balance is updated in the
// same transaction that creates the abono, so the abono trail is always the
// source of truth for the balance.
type Abono struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Monto     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notas     *string
	CreatedAt time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

func (Abono) TableName() string { return "abonos" }
