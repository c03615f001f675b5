package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CorteCaja is the end-of-day reconciliation record. Exactly one per closed
// day; never overwritten — a second corte attempt for the same date is
// rejected, and corrections are out-of-band adjustments.
type CorteCaja struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FechaDia string    `gorm:"type:varchar(10);not null;uniqueIndex"` // YYYY-MM-DD
	// Esperado is the system total frozen at close; Contado what the operator
	// counted; Diferencia = Contado - Esperado (negative = faltante).
	Esperado      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Contado       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Diferencia    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoRetirado decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// FondoManana = Contado - MontoRetirado, the float left in the register
	// to open the next day.
	FondoManana decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notas       *string
	CreatedAt   time.Time
}

func (CorteCaja) TableName() string { return "cortes_caja" }
