package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoteProduccion is one production run of a flavor. Immutable once created —
// corrections are new lotes, never edits.
type LoteProduccion struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaborID uuid.UUID `gorm:"type:uuid;not null;index"`
	// CostoTotal is the full input cost of the run (raw peanuts, chile, gas…).
	CostoTotal        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BolsasResultantes int             `gorm:"not null"`
	// CostoUnitario = round2(CostoTotal / BolsasResultantes), fixed at creation.
	CostoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notas         *string
	CreatedAt     time.Time

	Sabor *Sabor `gorm:"foreignKey:SaborID"`
}

func (LoteProduccion) TableName() string { return "lotes_produccion" }
