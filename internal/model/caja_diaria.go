package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CajaDiaria accumulates one business day's money flows. Keyed by the
// business-local date string so a day is a single contended row.
//
// Invariant: TotalEfectivo == EfectivoVentas + EfectivoAbonos after every
// posting. TotalEfectivo is recomputed from the other two on each write,
// never incremented independently.
//
// State machine: open (CorteRealizado=false) → closed (true), terminal.
// Once closed no further postings are accepted for that date.
type CajaDiaria struct {
	Fecha          string          `gorm:"type:varchar(10);primaryKey"` // YYYY-MM-DD
	EfectivoVentas decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	EfectivoAbonos decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalEfectivo  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	VentasFiado    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CostoVendido   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CorteRealizado bool            `gorm:"not null;default:false"`
	UpdatedAt      time.Time

	Corte *CorteCaja `gorm:"foreignKey:FechaDia;references:Fecha"`
}

func (CajaDiaria) TableName() string { return "cajas_diarias" }
