package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Inventario holds the on-hand quantity and weighted-average unit cost for one
// flavor. One row per sabor, created lazily by the first lote. Cantidad never
// goes negative: the only writers are lote registration (increase) and the
// sale debit (decrease, checked under row lock).
type Inventario struct {
	SaborID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Cantidad int       `gorm:"not null;default:0"`
	// CostoPromedio is the weighted average of all lote unit costs to date,
	// recomputed on every lote registration.
	CostoPromedio decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UpdatedAt     time.Time

	Sabor *Sabor `gorm:"foreignKey:SaborID"`
}

func (Inventario) TableName() string { return "inventario" }
