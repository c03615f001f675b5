package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment types accepted by the POS.
const (
	TipoPagoEfectivo = "efectivo"
	TipoPagoFiado    = "fiado"
)

// Venta is an immutable sale record. CostoUnitario is snapshotted from the
// inventory's weighted-average cost at debit time — it is never recomputed,
// so historical profit reports survive later cost changes.
// TipoPago: "efectivo" | "fiado". ClienteID is set iff fiado.
type Venta struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaborID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoUnitario  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TipoPago       string          `gorm:"type:varchar(10);not null;index"`
	ClienteID      *uuid.UUID      `gorm:"type:uuid;index"`
	// NombreSaborSnapshot keeps the flavor name readable in history even if
	// the sabor is later renamed or deleted.
	NombreSaborSnapshot *string
	// FechaDia is the business-local day key (YYYY-MM-DD) the sale was posted
	// to, matching the CajaDiaria row it updated.
	FechaDia  string `gorm:"type:varchar(10);not null;index"`
	CreatedAt time.Time

	Sabor   *Sabor   `gorm:"foreignKey:SaborID"`
	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

func (Venta) TableName() string { return "ventas" }
