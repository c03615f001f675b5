package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConfiguracionNegocio is the single business settings row. It is loaded
// explicitly and handed to the services that need it — never read as ambient
// global state from inside a transaction.
type ConfiguracionNegocio struct {
	ID                 string          `gorm:"type:varchar(20);primaryKey"` // always "negocio"
	PrecioVentaDefault decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	NombreNegocio      string          `gorm:"not null"`
	Moneda             string          `gorm:"type:varchar(3);not null;default:'MXN'"`
	UpdatedAt          time.Time
}

func (ConfiguracionNegocio) TableName() string { return "configuracion" }
