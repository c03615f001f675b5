package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente is a credit (fiado) customer. SaldoPendiente never goes negative:
// abonos exceeding the balance are rejected, not clamped.
type Cliente struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Alias          string          `gorm:"index;not null"`
	Telefono       *string         `gorm:"type:varchar(20)"`
	Notas          *string
	SaldoPendiente decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// FechaPromesaPago is the date the customer promised to settle; used only
	// for overdue highlighting, never enforced.
	FechaPromesaPago *time.Time
	CreatedAt        time.Time
}

func (Cliente) TableName() string { return "clientes" }
