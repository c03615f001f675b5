package model

import (
	"time"

	"github.com/google/uuid"
)

// Sabor is a catalog entry for one peanut flavor. Activo=false hides it from
// the POS screen without touching its inventory or sales history.
type Sabor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Emoji     string    `gorm:"not null;default:'🥜'"`
	Color     string    `gorm:"type:varchar(9);not null;default:'#F59E0B'"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
}

// TableName overrides GORM's default pluralization (sabors → sabores).
func (Sabor) TableName() string { return "sabores" }
