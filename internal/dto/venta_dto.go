package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ProcesarVentaRequest struct {
	SaborID  string `json:"sabor_id"  validate:"required,uuid"`
	Cantidad int    `json:"cantidad"  validate:"required"`
	TipoPago string `json:"tipo_pago" validate:"required,oneof=efectivo fiado"`
	// ClienteID is required when TipoPago is fiado; enforced in the service so
	// the error carries domain meaning, not a validator tag string.
	ClienteID *string `json:"cliente_id" validate:"omitempty,uuid"`
	// PrecioUnitario overrides the configured default sale price when set.
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaResponse struct {
	ID             string          `json:"id"`
	SaborID        string          `json:"sabor_id"`
	NombreSabor    string          `json:"nombre_sabor,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	CostoUnitario  decimal.Decimal `json:"costo_unitario"`
	TipoPago       string          `json:"tipo_pago"`
	ClienteID      *string         `json:"cliente_id"`
	Ingreso        decimal.Decimal `json:"ingreso"`
	Costo          decimal.Decimal `json:"costo"`
	Utilidad       decimal.Decimal `json:"utilidad"`
	// StockRestante after the debit, so the POS can refresh its display
	// without another round trip.
	StockRestante int    `json:"stock_restante"`
	FechaDia      string `json:"fecha_dia"`
	CreatedAt     string `json:"created_at"`
}
