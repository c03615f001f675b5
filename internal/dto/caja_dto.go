package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RealizarCorteRequest struct {
	// Contado is the physically counted cash; Retirado what the owner takes
	// home. Retirado must not exceed Contado.
	Contado  decimal.Decimal `json:"contado"  validate:"min=0"`
	Retirado decimal.Decimal `json:"retirado" validate:"min=0"`
	Notas    *string         `json:"notas"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CajaDiariaResponse struct {
	Fecha          string          `json:"fecha"`
	EfectivoVentas decimal.Decimal `json:"efectivo_ventas"`
	EfectivoAbonos decimal.Decimal `json:"efectivo_abonos"`
	TotalEfectivo  decimal.Decimal `json:"total_efectivo"`
	VentasFiado    decimal.Decimal `json:"ventas_fiado"`
	CostoVendido   decimal.Decimal `json:"costo_vendido"`
	CorteRealizado bool            `json:"corte_realizado"`
	Corte          *CorteResponse  `json:"corte,omitempty"`
}

type CorteResponse struct {
	ID            string          `json:"id"`
	FechaDia      string          `json:"fecha_dia"`
	Esperado      decimal.Decimal `json:"esperado"`
	Contado       decimal.Decimal `json:"contado"`
	Diferencia    decimal.Decimal `json:"diferencia"`
	MontoRetirado decimal.Decimal `json:"monto_retirado"`
	FondoManana   decimal.Decimal `json:"fondo_manana"`
	Notas         *string         `json:"notas"`
	CreatedAt     string          `json:"created_at"`
}
