package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Alias    string  `json:"alias"    validate:"required,min=1"`
	Telefono *string `json:"telefono" validate:"omitempty,max=20"`
	Notas    *string `json:"notas"`
}

type ActualizarClienteRequest struct {
	Alias    *string `json:"alias"    validate:"omitempty,min=1"`
	Telefono *string `json:"telefono" validate:"omitempty,max=20"`
	Notas    *string `json:"notas"`
}

type RegistrarAbonoRequest struct {
	Monto decimal.Decimal `json:"monto" validate:"required"`
	Notas *string         `json:"notas"`
}

type FechaPromesaRequest struct {
	// Fecha in YYYY-MM-DD; null clears the promise.
	Fecha *string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID               string          `json:"id"`
	Alias            string          `json:"alias"`
	Telefono         *string         `json:"telefono"`
	Notas            *string         `json:"notas"`
	SaldoPendiente   decimal.Decimal `json:"saldo_pendiente"`
	FechaPromesaPago *string         `json:"fecha_promesa_pago"`
	CreatedAt        string          `json:"created_at"`
}

// DeudorResponse extends the customer view with overdue info for the
// collections screen.
type DeudorResponse struct {
	ClienteResponse
	EstaVencido bool `json:"esta_vencido"`
	// DiasVencido is nil when no promise date is set.
	DiasVencido *int `json:"dias_vencido"`
}

type AbonoResponse struct {
	ID        string          `json:"id"`
	ClienteID string          `json:"cliente_id"`
	Monto     decimal.Decimal `json:"monto"`
	Notas     *string         `json:"notas"`
	CreatedAt string          `json:"created_at"`
}

// MovimientoCuentaResponse is one line of the customer account statement:
// credit sales (CARGO) and payments (ABONO) merged chronologically with a
// running balance.
type MovimientoCuentaResponse struct {
	ID             string          `json:"id"`
	Fecha          string          `json:"fecha"`
	Tipo           string          `json:"tipo"` // CARGO | ABONO
	Descripcion    string          `json:"descripcion"`
	Monto          decimal.Decimal `json:"monto"`
	SaldoAcumulado decimal.Decimal `json:"saldo_acumulado"`
}
