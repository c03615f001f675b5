package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarLoteRequest struct {
	SaborID string `json:"sabor_id" validate:"required,uuid"`
	// CostoTotal is the full input cost of the production run.
	CostoTotal        decimal.Decimal `json:"costo_total"        validate:"required,gt=0"`
	BolsasResultantes int             `json:"bolsas_resultantes" validate:"required,gt=0"`
	Notas             *string         `json:"notas"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoteResponse struct {
	ID                string          `json:"id"`
	SaborID           string          `json:"sabor_id"`
	CostoTotal        decimal.Decimal `json:"costo_total"`
	BolsasResultantes int             `json:"bolsas_resultantes"`
	CostoUnitario     decimal.Decimal `json:"costo_unitario"`
	Notas             *string         `json:"notas"`
	CreatedAt         string          `json:"created_at"`
}

type InventarioResponse struct {
	SaborID       string          `json:"sabor_id"`
	NombreSabor   string          `json:"nombre_sabor,omitempty"`
	Cantidad      int             `json:"cantidad"`
	CostoPromedio decimal.Decimal `json:"costo_promedio"`
	UpdatedAt     string          `json:"updated_at"`
}

// InventarioResumenResponse is the dashboard view: snapshot plus totals.
type InventarioResumenResponse struct {
	Inventario []InventarioResponse `json:"inventario"`
	// ValorTotal = Σ cantidad * costo_promedio across all flavors.
	ValorTotal  decimal.Decimal `json:"valor_total"`
	TotalBolsas int             `json:"total_bolsas"`
	TotalLotes  int             `json:"total_lotes"`
	// PromedioBolsasLote is the production yield: bags produced per lote.
	PromedioBolsasLote decimal.Decimal `json:"promedio_bolsas_lote"`
}
