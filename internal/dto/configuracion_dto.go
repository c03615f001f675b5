package dto

import "github.com/shopspring/decimal"

type ActualizarConfiguracionRequest struct {
	PrecioVentaDefault *decimal.Decimal `json:"precio_venta_default"`
	NombreNegocio      *string          `json:"nombre_negocio" validate:"omitempty,min=1"`
	Moneda             *string          `json:"moneda"         validate:"omitempty,len=3"`
}

type ConfiguracionResponse struct {
	PrecioVentaDefault decimal.Decimal `json:"precio_venta_default"`
	NombreNegocio      string          `json:"nombre_negocio"`
	Moneda             string          `json:"moneda"`
	UpdatedAt          string          `json:"updated_at"`
}
