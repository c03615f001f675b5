package handler

import (
	"net/http"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/dto"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentasService }

func NewVentasHandler(svc service.VentasService) *VentasHandler { return &VentasHandler{svc: svc} }

// ProcesarVenta handles POST /v1/ventas — the atomic sale: stock debit,
// sale record, caja posting and (fiado) customer charge.
func (h *VentasHandler) ProcesarVenta(c *gin.Context) {
	var req dto.ProcesarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ProcesarVenta(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarVentasDelDia handles GET /v1/ventas — today's sales, newest first.
func (h *VentasHandler) ListarVentasDelDia(c *gin.Context) {
	resp, err := h.svc.ListarVentasDelDia(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPorCliente handles GET /v1/clientes/:id/ventas.
func (h *VentasHandler) ListarPorCliente(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarPorCliente(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerVenta handles GET /v1/ventas/:id.
func (h *VentasHandler) ObtenerVenta(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
