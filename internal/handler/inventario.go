package handler

import (
	"net/http"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/dto"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// RegistrarLote handles POST /v1/lotes — a production run enters stock and
// refreshes the flavor's weighted-average cost.
func (h *InventarioHandler) RegistrarLote(c *gin.Context) {
	var req dto.RegistrarLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarLote(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObtenerResumen handles GET /v1/inventario — per-flavor snapshot with totals.
func (h *InventarioHandler) ObtenerResumen(c *gin.Context) {
	resp, err := h.svc.ObtenerResumen(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorSabor handles GET /v1/inventario/:saborId.
func (h *InventarioHandler) ObtenerPorSabor(c *gin.Context) {
	saborID, ok := parseUUIDParam(c, "saborId")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorSabor(c.Request.Context(), saborID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarLotes handles GET /v1/lotes, newest first.
func (h *InventarioHandler) ListarLotes(c *gin.Context) {
	resp, err := h.svc.ListarLotes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarLotesPorSabor handles GET /v1/sabores/:id/lotes.
func (h *InventarioHandler) ListarLotesPorSabor(c *gin.Context) {
	saborID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarLotesPorSabor(c.Request.Context(), saborID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
