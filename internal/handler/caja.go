package handler

import (
	"net/http"
	"strconv"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/dto"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// ObtenerDia handles GET /v1/caja — today's aggregate, or ?fecha=YYYY-MM-DD
// for a past day.
func (h *CajaHandler) ObtenerDia(c *gin.Context) {
	resp, err := h.svc.ObtenerCajaDia(c.Request.Context(), c.Query("fecha"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RealizarCorte handles POST /v1/caja/corte — closes today and freezes the
// reconciliation numbers. Second attempt for the same day returns 409.
func (h *CajaHandler) RealizarCorte(c *gin.Context) {
	var req dto.RealizarCorteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RealizarCorte(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// HistorialCortes handles GET /v1/caja/cortes?limite=N (default 7).
func (h *CajaHandler) HistorialCortes(c *gin.Context) {
	limite, _ := strconv.Atoi(c.DefaultQuery("limite", "7"))
	resp, err := h.svc.HistorialCortes(c.Request.Context(), limite)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
