package handler

import (
	"net/http"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/dto"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/service"

	"github.com/gin-gonic/gin"
)

type SaboresHandler struct{ svc service.SaboresService }

func NewSaboresHandler(svc service.SaboresService) *SaboresHandler {
	return &SaboresHandler{svc: svc}
}

// Crear handles POST /v1/sabores.
func (h *SaboresHandler) Crear(c *gin.Context) {
	var req dto.CrearSaborRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar handles GET /v1/sabores. ?todos=true includes deactivated flavors.
func (h *SaboresHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("todos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener handles GET /v1/sabores/:id.
func (h *SaboresHandler) Obtener(c *gin.Context) {
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

// Actualizar handles PUT /v1/sabores/:id.
func (h *SaboresHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarSaborRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desactivar handles DELETE /v1/sabores/:id — soft hide, history intact.
func (h *SaboresHandler) Desactivar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reactivar handles POST /v1/sabores/:id/reactivar.
func (h *SaboresHandler) Reactivar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
