package handler

import (
	"net/http"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/dto"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct{ svc service.ClientesService }

func NewClientesHandler(svc service.ClientesService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Crear handles POST /v1/clientes.
func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
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

// Listar handles GET /v1/clientes.
func (h *ClientesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener handles GET /v1/clientes/:id.
func (h *ClientesHandler) Obtener(c *gin.Context) {
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

// Actualizar handles PUT /v1/clientes/:id.
func (h *ClientesHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarClienteRequest
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

// Eliminar handles DELETE /v1/clientes/:id — 409 while debt is outstanding.
func (h *ClientesHandler) Eliminar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarDeudores handles GET /v1/clientes/deudores.
func (h *ClientesHandler) ListarDeudores(c *gin.Context) {
	resp, err := h.svc.ListarDeudores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarAbono handles POST /v1/clientes/:id/abonos — the payment, the
// balance cut and the caja posting commit together.
func (h *ClientesHandler) RegistrarAbono(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.RegistrarAbonoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarAbono(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ActualizarFechaPromesa handles PUT /v1/clientes/:id/promesa.
func (h *ClientesHandler) ActualizarFechaPromesa(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.FechaPromesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarFechaPromesa(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EstadoDeCuenta handles GET /v1/clientes/:id/estado-cuenta.
func (h *ClientesHandler) EstadoDeCuenta(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.EstadoDeCuenta(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
