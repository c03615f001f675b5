package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/apierror"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseUUIDParam parses the :id path parameter, writing a 400 on failure.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(name+" inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service errors to HTTP status codes:
//
//	404 — not found
//	409 — business-state conflicts (stock, balance, closed day, duplicate corte)
//	400 — everything the caller can fix by changing the request
//	500 — anything else, routed through the error middleware
func respondError(c *gin.Context, err error) {
	var stockErr *service.StockInsuficienteError
	var abonoErr *service.AbonoExcedeSaldoError

	switch {
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.As(err, &stockErr),
		errors.As(err, &abonoErr),
		errors.Is(err, service.ErrCorteYaRealizado),
		errors.Is(err, service.ErrDiaCerrado),
		errors.Is(err, service.ErrClienteConSaldo),
		errors.Is(err, service.ErrSaborInactivo):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCantidadInvalida),
		errors.Is(err, service.ErrMontoInvalido),
		errors.Is(err, service.ErrNombreRequerido),
		errors.Is(err, service.ErrFaltaCliente),
		errors.Is(err, service.ErrRetiroInvalido),
		errors.Is(err, service.ErrPrecioInvalido),
		errors.Is(err, service.ErrTipoPagoInvalido),
		errors.Is(err, service.ErrFechaInvalida):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
