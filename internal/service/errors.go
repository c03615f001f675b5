package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Business-rule failures are returned as typed errors so handlers can map
// them to proper status codes and the UI can show actionable messages.
// Infrastructure failures (DB/Redis unreachable) are wrapped with %w and fall
// through as 5xx — they are never retried here, because a sale is not
// idempotent across retries.

var (
	ErrCantidadInvalida = errors.New("la cantidad debe ser mayor a 0")
	ErrMontoInvalido    = errors.New("el monto debe ser mayor a 0")
	ErrNombreRequerido  = errors.New("el nombre no puede estar vacío")
	ErrNoEncontrado     = errors.New("registro no encontrado")
	ErrFaltaCliente     = errors.New("falta seleccionar cliente para fiado")
	ErrClienteConSaldo  = errors.New("no se puede eliminar un cliente con deuda pendiente")
	ErrCorteYaRealizado = errors.New("el corte de caja de este día ya fue realizado")
	ErrDiaCerrado       = errors.New("el día ya está cerrado: no se aceptan más movimientos")
	ErrRetiroInvalido   = errors.New("el retiro no puede exceder el efectivo contado")
	ErrPrecioInvalido   = errors.New("el precio debe ser mayor a 0")
	ErrTipoPagoInvalido = errors.New("tipo de pago desconocido")
	ErrSaborInactivo    = errors.New("el sabor está desactivado y no puede venderse")
	ErrFechaInvalida    = errors.New("la fecha debe tener formato YYYY-MM-DD")
)

// mapNotFound converts the GORM sentinel into the domain's not-found error,
// leaving everything else untouched.
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoEncontrado
	}
	return err
}

// StockInsuficienteError reports how many bags remain so the caller can offer
// a reduced-quantity retry.
type StockInsuficienteError struct {
	Restante int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("solo quedan %d bolsas disponibles", e.Restante)
}

// AbonoExcedeSaldoError reports both amounts; the payment is rejected, never
// clamped to the balance.
type AbonoExcedeSaldoError struct {
	Monto decimal.Decimal
	Saldo decimal.Decimal
}

func (e *AbonoExcedeSaldoError) Error() string {
	return fmt.Sprintf("el abono ($%s) excede la deuda ($%s)",
		e.Monto.StringFixed(2), e.Saldo.StringFixed(2))
}
