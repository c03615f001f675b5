package service

import (
	"context"
	"errors"
	"time"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/dto"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/infra"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/money"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/repository"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CajaService owns the per-day cash aggregate and the end-of-day corte.
//
// The business day is the date in the configured timezone, resolved at
// posting time — a sale at 23:59 and one at 00:01 land on different rows.
// Posting methods run inside the caller's transaction so the sale (or abono)
// and its caja effect commit or roll back together.
type CajaService interface {
	// PostVentaTx folds a sale into today's aggregate and returns the day key
	// the sale was posted to. ErrDiaCerrado when today's corte is done.
	PostVentaTx(tx *gorm.DB, tipoPago string, monto, costo decimal.Decimal) (string, error)
	// PostAbonoTx folds a cash debt payment into today's aggregate.
	PostAbonoTx(tx *gorm.DB, monto decimal.Decimal) error
	// ObtenerCajaDia returns the aggregate for fecha (YYYY-MM-DD), or today's
	// when fecha is empty. A day with no postings reads as all zeros.
	ObtenerCajaDia(ctx context.Context, fecha string) (*dto.CajaDiariaResponse, error)
	RealizarCorte(ctx context.Context, req dto.RealizarCorteRequest) (*dto.CorteResponse, error)
	HistorialCortes(ctx context.Context, limite int) ([]dto.CorteResponse, error)
	// FechaHoy returns today's business-day key in the configured timezone.
	FechaHoy() string
}

type cajaService struct {
	repo       repository.CajaRepository
	loc        *time.Location
	events     *infra.Events
	dispatcher *worker.Dispatcher
}

func NewCajaService(
	repo repository.CajaRepository,
	loc *time.Location,
	events *infra.Events,
	dispatcher *worker.Dispatcher,
) CajaService {
	if loc == nil {
		loc = time.Local
	}
	return &cajaService{repo: repo, loc: loc, events: events, dispatcher: dispatcher}
}

func (s *cajaService) FechaHoy() string {
	return time.Now().In(s.loc).Format("2006-01-02")
}

// cargarDiaTx returns today's row locked for update, inserting the zeroed row
// first when the day has no postings yet. FOR UPDATE locks nothing on a
// missing row, so two first postings racing here would each build the day
// from zero and the later commit would erase the earlier one; the DO NOTHING
// insert plus re-read makes whichever insert won visible before we add to it.
func (s *cajaService) cargarDiaTx(tx *gorm.DB, fecha string) (*model.CajaDiaria, error) {
	caja, err := s.repo.FindByFechaTx(tx, fecha)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.repo.CrearDiaTx(tx, fecha); err != nil {
			return nil, err
		}
		return s.repo.FindByFechaTx(tx, fecha)
	}
	if err != nil {
		return nil, err
	}
	return caja, nil
}

func (s *cajaService) PostVentaTx(tx *gorm.DB, tipoPago string, monto, costo decimal.Decimal) (string, error) {
	fecha := s.FechaHoy()

	caja, err := s.cargarDiaTx(tx, fecha)
	if err != nil {
		return "", err
	}
	if caja.CorteRealizado {
		return "", ErrDiaCerrado
	}

	switch tipoPago {
	case model.TipoPagoEfectivo:
		caja.EfectivoVentas = money.Round2(caja.EfectivoVentas.Add(monto))
	case model.TipoPagoFiado:
		caja.VentasFiado = money.Round2(caja.VentasFiado.Add(monto))
	default:
		return "", ErrTipoPagoInvalido
	}
	caja.CostoVendido = money.Round2(caja.CostoVendido.Add(costo))
	// Derived, never incremented on its own.
	caja.TotalEfectivo = money.Round2(caja.EfectivoVentas.Add(caja.EfectivoAbonos))
	caja.UpdatedAt = time.Now()

	return fecha, s.repo.SaveTx(tx, caja)
}

func (s *cajaService) PostAbonoTx(tx *gorm.DB, monto decimal.Decimal) error {
	fecha := s.FechaHoy()

	caja, err := s.cargarDiaTx(tx, fecha)
	if err != nil {
		return err
	}
	if caja.CorteRealizado {
		return ErrDiaCerrado
	}

	caja.EfectivoAbonos = money.Round2(caja.EfectivoAbonos.Add(monto))
	caja.TotalEfectivo = money.Round2(caja.EfectivoVentas.Add(caja.EfectivoAbonos))
	caja.UpdatedAt = time.Now()

	return s.repo.SaveTx(tx, caja)
}

func (s *cajaService) ObtenerCajaDia(ctx context.Context, fecha string) (*dto.CajaDiariaResponse, error) {
	if fecha == "" {
		fecha = s.FechaHoy()
	}
	if _, err := time.Parse("2006-01-02", fecha); err != nil {
		return nil, ErrFechaInvalida
	}

	caja, err := s.repo.FindByFecha(ctx, fecha)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No postings: report zeros instead of a 404 so the dashboard always
		// has something to render.
		return &dto.CajaDiariaResponse{
			Fecha:          fecha,
			EfectivoVentas: decimal.Zero,
			EfectivoAbonos: decimal.Zero,
			TotalEfectivo:  decimal.Zero,
			VentasFiado:    decimal.Zero,
			CostoVendido:   decimal.Zero,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return cajaToResponse(caja), nil
}

func (s *cajaService) RealizarCorte(ctx context.Context, req dto.RealizarCorteRequest) (*dto.CorteResponse, error) {
	if req.Contado.IsNegative() || req.Retirado.IsNegative() {
		return nil, ErrMontoInvalido
	}
	if req.Retirado.GreaterThan(req.Contado) {
		return nil, ErrRetiroInvalido
	}

	fecha := s.FechaHoy()
	var corte *model.CorteCaja

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		caja, err := s.cargarDiaTx(tx, fecha)
		if err != nil {
			return err
		}
		if caja.CorteRealizado {
			return ErrCorteYaRealizado
		}

		contado := money.Round2(req.Contado)
		retirado := money.Round2(req.Retirado)
		corte = &model.CorteCaja{
			FechaDia:      fecha,
			Esperado:      caja.TotalEfectivo,
			Contado:       contado,
			Diferencia:    money.Round2(contado.Sub(caja.TotalEfectivo)),
			MontoRetirado: retirado,
			FondoManana:   money.Round2(contado.Sub(retirado)),
			Notas:         req.Notas,
		}
		if err := s.repo.CreateCorteTx(tx, corte); err != nil {
			// Two closers racing on the same fresh day both pass the
			// CorteRealizado check; the unique index on fecha_dia decides,
			// and the loser reads as a duplicate corte, not a server fault.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCorteYaRealizado
			}
			return err
		}

		caja.CorteRealizado = true
		caja.UpdatedAt = time.Now()
		return s.repo.SaveTx(tx, caja)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, infra.CanalCaja, map[string]any{
		"accion": "corte_realizado",
		"fecha":  fecha,
	})

	// Report generation is async and best-effort: the corte is committed
	// regardless of whether the PDF/email pipeline is up.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReporteCorte(ctx, corte.ID.String())
	}

	return corteToResponse(corte), nil
}

func (s *cajaService) HistorialCortes(ctx context.Context, limite int) ([]dto.CorteResponse, error) {
	cortes, err := s.repo.ListCortes(ctx, limite)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CorteResponse, 0, len(cortes))
	for i := range cortes {
		out = append(out, *corteToResponse(&cortes[i]))
	}
	return out, nil
}

func cajaToResponse(c *model.CajaDiaria) *dto.CajaDiariaResponse {
	resp := &dto.CajaDiariaResponse{
		Fecha:          c.Fecha,
		EfectivoVentas: c.EfectivoVentas,
		EfectivoAbonos: c.EfectivoAbonos,
		TotalEfectivo:  c.TotalEfectivo,
		VentasFiado:    c.VentasFiado,
		CostoVendido:   c.CostoVendido,
		CorteRealizado: c.CorteRealizado,
	}
	if c.Corte != nil {
		resp.Corte = corteToResponse(c.Corte)
	}
	return resp
}

func corteToResponse(c *model.CorteCaja) *dto.CorteResponse {
	return &dto.CorteResponse{
		ID:            c.ID.String(),
		FechaDia:      c.FechaDia,
		Esperado:      c.Esperado,
		Contado:       c.Contado,
		Diferencia:    c.Diferencia,
		MontoRetirado: c.MontoRetirado,
		FondoManana:   c.FondoManana,
		Notas:         c.Notas,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
}
