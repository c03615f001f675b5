package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/dto"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/infra"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/money"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClientesService manages credit customers, their balances and the abono
// trail. Balance changes are never standalone: a charge happens inside the
// sale transaction, a payment inside the abono transaction — so the balance,
// the movement record and the caja aggregate always agree.
type ClientesService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	// Eliminar rejects customers with outstanding debt (ErrClienteConSaldo).
	Eliminar(ctx context.Context, id uuid.UUID) error
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	// ListarDeudores returns customers with debt, most owed first, with
	// overdue info derived from the promise date.
	ListarDeudores(ctx context.Context) ([]dto.DeudorResponse, error)
	// AgregarDeudaTx charges a credit sale to the customer inside the
	// caller's (sale) transaction.
	AgregarDeudaTx(tx *gorm.DB, clienteID uuid.UUID, monto decimal.Decimal) error
	RegistrarAbono(ctx context.Context, clienteID uuid.UUID, req dto.RegistrarAbonoRequest) (*dto.AbonoResponse, error)
	ActualizarFechaPromesa(ctx context.Context, id uuid.UUID, req dto.FechaPromesaRequest) error
	// EstadoDeCuenta merges credit sales and abonos chronologically with a
	// running balance, newest first.
	EstadoDeCuenta(ctx context.Context, clienteID uuid.UUID) ([]dto.MovimientoCuentaResponse, error)
}

type clientesService struct {
	repo      repository.ClienteRepository
	ventaRepo repository.VentaRepository
	caja      CajaService
	events    *infra.Events
	loc       *time.Location
}

func NewClientesService(
	repo repository.ClienteRepository,
	ventaRepo repository.VentaRepository,
	caja CajaService,
	events *infra.Events,
	loc *time.Location,
) ClientesService {
	if loc == nil {
		loc = time.Local
	}
	return &clientesService{repo: repo, ventaRepo: ventaRepo, caja: caja, events: events, loc: loc}
}

func (s *clientesService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	alias := strings.TrimSpace(req.Alias)
	if alias == "" {
		return nil, ErrNombreRequerido
	}

	cliente := &model.Cliente{
		Alias:          alias,
		Telefono:       req.Telefono,
		Notas:          req.Notas,
		SaldoPendiente: decimal.Zero,
	}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

func (s *clientesService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if req.Alias != nil {
		alias := strings.TrimSpace(*req.Alias)
		if alias == "" {
			return nil, ErrNombreRequerido
		}
		cliente.Alias = alias
	}
	if req.Telefono != nil {
		cliente.Telefono = req.Telefono
	}
	if req.Notas != nil {
		cliente.Notas = req.Notas
	}

	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

func (s *clientesService) Eliminar(ctx context.Context, id uuid.UUID) error {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if cliente.SaldoPendiente.IsPositive() {
		return ErrClienteConSaldo
	}
	return s.repo.Delete(ctx, id)
}

func (s *clientesService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out, nil
}

func (s *clientesService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return clienteToResponse(cliente), nil
}

func (s *clientesService) ListarDeudores(ctx context.Context) ([]dto.DeudorResponse, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	hoy := time.Now().In(s.loc)
	hoyTrunc := time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, s.loc)

	deudores := make([]dto.DeudorResponse, 0)
	for i := range clientes {
		c := &clientes[i]
		if !c.SaldoPendiente.IsPositive() {
			continue
		}
		d := dto.DeudorResponse{ClienteResponse: *clienteToResponse(c)}
		if c.FechaPromesaPago != nil {
			p := *c.FechaPromesaPago
			promesa := time.Date(p.Year(), p.Month(), p.Day(), 0, 0, 0, 0, s.loc)
			dias := int(hoyTrunc.Sub(promesa).Hours() / 24)
			if dias > 0 {
				d.EstaVencido = true
				d.DiasVencido = &dias
			}
		}
		deudores = append(deudores, d)
	}

	sort.SliceStable(deudores, func(i, j int) bool {
		return deudores[i].SaldoPendiente.GreaterThan(deudores[j].SaldoPendiente)
	})
	return deudores, nil
}

func (s *clientesService) AgregarDeudaTx(tx *gorm.DB, clienteID uuid.UUID, monto decimal.Decimal) error {
	cliente, err := s.repo.FindByIDTx(tx, clienteID)
	if err != nil {
		return mapNotFound(err)
	}
	nuevoSaldo := money.Round2(cliente.SaldoPendiente.Add(monto))
	return s.repo.UpdateSaldoTx(tx, clienteID, nuevoSaldo)
}

func (s *clientesService) RegistrarAbono(ctx context.Context, clienteID uuid.UUID, req dto.RegistrarAbonoRequest) (*dto.AbonoResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, ErrMontoInvalido
	}

	abono := &model.Abono{
		ClienteID: clienteID,
		Monto:     money.Round2(req.Monto),
		Notas:     req.Notas,
	}

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		cliente, err := s.repo.FindByIDTx(tx, clienteID)
		if err != nil {
			return mapNotFound(err)
		}
		if abono.Monto.GreaterThan(cliente.SaldoPendiente) {
			return &AbonoExcedeSaldoError{Monto: abono.Monto, Saldo: cliente.SaldoPendiente}
		}
		if err := s.repo.CreateAbonoTx(tx, abono); err != nil {
			return err
		}
		nuevoSaldo := money.Round2(cliente.SaldoPendiente.Sub(abono.Monto))
		if err := s.repo.UpdateSaldoTx(tx, clienteID, nuevoSaldo); err != nil {
			return err
		}
		// The cash enters the register today, regardless of when the debt
		// was incurred.
		return s.caja.PostAbonoTx(tx, abono.Monto)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, infra.CanalClientes, map[string]any{
		"accion":     "abono_registrado",
		"cliente_id": clienteID.String(),
	})
	s.events.Publish(ctx, infra.CanalCaja, map[string]any{
		"accion": "abono_registrado",
		"fecha":  s.caja.FechaHoy(),
	})

	return abonoToResponse(abono), nil
}

func (s *clientesService) ActualizarFechaPromesa(ctx context.Context, id uuid.UUID, req dto.FechaPromesaRequest) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapNotFound(err)
	}

	var fecha *time.Time
	if req.Fecha != nil {
		parsed, err := time.ParseInLocation("2006-01-02", *req.Fecha, s.loc)
		if err != nil {
			return ErrFechaInvalida
		}
		fecha = &parsed
	}
	return s.repo.UpdateFechaPromesa(ctx, id, fecha)
}

func (s *clientesService) EstadoDeCuenta(ctx context.Context, clienteID uuid.UUID) ([]dto.MovimientoCuentaResponse, error) {
	if _, err := s.repo.FindByID(ctx, clienteID); err != nil {
		return nil, mapNotFound(err)
	}

	ventas, err := s.ventaRepo.ListFiadoPorCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	abonos, err := s.repo.ListAbonos(ctx, clienteID)
	if err != nil {
		return nil, err
	}

	type movimiento struct {
		cuando time.Time
		linea  dto.MovimientoCuentaResponse
		cargo  bool
	}
	movs := make([]movimiento, 0, len(ventas)+len(abonos))

	for i := range ventas {
		v := &ventas[i]
		desc := "Venta fiada"
		if v.NombreSaborSnapshot != nil {
			desc = "Venta fiada: " + *v.NombreSaborSnapshot
		}
		movs = append(movs, movimiento{
			cuando: v.CreatedAt,
			cargo:  true,
			linea: dto.MovimientoCuentaResponse{
				ID:          v.ID.String(),
				Fecha:       v.CreatedAt.In(s.loc).Format(time.RFC3339),
				Tipo:        "CARGO",
				Descripcion: desc,
				Monto:       money.Mul2(v.PrecioUnitario, v.Cantidad),
			},
		})
	}
	for i := range abonos {
		a := &abonos[i]
		desc := "Abono"
		if a.Notas != nil && *a.Notas != "" {
			desc = "Abono: " + *a.Notas
		}
		movs = append(movs, movimiento{
			cuando: a.CreatedAt,
			linea: dto.MovimientoCuentaResponse{
				ID:          a.ID.String(),
				Fecha:       a.CreatedAt.In(s.loc).Format(time.RFC3339),
				Tipo:        "ABONO",
				Descripcion: desc,
				Monto:       a.Monto,
			},
		})
	}

	sort.SliceStable(movs, func(i, j int) bool { return movs[i].cuando.Before(movs[j].cuando) })

	// Running balance oldest-to-newest, then flipped so the statement reads
	// newest first.
	saldo := decimal.Zero
	out := make([]dto.MovimientoCuentaResponse, len(movs))
	for i := range movs {
		if movs[i].cargo {
			saldo = money.Round2(saldo.Add(movs[i].linea.Monto))
		} else {
			saldo = money.Round2(saldo.Sub(movs[i].linea.Monto))
		}
		movs[i].linea.SaldoAcumulado = saldo
		out[len(movs)-1-i] = movs[i].linea
	}
	return out, nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	resp := &dto.ClienteResponse{
		ID:             c.ID.String(),
		Alias:          c.Alias,
		Telefono:       c.Telefono,
		Notas:          c.Notas,
		SaldoPendiente: c.SaldoPendiente,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
	if c.FechaPromesaPago != nil {
		f := c.FechaPromesaPago.Format("2006-01-02")
		resp.FechaPromesaPago = &f
	}
	return resp
}

func abonoToResponse(a *model.Abono) *dto.AbonoResponse {
	return &dto.AbonoResponse{
		ID:        a.ID.String(),
		ClienteID: a.ClienteID.String(),
		Monto:     a.Monto,
		Notas:     a.Notas,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}
