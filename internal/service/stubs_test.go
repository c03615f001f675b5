package service_test

// In-memory repository stubs. The Tx-suffixed methods accept the nil *gorm.DB
// the services pass in unit-test mode (runTx short-circuits without a real
// transaction), so business rules are exercised without Postgres.

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func uuidFrom(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

// ── Sabores ──────────────────────────────────────────────────────────────────

type stubSaborRepo struct {
	sabores map[uuid.UUID]*model.Sabor
}

func newStubSaborRepo() *stubSaborRepo {
	return &stubSaborRepo{sabores: make(map[uuid.UUID]*model.Sabor)}
}

func (r *stubSaborRepo) Create(_ context.Context, s *model.Sabor) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	r.sabores[s.ID] = s
	return nil
}

func (r *stubSaborRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sabor, error) {
	s, ok := r.sabores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSaborRepo) List(_ context.Context, incluirInactivos bool) ([]model.Sabor, error) {
	out := make([]model.Sabor, 0, len(r.sabores))
	for _, s := range r.sabores {
		if !incluirInactivos && !s.Activo {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *stubSaborRepo) Update(_ context.Context, s *model.Sabor) error {
	if _, ok := r.sabores[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *s
	r.sabores[s.ID] = &cp
	return nil
}

func (r *stubSaborRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	if s, ok := r.sabores[id]; ok {
		s.Activo = false
	}
	return nil
}

func (r *stubSaborRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if s, ok := r.sabores[id]; ok {
		s.Activo = true
	}
	return nil
}

var _ repository.SaborRepository = (*stubSaborRepo)(nil)

// ── Inventario ───────────────────────────────────────────────────────────────

type stubInventarioRepo struct {
	inventario map[uuid.UUID]*model.Inventario
	lotes      []model.LoteProduccion
}

func newStubInventarioRepo() *stubInventarioRepo {
	return &stubInventarioRepo{inventario: make(map[uuid.UUID]*model.Inventario)}
}

func (r *stubInventarioRepo) FindBySabor(_ context.Context, saborID uuid.UUID) (*model.Inventario, error) {
	inv, ok := r.inventario[saborID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *stubInventarioRepo) FindBySaborTx(_ *gorm.DB, saborID uuid.UUID) (*model.Inventario, error) {
	return r.FindBySabor(context.Background(), saborID)
}

func (r *stubInventarioRepo) CrearVacioTx(_ *gorm.DB, saborID uuid.UUID) error {
	if _, ok := r.inventario[saborID]; !ok {
		r.inventario[saborID] = &model.Inventario{SaborID: saborID}
	}
	return nil
}

func (r *stubInventarioRepo) SaveTx(_ *gorm.DB, inv *model.Inventario) error {
	cp := *inv
	r.inventario[inv.SaborID] = &cp
	return nil
}

func (r *stubInventarioRepo) CreateLoteTx(_ *gorm.DB, lote *model.LoteProduccion) error {
	if lote.ID == uuid.Nil {
		lote.ID = uuid.New()
	}
	lote.CreatedAt = time.Now()
	r.lotes = append(r.lotes, *lote)
	return nil
}

func (r *stubInventarioRepo) List(_ context.Context) ([]model.Inventario, error) {
	out := make([]model.Inventario, 0, len(r.inventario))
	for _, inv := range r.inventario {
		out = append(out, *inv)
	}
	return out, nil
}

func (r *stubInventarioRepo) ListLotes(_ context.Context) ([]model.LoteProduccion, error) {
	return append([]model.LoteProduccion(nil), r.lotes...), nil
}

func (r *stubInventarioRepo) ListLotesPorSabor(_ context.Context, saborID uuid.UUID) ([]model.LoteProduccion, error) {
	var out []model.LoteProduccion
	for _, l := range r.lotes {
		if l.SaborID == saborID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubInventarioRepo) DB() *gorm.DB { return nil }

var _ repository.InventarioRepository = (*stubInventarioRepo)(nil)

// ── Clientes ─────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
	abonos   []model.Abono
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClienteRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	if _, ok := r.clientes[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *c
	r.clientes[c.ID] = &cp
	return nil
}

func (r *stubClienteRepo) UpdateSaldoTx(_ *gorm.DB, id uuid.UUID, nuevoSaldo decimal.Decimal) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.SaldoPendiente = nuevoSaldo
	return nil
}

func (r *stubClienteRepo) UpdateFechaPromesa(_ context.Context, id uuid.UUID, fecha *time.Time) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.FechaPromesaPago = fecha
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clientes, id)
	return nil
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Alias < out[j].Alias })
	return out, nil
}

func (r *stubClienteRepo) CreateAbonoTx(_ *gorm.DB, a *model.Abono) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	r.abonos = append(r.abonos, *a)
	return nil
}

func (r *stubClienteRepo) ListAbonos(_ context.Context, clienteID uuid.UUID) ([]model.Abono, error) {
	var out []model.Abono
	for _, a := range r.abonos {
		if a.ClienteID == clienteID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubClienteRepo) DB() *gorm.DB { return nil }

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Ventas ───────────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
	orden  []uuid.UUID
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	cp := *v
	r.ventas[v.ID] = &cp
	r.orden = append(r.orden, v.ID)
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *stubVentaRepo) ListPorDia(_ context.Context, fechaDia string) ([]model.Venta, error) {
	var out []model.Venta
	for i := len(r.orden) - 1; i >= 0; i-- {
		v := r.ventas[r.orden[i]]
		if v.FechaDia == fechaDia {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVentaRepo) ListFiadoPorCliente(_ context.Context, clienteID uuid.UUID) ([]model.Venta, error) {
	var out []model.Venta
	for _, id := range r.orden {
		v := r.ventas[id]
		if v.TipoPago == model.TipoPagoFiado && v.ClienteID != nil && *v.ClienteID == clienteID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── Caja ─────────────────────────────────────────────────────────────────────

type stubCajaRepo struct {
	dias   map[string]*model.CajaDiaria
	cortes []model.CorteCaja
}

func newStubCajaRepo() *stubCajaRepo {
	return &stubCajaRepo{dias: make(map[string]*model.CajaDiaria)}
}

func (r *stubCajaRepo) FindByFecha(_ context.Context, fecha string) (*model.CajaDiaria, error) {
	caja, ok := r.dias[fecha]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *caja
	for i := range r.cortes {
		if r.cortes[i].FechaDia == fecha {
			corte := r.cortes[i]
			cp.Corte = &corte
		}
	}
	return &cp, nil
}

func (r *stubCajaRepo) FindByFechaTx(_ *gorm.DB, fecha string) (*model.CajaDiaria, error) {
	caja, ok := r.dias[fecha]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *caja
	return &cp, nil
}

func (r *stubCajaRepo) CrearDiaTx(_ *gorm.DB, fecha string) error {
	if _, ok := r.dias[fecha]; !ok {
		r.dias[fecha] = &model.CajaDiaria{Fecha: fecha}
	}
	return nil
}

func (r *stubCajaRepo) SaveTx(_ *gorm.DB, caja *model.CajaDiaria) error {
	cp := *caja
	r.dias[caja.Fecha] = &cp
	return nil
}

func (r *stubCajaRepo) CreateCorteTx(_ *gorm.DB, corte *model.CorteCaja) error {
	if corte.ID == uuid.Nil {
		corte.ID = uuid.New()
	}
	corte.CreatedAt = time.Now()
	r.cortes = append(r.cortes, *corte)
	return nil
}

func (r *stubCajaRepo) FindCorteByID(_ context.Context, id uuid.UUID) (*model.CorteCaja, error) {
	for i := range r.cortes {
		if r.cortes[i].ID == id {
			cp := r.cortes[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCajaRepo) ListCortes(_ context.Context, limite int) ([]model.CorteCaja, error) {
	if limite <= 0 {
		limite = 7
	}
	out := append([]model.CorteCaja(nil), r.cortes...)
	sort.Slice(out, func(i, j int) bool { return out[i].FechaDia > out[j].FechaDia })
	if len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

func (r *stubCajaRepo) DB() *gorm.DB { return nil }

var _ repository.CajaRepository = (*stubCajaRepo)(nil)

// ── Configuración ────────────────────────────────────────────────────────────

type stubConfiguracionRepo struct {
	cfg *model.ConfiguracionNegocio
}

func (r *stubConfiguracionRepo) Get(_ context.Context) (*model.ConfiguracionNegocio, error) {
	if r.cfg == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.cfg
	return &cp, nil
}

func (r *stubConfiguracionRepo) Save(_ context.Context, cfg *model.ConfiguracionNegocio) error {
	cp := *cfg
	r.cfg = &cp
	return nil
}

var _ repository.ConfiguracionRepository = (*stubConfiguracionRepo)(nil)
