package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/dto"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ventasEnv struct {
	svc        service.VentasService
	inventario service.InventarioService
	clientes   service.ClientesService
	caja       service.CajaService

	ventaRepo   *stubVentaRepo
	invRepo     *stubInventarioRepo
	clienteRepo *stubClienteRepo
	cajaRepo    *stubCajaRepo

	saborID   uuid.UUID
	clienteID uuid.UUID
}

// buildVentasEnv wires the full service graph over in-memory stubs:
// one flavor with 10 bags at $4.00 average, one customer with zero debt,
// default sale price $10.00.
func buildVentasEnv(t *testing.T) *ventasEnv {
	t.Helper()
	ctx := context.Background()

	saborRepo := newStubSaborRepo()
	sabor := &model.Sabor{Nombre: "Enchilado", Activo: true}
	require.NoError(t, saborRepo.Create(ctx, sabor))

	invRepo := newStubInventarioRepo()
	inventario := service.NewInventarioService(invRepo, saborRepo, nil, nil)
	_, err := inventario.RegistrarLote(ctx, dto.RegistrarLoteRequest{
		SaborID:           sabor.ID.String(),
		CostoTotal:        dec("40.00"),
		BolsasResultantes: 10,
	})
	require.NoError(t, err)

	clienteRepo := newStubClienteRepo()
	cliente := &model.Cliente{Alias: "Juan"}
	require.NoError(t, clienteRepo.Create(ctx, cliente))

	ventaRepo := newStubVentaRepo()
	cajaRepo := newStubCajaRepo()
	caja := service.NewCajaService(cajaRepo, time.UTC, nil, nil)
	clientes := service.NewClientesService(clienteRepo, ventaRepo, caja, nil, time.UTC)

	configRepo := &stubConfiguracionRepo{}
	configSvc := service.NewConfiguracionService(configRepo)

	return &ventasEnv{
		svc:         service.NewVentasService(ventaRepo, saborRepo, inventario, clientes, caja, configSvc, nil),
		inventario:  inventario,
		clientes:    clientes,
		caja:        caja,
		ventaRepo:   ventaRepo,
		invRepo:     invRepo,
		clienteRepo: clienteRepo,
		cajaRepo:    cajaRepo,
		saborID:     sabor.ID,
		clienteID:   cliente.ID,
	}
}

func TestProcesarVenta_EfectivoCompleta(t *testing.T) {
	env := buildVentasEnv(t)

	resp, err := env.svc.ProcesarVenta(context.Background(), dto.ProcesarVentaRequest{
		SaborID:  env.saborID.String(),
		Cantidad: 3,
		TipoPago: model.TipoPagoEfectivo,
	})
	require.NoError(t, err)

	// Precio default $10.00, costo promedio $4.00
	assert.True(t, resp.Ingreso.Equal(dec("30.00")))
	assert.True(t, resp.Costo.Equal(dec("12.00")))
	assert.True(t, resp.Utilidad.Equal(dec("18.00")))
	assert.Equal(t, 7, resp.StockRestante)
	assert.Equal(t, "Enchilado", resp.NombreSabor)

	// Stock debitado
	assert.Equal(t, 7, env.invRepo.inventario[env.saborID].Cantidad)

	// Caja del día actualizada
	caja := env.cajaRepo.dias[env.caja.FechaHoy()]
	require.NotNil(t, caja)
	assert.True(t, caja.EfectivoVentas.Equal(dec("30.00")))
	assert.True(t, caja.CostoVendido.Equal(dec("12.00")))

	// Venta registrada con snapshot de costo
	venta, err := env.ventaRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.True(t, venta.CostoUnitario.Equal(dec("4.00")))
	assert.Equal(t, env.caja.FechaHoy(), venta.FechaDia)
}

func TestProcesarVenta_FiadoCargaAlCliente(t *testing.T) {
	env := buildVentasEnv(t)
	cid := env.clienteID.String()

	resp, err := env.svc.ProcesarVenta(context.Background(), dto.ProcesarVentaRequest{
		SaborID:   env.saborID.String(),
		Cantidad:  2,
		TipoPago:  model.TipoPagoFiado,
		ClienteID: &cid,
	})
	require.NoError(t, err)
	assert.True(t, resp.Ingreso.Equal(dec("20.00")))

	cliente, _ := env.clienteRepo.FindByID(context.Background(), env.clienteID)
	assert.True(t, cliente.SaldoPendiente.Equal(dec("20.00")))

	// El fiado suma a ventas_fiado, nunca al efectivo.
	caja := env.cajaRepo.dias[env.caja.FechaHoy()]
	assert.True(t, caja.VentasFiado.Equal(dec("20.00")))
	assert.True(t, caja.EfectivoVentas.IsZero())
	assert.True(t, caja.TotalEfectivo.IsZero())
}

func TestProcesarVenta_FiadoSinCliente(t *testing.T) {
	env := buildVentasEnv(t)

	_, err := env.svc.ProcesarVenta(context.Background(), dto.ProcesarVentaRequest{
		SaborID:  env.saborID.String(),
		Cantidad: 1,
		TipoPago: model.TipoPagoFiado,
	})
	assert.ErrorIs(t, err, service.ErrFaltaCliente)
}

func TestProcesarVenta_StockInsuficiente(t *testing.T) {
	env := buildVentasEnv(t)

	_, err := env.svc.ProcesarVenta(context.Background(), dto.ProcesarVentaRequest{
		SaborID:  env.saborID.String(),
		Cantidad: 11,
		TipoPago: model.TipoPagoEfectivo,
	})

	var stockErr *service.StockInsuficienteError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 10, stockErr.Restante)

	// Sin efectos: ni stock, ni venta, ni caja.
	assert.Equal(t, 10, env.invRepo.inventario[env.saborID].Cantidad)
	assert.Empty(t, env.ventaRepo.ventas)
	assert.Empty(t, env.cajaRepo.dias)
}

func TestProcesarVenta_PrecioOverride(t *testing.T) {
	env := buildVentasEnv(t)

	precio := dec("8.50")
	resp, err := env.svc.ProcesarVenta(context.Background(), dto.ProcesarVentaRequest{
		SaborID:        env.saborID.String(),
		Cantidad:       2,
		TipoPago:       model.TipoPagoEfectivo,
		PrecioUnitario: &precio,
	})
	require.NoError(t, err)
	assert.True(t, resp.Ingreso.Equal(dec("17.00")))

	malo := dec("0")
	_, err = env.svc.ProcesarVenta(context.Background(), dto.ProcesarVentaRequest{
		SaborID:        env.saborID.String(),
		Cantidad:       1,
		TipoPago:       model.TipoPagoEfectivo,
		PrecioUnitario: &malo,
	})
	assert.ErrorIs(t, err, service.ErrPrecioInvalido)
}

func TestProcesarVenta_Validaciones(t *testing.T) {
	env := buildVentasEnv(t)
	ctx := context.Background()

	_, err := env.svc.ProcesarVenta(ctx, dto.ProcesarVentaRequest{
		SaborID: env.saborID.String(), Cantidad: 0, TipoPago: model.TipoPagoEfectivo,
	})
	assert.ErrorIs(t, err, service.ErrCantidadInvalida)

	_, err = env.svc.ProcesarVenta(ctx, dto.ProcesarVentaRequest{
		SaborID: env.saborID.String(), Cantidad: 1, TipoPago: "tarjeta",
	})
	assert.ErrorIs(t, err, service.ErrTipoPagoInvalido)

	_, err = env.svc.ProcesarVenta(ctx, dto.ProcesarVentaRequest{
		SaborID: uuid.NewString(), Cantidad: 1, TipoPago: model.TipoPagoEfectivo,
	})
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestProcesarVenta_SaborDesactivado(t *testing.T) {
	env := buildVentasEnv(t)
	ctx := context.Background()

	saborRepo := newStubSaborRepo()
	inactivo := &model.Sabor{Nombre: "Viejo", Activo: false}
	require.NoError(t, saborRepo.Create(ctx, inactivo))
	svc := service.NewVentasService(env.ventaRepo, saborRepo, env.inventario, env.clientes,
		env.caja, service.NewConfiguracionService(&stubConfiguracionRepo{}), nil)

	_, err := svc.ProcesarVenta(ctx, dto.ProcesarVentaRequest{
		SaborID: inactivo.ID.String(), Cantidad: 1, TipoPago: model.TipoPagoEfectivo,
	})
	assert.ErrorIs(t, err, service.ErrSaborInactivo)
}

func TestListarVentasDelDia(t *testing.T) {
	env := buildVentasEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.svc.ProcesarVenta(ctx, dto.ProcesarVentaRequest{
			SaborID:  env.saborID.String(),
			Cantidad: 1,
			TipoPago: model.TipoPagoEfectivo,
		})
		require.NoError(t, err)
	}

	ventas, err := env.svc.ListarVentasDelDia(ctx)
	require.NoError(t, err)
	assert.Len(t, ventas, 3)
}
