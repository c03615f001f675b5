package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/dto"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildInventarioSvc(t *testing.T) (service.InventarioService, *stubInventarioRepo, uuid.UUID) {
	t.Helper()
	saborRepo := newStubSaborRepo()
	sabor := &model.Sabor{Nombre: "Enchilado", Activo: true}
	require.NoError(t, saborRepo.Create(context.Background(), sabor))

	invRepo := newStubInventarioRepo()
	svc := service.NewInventarioService(invRepo, saborRepo, nil, nil)
	return svc, invRepo, sabor.ID
}

func registrarLote(t *testing.T, svc service.InventarioService, saborID uuid.UUID, costo string, bolsas int) *dto.LoteResponse {
	t.Helper()
	resp, err := svc.RegistrarLote(context.Background(), dto.RegistrarLoteRequest{
		SaborID:           saborID.String(),
		CostoTotal:        dec(costo),
		BolsasResultantes: bolsas,
	})
	require.NoError(t, err)
	return resp
}

func TestRegistrarLote_PrimerLote(t *testing.T) {
	svc, repo, saborID := buildInventarioSvc(t)

	lote := registrarLote(t, svc, saborID, "250.00", 25)

	assert.True(t, lote.CostoUnitario.Equal(dec("10.00")))

	inv := repo.inventario[saborID]
	require.NotNil(t, inv)
	assert.Equal(t, 25, inv.Cantidad)
	assert.True(t, inv.CostoPromedio.Equal(dec("10.00")))
	assert.Len(t, repo.lotes, 1)
}

func TestRegistrarLote_PromedioPonderado(t *testing.T) {
	svc, repo, saborID := buildInventarioSvc(t)

	// 10 bolsas a $5.00 + 10 bolsas a $7.00 → promedio $6.00
	registrarLote(t, svc, saborID, "50.00", 10)
	registrarLote(t, svc, saborID, "70.00", 10)

	inv := repo.inventario[saborID]
	assert.Equal(t, 20, inv.Cantidad)
	assert.True(t, inv.CostoPromedio.Equal(dec("6.00")),
		"promedio esperado 6.00, obtenido %s", inv.CostoPromedio)
}

func TestRegistrarLote_RedondeoADosDecimales(t *testing.T) {
	svc, repo, saborID := buildInventarioSvc(t)

	// 100 / 3 = 33.333… → 33.33
	lote := registrarLote(t, svc, saborID, "100.00", 3)

	assert.True(t, lote.CostoUnitario.Equal(dec("33.33")))
	assert.True(t, repo.inventario[saborID].CostoPromedio.Equal(dec("33.33")))
}

// inventarioRepoCarrera simula otro lote que inserta la fila del sabor entre
// nuestra primera lectura y el insert: la lectura inicial no ve la fila
// aunque ya exista.
type inventarioRepoCarrera struct {
	*stubInventarioRepo
	lecturasFallidas int
}

func (r *inventarioRepoCarrera) FindBySaborTx(tx *gorm.DB, saborID uuid.UUID) (*model.Inventario, error) {
	if r.lecturasFallidas > 0 {
		r.lecturasFallidas--
		return nil, gorm.ErrRecordNotFound
	}
	return r.stubInventarioRepo.FindBySaborTx(tx, saborID)
}

func TestRegistrarLote_PrimerLoteConcurrenteNoPierdeStock(t *testing.T) {
	saborRepo := newStubSaborRepo()
	sabor := &model.Sabor{Nombre: "Enchilado", Activo: true}
	require.NoError(t, saborRepo.Create(context.Background(), sabor))

	base := newStubInventarioRepo()
	repo := &inventarioRepoCarrera{stubInventarioRepo: base, lecturasFallidas: 1}
	svc := service.NewInventarioService(repo, saborRepo, nil, nil)

	// Otro lote ya dejó 10 bolsas a $5.00 para este sabor.
	base.inventario[sabor.ID] = &model.Inventario{
		SaborID:       sabor.ID,
		Cantidad:      10,
		CostoPromedio: dec("5.00"),
	}

	resp, err := svc.RegistrarLote(context.Background(), dto.RegistrarLoteRequest{
		SaborID:           sabor.ID.String(),
		CostoTotal:        dec("70.00"),
		BolsasResultantes: 10,
	})
	require.NoError(t, err)
	assert.True(t, resp.CostoUnitario.Equal(dec("7.00")))

	inv := base.inventario[sabor.ID]
	assert.Equal(t, 20, inv.Cantidad, "las bolsas del lote rival no se pierden")
	assert.True(t, inv.CostoPromedio.Equal(dec("6.00")),
		"promedio esperado 6.00, obtenido %s", inv.CostoPromedio)
}

func TestRegistrarLote_Validaciones(t *testing.T) {
	svc, _, saborID := buildInventarioSvc(t)
	ctx := context.Background()

	_, err := svc.RegistrarLote(ctx, dto.RegistrarLoteRequest{
		SaborID: saborID.String(), CostoTotal: dec("100"), BolsasResultantes: 0,
	})
	assert.ErrorIs(t, err, service.ErrCantidadInvalida)

	_, err = svc.RegistrarLote(ctx, dto.RegistrarLoteRequest{
		SaborID: saborID.String(), CostoTotal: dec("-5"), BolsasResultantes: 10,
	})
	assert.ErrorIs(t, err, service.ErrMontoInvalido)

	_, err = svc.RegistrarLote(ctx, dto.RegistrarLoteRequest{
		SaborID: uuid.NewString(), CostoTotal: dec("100"), BolsasResultantes: 10,
	})
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestDescontarStock_DevuelveCostoYRestante(t *testing.T) {
	svc, _, saborID := buildInventarioSvc(t)
	registrarLote(t, svc, saborID, "50.00", 10)

	costo, restante, err := svc.DescontarStockTx(nil, saborID, 3)
	require.NoError(t, err)
	assert.True(t, costo.Equal(dec("5.00")))
	assert.Equal(t, 7, restante)
}

func TestDescontarStock_Insuficiente(t *testing.T) {
	svc, repo, saborID := buildInventarioSvc(t)
	registrarLote(t, svc, saborID, "50.00", 10)

	_, _, err := svc.DescontarStockTx(nil, saborID, 11)

	var stockErr *service.StockInsuficienteError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 10, stockErr.Restante)
	// El stock no se toca cuando la venta se rechaza.
	assert.Equal(t, 10, repo.inventario[saborID].Cantidad)
}

func TestDescontarStock_SinLotesEsCero(t *testing.T) {
	svc, _, saborID := buildInventarioSvc(t)

	_, _, err := svc.DescontarStockTx(nil, saborID, 1)

	var stockErr *service.StockInsuficienteError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 0, stockErr.Restante)
}

func TestDescontarStock_VenderTodoConservaPromedio(t *testing.T) {
	svc, repo, saborID := buildInventarioSvc(t)
	registrarLote(t, svc, saborID, "80.00", 10)

	_, restante, err := svc.DescontarStockTx(nil, saborID, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, restante)

	inv := repo.inventario[saborID]
	assert.Equal(t, 0, inv.Cantidad)
	// El promedio sobrevive al stock cero: el siguiente lote mezcla contra él.
	assert.True(t, inv.CostoPromedio.Equal(dec("8.00")))
}

func TestObtenerResumen_Totales(t *testing.T) {
	saborRepo := newStubSaborRepo()
	s1 := &model.Sabor{Nombre: "Natural", Activo: true}
	s2 := &model.Sabor{Nombre: "Salado", Activo: true}
	require.NoError(t, saborRepo.Create(context.Background(), s1))
	require.NoError(t, saborRepo.Create(context.Background(), s2))

	invRepo := newStubInventarioRepo()
	svc := service.NewInventarioService(invRepo, saborRepo, nil, nil)

	registrarLote(t, svc, s1.ID, "50.00", 10) // 10 × 5.00 = 50.00
	registrarLote(t, svc, s2.ID, "30.00", 4)  // 4 × 7.50 = 30.00

	resumen, err := svc.ObtenerResumen(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 14, resumen.TotalBolsas)
	assert.True(t, resumen.ValorTotal.Equal(dec("80.00")),
		"valor esperado 80.00, obtenido %s", resumen.ValorTotal)
	assert.Len(t, resumen.Inventario, 2)
	assert.Equal(t, 2, resumen.TotalLotes)
	assert.True(t, resumen.PromedioBolsasLote.Equal(dec("7")),
		"rendimiento esperado 7, obtenido %s", resumen.PromedioBolsasLote)
}

func TestObtenerPorSabor_SinLotes(t *testing.T) {
	svc, _, saborID := buildInventarioSvc(t)

	resp, err := svc.ObtenerPorSabor(context.Background(), saborID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Cantidad)
	assert.True(t, resp.CostoPromedio.IsZero())
}
