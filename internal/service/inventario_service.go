package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/dto"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/infra"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/money"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	cacheKeyInventario = "cache:inventario:resumen"
	cacheTTLInventario = 5 * time.Minute
)

// InventarioService owns stock levels and the weighted-average unit cost.
//
// Cost model: registering a lote folds its unit cost into the flavor's
// running average weighted by quantities; a sale debits quantity but never
// changes the average. Selling down to zero keeps the last average, so the
// next lote still blends against a sensible prior.
type InventarioService interface {
	RegistrarLote(ctx context.Context, req dto.RegistrarLoteRequest) (*dto.LoteResponse, error)
	// DescontarStockTx debits the flavor's stock inside the caller's
	// transaction and returns the weighted-average cost at debit time plus
	// the remaining quantity. Oversell returns *StockInsuficienteError.
	DescontarStockTx(tx *gorm.DB, saborID uuid.UUID, cantidad int) (costoUnitario decimal.Decimal, restante int, err error)
	ObtenerResumen(ctx context.Context) (*dto.InventarioResumenResponse, error)
	ObtenerPorSabor(ctx context.Context, saborID uuid.UUID) (*dto.InventarioResponse, error)
	ListarLotes(ctx context.Context) ([]dto.LoteResponse, error)
	ListarLotesPorSabor(ctx context.Context, saborID uuid.UUID) ([]dto.LoteResponse, error)
	// InvalidarCache drops the cached summary after any stock mutation.
	InvalidarCache(ctx context.Context)
}

type inventarioService struct {
	repo      repository.InventarioRepository
	saborRepo repository.SaborRepository
	rdb       *redis.Client
	events    *infra.Events
}

func NewInventarioService(
	repo repository.InventarioRepository,
	saborRepo repository.SaborRepository,
	rdb *redis.Client,
	events *infra.Events,
) InventarioService {
	return &inventarioService{repo: repo, saborRepo: saborRepo, rdb: rdb, events: events}
}

func (s *inventarioService) RegistrarLote(ctx context.Context, req dto.RegistrarLoteRequest) (*dto.LoteResponse, error) {
	if req.BolsasResultantes <= 0 {
		return nil, ErrCantidadInvalida
	}
	if !req.CostoTotal.IsPositive() {
		return nil, ErrMontoInvalido
	}
	saborID, err := uuid.Parse(req.SaborID)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if _, err := s.saborRepo.FindByID(ctx, saborID); err != nil {
		return nil, mapNotFound(err)
	}

	costoUnitario := money.Div2(req.CostoTotal, decimal.NewFromInt(int64(req.BolsasResultantes)))

	lote := &model.LoteProduccion{
		SaborID:           saborID,
		CostoTotal:        money.Round2(req.CostoTotal),
		BolsasResultantes: req.BolsasResultantes,
		CostoUnitario:     costoUnitario,
		Notas:             req.Notas,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		inv, err := s.repo.FindBySaborTx(tx, saborID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// FOR UPDATE locks nothing on a missing row, so two first lotes
			// of a new flavor racing here would each blend against zero and
			// the later commit would erase the earlier one. Insert the empty
			// row with DO NOTHING and re-read under lock so whichever insert
			// won is visible before we fold this lote in.
			if err := s.repo.CrearVacioTx(tx, saborID); err != nil {
				return err
			}
			inv, err = s.repo.FindBySaborTx(tx, saborID)
		}
		if err != nil {
			return err
		}

		// Weighted average over existing stock plus the incoming lote.
		// With zero prior stock the average collapses to the lote's cost.
		prevQty := decimal.NewFromInt(int64(inv.Cantidad))
		newQty := decimal.NewFromInt(int64(req.BolsasResultantes))
		valorPrevio := prevQty.Mul(inv.CostoPromedio)
		valorLote := newQty.Mul(costoUnitario)
		inv.CostoPromedio = money.Div2(valorPrevio.Add(valorLote), prevQty.Add(newQty))
		inv.Cantidad += req.BolsasResultantes
		inv.UpdatedAt = time.Now()

		if err := s.repo.CreateLoteTx(tx, lote); err != nil {
			return err
		}
		return s.repo.SaveTx(tx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.InvalidarCache(ctx)
	s.events.Publish(ctx, infra.CanalInventario, map[string]any{
		"accion":   "lote_registrado",
		"sabor_id": saborID.String(),
		"bolsas":   req.BolsasResultantes,
	})

	return loteToResponse(lote), nil
}

func (s *inventarioService) DescontarStockTx(tx *gorm.DB, saborID uuid.UUID, cantidad int) (decimal.Decimal, int, error) {
	if cantidad <= 0 {
		return decimal.Zero, 0, ErrCantidadInvalida
	}

	inv, err := s.repo.FindBySaborTx(tx, saborID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No lote was ever registered for this flavor: zero stock.
		return decimal.Zero, 0, &StockInsuficienteError{Restante: 0}
	}
	if err != nil {
		return decimal.Zero, 0, err
	}

	if inv.Cantidad < cantidad {
		return decimal.Zero, 0, &StockInsuficienteError{Restante: inv.Cantidad}
	}

	costo := inv.CostoPromedio
	inv.Cantidad -= cantidad
	inv.UpdatedAt = time.Now()

	if err := s.repo.SaveTx(tx, inv); err != nil {
		return decimal.Zero, 0, err
	}
	return costo, inv.Cantidad, nil
}

func (s *inventarioService) ObtenerResumen(ctx context.Context) (*dto.InventarioResumenResponse, error) {
	if cached := s.leerCache(ctx); cached != nil {
		return cached, nil
	}

	inventarios, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	resumen := &dto.InventarioResumenResponse{
		Inventario: make([]dto.InventarioResponse, 0, len(inventarios)),
		ValorTotal: decimal.Zero,
	}
	for i := range inventarios {
		inv := &inventarios[i]
		resumen.Inventario = append(resumen.Inventario, *inventarioToResponse(inv))
		resumen.ValorTotal = resumen.ValorTotal.Add(money.Mul2(inv.CostoPromedio, inv.Cantidad))
		resumen.TotalBolsas += inv.Cantidad
	}
	resumen.ValorTotal = money.Round2(resumen.ValorTotal)

	// Production yield across all lotes ever registered.
	lotes, err := s.repo.ListLotes(ctx)
	if err != nil {
		return nil, err
	}
	resumen.TotalLotes = len(lotes)
	if len(lotes) > 0 {
		totalBolsas := 0
		for i := range lotes {
			totalBolsas += lotes[i].BolsasResultantes
		}
		resumen.PromedioBolsasLote = money.Div2(
			decimal.NewFromInt(int64(totalBolsas)),
			decimal.NewFromInt(int64(len(lotes))),
		)
	}

	s.escribirCache(ctx, resumen)
	return resumen, nil
}

func (s *inventarioService) ObtenerPorSabor(ctx context.Context, saborID uuid.UUID) (*dto.InventarioResponse, error) {
	inv, err := s.repo.FindBySabor(ctx, saborID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Flavor without lotes reads as zero stock, not as an error.
		return &dto.InventarioResponse{
			SaborID:       saborID.String(),
			Cantidad:      0,
			CostoPromedio: decimal.Zero,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return inventarioToResponse(inv), nil
}

func (s *inventarioService) ListarLotes(ctx context.Context) ([]dto.LoteResponse, error) {
	lotes, err := s.repo.ListLotes(ctx)
	if err != nil {
		return nil, err
	}
	return lotesToResponse(lotes), nil
}

func (s *inventarioService) ListarLotesPorSabor(ctx context.Context, saborID uuid.UUID) ([]dto.LoteResponse, error) {
	lotes, err := s.repo.ListLotesPorSabor(ctx, saborID)
	if err != nil {
		return nil, err
	}
	return lotesToResponse(lotes), nil
}

// ── Cache (read-through, best-effort) ────────────────────────────────────────

func (s *inventarioService) leerCache(ctx context.Context) *dto.InventarioResumenResponse {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, cacheKeyInventario).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("cache inventario: lectura falló")
		}
		return nil
	}
	var resumen dto.InventarioResumenResponse
	if err := json.Unmarshal(data, &resumen); err != nil {
		return nil
	}
	return &resumen
}

func (s *inventarioService) escribirCache(ctx context.Context, resumen *dto.InventarioResumenResponse) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(resumen)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, cacheKeyInventario, data, cacheTTLInventario).Err(); err != nil {
		log.Warn().Err(err).Msg("cache inventario: escritura falló")
	}
}

func (s *inventarioService) InvalidarCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheKeyInventario).Err(); err != nil {
		log.Warn().Err(err).Msg("cache inventario: invalidación falló")
	}
}

// ── Mappers ──────────────────────────────────────────────────────────────────

func inventarioToResponse(inv *model.Inventario) *dto.InventarioResponse {
	resp := &dto.InventarioResponse{
		SaborID:       inv.SaborID.String(),
		Cantidad:      inv.Cantidad,
		CostoPromedio: inv.CostoPromedio,
		UpdatedAt:     inv.UpdatedAt.Format(time.RFC3339),
	}
	if inv.Sabor != nil {
		resp.NombreSabor = inv.Sabor.Nombre
	}
	return resp
}

func loteToResponse(l *model.LoteProduccion) *dto.LoteResponse {
	return &dto.LoteResponse{
		ID:                l.ID.String(),
		SaborID:           l.SaborID.String(),
		CostoTotal:        l.CostoTotal,
		BolsasResultantes: l.BolsasResultantes,
		CostoUnitario:     l.CostoUnitario,
		Notas:             l.Notas,
		CreatedAt:         l.CreatedAt.Format(time.RFC3339),
	}
}

func lotesToResponse(lotes []model.LoteProduccion) []dto.LoteResponse {
	out := make([]dto.LoteResponse, 0, len(lotes))
	for i := range lotes {
		out = append(out, *loteToResponse(&lotes[i]))
	}
	return out
}
