package service

import (
	"context"
	"fmt"
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

// VentasService orchestrates the sale: stock debit, sale record, caja
// posting and (for fiado) the customer charge, all inside one transaction.
// Any failure rolls back every effect — there is no partially applied sale.
type VentasService interface {
	ProcesarVenta(ctx context.Context, req dto.ProcesarVentaRequest) (*dto.VentaResponse, error)
	ListarVentasDelDia(ctx context.Context) ([]dto.VentaResponse, error)
	ListarPorCliente(ctx context.Context, clienteID uuid.UUID) ([]dto.VentaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
}

type ventasService struct {
	repo          repository.VentaRepository
	saborRepo     repository.SaborRepository
	inventario    InventarioService
	clientes      ClientesService
	caja          CajaService
	configuracion ConfiguracionService
	events        *infra.Events
}

func NewVentasService(
	repo repository.VentaRepository,
	saborRepo repository.SaborRepository,
	inventario InventarioService,
	clientes ClientesService,
	caja CajaService,
	configuracion ConfiguracionService,
	events *infra.Events,
) VentasService {
	return &ventasService{
		repo:          repo,
		saborRepo:     saborRepo,
		inventario:    inventario,
		clientes:      clientes,
		caja:          caja,
		configuracion: configuracion,
		events:        events,
	}
}

// ── ProcesarVenta ─────────────────────────────────────────────────────────────
// Sequence:
//   1. Validate quantity, payment type and (for fiado) the customer.
//   2. Resolve the sale price: explicit override or the configured default.
//   3. BEGIN TX: debit stock under row lock (snapshot of avg cost), create
//      the sale record, post to today's caja, charge the customer if fiado.
//   4. COMMIT — then invalidate the inventory cache and notify listeners.

func (s *ventasService) ProcesarVenta(ctx context.Context, req dto.ProcesarVentaRequest) (*dto.VentaResponse, error) {
	if req.Cantidad <= 0 {
		return nil, ErrCantidadInvalida
	}

	saborID, err := uuid.Parse(req.SaborID)
	if err != nil {
		return nil, fmt.Errorf("sabor_id inválido: %w", err)
	}

	var clienteID *uuid.UUID
	switch req.TipoPago {
	case model.TipoPagoEfectivo:
		// cash sale, no customer needed
	case model.TipoPagoFiado:
		if req.ClienteID == nil || *req.ClienteID == "" {
			return nil, ErrFaltaCliente
		}
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("cliente_id inválido: %w", err)
		}
		clienteID = &cid
	default:
		return nil, ErrTipoPagoInvalido
	}

	sabor, err := s.saborRepo.FindByID(ctx, saborID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !sabor.Activo {
		return nil, ErrSaborInactivo
	}

	var precio decimal.Decimal
	if req.PrecioUnitario != nil {
		if !req.PrecioUnitario.IsPositive() {
			return nil, ErrPrecioInvalido
		}
		precio = money.Round2(*req.PrecioUnitario)
	} else {
		precio, err = s.configuracion.GetPrecioVenta(ctx)
		if err != nil {
			return nil, err
		}
	}

	ingreso := money.Mul2(precio, req.Cantidad)
	nombreSnapshot := sabor.Nombre

	var (
		venta    model.Venta
		restante int
	)
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		costoUnitario, rest, err := s.inventario.DescontarStockTx(tx, saborID, req.Cantidad)
		if err != nil {
			return err
		}
		restante = rest

		costo := money.Mul2(costoUnitario, req.Cantidad)
		fechaDia, err := s.caja.PostVentaTx(tx, req.TipoPago, ingreso, costo)
		if err != nil {
			return err
		}

		venta = model.Venta{
			SaborID:             saborID,
			Cantidad:            req.Cantidad,
			PrecioUnitario:      precio,
			CostoUnitario:       costoUnitario,
			TipoPago:            req.TipoPago,
			ClienteID:           clienteID,
			NombreSaborSnapshot: &nombreSnapshot,
			FechaDia:            fechaDia,
		}
		if err := s.repo.CreateTx(tx, &venta); err != nil {
			return err
		}

		if req.TipoPago == model.TipoPagoFiado {
			// Charged inside the same tx: the debt exists iff the sale does.
			if err := s.clientes.AgregarDeudaTx(tx, *clienteID, ingreso); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.inventario.InvalidarCache(ctx)
	s.events.Publish(ctx, infra.CanalVentas, map[string]any{
		"accion":   "venta_procesada",
		"venta_id": venta.ID.String(),
		"sabor_id": saborID.String(),
	})
	s.events.Publish(ctx, infra.CanalInventario, map[string]any{
		"accion":   "stock_descontado",
		"sabor_id": saborID.String(),
		"restante": restante,
	})

	resp := ventaToResponse(&venta)
	resp.StockRestante = restante
	return resp, nil
}

func (s *ventasService) ListarVentasDelDia(ctx context.Context) ([]dto.VentaResponse, error) {
	ventas, err := s.repo.ListPorDia(ctx, s.caja.FechaHoy())
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		out = append(out, *ventaToResponse(&ventas[i]))
	}
	return out, nil
}

// ListarPorCliente returns the customer's credit sales. Cash sales carry no
// customer, so this is the complete per-customer history.
func (s *ventasService) ListarPorCliente(ctx context.Context, clienteID uuid.UUID) ([]dto.VentaResponse, error) {
	ventas, err := s.repo.ListFiadoPorCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		out = append(out, *ventaToResponse(&ventas[i]))
	}
	return out, nil
}

func (s *ventasService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return ventaToResponse(venta), nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	ingreso := money.Mul2(v.PrecioUnitario, v.Cantidad)
	costo := money.Mul2(v.CostoUnitario, v.Cantidad)

	resp := &dto.VentaResponse{
		ID:             v.ID.String(),
		SaborID:        v.SaborID.String(),
		Cantidad:       v.Cantidad,
		PrecioUnitario: v.PrecioUnitario,
		CostoUnitario:  v.CostoUnitario,
		TipoPago:       v.TipoPago,
		Ingreso:        ingreso,
		Costo:          costo,
		Utilidad:       money.Round2(ingreso.Sub(costo)),
		FechaDia:       v.FechaDia,
		CreatedAt:      v.CreatedAt.Format(time.RFC3339),
	}
	if v.NombreSaborSnapshot != nil {
		resp.NombreSabor = *v.NombreSaborSnapshot
	}
	if v.ClienteID != nil {
		cid := v.ClienteID.String()
		resp.ClienteID = &cid
	}
	return resp
}
