package repository

import (
	"context"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VentaRepository stores immutable sale records. Creation always happens
// inside the sale transaction (CreateTx); everything else is read-only.
type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	ListPorDia(ctx context.Context, fechaDia string) ([]model.Venta, error)
	// ListFiadoPorCliente returns the customer's credit sales, oldest first,
	// for the account-statement view.
	ListFiadoPorCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Venta, error)
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Sabor").First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) ListPorDia(ctx context.Context, fechaDia string) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).Where("fecha_dia = ?", fechaDia).
		Order("created_at DESC").Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) ListFiadoPorCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Where("cliente_id = ? AND tipo_pago = 'fiado'", clienteID).
		Order("created_at ASC").Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) DB() *gorm.DB { return r.db }
