package repository

import (
	"context"
	"time"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClienteRepository owns customers and their immutable abono trail.
// The overpayment check is not additive, so abono creation and balance update
// must happen inside one transaction reading the latest balance — hence the
// Tx-suffixed methods.
type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	// FindByIDTx reads the customer row under SELECT ... FOR UPDATE.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	UpdateSaldoTx(tx *gorm.DB, id uuid.UUID, nuevoSaldo decimal.Decimal) error
	UpdateFechaPromesa(ctx context.Context, id uuid.UUID, fecha *time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.Cliente, error)

	CreateAbonoTx(tx *gorm.DB, a *model.Abono) error
	ListAbonos(ctx context.Context, clienteID uuid.UUID) ([]model.Abono, error)

	DB() *gorm.DB
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) UpdateSaldoTx(tx *gorm.DB, id uuid.UUID, nuevoSaldo decimal.Decimal) error {
	return tx.Model(&model.Cliente{}).Where("id = ?", id).
		Update("saldo_pendiente", nuevoSaldo).Error
}

func (r *clienteRepo) UpdateFechaPromesa(ctx context.Context, id uuid.UUID, fecha *time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).
		Update("fecha_promesa_pago", fecha).Error
}

func (r *clienteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Cliente{}, "id = ?", id).Error
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Order("alias ASC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) CreateAbonoTx(tx *gorm.DB, a *model.Abono) error {
	return tx.Create(a).Error
}

func (r *clienteRepo) ListAbonos(ctx context.Context, clienteID uuid.UUID) ([]model.Abono, error) {
	var abonos []model.Abono
	err := r.db.WithContext(ctx).Where("cliente_id = ?", clienteID).
		Order("created_at DESC").Find(&abonos).Error
	return abonos, err
}

func (r *clienteRepo) DB() *gorm.DB { return r.db }
