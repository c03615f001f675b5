package repository

import (
	"context"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventarioRepository owns the per-flavor inventory rows and the immutable
// lote trail. The Tx-suffixed methods run inside a caller-owned transaction:
// lote registration and the sale debit both need the locked read-verify-write
// discipline, since the inventory row is the one race-prone resource in the
// system (two sales of the last bag must never both succeed).
type InventarioRepository interface {
	FindBySabor(ctx context.Context, saborID uuid.UUID) (*model.Inventario, error)
	// FindBySaborTx reads the inventory row under SELECT ... FOR UPDATE.
	// Returns gorm.ErrRecordNotFound when the flavor has no row yet.
	FindBySaborTx(tx *gorm.DB, saborID uuid.UUID) (*model.Inventario, error)
	// CrearVacioTx inserts a zeroed inventory row, doing nothing when it
	// already exists. The first two lotes of a new flavor serialize on the
	// locked re-read that follows instead of last-write-wins.
	CrearVacioTx(tx *gorm.DB, saborID uuid.UUID) error
	// SaveTx writes back a row previously read under FOR UPDATE in this tx.
	SaveTx(tx *gorm.DB, inv *model.Inventario) error
	CreateLoteTx(tx *gorm.DB, lote *model.LoteProduccion) error

	List(ctx context.Context) ([]model.Inventario, error)
	ListLotes(ctx context.Context) ([]model.LoteProduccion, error)
	ListLotesPorSabor(ctx context.Context, saborID uuid.UUID) ([]model.LoteProduccion, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type inventarioRepo struct{ db *gorm.DB }

func NewInventarioRepository(db *gorm.DB) InventarioRepository { return &inventarioRepo{db: db} }

func (r *inventarioRepo) FindBySabor(ctx context.Context, saborID uuid.UUID) (*model.Inventario, error) {
	var inv model.Inventario
	err := r.db.WithContext(ctx).First(&inv, "sabor_id = ?", saborID).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventarioRepo) FindBySaborTx(tx *gorm.DB, saborID uuid.UUID) (*model.Inventario, error) {
	var inv model.Inventario
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inv, "sabor_id = ?", saborID).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventarioRepo) CrearVacioTx(tx *gorm.DB, saborID uuid.UUID) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Inventario{SaborID: saborID}).Error
}

func (r *inventarioRepo) SaveTx(tx *gorm.DB, inv *model.Inventario) error {
	return tx.Save(inv).Error
}

func (r *inventarioRepo) CreateLoteTx(tx *gorm.DB, lote *model.LoteProduccion) error {
	return tx.Create(lote).Error
}

func (r *inventarioRepo) List(ctx context.Context) ([]model.Inventario, error) {
	var inventarios []model.Inventario
	err := r.db.WithContext(ctx).Preload("Sabor").Find(&inventarios).Error
	return inventarios, err
}

func (r *inventarioRepo) ListLotes(ctx context.Context) ([]model.LoteProduccion, error) {
	var lotes []model.LoteProduccion
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&lotes).Error
	return lotes, err
}

func (r *inventarioRepo) ListLotesPorSabor(ctx context.Context, saborID uuid.UUID) ([]model.LoteProduccion, error) {
	var lotes []model.LoteProduccion
	err := r.db.WithContext(ctx).Where("sabor_id = ?", saborID).Order("created_at DESC").Find(&lotes).Error
	return lotes, err
}

func (r *inventarioRepo) DB() *gorm.DB { return r.db }
