package repository

import (
	"context"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CajaRepository owns the per-day cash aggregate and the corte records.
// The day row is the second hot shared resource (after inventory): every
// posting locks it, increments, and recomputes the derived total inside the
// caller's transaction.
type CajaRepository interface {
	FindByFecha(ctx context.Context, fecha string) (*model.CajaDiaria, error)
	// FindByFechaTx reads the day row under SELECT ... FOR UPDATE.
	// Returns gorm.ErrRecordNotFound when the day has no row yet.
	FindByFechaTx(tx *gorm.DB, fecha string) (*model.CajaDiaria, error)
	// CrearDiaTx inserts a zeroed day row, doing nothing when it already
	// exists. Concurrent first postings of a day serialize on the locked
	// re-read that follows instead of overwriting each other's totals.
	CrearDiaTx(tx *gorm.DB, fecha string) error
	// SaveTx writes back a row previously read under FOR UPDATE in this tx.
	SaveTx(tx *gorm.DB, caja *model.CajaDiaria) error

	CreateCorteTx(tx *gorm.DB, corte *model.CorteCaja) error
	FindCorteByID(ctx context.Context, id uuid.UUID) (*model.CorteCaja, error)
	ListCortes(ctx context.Context, limite int) ([]model.CorteCaja, error)

	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) FindByFecha(ctx context.Context, fecha string) (*model.CajaDiaria, error) {
	var caja model.CajaDiaria
	err := r.db.WithContext(ctx).Preload("Corte").First(&caja, "fecha = ?", fecha).Error
	if err != nil {
		return nil, err
	}
	return &caja, nil
}

func (r *cajaRepo) FindByFechaTx(tx *gorm.DB, fecha string) (*model.CajaDiaria, error) {
	var caja model.CajaDiaria
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&caja, "fecha = ?", fecha).Error
	if err != nil {
		return nil, err
	}
	return &caja, nil
}

func (r *cajaRepo) CrearDiaTx(tx *gorm.DB, fecha string) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.CajaDiaria{Fecha: fecha}).Error
}

func (r *cajaRepo) SaveTx(tx *gorm.DB, caja *model.CajaDiaria) error {
	return tx.Save(caja).Error
}

func (r *cajaRepo) CreateCorteTx(tx *gorm.DB, corte *model.CorteCaja) error {
	return tx.Create(corte).Error
}

func (r *cajaRepo) FindCorteByID(ctx context.Context, id uuid.UUID) (*model.CorteCaja, error) {
	var corte model.CorteCaja
	err := r.db.WithContext(ctx).First(&corte, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &corte, nil
}

func (r *cajaRepo) ListCortes(ctx context.Context, limite int) ([]model.CorteCaja, error) {
	if limite <= 0 {
		limite = 7
	}
	var cortes []model.CorteCaja
	err := r.db.WithContext(ctx).Order("fecha_dia DESC").Limit(limite).Find(&cortes).Error
	return cortes, err
}

func (r *cajaRepo) DB() *gorm.DB { return r.db }
