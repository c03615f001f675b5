package repository

import (
	"context"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaborRepository is the data access contract for the flavor catalog.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type SaborRepository interface {
	Create(ctx context.Context, s *model.Sabor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sabor, error)
	// List returns active flavors only unless incluirInactivos is set.
	List(ctx context.Context, incluirInactivos bool) ([]model.Sabor, error)
	Update(ctx context.Context, s *model.Sabor) error
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type saborRepo struct{ db *gorm.DB }

func NewSaborRepository(db *gorm.DB) SaborRepository { return &saborRepo{db: db} }

func (r *saborRepo) Create(ctx context.Context, s *model.Sabor) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *saborRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sabor, error) {
	var s model.Sabor
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saborRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Sabor, error) {
	var sabores []model.Sabor
	q := r.db.WithContext(ctx).Order("nombre ASC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&sabores).Error
	return sabores, err
}

func (r *saborRepo) Update(ctx context.Context, s *model.Sabor) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *saborRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Sabor{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *saborRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Sabor{}).Where("id = ?", id).Update("activo", true).Error
}
