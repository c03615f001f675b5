package repository

import (
	"context"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConfiguracionRepository stores the single business-settings row.
type ConfiguracionRepository interface {
	// Get returns the settings row; gorm.ErrRecordNotFound when never seeded.
	Get(ctx context.Context) (*model.ConfiguracionNegocio, error)
	// Save upserts the settings row.
	Save(ctx context.Context, cfg *model.ConfiguracionNegocio) error
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) Get(ctx context.Context) (*model.ConfiguracionNegocio, error) {
	var cfg model.ConfiguracionNegocio
	err := r.db.WithContext(ctx).First(&cfg, "id = ?", "negocio").Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *configuracionRepo) Save(ctx context.Context, cfg *model.ConfiguracionNegocio) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(cfg).Error
}
