package infra

import (
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx. Schema setup is a
// separate RunMigrations call owned by the composition root.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Surfaces unique violations as gorm.ErrDuplicatedKey so services can
		// map them to business errors.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)

	return db, nil
}

// RunMigrations creates or updates all tables. Also used by integration tests
// against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Sabor{},
		&model.LoteProduccion{},
		&model.Inventario{},
		&model.Cliente{},
		&model.Abono{},
		&model.Venta{},
		&model.CajaDiaria{},
		&model.CorteCaja{},
		&model.ConfiguracionNegocio{},
	)
}
