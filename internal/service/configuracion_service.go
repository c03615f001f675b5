package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/dto"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/money"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ConfiguracionService manages the stored business settings. The default sale
// price reaches the sales flow through this interface — callers receive it as
// a value, never by reading ambient global state.
type ConfiguracionService interface {
	Obtener(ctx context.Context) (*dto.ConfiguracionResponse, error)
	Actualizar(ctx context.Context, req dto.ActualizarConfiguracionRequest) (*dto.ConfiguracionResponse, error)
	GetPrecioVenta(ctx context.Context) (decimal.Decimal, error)
}

type configuracionService struct {
	repo repository.ConfiguracionRepository
}

func NewConfiguracionService(repo repository.ConfiguracionRepository) ConfiguracionService {
	return &configuracionService{repo: repo}
}

// Seed values for a fresh installation.
var configDefault = model.ConfiguracionNegocio{
	ID:                 "negocio",
	PrecioVentaDefault: decimal.NewFromInt(10),
	NombreNegocio:      "Control Cacahuate",
	Moneda:             "MXN",
}

// load returns the stored settings, seeding the defaults on first access.
func (s *configuracionService) load(ctx context.Context) (*model.ConfiguracionNegocio, error) {
	cfg, err := s.repo.Get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	seed := configDefault
	seed.UpdatedAt = time.Now()
	if err := s.repo.Save(ctx, &seed); err != nil {
		return nil, err
	}
	return &seed, nil
}

func (s *configuracionService) Obtener(ctx context.Context) (*dto.ConfiguracionResponse, error) {
	cfg, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return configToResponse(cfg), nil
}

func (s *configuracionService) Actualizar(ctx context.Context, req dto.ActualizarConfiguracionRequest) (*dto.ConfiguracionResponse, error) {
	cfg, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if req.PrecioVentaDefault != nil {
		if !req.PrecioVentaDefault.IsPositive() {
			return nil, ErrPrecioInvalido
		}
		cfg.PrecioVentaDefault = money.Round2(*req.PrecioVentaDefault)
	}
	if req.NombreNegocio != nil {
		nombre := strings.TrimSpace(*req.NombreNegocio)
		if nombre == "" {
			return nil, ErrNombreRequerido
		}
		cfg.NombreNegocio = nombre
	}
	if req.Moneda != nil {
		cfg.Moneda = strings.ToUpper(*req.Moneda)
	}
	cfg.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return configToResponse(cfg), nil
}

func (s *configuracionService) GetPrecioVenta(ctx context.Context) (decimal.Decimal, error) {
	cfg, err := s.load(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return cfg.PrecioVentaDefault, nil
}

func configToResponse(cfg *model.ConfiguracionNegocio) *dto.ConfiguracionResponse {
	return &dto.ConfiguracionResponse{
		PrecioVentaDefault: cfg.PrecioVentaDefault,
		NombreNegocio:      cfg.NombreNegocio,
		Moneda:             cfg.Moneda,
		UpdatedAt:          cfg.UpdatedAt.Format(time.RFC3339),
	}
}
