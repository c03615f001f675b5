package service

import (
	"context"
	"strings"
	"time"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/dto"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/model"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/repository"

	"github.com/google/uuid"
)

// Presentation defaults applied when the operator leaves them blank.
const (
	emojiDefault = "🥜"
	colorDefault = "#F59E0B"
)

// SaboresService manages the flavor catalog. Deactivation is a soft hide:
// the flavor keeps its inventory row and sales history and can be brought
// back at any time.
type SaboresService interface {
	Crear(ctx context.Context, req dto.CrearSaborRequest) (*dto.SaborResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSaborRequest) (*dto.SaborResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.SaborResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.SaborResponse, error)
}

type saboresService struct {
	repo repository.SaborRepository
}

func NewSaboresService(repo repository.SaborRepository) SaboresService {
	return &saboresService{repo: repo}
}

func (s *saboresService) Crear(ctx context.Context, req dto.CrearSaborRequest) (*dto.SaborResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, ErrNombreRequerido
	}

	sabor := &model.Sabor{
		Nombre: nombre,
		Emoji:  req.Emoji,
		Color:  req.Color,
		Activo: true,
	}
	if sabor.Emoji == "" {
		sabor.Emoji = emojiDefault
	}
	if sabor.Color == "" {
		sabor.Color = colorDefault
	}

	if err := s.repo.Create(ctx, sabor); err != nil {
		return nil, err
	}
	return saborToResponse(sabor), nil
}

func (s *saboresService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSaborRequest) (*dto.SaborResponse, error) {
	sabor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if req.Nombre != nil {
		nombre := strings.TrimSpace(*req.Nombre)
		if nombre == "" {
			return nil, ErrNombreRequerido
		}
		sabor.Nombre = nombre
	}
	if req.Emoji != nil && *req.Emoji != "" {
		sabor.Emoji = *req.Emoji
	}
	if req.Color != nil && *req.Color != "" {
		sabor.Color = *req.Color
	}

	if err := s.repo.Update(ctx, sabor); err != nil {
		return nil, err
	}
	return saborToResponse(sabor), nil
}

func (s *saboresService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return s.repo.Desactivar(ctx, id)
}

func (s *saboresService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return s.repo.Reactivar(ctx, id)
}

func (s *saboresService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.SaborResponse, error) {
	sabores, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaborResponse, 0, len(sabores))
	for i := range sabores {
		out = append(out, *saborToResponse(&sabores[i]))
	}
	return out, nil
}

func (s *saboresService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.SaborResponse, error) {
	sabor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return saborToResponse(sabor), nil
}

func saborToResponse(s *model.Sabor) *dto.SaborResponse {
	return &dto.SaborResponse{
		ID:        s.ID.String(),
		Nombre:    s.Nombre,
		Emoji:     s.Emoji,
		Color:     s.Color,
		Activo:    s.Activo,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}
