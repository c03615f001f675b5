package service_test

import (
	"context"
	"testing"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/dto"
	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearSabor_Defaults(t *testing.T) {
	svc := service.NewSaboresService(newStubSaborRepo())

	resp, err := svc.Crear(context.Background(), dto.CrearSaborRequest{Nombre: "Enchilado"})
	require.NoError(t, err)
	assert.Equal(t, "🥜", resp.Emoji)
	assert.Equal(t, "#F59E0B", resp.Color)
	assert.True(t, resp.Activo)

	_, err = svc.Crear(context.Background(), dto.CrearSaborRequest{Nombre: "  "})
	assert.ErrorIs(t, err, service.ErrNombreRequerido)
}

func TestDesactivarYReactivarSabor(t *testing.T) {
	repo := newStubSaborRepo()
	svc := service.NewSaboresService(repo)
	ctx := context.Background()

	resp, err := svc.Crear(ctx, dto.CrearSaborRequest{Nombre: "Salado"})
	require.NoError(t, err)

	id := uuidFrom(t, resp.ID)
	require.NoError(t, svc.Desactivar(ctx, id))

	activos, err := svc.Listar(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, activos)

	todos, err := svc.Listar(ctx, true)
	require.NoError(t, err)
	assert.Len(t, todos, 1)

	require.NoError(t, svc.Reactivar(ctx, id))
	activos, err = svc.Listar(ctx, false)
	require.NoError(t, err)
	assert.Len(t, activos, 1)
}

func TestActualizarSabor_ParcialYNoEncontrado(t *testing.T) {
	repo := newStubSaborRepo()
	svc := service.NewSaboresService(repo)
	ctx := context.Background()

	resp, err := svc.Crear(ctx, dto.CrearSaborRequest{Nombre: "Natural", Emoji: "🌰"})
	require.NoError(t, err)

	nuevo := "Natural sin sal"
	updated, err := svc.Actualizar(ctx, uuidFrom(t, resp.ID), dto.ActualizarSaborRequest{Nombre: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, "Natural sin sal", updated.Nombre)
	assert.Equal(t, "🌰", updated.Emoji, "los campos omitidos no cambian")

	_, err = svc.Actualizar(ctx, uuidFrom(t, resp.ID), dto.ActualizarSaborRequest{})
	require.NoError(t, err)

	_, err = svc.ObtenerPorID(ctx, uuidFrom(t, "00000000-0000-0000-0000-000000000001"))
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}
