package seals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/precintos-api/internal/application/dto"
	"github.com/jhoicas/precintos-api/internal/domain"
	"github.com/jhoicas/precintos-api/internal/domain/entity"
)

var (
	gestorBogota = Actor{Username: "gestor.bogota", City: "BOGOTÁ", Role: entity.RoleGestor}
	adminCentral = Actor{Username: "admin", City: "BOGOTÁ", Role: entity.RoleAdmin}
)

// seedSeal siembra un precinto directamente en el repo, con su registro inicial.
func seedSeal(t *testing.T, repo *fakeSealRepo, id, status, city string) {
	t.Helper()
	now := time.Now().Add(-time.Hour)
	seal := &entity.Seal{
		ID:           id,
		Type:         "Botella",
		Status:       status,
		City:         city,
		CreationDate: now,
		LastMovement: now,
		EntryUser:    "seed",
	}
	require.NoError(t, repo.Create(seal))
	require.NoError(t, repo.AppendMovement(&entity.MovementHistory{
		ID:       id + "-m0",
		SealID:   id,
		Date:     now,
		ToStatus: status,
		User:     "seed",
		Details:  "registro inicial",
	}))
}

func TestCreateSeal_NormalizaIDYRegistraHistorialInicial(t *testing.T) {
	uc, repo, _ := newTestUseCase()

	out, err := uc.CreateSeal(context.Background(), gestorBogota, dto.CreateSealRequest{ID: "  bog-001 ", Type: "Botella"})
	require.NoError(t, err)

	assert.Equal(t, "BOG-001", out.ID, "el ID debe normalizarse a mayúsculas sin espacios")
	assert.Equal(t, entity.StatusEntradaInventario, out.Status)
	assert.Equal(t, "BOGOTÁ", out.City, "el precinto nace en la sede del actor")
	assert.Equal(t, "gestor.bogota", out.EntryUser)

	require.Len(t, out.History, 1, "debe nacer con exactamente un registro de historial")
	assert.Empty(t, out.History[0].FromStatus, "el registro inicial no tiene estado de origen")
	assert.Equal(t, entity.StatusEntradaInventario, out.History[0].ToStatus)
	assert.Equal(t, "registro inicial", out.History[0].Details)

	stored, err := repo.GetByID("BOG-001")
	require.NoError(t, err)
	require.NotNil(t, stored, "el precinto debe quedar persistido")
}

func TestCreateSeal_IDDuplicadoFalla(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.CreateSeal(ctx, gestorBogota, dto.CreateSealRequest{ID: "BOG-001", Type: "Botella"})
	require.NoError(t, err)

	// El mismo ID con distinta capitalización sigue siendo duplicado.
	_, err = uc.CreateSeal(ctx, gestorBogota, dto.CreateSealRequest{ID: "bog-001", Type: "Cable"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
	assert.Contains(t, err.Error(), "BOG-001", "el error debe nombrar el ID ofensor")
}

func TestCreateSeal_EntradaInvalida(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.CreateSeal(ctx, gestorBogota, dto.CreateSealRequest{ID: "   ", Type: "Botella"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ID en blanco debe rechazarse")

	_, err = uc.CreateSeal(ctx, gestorBogota, dto.CreateSealRequest{ID: "BOG-002", Type: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo vacío debe rechazarse")
}

func TestGetByID_SedeAjenaBloqueadaParaGestor(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "MED-001", entity.StatusEntradaInventario, "MEDELLÍN")

	_, err := uc.GetByID(context.Background(), gestorBogota, "MED-001")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWrongSite)

	// ADMIN sí puede consultar cualquier sede.
	out, err := uc.GetByID(context.Background(), adminCentral, "med-001")
	require.NoError(t, err)
	assert.Equal(t, "MED-001", out.ID)
}

func TestList_GestorForzadoASuPropiaSede(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusEntradaInventario, "BOGOTÁ")
	seedSeal(t, repo, "MED-001", entity.StatusEntradaInventario, "MEDELLÍN")

	// El GESTOR pide otra sede explícitamente; el filtro se ignora.
	out, err := uc.List(context.Background(), gestorBogota, dto.ListSealsRequest{City: "MEDELLÍN"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "BOG-001", out.Items[0].ID)

	// El ADMIN sí puede filtrar por cualquier sede.
	out, err = uc.List(context.Background(), adminCentral, dto.ListSealsRequest{City: "MEDELLÍN"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "MED-001", out.Items[0].ID)
}

func TestDeleteSeal_RequiereAdminYModoSeguro(t *testing.T) {
	uc, repo, settings := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusEntradaInventario, "BOGOTÁ")

	err := uc.DeleteSeal(context.Background(), gestorBogota, "BOG-001")
	assert.ErrorIs(t, err, domain.ErrForbidden, "un GESTOR no puede eliminar precintos")

	// ADMIN pero con el modo seguro desactivado.
	err = uc.DeleteSeal(context.Background(), adminCentral, "BOG-001")
	assert.ErrorIs(t, err, domain.ErrSafeModeDisabled)

	settings.settings.SafeMode = true
	require.NoError(t, uc.DeleteSeal(context.Background(), adminCentral, "bog-001"))

	stored, err := repo.GetByID("BOG-001")
	require.NoError(t, err)
	assert.Nil(t, stored, "el precinto debe desaparecer junto con su historial")
	movs, _ := repo.ListMovements("BOG-001")
	assert.Empty(t, movs)
}

func TestDeleteSeal_NoExistente(t *testing.T) {
	uc, _, settings := newTestUseCase()
	settings.settings.SafeMode = true

	err := uc.DeleteSeal(context.Background(), adminCentral, "BOG-404")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "BOG-404")
}

func TestHistory_MasRecientePrimero(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusEntradaInventario, "BOGOTÁ")

	_, err := uc.ApplyTransition(context.Background(), gestorBogota, []string{"BOG-001"},
		entity.StatusAsignado, map[string]string{entity.FieldAssignedTo: "JUAN"}, time.Now())
	require.NoError(t, err)

	history, err := uc.History(context.Background(), gestorBogota, "BOG-001")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.StatusAsignado, history[0].ToStatus, "el movimiento más reciente va primero")
	assert.Equal(t, entity.StatusEntradaInventario, history[1].ToStatus)
}
