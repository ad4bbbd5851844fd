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

func TestResolveBatch_ParticionaEncontradosNoEncontradosYSedeAjena(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusEntradaInventario, "BOGOTÁ")
	seedSeal(t, repo, "MED-001", entity.StatusEntradaInventario, "MEDELLÍN")

	// Duplicados y espacios en el lote de entrada: se consultan una sola vez.
	res, err := uc.ResolveBatch(context.Background(), gestorBogota,
		[]string{" bog-001 ", "BOG-001", "MED-001", "BOG-404"})
	require.NoError(t, err)

	require.Len(t, res.Found, 1)
	assert.Equal(t, "BOG-001", res.Found[0].ID)
	assert.Equal(t, []string{"MED-001"}, res.WrongSite)
	assert.Equal(t, []string{"BOG-404"}, res.NotFound)
}

func TestResolveBatch_LoteVacio(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.ResolveBatch(context.Background(), gestorBogota, []string{"  ", ""})
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
}

func TestResolveBatchResponse_AnotaEstadoComunYDestinos(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusAsignado, "BOGOTÁ")
	seedSeal(t, repo, "BOG-002", entity.StatusAsignado, "BOGOTÁ")

	out, err := uc.ResolveBatchResponse(context.Background(), gestorBogota,
		dto.ResolveBatchRequest{IDs: []string{"BOG-001", "BOG-002"}})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusAsignado, out.CommonStatus)
	assert.ElementsMatch(t,
		[]string{entity.StatusEntregado, entity.StatusEntradaInventario, entity.StatusDestruido},
		out.AllowedNext, "desde ASIGNADO se ofrecen ENTREGADO, ENTRADA_INVENTARIO y DESTRUIDO")
}

func TestResolveBatchResponse_EstadosMixtosNoOfreceDestinos(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusAsignado, "BOGOTÁ")
	seedSeal(t, repo, "BOG-002", entity.StatusEntregado, "BOGOTÁ")

	out, err := uc.ResolveBatchResponse(context.Background(), gestorBogota,
		dto.ResolveBatchRequest{IDs: []string{"BOG-001", "BOG-002"}})
	require.NoError(t, err, "resolver no falla: solo informa la partición")

	assert.Len(t, out.Found, 2)
	assert.Empty(t, out.CommonStatus)
	assert.Empty(t, out.AllowedNext)
}

func TestValidateBatchConsistency_EstadosMixtos(t *testing.T) {
	seals := []*entity.Seal{
		{ID: "BOG-001", Status: entity.StatusEntregado},
		{ID: "BOG-002", Status: entity.StatusAsignado},
	}

	_, err := ValidateBatchConsistency(seals)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMixedStatus)
	assert.Contains(t, err.Error(), entity.StatusAsignado, "el error debe nombrar todos los estados del lote")
	assert.Contains(t, err.Error(), entity.StatusEntregado)
}

func TestApplyTransition_LoteExitosoActualizaEstadoEHistorial(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusEntradaInventario, "BOGOTÁ")
	seedSeal(t, repo, "BOG-002", entity.StatusEntradaInventario, "BOGOTÁ")
	now := time.Now()

	out, err := uc.ApplyTransition(context.Background(), gestorBogota,
		[]string{"BOG-001", "BOG-002"}, entity.StatusAsignado,
		map[string]string{entity.FieldAssignedTo: "JUAN"}, now)
	require.NoError(t, err)
	require.Len(t, out, 2)

	for _, id := range []string{"BOG-001", "BOG-002"} {
		seal, err := repo.GetByID(id)
		require.NoError(t, err)
		require.NotNil(t, seal)
		assert.Equal(t, entity.StatusAsignado, seal.Status)
		assert.Equal(t, "JUAN", seal.AssignedTo, "el campo requerido debe quedar escrito en el precinto")
		assert.Equal(t, "gestor.bogota", seal.EntryUser)
		assert.Equal(t, now, seal.LastMovement)

		history, err := repo.ListMovements(id)
		require.NoError(t, err)
		require.Len(t, history, 2, "un movimiento agrega exactamente un registro")
		assert.Equal(t, seal.Status, history[0].ToStatus, "el estado debe coincidir con el último registro")
		assert.Equal(t, entity.StatusEntradaInventario, history[0].FromStatus)
		assert.Contains(t, history[0].Details, "[lote de 2]")
		assert.Contains(t, history[0].Details, "assignedTo: JUAN")
	}

	// Ambos precintos reciben el mismo texto de detalles.
	h1, _ := repo.ListMovements("BOG-001")
	h2, _ := repo.ListMovements("BOG-002")
	assert.Equal(t, h1[0].Details, h2[0].Details)
}

func TestApplyTransition_TransicionIlegalNoMuta(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusAsignado, "BOGOTÁ")

	_, err := uc.ApplyTransition(context.Background(), gestorBogota,
		[]string{"BOG-001"}, entity.StatusSalidaFabrica,
		map[string]string{entity.FieldDestination: "PUERTO"}, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	assert.Contains(t, err.Error(), entity.StatusAsignado)
	assert.Contains(t, err.Error(), entity.StatusSalidaFabrica)

	seal, _ := repo.GetByID("BOG-001")
	assert.Equal(t, entity.StatusAsignado, seal.Status, "el precinto no debe mutar")
	history, _ := repo.ListMovements("BOG-001")
	assert.Len(t, history, 1, "no debe agregarse historial")
}

func TestApplyTransition_EstadoTerminalNoAdmiteSalidas(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusDestruido, "BOGOTÁ")

	_, err := uc.ApplyTransition(context.Background(), gestorBogota,
		[]string{"BOG-001"}, entity.StatusEntradaInventario, nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestApplyTransition_CamposRequeridosFaltantes(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusEntregado, "BOGOTÁ")

	// INSTALADO requiere vehiclePlate y containerId; no se pasa ninguno.
	_, err := uc.ApplyTransition(context.Background(), gestorBogota,
		[]string{"BOG-001"}, entity.StatusInstalado, nil, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingField)
	assert.Contains(t, err.Error(), entity.FieldVehiclePlate, "el error debe nombrar cada campo faltante")
	assert.Contains(t, err.Error(), entity.FieldContainerID)

	seal, _ := repo.GetByID("BOG-001")
	assert.Equal(t, entity.StatusEntregado, seal.Status)
}

func TestApplyTransition_NoEncontradosSeNombranTodos(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusEntradaInventario, "BOGOTÁ")

	_, err := uc.ApplyTransition(context.Background(), gestorBogota,
		[]string{"BOG-001", "BOG-404", "BOG-405"}, entity.StatusAsignado,
		map[string]string{entity.FieldAssignedTo: "JUAN"}, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "BOG-404")
	assert.Contains(t, err.Error(), "BOG-405")

	// La validación es previa a toda mutación: el existente queda intacto.
	seal, _ := repo.GetByID("BOG-001")
	assert.Equal(t, entity.StatusEntradaInventario, seal.Status)
}

func TestApplyTransition_SedeAjenaBloqueaElLote(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusEntradaInventario, "BOGOTÁ")
	seedSeal(t, repo, "MED-001", entity.StatusEntradaInventario, "MEDELLÍN")

	_, err := uc.ApplyTransition(context.Background(), gestorBogota,
		[]string{"BOG-001", "MED-001"}, entity.StatusAsignado,
		map[string]string{entity.FieldAssignedTo: "JUAN"}, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWrongSite)
	assert.Contains(t, err.Error(), "MED-001")

	seal, _ := repo.GetByID("BOG-001")
	assert.Equal(t, entity.StatusEntradaInventario, seal.Status)
}

func TestApplyTransition_EstadosMixtosBloqueaElLote(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusEntradaInventario, "BOGOTÁ")
	seedSeal(t, repo, "BOG-002", entity.StatusAsignado, "BOGOTÁ")

	_, err := uc.ApplyTransition(context.Background(), gestorBogota,
		[]string{"BOG-001", "BOG-002"}, entity.StatusDestruido,
		map[string]string{entity.FieldObservations: "dañado"}, time.Now())
	assert.ErrorIs(t, err, domain.ErrMixedStatus)
}

func TestApplyTransition_DestinoDesconocido(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusEntradaInventario, "BOGOTÁ")

	_, err := uc.ApplyTransition(context.Background(), gestorBogota,
		[]string{"BOG-001"}, "ESTADO_INVENTADO", nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyTransition_TodoONada(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusEntradaInventario, "BOGOTÁ")
	seedSeal(t, repo, "BOG-002", entity.StatusEntradaInventario, "BOGOTÁ")

	// El segundo Update del lote falla: la transacción debe revertir el primero.
	repo.failUpdateOn = "BOG-002"

	_, err := uc.ApplyTransition(context.Background(), gestorBogota,
		[]string{"BOG-001", "BOG-002"}, entity.StatusAsignado,
		map[string]string{entity.FieldAssignedTo: "JUAN"}, time.Now())
	require.Error(t, err)

	for _, id := range []string{"BOG-001", "BOG-002"} {
		seal, _ := repo.GetByID(id)
		assert.Equal(t, entity.StatusEntradaInventario, seal.Status,
			"si un precinto del lote falla, ninguno debe avanzar")
		assert.Empty(t, seal.AssignedTo)
		history, _ := repo.ListMovements(id)
		assert.Len(t, history, 1, "no debe quedar historial del intento fallido")
	}
}

func TestApplyTransition_CicloCompletoDeVida(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedSeal(t, repo, "BOG-001", entity.StatusEntradaInventario, "BOGOTÁ")
	ctx := context.Background()

	steps := []struct {
		target string
		fields map[string]string
	}{
		{entity.StatusAsignado, map[string]string{entity.FieldAssignedTo: "JUAN"}},
		{entity.StatusEntregado, map[string]string{entity.FieldAssignedTo: "JUAN", entity.FieldDriverName: "PEDRO"}},
		{entity.StatusInstalado, map[string]string{entity.FieldVehiclePlate: "ABC-123", entity.FieldContainerID: "CONT-9"}},
		{entity.StatusSalidaFabrica, map[string]string{entity.FieldDestination: "PUERTO DE CARTAGENA"}},
	}
	for _, step := range steps {
		_, err := uc.ApplyTransition(ctx, gestorBogota, []string{"BOG-001"}, step.target, step.fields, time.Now())
		require.NoError(t, err, "transición a %s", step.target)
	}

	seal, _ := repo.GetByID("BOG-001")
	assert.Equal(t, entity.StatusSalidaFabrica, seal.Status)
	// Los campos operativos son acumulativos a lo largo del ciclo.
	assert.Equal(t, "JUAN", seal.AssignedTo)
	assert.Equal(t, "PEDRO", seal.DriverName)
	assert.Equal(t, "ABC-123", seal.VehiclePlate)
	assert.Equal(t, "CONT-9", seal.ContainerID)
	assert.Equal(t, "PUERTO DE CARTAGENA", seal.Destination)

	history, _ := repo.ListMovements("BOG-001")
	require.Len(t, history, 5, "registro inicial + cuatro movimientos")
	assert.Equal(t, entity.StatusSalidaFabrica, history[0].ToStatus)
	assert.Equal(t, entity.StatusInstalado, history[0].FromStatus)
}

func TestBuildDetails_FormatoDeResumen(t *testing.T) {
	assert.Equal(t, "sin campos adicionales", buildDetails(nil, 1))
	assert.Equal(t, "[lote de 3]", buildDetails(nil, 3))
	assert.Equal(t, "assignedTo: JUAN", buildDetails(map[string]string{entity.FieldAssignedTo: "JUAN"}, 1))
	// Claves ordenadas alfabéticamente y marcador de lote al frente.
	assert.Equal(t, "[lote de 2] assignedTo: JUAN, orderNumber: OC-55",
		buildDetails(map[string]string{
			entity.FieldOrderNumber: "OC-55",
			entity.FieldAssignedTo:  "JUAN",
		}, 2))
	// Los valores vacíos no aparecen en el resumen.
	assert.Equal(t, "assignedTo: JUAN",
		buildDetails(map[string]string{entity.FieldAssignedTo: "JUAN", entity.FieldDriverName: ""}, 1))
}

func TestNormalizeIDs_RecortaDeduplicaYConservaOrden(t *testing.T) {
	out := normalizeIDs([]string{" bog-002 ", "BOG-001", "bog-002", "", "  "})
	assert.Equal(t, []string{"BOG-002", "BOG-001"}, out)
}
