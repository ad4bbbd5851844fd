package seals

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/precintos-api/internal/application/dto"
	"github.com/jhoicas/precintos-api/internal/domain"
	"github.com/jhoicas/precintos-api/internal/domain/entity"
	"github.com/jhoicas/precintos-api/internal/domain/policy"
	"github.com/jhoicas/precintos-api/internal/domain/repository"
)

// BatchResolution partición de un lote de IDs antes de ofrecer una transición.
type BatchResolution struct {
	Found     []*entity.Seal
	NotFound  []string
	WrongSite []string
}

// ResolveBatch busca cada ID pedido (recortado y en mayúsculas) y lo clasifica:
// existe y pertenece a la sede del actor, no existe, o pertenece a otra sede.
// Los IDs duplicados dentro del lote se consultan una sola vez.
func (uc *SealUseCase) ResolveBatch(ctx context.Context, actor Actor, ids []string) (*BatchResolution, error) {
	normalized := normalizeIDs(ids)
	if len(normalized) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	found, err := uc.sealRepo.GetByIDs(normalized)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Seal, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	res := &BatchResolution{}
	for _, id := range normalized {
		seal, ok := byID[id]
		switch {
		case !ok:
			res.NotFound = append(res.NotFound, id)
		case !actor.CanAccessCity(seal.City):
			res.WrongSite = append(res.WrongSite, id)
		default:
			res.Found = append(res.Found, seal)
		}
	}
	return res, nil
}

// ResolveBatchResponse adapta ResolveBatch para el flujo de pre-validación de la UI,
// anotando el estado común y las transiciones ofrecibles cuando el lote es homogéneo.
func (uc *SealUseCase) ResolveBatchResponse(ctx context.Context, actor Actor, in dto.ResolveBatchRequest) (*dto.ResolveBatchResponse, error) {
	res, err := uc.ResolveBatch(ctx, actor, in.IDs)
	if err != nil {
		return nil, err
	}
	out := &dto.ResolveBatchResponse{
		Found:     make([]dto.SealResponse, 0, len(res.Found)),
		NotFound:  res.NotFound,
		WrongSite: res.WrongSite,
	}
	for _, s := range res.Found {
		out.Found = append(out.Found, *toSealResponse(s, false))
	}
	if len(res.Found) > 0 {
		if common, err := ValidateBatchConsistency(res.Found); err == nil {
			out.CommonStatus = common
			out.AllowedNext = policy.AllowedNext(common)
		}
	}
	return out, nil
}

// ValidateBatchConsistency verifica que el lote no esté vacío y que todos los
// precintos compartan el mismo estado actual; una transición en lote debe
// partir de un único estado común porque los campos requeridos y el conjunto
// de destinos dependen de él. Devuelve el estado común.
func ValidateBatchConsistency(seals []*entity.Seal) (string, error) {
	if len(seals) == 0 {
		return "", domain.ErrEmptyBatch
	}
	statuses := map[string]bool{}
	for _, s := range seals {
		statuses[s.Status] = true
	}
	if len(statuses) > 1 {
		list := make([]string, 0, len(statuses))
		for s := range statuses {
			list = append(list, s)
		}
		sort.Strings(list)
		return "", &domain.MixedStatusError{Statuses: list}
	}
	return seals[0].Status, nil
}

// ApplyTransition ejecuta una transición en lote: resuelve los IDs (todos deben
// existir y pertenecer a la sede del actor), valida estado común, legalidad de
// la transición y campos requeridos, y solo entonces muta. Toda la mutación
// ocurre dentro de una única transacción: o todos los precintos del lote
// avanzan, o ninguno.
func (uc *SealUseCase) ApplyTransition(ctx context.Context, actor Actor, ids []string, target string, fields map[string]string, now time.Time) ([]*dto.SealResponse, error) {
	if !policy.IsValidStatus(target) {
		return nil, domain.ErrInvalidInput
	}
	res, err := uc.ResolveBatch(ctx, actor, ids)
	if err != nil {
		return nil, err
	}
	// Toda validación se reporta completa antes de mutar nada.
	if len(res.NotFound) > 0 {
		return nil, &domain.SealsNotFoundError{IDs: res.NotFound}
	}
	if len(res.WrongSite) > 0 {
		return nil, &domain.WrongSiteError{IDs: res.WrongSite}
	}
	common, err := ValidateBatchConsistency(res.Found)
	if err != nil {
		return nil, err
	}
	if !policy.IsTransitionAllowed(common, target) {
		return nil, &domain.IllegalTransitionError{From: common, To: target}
	}
	if missing := policy.MissingFields(target, fields); len(missing) > 0 {
		return nil, &domain.MissingFieldsError{Target: target, Fields: missing}
	}

	details := buildDetails(fields, len(res.Found))
	snapshot := fieldsSnapshot(fields)

	err = uc.txRunner.Run(ctx, func(sealRepo repository.SealRepository) error {
		for _, seal := range res.Found {
			movement := &entity.MovementHistory{
				ID:     uuid.New().String(),
				SealID: seal.ID,
				Date:   now,
				// fromStatus sale del propio precinto, no del estado común del
				// lote, para que el historial nunca mienta aunque la
				// verificación de consistencia cambiara en el futuro.
				FromStatus: seal.Status,
				ToStatus:   target,
				User:       actor.Username,
				Details:    details,
				Fields:     snapshot,
			}
			seal.Status = target
			seal.LastMovement = now
			seal.EntryUser = actor.Username
			seal.MergeFields(fields)
			if err := sealRepo.Update(seal); err != nil {
				return err
			}
			if err := sealRepo.AppendMovement(movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]*dto.SealResponse, 0, len(res.Found))
	for _, seal := range res.Found {
		out = append(out, toSealResponse(seal, false))
	}
	return out, nil
}

// ApplyTransitionFromRequest adapta el request HTTP al caso de uso ApplyTransition.
func (uc *SealUseCase) ApplyTransitionFromRequest(ctx context.Context, actor Actor, in dto.MovementRequest) ([]*dto.SealResponse, error) {
	return uc.ApplyTransition(ctx, actor, in.IDs, in.Target, movementFieldsToMap(in.Fields), time.Now())
}

// buildDetails genera el resumen legible del movimiento: cada campo no vacío
// como "clave: valor" unido por comas, con marcador de lote si afecta a más
// de un precinto. Todos los precintos del lote reciben el mismo texto.
func buildDetails(fields map[string]string, batchSize int) string {
	keys := make([]string, 0, len(fields))
	for k, v := range fields {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fields[k]))
	}
	details := strings.Join(parts, ", ")
	if batchSize > 1 {
		marker := fmt.Sprintf("[lote de %d]", batchSize)
		if details == "" {
			return marker
		}
		return marker + " " + details
	}
	if details == "" {
		return "sin campos adicionales"
	}
	return details
}

// fieldsSnapshot copia los valores crudos no vacíos pasados a la transición.
func fieldsSnapshot(fields map[string]string) map[string]string {
	snapshot := make(map[string]string, len(fields))
	for k, v := range fields {
		if v != "" {
			snapshot[k] = v
		}
	}
	if len(snapshot) == 0 {
		return nil
	}
	return snapshot
}

// normalizeIDs recorta, pasa a mayúsculas y deduplica preservando el orden.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		id := entity.NormalizeSealID(raw)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func movementFieldsToMap(f dto.MovementFields) map[string]string {
	return map[string]string{
		entity.FieldOrderNumber:  f.OrderNumber,
		entity.FieldContainerID:  f.ContainerID,
		entity.FieldVehiclePlate: f.VehiclePlate,
		entity.FieldAssignedTo:   f.AssignedTo,
		entity.FieldDeliveredTo:  f.DeliveredTo,
		entity.FieldDriverName:   f.DriverName,
		entity.FieldDestination:  f.Destination,
		entity.FieldObservations: f.Observations,
	}
}
