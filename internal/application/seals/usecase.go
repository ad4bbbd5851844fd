package seals

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/precintos-api/internal/application/dto"
	"github.com/jhoicas/precintos-api/internal/domain"
	"github.com/jhoicas/precintos-api/internal/domain/entity"
	"github.com/jhoicas/precintos-api/internal/domain/repository"
)

// Actor identidad del usuario que ejecuta una operación sobre precintos.
// Un GESTOR solo ve/opera precintos de su propia sede; un ADMIN ve todas.
type Actor struct {
	Username string
	City     string
	Role     string
}

// CanAccessCity indica si el actor puede operar precintos de la sede dada.
func (a Actor) CanAccessCity(city string) bool {
	return a.Role == entity.RoleAdmin || a.City == city
}

// SealUseCase es la única autoridad para crear precintos y mutar su estado.
// Es dueño de la consistencia entre Status y History: ambos se escriben
// siempre dentro de la misma transacción.
type SealUseCase struct {
	txRunner     TxRunner
	sealRepo     repository.SealRepository
	settingsRepo repository.SettingsRepository
}

// NewSealUseCase construye el caso de uso.
func NewSealUseCase(txRunner TxRunner, sealRepo repository.SealRepository, settingsRepo repository.SettingsRepository) *SealUseCase {
	return &SealUseCase{txRunner: txRunner, sealRepo: sealRepo, settingsRepo: settingsRepo}
}

const initialDetails = "registro inicial"

// CreateSeal registra un precinto nuevo en ENTRADA_INVENTARIO, en la sede del
// actor, con su primer registro de historial (fromStatus vacío). El ID se
// normaliza a mayúsculas y es único en toda la colección.
func (uc *SealUseCase) CreateSeal(ctx context.Context, actor Actor, in dto.CreateSealRequest) (*dto.SealResponse, error) {
	id := entity.NormalizeSealID(in.ID)
	if id == "" || in.Type == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.sealRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.DuplicateIDError{ID: id}
	}

	now := time.Now()
	seal := &entity.Seal{
		ID:           id,
		Type:         in.Type,
		Status:       entity.StatusEntradaInventario,
		City:         actor.City,
		CreationDate: now,
		LastMovement: now,
		EntryUser:    actor.Username,
	}
	movement := &entity.MovementHistory{
		ID:       uuid.New().String(),
		SealID:   id,
		Date:     now,
		ToStatus: entity.StatusEntradaInventario,
		User:     actor.Username,
		Details:  initialDetails,
	}

	err = uc.txRunner.Run(ctx, func(sealRepo repository.SealRepository) error {
		if err := sealRepo.Create(seal); err != nil {
			return err
		}
		return sealRepo.AppendMovement(movement)
	})
	if err != nil {
		return nil, err
	}
	seal.History = []entity.MovementHistory{*movement}
	return toSealResponse(seal, true), nil
}

// GetByID obtiene un precinto con su historial completo (el más reciente primero).
func (uc *SealUseCase) GetByID(ctx context.Context, actor Actor, id string) (*dto.SealResponse, error) {
	seal, err := uc.loadSeal(actor, id)
	if err != nil {
		return nil, err
	}
	history, err := uc.sealRepo.ListMovements(seal.ID)
	if err != nil {
		return nil, err
	}
	seal.History = history
	return toSealResponse(seal, true), nil
}

// History devuelve el historial append-only de un precinto, el más reciente primero.
func (uc *SealUseCase) History(ctx context.Context, actor Actor, id string) ([]dto.MovementHistoryResponse, error) {
	seal, err := uc.loadSeal(actor, id)
	if err != nil {
		return nil, err
	}
	history, err := uc.sealRepo.ListMovements(seal.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementHistoryResponse, 0, len(history))
	for _, h := range history {
		out = append(out, toMovementResponse(h))
	}
	return out, nil
}

// List lista precintos filtrados por sede, estado y subcadena de ID.
// Un GESTOR queda forzado a su propia sede sin importar el filtro pedido.
func (uc *SealUseCase) List(ctx context.Context, actor Actor, in dto.ListSealsRequest) (*dto.SealListResponse, error) {
	in.DefaultPage()
	filter := repository.SealFilter{
		City:    in.City,
		Status:  in.Status,
		IDQuery: in.Q,
		Limit:   in.Limit,
		Offset:  in.Offset,
	}
	if actor.Role != entity.RoleAdmin {
		filter.City = actor.City
	}
	list, err := uc.sealRepo.List(filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.sealRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SealResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSealResponse(s, false))
	}
	return &dto.SealListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// DeleteSeal elimina un precinto y pierde su historial, de forma irreversible.
// Requiere rol ADMIN y el modo seguro activado en la configuración.
func (uc *SealUseCase) DeleteSeal(ctx context.Context, actor Actor, id string) error {
	if actor.Role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	settings, err := uc.settingsRepo.Get()
	if err != nil {
		return err
	}
	if !settings.SafeMode {
		return domain.ErrSafeModeDisabled
	}
	id = entity.NormalizeSealID(id)
	seal, err := uc.sealRepo.GetByID(id)
	if err != nil {
		return err
	}
	if seal == nil {
		return &domain.SealsNotFoundError{IDs: []string{id}}
	}
	return uc.sealRepo.Delete(id)
}

// loadSeal busca un precinto normalizando el ID y aplica el alcance de sede del actor.
func (uc *SealUseCase) loadSeal(actor Actor, id string) (*entity.Seal, error) {
	id = entity.NormalizeSealID(id)
	seal, err := uc.sealRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if seal == nil {
		return nil, &domain.SealsNotFoundError{IDs: []string{id}}
	}
	if !actor.CanAccessCity(seal.City) {
		return nil, &domain.WrongSiteError{IDs: []string{id}}
	}
	return seal, nil
}

func toSealResponse(s *entity.Seal, withHistory bool) *dto.SealResponse {
	if s == nil {
		return nil
	}
	resp := &dto.SealResponse{
		ID:           s.ID,
		Type:         s.Type,
		Status:       s.Status,
		City:         s.City,
		CreationDate: s.CreationDate,
		LastMovement: s.LastMovement,
		EntryUser:    s.EntryUser,
		OrderNumber:  s.OrderNumber,
		ContainerID:  s.ContainerID,
		VehiclePlate: s.VehiclePlate,
		AssignedTo:   s.AssignedTo,
		DeliveredTo:  s.DeliveredTo,
		DriverName:   s.DriverName,
		Destination:  s.Destination,
		Observations: s.Observations,
	}
	if withHistory {
		resp.History = make([]dto.MovementHistoryResponse, 0, len(s.History))
		for _, h := range s.History {
			resp.History = append(resp.History, toMovementResponse(h))
		}
	}
	return resp
}

func toMovementResponse(h entity.MovementHistory) dto.MovementHistoryResponse {
	return dto.MovementHistoryResponse{
		Date:       h.Date,
		FromStatus: h.FromStatus,
		ToStatus:   h.ToStatus,
		User:       h.User,
		Details:    h.Details,
		Fields:     h.Fields,
	}
}
