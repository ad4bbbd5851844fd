package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/precintos-api/internal/application/dto"
	"github.com/jhoicas/precintos-api/internal/domain"
	"github.com/jhoicas/precintos-api/internal/domain/entity"
	"github.com/jhoicas/precintos-api/internal/domain/policy"
	"github.com/jhoicas/precintos-api/internal/domain/repository"
)

// BackupUseCase exporta y restaura el snapshot completo del almacén:
// {seals, users, cities, settings, exportedAt}. La restauración reemplaza el
// almacén completo dentro de una transacción, sin merge.
type BackupUseCase struct {
	sealRepo     repository.SealRepository
	userRepo     repository.UserRepository
	cityRepo     repository.CityRepository
	settingsRepo repository.SettingsRepository
	txRunner     StoreTxRunner
}

// NewBackupUseCase construye el caso de uso.
func NewBackupUseCase(
	sealRepo repository.SealRepository,
	userRepo repository.UserRepository,
	cityRepo repository.CityRepository,
	settingsRepo repository.SettingsRepository,
	txRunner StoreTxRunner,
) *BackupUseCase {
	return &BackupUseCase{
		sealRepo:     sealRepo,
		userRepo:     userRepo,
		cityRepo:     cityRepo,
		settingsRepo: settingsRepo,
		txRunner:     txRunner,
	}
}

// Export arma el snapshot completo, con historial por precinto y hash de
// password por usuario (para que la restauración no invalide credenciales).
func (uc *BackupUseCase) Export(ctx context.Context) (*dto.BackupSnapshot, error) {
	seals, err := uc.sealRepo.List(repository.SealFilter{})
	if err != nil {
		return nil, err
	}
	snapshot := &dto.BackupSnapshot{ExportedAt: time.Now()}
	for _, s := range seals {
		history, err := uc.sealRepo.ListMovements(s.ID)
		if err != nil {
			return nil, err
		}
		resp := dto.SealResponse{
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
		for _, h := range history {
			resp.History = append(resp.History, dto.MovementHistoryResponse{
				Date:       h.Date,
				FromStatus: h.FromStatus,
				ToStatus:   h.ToStatus,
				User:       h.User,
				Details:    h.Details,
				Fields:     h.Fields,
			})
		}
		snapshot.Seals = append(snapshot.Seals, resp)
	}

	users, err := uc.userRepo.List(0, 0)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		snapshot.Users = append(snapshot.Users, dto.BackupUser{
			ID:           u.ID,
			Username:     u.Username,
			FullName:     u.FullName,
			PasswordHash: u.PasswordHash,
			Role:         u.Role,
			City:         u.City,
			CreatedAt:    u.CreatedAt,
			UpdatedAt:    u.UpdatedAt,
		})
	}

	cities, err := uc.cityRepo.List()
	if err != nil {
		return nil, err
	}
	for _, c := range cities {
		snapshot.Cities = append(snapshot.Cities, dto.CityResponse{
			ID:        c.ID,
			Name:      c.Name,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}

	settings, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	snapshot.Settings = dto.SettingsResponse{
		SafeMode:  settings.SafeMode,
		SealTypes: settings.SealTypes,
		UpdatedAt: settings.UpdatedAt,
	}
	return snapshot, nil
}

// Restore reemplaza el almacén completo con el snapshot, en una transacción.
// Rechaza snapshots con estados fuera del ciclo de vida o historial que no
// cierre con el estado actual del precinto.
func (uc *BackupUseCase) Restore(ctx context.Context, snapshot *dto.BackupSnapshot) error {
	seals := make([]*entity.Seal, 0, len(snapshot.Seals))
	for _, in := range snapshot.Seals {
		if !policy.IsValidStatus(in.Status) {
			return domain.ErrInvalidInput
		}
		if len(in.History) > 0 && in.History[0].ToStatus != in.Status {
			return domain.ErrInvalidInput // status debe igualar history[0].toStatus
		}
		seal := &entity.Seal{
			ID:           entity.NormalizeSealID(in.ID),
			Type:         in.Type,
			Status:       in.Status,
			City:         in.City,
			CreationDate: in.CreationDate,
			LastMovement: in.LastMovement,
			EntryUser:    in.EntryUser,
			OrderNumber:  in.OrderNumber,
			ContainerID:  in.ContainerID,
			VehiclePlate: in.VehiclePlate,
			AssignedTo:   in.AssignedTo,
			DeliveredTo:  in.DeliveredTo,
			DriverName:   in.DriverName,
			Destination:  in.Destination,
			Observations: in.Observations,
		}
		for _, h := range in.History {
			seal.History = append(seal.History, entity.MovementHistory{
				SealID:     seal.ID,
				Date:       h.Date,
				FromStatus: h.FromStatus,
				ToStatus:   h.ToStatus,
				User:       h.User,
				Details:    h.Details,
				Fields:     h.Fields,
			})
		}
		seals = append(seals, seal)
	}

	users := make([]*entity.User, 0, len(snapshot.Users))
	for _, in := range snapshot.Users {
		users = append(users, &entity.User{
			ID:           in.ID,
			Username:     in.Username,
			FullName:     in.FullName,
			PasswordHash: in.PasswordHash,
			Role:         in.Role,
			City:         in.City,
			CreatedAt:    in.CreatedAt,
			UpdatedAt:    in.UpdatedAt,
		})
	}

	cities := make([]*entity.City, 0, len(snapshot.Cities))
	for _, in := range snapshot.Cities {
		cities = append(cities, &entity.City{
			ID:        in.ID,
			Name:      in.Name,
			CreatedAt: in.CreatedAt,
			UpdatedAt: in.UpdatedAt,
		})
	}

	settings := &entity.Settings{
		SafeMode:  snapshot.Settings.SafeMode,
		SealTypes: snapshot.Settings.SealTypes,
		UpdatedAt: snapshot.Settings.UpdatedAt,
	}

	return uc.txRunner.RunStore(ctx, func(
		sealRepo repository.SealRepository,
		userRepo repository.UserRepository,
		cityRepo repository.CityRepository,
		settingsRepo repository.SettingsRepository,
	) error {
		if err := cityRepo.ReplaceAll(cities); err != nil {
			return err
		}
		if err := userRepo.ReplaceAll(users); err != nil {
			return err
		}
		if err := sealRepo.ReplaceAll(seals); err != nil {
			return err
		}
		return settingsRepo.Save(settings)
	})
}
