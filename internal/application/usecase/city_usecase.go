package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/precintos-api/internal/application/dto"
	"github.com/jhoicas/precintos-api/internal/domain"
	"github.com/jhoicas/precintos-api/internal/domain/entity"
	"github.com/jhoicas/precintos-api/internal/domain/repository"
)

// CityUseCase casos de uso para sedes, incluida la cascada de renombre.
type CityUseCase struct {
	cityRepo repository.CityRepository
	txRunner StoreTxRunner
}

// NewCityUseCase construye el caso de uso.
func NewCityUseCase(cityRepo repository.CityRepository, txRunner StoreTxRunner) *CityUseCase {
	return &CityUseCase{cityRepo: cityRepo, txRunner: txRunner}
}

// Create registra una sede nueva. El nombre es único.
func (uc *CityUseCase) Create(in dto.CreateCityRequest) (*dto.CityResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.cityRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateID
	}
	now := time.Now()
	city := &entity.City{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.cityRepo.Create(city); err != nil {
		return nil, err
	}
	return toCityResponse(city), nil
}

// Rename renombra una sede y cascadea el cambio a precintos y usuarios dentro
// de una única transacción: o cambia todo, o no cambia nada.
func (uc *CityUseCase) Rename(ctx context.Context, id string, in dto.RenameCityRequest) (*dto.CityResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	city, err := uc.cityRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, domain.ErrNotFound
	}
	if city.Name == in.Name {
		return toCityResponse(city), nil
	}
	taken, err := uc.cityRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, domain.ErrDuplicateID
	}

	oldName := city.Name
	city.Name = in.Name
	city.UpdatedAt = time.Now()

	err = uc.txRunner.RunStore(ctx, func(
		sealRepo repository.SealRepository,
		userRepo repository.UserRepository,
		cityRepo repository.CityRepository,
		_ repository.SettingsRepository,
	) error {
		if err := cityRepo.Update(city); err != nil {
			return err
		}
		if err := sealRepo.UpdateCity(oldName, city.Name); err != nil {
			return err
		}
		return userRepo.UpdateCity(oldName, city.Name)
	})
	if err != nil {
		return nil, err
	}
	return toCityResponse(city), nil
}

// List lista todas las sedes.
func (uc *CityUseCase) List() ([]dto.CityResponse, error) {
	list, err := uc.cityRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CityResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCityResponse(c))
	}
	return items, nil
}

// Delete elimina una sede por ID.
func (uc *CityUseCase) Delete(id string) error {
	return uc.cityRepo.Delete(id)
}

func toCityResponse(c *entity.City) *dto.CityResponse {
	if c == nil {
		return nil
	}
	return &dto.CityResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
