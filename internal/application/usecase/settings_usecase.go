package usecase

import (
	"time"

	"github.com/jhoicas/precintos-api/internal/application/dto"
	"github.com/jhoicas/precintos-api/internal/domain/entity"
	"github.com/jhoicas/precintos-api/internal/domain/repository"
)

// SettingsUseCase lectura y actualización de la configuración global
// (modo seguro y catálogo de tipos de precinto).
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get devuelve la configuración vigente.
func (uc *SettingsUseCase) Get() (*dto.SettingsResponse, error) {
	settings, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

// Update aplica los cambios pedidos (campos nil quedan intactos) y persiste.
func (uc *SettingsUseCase) Update(in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if in.SafeMode != nil {
		settings.SafeMode = *in.SafeMode
	}
	if in.SealTypes != nil {
		settings.SealTypes = in.SealTypes
	}
	settings.UpdatedAt = time.Now()
	if err := uc.repo.Save(settings); err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func toSettingsResponse(s *entity.Settings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		SafeMode:  s.SafeMode,
		SealTypes: s.SealTypes,
		UpdatedAt: s.UpdatedAt,
	}
}
