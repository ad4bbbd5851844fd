package repository

import "github.com/jhoicas/precintos-api/internal/domain/entity"

// SettingsRepository define el puerto de persistencia para la configuración global.
// Get devuelve los valores por defecto si nunca se ha guardado configuración.
type SettingsRepository interface {
	Get() (*entity.Settings, error)
	Save(settings *entity.Settings) error
}
