package usecase

import (
	"context"

	"github.com/jhoicas/precintos-api/internal/domain/repository"
)

// StoreTxRunner ejecuta una función con todos los repositorios del almacén
// atados a una misma transacción. Lo usan la cascada de renombre de sede y la
// restauración de backup, que tocan varias colecciones a la vez.
type StoreTxRunner interface {
	RunStore(ctx context.Context, fn func(
		sealRepo repository.SealRepository,
		userRepo repository.UserRepository,
		cityRepo repository.CityRepository,
		settingsRepo repository.SettingsRepository,
	) error) error
}
