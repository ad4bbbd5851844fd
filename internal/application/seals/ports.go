package seals

import (
	"context"

	"github.com/jhoicas/precintos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de precintos atado a esa tx. Garantiza el todo-o-nada de los
// movimientos en lote: si algo falla, ningún precinto queda mutado.
type TxRunner interface {
	Run(ctx context.Context, fn func(sealRepo repository.SealRepository) error) error
}
