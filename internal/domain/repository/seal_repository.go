package repository

import "github.com/jhoicas/precintos-api/internal/domain/entity"

// SealFilter criterios de listado de precintos. Campos vacíos no filtran.
type SealFilter struct {
	City    string // sede propietaria
	Status  string
	IDQuery string // subcadena del ID (case-insensitive)
	Limit   int
	Offset  int
}

// SealRepository define el puerto de persistencia para Seal (DIP).
// GetByID devuelve (nil, nil) si el precinto no existe.
type SealRepository interface {
	Create(seal *entity.Seal) error
	GetByID(id string) (*entity.Seal, error)
	// GetByIDs devuelve los precintos existentes entre los IDs pedidos
	// (los inexistentes simplemente no aparecen en el resultado).
	GetByIDs(ids []string) ([]*entity.Seal, error)
	Update(seal *entity.Seal) error
	List(filter SealFilter) ([]*entity.Seal, error)
	Count(filter SealFilter) (int, error)
	Delete(id string) error
	// AppendMovement agrega un registro al historial append-only del precinto.
	AppendMovement(movement *entity.MovementHistory) error
	// ListMovements devuelve el historial de un precinto, el más reciente primero.
	ListMovements(sealID string) ([]entity.MovementHistory, error)
	// UpdateCity cambia la sede de todos los precintos de una sede (cascada de renombre).
	UpdateCity(oldCity, newCity string) error
	// ReplaceAll reemplaza la colección completa (restauración de backup).
	ReplaceAll(seals []*entity.Seal) error
}
