package repository

import "github.com/jhoicas/precintos-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) si el usuario no existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	ListByCity(city string, limit, offset int) ([]*entity.User, error)
	Delete(id string) error
	// UpdateCity cambia la sede de todos los usuarios de una sede (cascada de renombre).
	UpdateCity(oldCity, newCity string) error
	// ReplaceAll reemplaza la colección completa (restauración de backup).
	ReplaceAll(users []*entity.User) error
}
