package repository

import "github.com/jhoicas/precintos-api/internal/domain/entity"

// CityRepository define el puerto de persistencia para City (DIP).
type CityRepository interface {
	Create(city *entity.City) error
	GetByID(id string) (*entity.City, error)
	GetByName(name string) (*entity.City, error)
	Update(city *entity.City) error
	List() ([]*entity.City, error)
	Delete(id string) error
	ReplaceAll(cities []*entity.City) error
}
