package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/precintos-api/internal/domain"
	"github.com/jhoicas/precintos-api/internal/domain/entity"
	"github.com/jhoicas/precintos-api/internal/domain/repository"
)

var _ repository.CityRepository = (*CityRepo)(nil)

// CityRepo implementación del puerto CityRepository sobre PostgreSQL.
type CityRepo struct {
	q Querier
}

// NewCityRepository construye el adaptador de persistencia para sedes.
func NewCityRepository(q Querier) *CityRepo {
	return &CityRepo{q: q}
}

// Create persiste una sede nueva. El nombre es único.
func (r *CityRepo) Create(city *entity.City) error {
	query := `INSERT INTO cities (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, city.ID, city.Name, city.CreatedAt, city.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateID
		}
		return fmt.Errorf("insert city: %w", err)
	}
	return nil
}

// GetByID obtiene una sede por ID. Devuelve (nil, nil) si no existe.
func (r *CityRepo) GetByID(id string) (*entity.City, error) {
	return r.getOne(`SELECT id, name, created_at, updated_at FROM cities WHERE id = $1`, id)
}

// GetByName obtiene una sede por nombre. Devuelve (nil, nil) si no existe.
func (r *CityRepo) GetByName(name string) (*entity.City, error) {
	return r.getOne(`SELECT id, name, created_at, updated_at FROM cities WHERE name = $1`, name)
}

func (r *CityRepo) getOne(query string, arg any) (*entity.City, error) {
	var c entity.City
	err := r.q.QueryRow(context.Background(), query, arg).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get city: %w", err)
	}
	return &c, nil
}

// Update actualiza una sede (renombre).
func (r *CityRepo) Update(city *entity.City) error {
	query := `UPDATE cities SET name = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, city.ID, city.Name, city.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update city: %w", err)
	}
	return nil
}

// List lista todas las sedes ordenadas por nombre.
func (r *CityRepo) List() ([]*entity.City, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, name, created_at, updated_at FROM cities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()
	var list []*entity.City
	for rows.Next() {
		var c entity.City
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina una sede por ID.
func (r *CityRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete city: %w", err)
	}
	return nil
}

// ReplaceAll reemplaza la colección completa (restauración de backup).
func (r *CityRepo) ReplaceAll(cities []*entity.City) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM cities`); err != nil {
		return fmt.Errorf("clear cities: %w", err)
	}
	for _, c := range cities {
		if err := r.Create(c); err != nil {
			return err
		}
	}
	return nil
}
