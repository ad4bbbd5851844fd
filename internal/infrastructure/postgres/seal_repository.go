package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/precintos-api/internal/domain"
	"github.com/jhoicas/precintos-api/internal/domain/entity"
	"github.com/jhoicas/precintos-api/internal/domain/repository"
)

var _ repository.SealRepository = (*SealRepo)(nil)

// SealRepo implementación de SealRepository sobre PostgreSQL (usable con pool o tx).
type SealRepo struct {
	q Querier
}

// NewSealRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSealRepository(q Querier) *SealRepo {
	return &SealRepo{q: q}
}

const sealColumns = `id, type, status, city, creation_date, last_movement, entry_user,
	order_number, container_id, vehicle_plate, assigned_to, delivered_to,
	driver_name, destination, observations`

// Create persiste un precinto nuevo. Devuelve DuplicateIDError si el ID ya existe.
func (r *SealRepo) Create(seal *entity.Seal) error {
	query := `
		INSERT INTO seals (` + sealColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		seal.ID, seal.Type, seal.Status, seal.City, seal.CreationDate, seal.LastMovement, seal.EntryUser,
		seal.OrderNumber, seal.ContainerID, seal.VehiclePlate, seal.AssignedTo, seal.DeliveredTo,
		seal.DriverName, seal.Destination, seal.Observations,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateIDError{ID: seal.ID}
		}
		return fmt.Errorf("insert seal: %w", err)
	}
	return nil
}

// GetByID obtiene un precinto por ID (sin historial). Devuelve (nil, nil) si no existe.
func (r *SealRepo) GetByID(id string) (*entity.Seal, error) {
	query := `SELECT ` + sealColumns + ` FROM seals WHERE id = $1`
	var s entity.Seal
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Type, &s.Status, &s.City, &s.CreationDate, &s.LastMovement, &s.EntryUser,
		&s.OrderNumber, &s.ContainerID, &s.VehiclePlate, &s.AssignedTo, &s.DeliveredTo,
		&s.DriverName, &s.Destination, &s.Observations,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seal by id: %w", err)
	}
	return &s, nil
}

// GetByIDs obtiene los precintos existentes entre los IDs pedidos.
func (r *SealRepo) GetByIDs(ids []string) ([]*entity.Seal, error) {
	query := `SELECT ` + sealColumns + ` FROM seals WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get seals by ids: %w", err)
	}
	defer rows.Close()
	return scanSeals(rows)
}

// Update actualiza estado, campos operativos y metadatos de última mutación.
func (r *SealRepo) Update(seal *entity.Seal) error {
	query := `
		UPDATE seals SET status = $2, city = $3, last_movement = $4, entry_user = $5,
			order_number = $6, container_id = $7, vehicle_plate = $8, assigned_to = $9,
			delivered_to = $10, driver_name = $11, destination = $12, observations = $13
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		seal.ID, seal.Status, seal.City, seal.LastMovement, seal.EntryUser,
		seal.OrderNumber, seal.ContainerID, seal.VehiclePlate, seal.AssignedTo,
		seal.DeliveredTo, seal.DriverName, seal.Destination, seal.Observations,
	)
	if err != nil {
		return fmt.Errorf("update seal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.SealsNotFoundError{IDs: []string{seal.ID}}
	}
	return nil
}

// List lista precintos filtrados, los de movimiento más reciente primero.
// Limit <= 0 significa sin límite (exportaciones y backup).
func (r *SealRepo) List(filter repository.SealFilter) ([]*entity.Seal, error) {
	query := `SELECT ` + sealColumns + ` FROM seals`
	where, args := sealFilterClauses(filter)
	query += where + ` ORDER BY last_movement DESC, id`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list seals: %w", err)
	}
	defer rows.Close()
	return scanSeals(rows)
}

// Count cuenta precintos que cumplen el filtro (ignora paginación).
func (r *SealRepo) Count(filter repository.SealFilter) (int, error) {
	where, args := sealFilterClauses(filter)
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM seals`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count seals: %w", err)
	}
	return total, nil
}

// Delete elimina un precinto y su historial (irreversible).
func (r *SealRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM seal_movements WHERE seal_id = $1`, id); err != nil {
		return fmt.Errorf("delete seal movements: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM seals WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete seal: %w", err)
	}
	return nil
}

// AppendMovement agrega un registro al historial append-only.
func (r *SealRepo) AppendMovement(movement *entity.MovementHistory) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	var fields []byte
	if len(movement.Fields) > 0 {
		var err error
		fields, err = json.Marshal(movement.Fields)
		if err != nil {
			return fmt.Errorf("marshal movement fields: %w", err)
		}
	}
	fromStatus := (*string)(nil)
	if movement.FromStatus != "" {
		fromStatus = &movement.FromStatus
	}
	query := `
		INSERT INTO seal_movements (id, seal_id, date, from_status, to_status, user_name, details, fields)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.SealID, movement.Date, fromStatus,
		movement.ToStatus, movement.User, movement.Details, fields,
	)
	if err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

// ListMovements devuelve el historial de un precinto, el más reciente primero.
func (r *SealRepo) ListMovements(sealID string) ([]entity.MovementHistory, error) {
	query := `
		SELECT id, seal_id, date, from_status, to_status, user_name, details, fields
		FROM seal_movements WHERE seal_id = $1 ORDER BY date DESC, id DESC`
	rows, err := r.q.Query(context.Background(), query, sealID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []entity.MovementHistory
	for rows.Next() {
		var m entity.MovementHistory
		var fromStatus *string
		var fields []byte
		if err := rows.Scan(&m.ID, &m.SealID, &m.Date, &fromStatus, &m.ToStatus, &m.User, &m.Details, &fields); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if fromStatus != nil {
			m.FromStatus = *fromStatus
		}
		if len(fields) > 0 {
			if err := json.Unmarshal(fields, &m.Fields); err != nil {
				return nil, fmt.Errorf("unmarshal movement fields: %w", err)
			}
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// UpdateCity cambia la sede de todos los precintos de una sede (cascada de renombre).
func (r *SealRepo) UpdateCity(oldCity, newCity string) error {
	_, err := r.q.Exec(context.Background(), `UPDATE seals SET city = $2 WHERE city = $1`, oldCity, newCity)
	if err != nil {
		return fmt.Errorf("update seals city: %w", err)
	}
	return nil
}

// ReplaceAll reemplaza la colección completa, historial incluido (restauración de backup).
func (r *SealRepo) ReplaceAll(seals []*entity.Seal) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM seal_movements`); err != nil {
		return fmt.Errorf("clear seal movements: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM seals`); err != nil {
		return fmt.Errorf("clear seals: %w", err)
	}
	for _, seal := range seals {
		if err := r.Create(seal); err != nil {
			return err
		}
		for _, m := range seal.History {
			movement := m
			movement.SealID = seal.ID
			if err := r.AppendMovement(&movement); err != nil {
				return err
			}
		}
	}
	return nil
}

func sealFilterClauses(filter repository.SealFilter) (string, []any) {
	where := ""
	var args []any
	add := func(clause string, value any) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		args = append(args, value)
		where += fmt.Sprintf(clause, len(args))
	}
	if filter.City != "" {
		add("city = $%d", filter.City)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.IDQuery != "" {
		add("id ILIKE $%d", "%"+filter.IDQuery+"%")
	}
	return where, args
}

func scanSeals(rows pgx.Rows) ([]*entity.Seal, error) {
	var list []*entity.Seal
	for rows.Next() {
		var s entity.Seal
		if err := rows.Scan(
			&s.ID, &s.Type, &s.Status, &s.City, &s.CreationDate, &s.LastMovement, &s.EntryUser,
			&s.OrderNumber, &s.ContainerID, &s.VehiclePlate, &s.AssignedTo, &s.DeliveredTo,
			&s.DriverName, &s.Destination, &s.Observations,
		); err != nil {
			return nil, fmt.Errorf("scan seal: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
