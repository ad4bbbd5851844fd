package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/precintos-api/internal/domain/entity"
	"github.com/jhoicas/precintos-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación del puerto SettingsRepository sobre PostgreSQL.
// La configuración se guarda como una única fila con id fijo.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de configuración.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

const settingsRowID = 1

// Get devuelve la configuración vigente, o los valores por defecto si nunca se guardó.
func (r *SettingsRepo) Get() (*entity.Settings, error) {
	var s entity.Settings
	var sealTypes []byte
	err := r.q.QueryRow(context.Background(),
		`SELECT safe_mode, seal_types, updated_at FROM settings WHERE id = $1`, settingsRowID,
	).Scan(&s.SafeMode, &sealTypes, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Settings{SealTypes: entity.DefaultSealTypes}, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if len(sealTypes) > 0 {
		if err := json.Unmarshal(sealTypes, &s.SealTypes); err != nil {
			return nil, fmt.Errorf("unmarshal seal types: %w", err)
		}
	}
	return &s, nil
}

// Save persiste la configuración (upsert de la fila única).
func (r *SettingsRepo) Save(settings *entity.Settings) error {
	sealTypes, err := json.Marshal(settings.SealTypes)
	if err != nil {
		return fmt.Errorf("marshal seal types: %w", err)
	}
	query := `
		INSERT INTO settings (id, safe_mode, seal_types, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET safe_mode = $2, seal_types = $3, updated_at = $4`
	_, err = r.q.Exec(context.Background(), query, settingsRowID, settings.SafeMode, sealTypes, settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
