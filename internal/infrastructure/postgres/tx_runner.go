package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/precintos-api/internal/application/seals"
	"github.com/jhoicas/precintos-api/internal/application/usecase"
	"github.com/jhoicas/precintos-api/internal/domain/repository"
)

// Ensure TxRunner implements seals.TxRunner and usecase.StoreTxRunner.
var _ seals.TxRunner = (*TxRunner)(nil)
var _ usecase.StoreTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Da al motor de precintos su garantía de todo-o-nada en movimientos en lote.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repo de precintos atado a la tx
// y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(sealRepo repository.SealRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSealRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStore inicia una transacción con todos los repositorios del almacén
// (cascada de renombre de sede y restauración de backup).
func (r *TxRunner) RunStore(ctx context.Context, fn func(
	sealRepo repository.SealRepository,
	userRepo repository.UserRepository,
	cityRepo repository.CityRepository,
	settingsRepo repository.SettingsRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewSealRepository(tx),
		NewUserRepository(tx),
		NewCityRepository(tx),
		NewSettingsRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
