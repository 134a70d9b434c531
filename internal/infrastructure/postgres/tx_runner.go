package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/pkg/config"
	"github.com/jhoicas/inventario-pos/pkg/logger"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL READ COMMITTED.
// La consistencia del stock depende de SELECT ... FOR UPDATE sobre cada producto, no del nivel
// de aislamiento. Ante deadlock o fallo de serialización repite la transacción completa.
type TxRunner struct {
	pool             *pgxpool.Pool
	lockTimeout      time.Duration
	statementTimeout time.Duration
	retries          int
	log              *logger.Logger
}

// NewTxRunner construye el runner con el pool y los límites de la configuración.
func NewTxRunner(pool *pgxpool.Pool, cfg config.DBConfig, log *logger.Logger) *TxRunner {
	return &TxRunner{
		pool:             pool,
		lockTimeout:      cfg.LockTimeout,
		statementTimeout: cfg.StatementTimeout,
		retries:          cfg.TxRetries,
		log:              log,
	}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// fn puede ejecutarse más de una vez; no debe tener efectos fuera de la base de datos.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	var err error
	for attempt := 0; attempt <= r.retries; attempt++ {
		if attempt > 0 {
			r.log.Warn().Err(err).Int("attempt", attempt).Msg("reintentando transacción de inventario")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt*20) * time.Millisecond):
			}
		}
		err = r.runOnce(ctx, fn)
		if isLockTimeout(err) {
			r.log.Error().Err(err).Dur("lock_timeout", r.lockTimeout).Msg("espera de bloqueo agotada")
		}
		if err == nil || !isRetryable(err) {
			return err
		}
	}
	return err
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := setLocalTimeouts(ctx, tx, r.lockTimeout, r.statementTimeout); err != nil {
		return err
	}

	repos := inventory.TxRepos{
		Products:  NewProductRepository(tx),
		Orders:    NewOrderRepository(tx),
		Movements: NewStockMovementRepository(tx),
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// setLocalTimeouts equivale a SET LOCAL: los valores se descartan al terminar la transacción.
func setLocalTimeouts(ctx context.Context, tx pgx.Tx, lock, statement time.Duration) error {
	if lock > 0 {
		if _, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`, fmt.Sprintf("%dms", lock.Milliseconds())); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}
	if statement > 0 {
		if _, err := tx.Exec(ctx, `SELECT set_config('statement_timeout', $1, true)`, fmt.Sprintf("%dms", statement.Milliseconds())); err != nil {
			return fmt.Errorf("set statement_timeout: %w", err)
		}
	}
	return nil
}
