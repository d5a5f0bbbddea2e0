package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"useradmin/internal/useradmin/ports/repositories"
	"useradmin/pkg/logger"
)

const (
	errBeginTx    = "failed to begin transaction"
	errCommitTx   = "failed to commit transaction"
	logRollbackTx = "failed to rollback transaction"
)

// TxBeginner открывает транзакции.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// runInTx выполняет fn в транзакции: commit при успехе, rollback при ошибке или панике.
func runInTx(ctx context.Context, db TxBeginner, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errBeginTx, err)
	}

	committing := false
	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx)
			panic(p)
		}
		if err != nil && !committing {
			rollback(ctx, tx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	committing = true
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCommitTx, err)
	}
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.Log(ctx).Warn(ctx, logRollbackTx, zap.Error(err))
	}
}

// Transactor реализует repositories.Transactor поверх пула pgx.
type Transactor struct {
	db TxBeginner
}

// NewTransactor создает Transactor.
func NewTransactor(db TxBeginner) repositories.Transactor {
	return &Transactor{db: db}
}

// WithinTx выполняет fn с репозиторием пользователей, привязанным к транзакции.
// Чтения по ID внутри транзакции блокируют строку (FOR UPDATE).
func (t *Transactor) WithinTx(ctx context.Context, fn repositories.TxFunc) error {
	return runInTx(ctx, t.db, func(tx pgx.Tx) error {
		return fn(ctx, newTxUserRepository(tx))
	})
}
