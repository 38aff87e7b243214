package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"lempek/internal/domain"
	"lempek/internal/domain/repositories"
)

// TransactionManager implements the TransactionManager interface
type TransactionManager struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(pool *pgxpool.Pool, logger *slog.Logger) repositories.TransactionManager {
	return &TransactionManager{pool: pool, logger: logger}
}

// ExecTx executes a function within a transaction
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	tx, err := tm.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", domainDB(err))
	}

	// Rollback after commit is a no-op returning ErrTxClosed
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			tm.logger.Error("transaction rollback failed", "error", err)
		}
	}()

	if err := fn(repositories.SetTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", domainDB(err))
	}

	return nil
}

// ExecPaired executes fn within a transaction, where fn also performs one
// side effect the database cannot roll back. The pairing contract:
//
//   - fn fails: the transaction is rolled back; fn has already reverted its
//     own side effect before returning, so both resources are untouched.
//   - commit fails after fn succeeded: undo is invoked with the commit error
//     to revert the side effect. If undo itself fails it returns a
//     domain.PartialFailure naming the orphaned path, and that error is
//     surfaced unchanged - a divergence is never silently downgraded.
func (tm *TransactionManager) ExecPaired(ctx context.Context, fn repositories.TxFn, undo repositories.UndoFn) error {
	tx, err := tm.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", domainDB(err))
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			tm.logger.Error("transaction rollback failed", "error", err)
		}
	}()

	if err := fn(repositories.SetTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		cause := fmt.Errorf("commit transaction: %w", domainDB(err))
		if undo != nil {
			if uerr := undo(cause); uerr != nil {
				return uerr
			}
		}
		return cause
	}

	return nil
}

// domainDB tags a driver error with the domain sentinel so callers can treat
// all transaction/query faults uniformly without importing pgx.
func domainDB(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrDatabase, err)
}
