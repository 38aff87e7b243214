package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// UndoFn compensates a side effect performed outside the database. It
// receives the commit error as cause and returns a non-nil error (typically
// domain.PartialFailure) only when the compensation itself failed.
type UndoFn func(cause error) error

// TransactionManager handles database transactions
type TransactionManager interface {
	// ExecTx executes a function within a transaction
	ExecTx(ctx context.Context, fn TxFn) error

	// ExecPaired executes fn within a transaction, pairing it with a
	// non-transactional side effect fn performs (a filesystem mutation).
	// If fn fails the transaction is rolled back; fn is expected to have
	// undone its own side effect before returning. If the commit itself
	// fails after fn succeeded, undo is invoked to revert the side effect;
	// an undo failure escalates instead of being swallowed.
	ExecPaired(ctx context.Context, fn TxFn, undo UndoFn) error
}
