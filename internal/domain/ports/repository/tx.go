package repository

import (
	"context"
)

// Tx is an opaque transaction handle. Postgres passes a pgx.Tx through it;
// nil means "run on the pool".
type Tx = any

// NoTX is the explicit "no transaction" handle.
var NoTX Tx = nil

// TransactionManager runs fn inside a transaction, committing on nil error
// and rolling back otherwise.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
