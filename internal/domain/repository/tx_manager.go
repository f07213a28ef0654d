package repository

import "context"

// TxManager runs fn inside a database transaction. Repositories called with
// the context passed to fn take part in the transaction; an error from fn
// rolls it back.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
