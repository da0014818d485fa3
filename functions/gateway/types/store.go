package types

import "context"

// Store is the full persistence surface a backend provides.
type Store interface {
	UserStore
	AdminStore
	EventStore
	LedgerStore
	Ping(ctx context.Context) error
	Close() error
}
