package weather

import (
	"context"
	"time"
)

// Store is the read-only view of grouped readings the aggregators borrow.
// Implementations must not create keys on lookup.
type Store interface {
	Get(year int, month time.Month) ([]Reading, bool)
}

// MonthLister is implemented by stores that can enumerate their months.
type MonthLister interface {
	Keys() []MonthKey
}

// Loader abstracts a source of monthly reading files (a local directory,
// a set of remote files). Each call builds a fresh Store.
type Loader interface {
	Name() string
	Load(ctx context.Context) (Store, error)
}
