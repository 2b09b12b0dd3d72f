// Package store persists normalized bylaw records keyed by municipality id.
//
// Writes are compare-and-swap on updated_at: an update names the updated_at
// it was validated against and fails with ErrConflict when another writer got
// there first.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reoring/bylawkit/bylaw"
)

var (
	ErrNotFound = errors.New("store: record not found")
	ErrExists   = errors.New("store: record already exists")
	ErrConflict = errors.New("store: concurrent modification")
)

// Store is the persistence boundary for bylaw records.
type Store interface {
	Get(ctx context.Context, municipalityID string) (bylaw.Record, error)
	// Create inserts rec. It fails with ErrExists when a record with the same
	// municipality id is already stored.
	Create(ctx context.Context, rec bylaw.Record) error
	// Update replaces the stored record when its updated_at still equals
	// prev. A missing record yields ErrNotFound, a moved one ErrConflict.
	Update(ctx context.Context, rec bylaw.Record, prev time.Time) error
	// List returns the stored municipality ids in ascending order.
	List(ctx context.Context) ([]string, error)
	Close() error
}

// Drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Open returns the Store for driver. dsn is ignored by the memory driver.
func Open(driver, dsn string) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return OpenSQLite(dsn)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}
}
