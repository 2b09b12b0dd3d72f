package store

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/reoring/bylawkit/bylaw"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 123456000, time.UTC)

func sample(id string, at time.Time) bylaw.Record {
	name := "Town of " + id
	size := 850.0
	return bylaw.Record{
		MunicipalityID:         id,
		MunicipalityName:       &name,
		PermittedZones:         []string{"R-1", "R-2"},
		ADUTypesAllowed:        bylaw.ADUTypes{Detached: true, Interior: true},
		PermitType:             bylaw.PermitByRight,
		OwnerOccupancyRequired: bylaw.OwnerOccupancyNone,
		DetachedADUMaxSizeSqft: &size,
		ParkingExemptions:      map[string]bylaw.NumberOrBool{"near_transit": bylaw.Flag(true), "transit_distance_ft": bylaw.Num(1320)},
		CreatedAt:              at,
		UpdatedAt:              at,
	}
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "bylaws.db"))
	require.NoError(t, err)
	mem, err := Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	out := map[string]Store{
		"memory":        NewMemory(),
		"sqlite":        sq,
		"sqlite-memory": mem,
	}
	t.Cleanup(func() {
		for _, s := range out {
			_ = s.Close()
		}
	})
	return out
}

func TestStore_CreateGet(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			rec := sample("springfield", t0)
			require.NoError(t, s.Create(ctx, rec))

			got, err := s.Get(ctx, "springfield")
			require.NoError(t, err)
			if diff := cmp.Diff(rec, got); diff != "" {
				t.Fatalf("record mismatch (-want +got):\n%s", diff)
			}

			err = s.Create(ctx, rec)
			require.ErrorIs(t, err, ErrExists)
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), "nowhere")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_UpdateCompareAndSwap(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Create(ctx, sample("shelby", t0)))

			next := sample("shelby", t0)
			next.UpdatedAt = t0.Add(time.Minute)
			next.PermitType = bylaw.PermitSpecialPermit
			require.NoError(t, s.Update(ctx, next, t0))

			stale := sample("shelby", t0)
			stale.UpdatedAt = t0.Add(2 * time.Minute)
			require.ErrorIs(t, s.Update(ctx, stale, t0), ErrConflict)

			got, err := s.Get(ctx, "shelby")
			require.NoError(t, err)
			assert.Equal(t, bylaw.PermitSpecialPermit, got.PermitType)
			assert.True(t, got.UpdatedAt.Equal(next.UpdatedAt))
			assert.True(t, got.CreatedAt.Equal(t0))

			require.ErrorIs(t, s.Update(ctx, sample("ghost", t0), t0), ErrNotFound)
		})
	}
}

func TestStore_List(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			ids, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, ids)

			for _, id := range []string{"c", "a", "b"} {
				require.NoError(t, s.Create(ctx, sample(id, t0)))
			}
			ids, err = s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b", "c"}, ids)
		})
	}
}

func TestStore_ConcurrentUpdatesOneWins(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Create(ctx, sample("race", t0)))

			const writers = 8
			var won, lost atomic.Int32
			var g errgroup.Group
			for i := 0; i < writers; i++ {
				rec := sample("race", t0)
				rec.UpdatedAt = t0.Add(time.Duration(i+1) * time.Second)
				g.Go(func() error {
					err := s.Update(ctx, rec, t0)
					switch {
					case err == nil:
						won.Add(1)
					case assert.ErrorIs(t, err, ErrConflict):
						lost.Add(1)
					}
					return nil
				})
			}
			require.NoError(t, g.Wait())
			assert.Equal(t, int32(1), won.Load())
			assert.Equal(t, int32(writers-1), lost.Load())
		})
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	rec := sample("copy", t0)
	require.NoError(t, s.Create(ctx, rec))
	rec.PermittedZones[0] = "MUTATED"

	got, err := s.Get(ctx, "copy")
	require.NoError(t, err)
	got.PermittedZones[1] = "ALSO"

	again, err := s.Get(ctx, "copy")
	require.NoError(t, err)
	assert.Equal(t, []string{"R-1", "R-2"}, again.PermittedZones)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("postgres", "")
	require.Error(t, err)
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemory().Get(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
