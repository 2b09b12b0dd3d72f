package bylaw_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	bylawkit "github.com/reoring/bylawkit"
	"github.com/reoring/bylawkit/bylaw"
)

func TestValidator_ConcurrentUse(t *testing.T) {
	v := bylaw.NewValidator(fixedClock(t0))
	g, ctx := errgroup.WithContext(context.Background())
	raws := make([]map[string]any, 32)
	for i := range raws {
		raws[i] = payload(t, func(m map[string]any) { m["municipality_id"] = fmt.Sprintf("town-%02d", i) })
	}
	results := make([]bylaw.Record, len(raws))
	for i := range raws {
		g.Go(func() error {
			out, err := v.Validate(ctx, raws[i], bylawkit.ModeCreate, nil)
			if err != nil {
				return err
			}
			results[i] = out.Record
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("town-%02d", i), r.MunicipalityID)
	}
}
