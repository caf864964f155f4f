package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/govmap"
	"github.com/fwojciec/govmap/mock"
)

func TestScansCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists stored scans", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		deps := &Dependencies{
			Ctx:    context.Background(),
			Stdout: &out,
			Scans: &mock.ScanService{
				FindScansFn: func(ctx context.Context, filter govmap.ScanFilter) ([]*govmap.Scan, error) {
					assert.Equal(t, 20, filter.Limit)
					return []*govmap.Scan{{
						ID:        "scan-123",
						CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
						Metadata:  govmap.ScanMetadata{TotalPages: 42, SectionsCovered: 3},
					}}, nil
				},
			},
		}

		cmd := &ScansCmd{Limit: 20}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, out.String(), "scan-123")
		assert.Contains(t, out.String(), "42 pages, 3 sections")
	})

	t.Run("explains when nothing is stored", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		deps := &Dependencies{
			Ctx:    context.Background(),
			Stdout: &out,
			Scans: &mock.ScanService{
				FindScansFn: func(ctx context.Context, filter govmap.ScanFilter) ([]*govmap.Scan, error) {
					return nil, nil
				},
			},
		}

		require.NoError(t, (&ScansCmd{Limit: 20}).Run(deps))
		assert.Contains(t, out.String(), "No scans stored")
	})
}
