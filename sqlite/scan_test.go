package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/govmap"
	"github.com/fwojciec/govmap/sqlite"
)

// testScan builds a two-section scan with a mix of page shapes.
func testScan() *govmap.Scan {
	benefits := govmap.NewSection()
	benefits.Record(&govmap.Page{
		Path:          "/browse/benefits",
		ContentType:   "browse_page",
		LastUpdated:   "2025-05-01T10:00:00Z",
		Status:        govmap.StatusActive,
		DepthLevel:    0,
		PublishingOrg: "Department for Work and Pensions",
		RelatedLinks:  []string{"/child-benefit", "/pension-credit"},
		ContentHash:   "a1b2c3",
	})
	benefits.Record(&govmap.Page{
		Path:        "/child-benefit",
		ContentType: "guide",
		Status:      govmap.StatusPlaceholder,
		DepthLevel:  1,
	})

	tax := govmap.NewSection()
	tax.Record(&govmap.Page{
		Path:        "/browse/tax",
		ContentType: "browse_page",
		Status:      govmap.StatusActive,
		DepthLevel:  0,
	})

	return &govmap.Scan{
		Metadata: govmap.ScanMetadata{
			StartedAt:       time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
			DepthLimit:      5,
			TotalPages:      3,
			SectionsCovered: 2,
			RateLimitPauses: 1,
		},
		Sections: map[string]*govmap.Section{
			"/browse/benefits": benefits,
			"/browse/tax":      tax,
		},
	}
}

func TestScanService_CreateScan(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and creation time", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewScanService(mustOpenDB(t))
		scan := testScan()

		err := s.CreateScan(context.Background(), scan)
		require.NoError(t, err)
		assert.NotEmpty(t, scan.ID)
		assert.False(t, scan.CreatedAt.IsZero())
	})

	t.Run("rejects scan without sections", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewScanService(mustOpenDB(t))

		err := s.CreateScan(context.Background(), &govmap.Scan{})
		require.Error(t, err)
		assert.Equal(t, govmap.EINVALID, govmap.ErrorCode(err))
	})
}

func TestScanService_FindScanByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips sections and pages", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s := sqlite.NewScanService(mustOpenDB(t))
		scan := testScan()
		require.NoError(t, s.CreateScan(ctx, scan))

		got, err := s.FindScanByID(ctx, scan.ID)
		require.NoError(t, err)

		assert.Equal(t, scan.ID, got.ID)
		assert.Equal(t, 5, got.Metadata.DepthLimit)
		assert.Equal(t, 3, got.Metadata.TotalPages)
		assert.Equal(t, 1, got.Metadata.RateLimitPauses)
		assert.True(t, got.Metadata.StartedAt.Equal(scan.Metadata.StartedAt))
		require.Len(t, got.Sections, 2)

		benefits := got.Sections["/browse/benefits"]
		require.NotNil(t, benefits)
		assert.Equal(t, 2, benefits.TotalPages)
		assert.Equal(t, 1, benefits.ActivePages)
		assert.Equal(t, 1, benefits.PlaceholderPages)
		assert.Equal(t, map[string]int{"0": 1, "1": 1}, benefits.DepthDistribution)
		require.Len(t, benefits.Pages, 2)

		entry := benefits.Pages[0]
		assert.Equal(t, "/browse/benefits", entry.Path)
		assert.Equal(t, govmap.StatusActive, entry.Status)
		assert.Equal(t, "Department for Work and Pensions", entry.PublishingOrg)
		assert.Equal(t, []string{"/child-benefit", "/pension-credit"}, entry.RelatedLinks)
		assert.Equal(t, "a1b2c3", entry.ContentHash)

		assert.Equal(t, govmap.StatusPlaceholder, benefits.Pages[1].Status)
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewScanService(mustOpenDB(t))

		_, err := s.FindScanByID(context.Background(), "nope")
		require.Error(t, err)
		assert.Equal(t, govmap.ENOTFOUND, govmap.ErrorCode(err))
	})
}

func TestScanService_FindScans(t *testing.T) {
	t.Parallel()

	t.Run("lists summaries without sections", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s := sqlite.NewScanService(mustOpenDB(t))

		first := testScan()
		require.NoError(t, s.CreateScan(ctx, first))
		second := testScan()
		require.NoError(t, s.CreateScan(ctx, second))

		scans, err := s.FindScans(ctx, govmap.ScanFilter{})
		require.NoError(t, err)
		require.Len(t, scans, 2)
		for _, scan := range scans {
			assert.Empty(t, scan.Sections, "summaries do not load sections")
			assert.Equal(t, 3, scan.Metadata.TotalPages)
		}
	})

	t.Run("filters by ID", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s := sqlite.NewScanService(mustOpenDB(t))

		scan := testScan()
		require.NoError(t, s.CreateScan(ctx, scan))
		other := testScan()
		require.NoError(t, s.CreateScan(ctx, other))

		scans, err := s.FindScans(ctx, govmap.ScanFilter{ID: &scan.ID})
		require.NoError(t, err)
		require.Len(t, scans, 1)
		assert.Equal(t, scan.ID, scans[0].ID)
	})

	t.Run("respects limit", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s := sqlite.NewScanService(mustOpenDB(t))

		for i := 0; i < 3; i++ {
			require.NoError(t, s.CreateScan(ctx, testScan()))
		}

		scans, err := s.FindScans(ctx, govmap.ScanFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, scans, 2)
	})
}

func TestScanService_DeleteScan(t *testing.T) {
	t.Parallel()

	t.Run("removes scan and cascades to pages", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := mustOpenDB(t)
		s := sqlite.NewScanService(db)

		scan := testScan()
		require.NoError(t, s.CreateScan(ctx, scan))
		require.NoError(t, s.DeleteScan(ctx, scan.ID))

		_, err := s.FindScanByID(ctx, scan.ID)
		assert.Equal(t, govmap.ENOTFOUND, govmap.ErrorCode(err))

		var pages int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&pages))
		assert.Zero(t, pages, "pages should cascade on delete")
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewScanService(mustOpenDB(t))

		err := s.DeleteScan(context.Background(), "nope")
		assert.Equal(t, govmap.ENOTFOUND, govmap.ErrorCode(err))
	})
}
