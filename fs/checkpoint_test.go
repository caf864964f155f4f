package fs_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/govmap"
	"github.com/fwojciec/govmap/fs"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testState() *govmap.CrawlState {
	section := govmap.NewSection()
	section.Record(&govmap.Page{
		Path:        "/browse/benefits",
		ContentType: "browse_page",
		Status:      govmap.StatusActive,
	})
	return &govmap.CrawlState{
		Metadata: govmap.ScanMetadata{
			StartedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			DepthLimit:      5,
			TotalPages:      1,
			SectionsCovered: 1,
		},
		Sections: map[string]*govmap.Section{"/browse/benefits": section},
		Visited:  []string{"/browse/benefits"},
		Pending:  []govmap.WorkItem{{Path: "/child-benefit", ContentType: "guide", Depth: 1}},
	}
}

func TestCheckpointStore_Save_then_Load_round_trips(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	store := fs.NewCheckpointStore(t.TempDir(),
		fs.WithLogger(discard()),
		fs.WithClock(func() time.Time { return created }),
	)

	name, err := store.Save(context.Background(), testState())
	require.NoError(t, err)
	assert.Equal(t, "checkpoint_20250602_093000", name, "name embeds the timestamp")

	checkpoint, err := store.Load(context.Background(), name)
	require.NoError(t, err)

	assert.True(t, checkpoint.CreatedAt.Equal(created))
	assert.Equal(t, 1, checkpoint.Metadata.PagesProcessed)
	assert.Equal(t, 1, checkpoint.Metadata.SectionsCovered)

	require.NotNil(t, checkpoint.State)
	assert.Equal(t, []string{"/browse/benefits"}, checkpoint.State.Visited)
	require.Len(t, checkpoint.State.Pending, 1)
	assert.Equal(t, "/child-benefit", checkpoint.State.Pending[0].Path)
	assert.Equal(t, 1, checkpoint.State.Pending[0].Depth)

	section := checkpoint.State.Sections["/browse/benefits"]
	require.NotNil(t, section)
	assert.Equal(t, 1, section.TotalPages)
}

func TestCheckpointStore_Load_accepts_name_with_or_without_extension(t *testing.T) {
	t.Parallel()

	store := fs.NewCheckpointStore(t.TempDir(), fs.WithLogger(discard()))

	name, err := store.Save(context.Background(), testState())
	require.NoError(t, err)

	_, err = store.Load(context.Background(), name)
	require.NoError(t, err)
	_, err = store.Load(context.Background(), name+".json")
	require.NoError(t, err)
}

func TestCheckpointStore_Load_missing_returns_not_found(t *testing.T) {
	t.Parallel()

	store := fs.NewCheckpointStore(t.TempDir(), fs.WithLogger(discard()))

	_, err := store.Load(context.Background(), "checkpoint_20250101_000000")
	require.Error(t, err)
	assert.Equal(t, govmap.ENOTFOUND, govmap.ErrorCode(err))
}

func TestCheckpointStore_Load_corrupt_file_returns_invalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := fs.NewCheckpointStore(dir, fs.WithLogger(discard()))

	path := filepath.Join(dir, "checkpoint_20250101_000000.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := store.Load(context.Background(), "checkpoint_20250101_000000")
	require.Error(t, err)
	assert.Equal(t, govmap.EINVALID, govmap.ErrorCode(err))
}

func TestCheckpointStore_ShouldCheckpoint_accumulates_and_resets(t *testing.T) {
	t.Parallel()

	store := fs.NewCheckpointStore(t.TempDir(),
		fs.WithInterval(50),
		fs.WithLogger(discard()),
	)

	for i := 0; i < 49; i++ {
		assert.False(t, store.ShouldCheckpoint(1), "below the interval")
	}
	assert.True(t, store.ShouldCheckpoint(1), "page 50 reaches the interval")
	assert.False(t, store.ShouldCheckpoint(1), "counter resets after firing")
}

func TestCheckpointStore_ShouldCheckpoint_accumulates_batches(t *testing.T) {
	t.Parallel()

	store := fs.NewCheckpointStore(t.TempDir(),
		fs.WithInterval(100),
		fs.WithLogger(discard()),
	)

	assert.False(t, store.ShouldCheckpoint(50))
	assert.False(t, store.ShouldCheckpoint(49), "cumulative 99 stays below 100")
	assert.True(t, store.ShouldCheckpoint(1), "cumulative 100 fires")
	assert.False(t, store.ShouldCheckpoint(99))
}

func TestCheckpointStore_Sweep_removes_only_old_checkpoints(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)

	// Two checkpoints: one two days old, one an hour old, plus a file
	// whose name does not parse.
	for _, name := range []string{
		"checkpoint_20250608_120000.json",
		"checkpoint_20250610_110000.json",
		"checkpoint_garbage.json",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
	}

	store := fs.NewCheckpointStore(dir,
		fs.WithLogger(discard()),
		fs.WithClock(func() time.Time { return now }),
	)

	removed, err := store.Sweep(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"checkpoint_20250610_110000",
		"checkpoint_garbage",
	}, names, "recent and unparsable files survive the sweep")
}

func TestCheckpointStore_Sweep_missing_directory_is_empty(t *testing.T) {
	t.Parallel()

	store := fs.NewCheckpointStore(filepath.Join(t.TempDir(), "nope"), fs.WithLogger(discard()))

	removed, err := store.Sweep(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
