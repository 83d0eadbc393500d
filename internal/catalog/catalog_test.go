package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestAddAssignsIDAndTimestamp(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	stored, err := c.Add(ctx, Entry{
		Path:    "input.dat",
		Records: 1000,
		Bytes:   100000,
		Mode:    "random",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.WithinDuration(t, time.Now(), stored.CreatedAt, time.Minute)
}

func TestAddListRoundTrip(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()
	seed := int64(42)

	stored, err := c.Add(ctx, Entry{
		Path:    "sorted.dat",
		Records: 5,
		Bytes:   500,
		Mode:    "ascending",
		Seed:    &seed,
	})
	require.NoError(t, err)

	entries, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, "sorted.dat", got.Path)
	assert.Equal(t, int64(5), got.Records)
	assert.Equal(t, int64(500), got.Bytes)
	assert.Equal(t, "ascending", got.Mode)
	require.NotNil(t, got.Seed)
	assert.Equal(t, seed, *got.Seed)
	assert.True(t, got.CreatedAt.Equal(stored.CreatedAt))
}

func TestListNewestFirst(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := c.Add(ctx, Entry{
			Path:      "fixture.dat",
			Records:   int64(i),
			Bytes:     int64(i * 100),
			Mode:      "random",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	entries, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, int64(2), entries[0].Records)
	assert.Equal(t, int64(0), entries[2].Records)
}

func TestNilSeedSurvivesRoundTrip(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	_, err := c.Add(ctx, Entry{Path: "a.dat", Mode: "random"})
	require.NoError(t, err)

	entries, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Seed, "entropy-seeded fixtures have no seed")
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	c1, err := Open(path)
	require.NoError(t, err)
	_, err = c1.Add(context.Background(), Entry{Path: "a.dat", Mode: "random"})
	require.NoError(t, err)
	require.NoError(t, c1.Close())

	c2, err := Open(path)
	require.NoError(t, err)
	defer c2.Close()

	entries, err := c2.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "reopening must not lose entries")
}

func TestOpenBadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "catalog.db"))
	require.Error(t, err)
}
