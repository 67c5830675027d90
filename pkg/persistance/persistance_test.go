package persistance

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matst80/center-finder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadSnapshot(t *testing.T) {
	price := 25.0
	snapshot := &types.Snapshot{
		Programs: []*types.Program{{
			Slug:         "yoga",
			Title:        "Yoga",
			PriceFrom:    &price,
			ProgramAreas: types.Tags{{Slug: "wellness", Name: "Wellness"}},
			Centers:      []types.Link{{Slug: "north", Title: "North"}},
		}},
		Centers:     []*types.Center{{Slug: "north", Title: "North", Amenities: types.Tags{{Slug: "pool", Name: "Pool"}}}},
		Memberships: []*types.Membership{{Slug: "family", Title: "Family"}},
		Audiences:   types.Tags{{Slug: "youth", Name: "Youth"}},
		LoadedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	p := NewPersistance(filepath.Join(t.TempDir(), "snapshot.dbz"))
	require.NoError(t, p.SaveSnapshot(snapshot))

	_, err := os.Stat(p.File + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := p.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "yoga", loaded.Programs[0].Slug)
	assert.Equal(t, 25.0, *loaded.Programs[0].PriceFrom)
	assert.Equal(t, snapshot.Centers[0].Amenities, loaded.Centers[0].Amenities)
	assert.True(t, snapshot.LoadedAt.Equal(loaded.LoadedAt))
}

func TestLoadSnapshot_Missing(t *testing.T) {
	p := NewPersistance(filepath.Join(t.TempDir(), "missing.dbz"))
	_, err := p.LoadSnapshot()
	assert.True(t, os.IsNotExist(err))
}

func TestLoadSnapshot_Corrupt(t *testing.T) {
	file := filepath.Join(t.TempDir(), "corrupt.dbz")
	require.NoError(t, os.WriteFile(file, []byte("not gzip"), 0o644))
	_, err := NewPersistance(file).LoadSnapshot()
	assert.Error(t, err)
}

func TestNewPersistance_Default(t *testing.T) {
	assert.Equal(t, DefaultFile, NewPersistance("").File)
}
