package screenshots

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Format(t *testing.T) {
	takenAt := time.UnixMilli(1717315200000).UTC()
	key := Key("c1", "e1", "clock_in", takenAt)
	assert.Equal(t, "c1/e1/clock_in_1717315200000.png", key)
}

func TestKey_UniquePerEvent(t *testing.T) {
	at := time.Now()
	in := Key("c1", "e1", "clock_in", at)
	out := Key("c1", "e1", "clock_out", at)
	assert.NotEqual(t, in, out)
}

func TestLocalStore_SaveAndURL(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	ctx := context.Background()
	key := Key("c1", "e1", "clock_in", time.UnixMilli(1000))
	require.NoError(t, store.Save(ctx, key, []byte{0x89, 0x50, 0x4e, 0x47}))

	data, err := os.ReadFile(filepath.Join(store.Dir(), "c1", "e1", "clock_in_1000.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, data)

	url, err := store.URL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "/screenshots/c1/e1/clock_in_1000.png", url)
}

func TestLocalStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "shots")
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	fi, err := os.Stat(store.Dir())
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}
