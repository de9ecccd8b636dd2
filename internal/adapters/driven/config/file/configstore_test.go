package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	want := Config{
		APIBaseURL:    "http://localhost:9000",
		WebhookURL:    "http://localhost:9001/hook",
		CallbackPort:  9008,
		BatchSize:     5,
		BatchInterval: "250ms",
		DocExtension:  ".md",
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_PartialFileFilledFromDefaults(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path(), []byte("batch_size = 3\n"), 0o600))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.BatchSize)
	assert.Equal(t, Defaults().APIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, Defaults().CallbackPort, cfg.CallbackPort)
}

func TestLoad_MalformedFile(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path(), []byte("not toml ==="), 0o600))

	_, err = store.Load()
	require.Error(t, err)
}

func TestBatchPause(t *testing.T) {
	assert.Equal(t, time.Second, Config{}.BatchPause())
	assert.Equal(t, time.Second, Config{BatchInterval: "garbage"}.BatchPause())
	assert.Equal(t, 250*time.Millisecond, Config{BatchInterval: "250ms"}.BatchPause())
}

func TestPathAndDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	assert.Equal(t, dir, store.Dir())
}
