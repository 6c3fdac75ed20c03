package platform

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe/pkg/adapters/fs"
	"github.com/aretw0/scribe/pkg/adapters/memory"
	"github.com/aretw0/scribe/pkg/codec"
	"github.com/aretw0/scribe/pkg/core"
)

func TestNew_FS(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), DataDirName)

	store, err := New(ctx, dir, WithoutDelay())
	require.NoError(t, err)

	note, err := store.AddNote(ctx, core.NoteFormData{Title: "t", Content: "c"})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, core.DefaultKey+fs.FileExt))
	require.NoError(t, err)
	assert.Contains(t, string(raw), note.ID)

	// A second store on the same directory sees the note.
	again, err := New(ctx, dir, WithoutDelay())
	require.NoError(t, err)
	_, ok := again.Get(note.ID)
	assert.True(t, ok)
}

func TestNew_ReadOnly(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, filepath.Join(t.TempDir(), "missing"), WithReadOnly(true))
	assert.Error(t, err, "read-only storage must not create the directory")

	dir := t.TempDir()
	store, err := New(ctx, dir, WithReadOnly(true), WithoutDelay())
	require.NoError(t, err)

	_, err = store.AddNote(ctx, core.NoteFormData{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, core.ErrReadOnly)
}

func TestNew_Memory(t *testing.T) {
	store, err := New(context.Background(), "", WithAdapter("memory"))
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, "memory", store.State().(core.StoreState).StorageType)
}

func TestNew_UnknownAdapter(t *testing.T) {
	_, err := New(context.Background(), "", WithAdapter("floppy"))
	assert.Error(t, err)
}

func TestNew_Options(t *testing.T) {
	ctx := context.Background()
	origin := memory.NewOrigin()
	fixed := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	store, err := New(ctx, "",
		WithStorage(origin.Open()),
		WithKey("myNotes"),
		WithoutDelay(),
		WithIDGenerator(func() string { return "fixed-id" }),
		WithClock(func() time.Time { return fixed }),
		WithCodec(codec.NewYAML()),
		WithEventBuffer(1),
	)
	require.NoError(t, err)
	assert.Equal(t, "myNotes", store.Key())

	note, err := store.AddNote(ctx, core.NoteFormData{Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", note.ID)
	assert.Equal(t, fixed, note.CreatedAt)

	raw, err := origin.Open().Get(ctx, "myNotes")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "id: fixed-id")
}

func TestStoreConfig_Defaults(t *testing.T) {
	cfg := storeConfig(applyOptions(nil))
	assert.Equal(t, core.DefaultDelays(), cfg.Delays)
	assert.IsType(t, &codec.JSON{}, cfg.Codec)
	assert.Empty(t, cfg.Key)
}

func TestInit_Redis_BadURL(t *testing.T) {
	_, err := Init(context.Background(), "://nope", WithAdapter("redis"))
	assert.Error(t, err)
}
