package codec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe/pkg/codec"
	"github.com/aretw0/scribe/pkg/core"
)

var (
	created = time.Date(2024, 1, 15, 9, 30, 0, 123_000_000, time.UTC)
	updated = time.Date(2024, 1, 16, 18, 5, 42, 7_000_000, time.UTC)
)

func sampleNotes() []core.Note {
	return []core.Note{
		{ID: "k3j9x0ab", Title: "Groceries", Content: "milk & <eggs>", CreatedAt: created, UpdatedAt: created},
		{ID: "p0q1r2s3", Title: "Ideas", Content: "line one\nline two", CreatedAt: created, UpdatedAt: updated},
	}
}

func TestJSON_Encode(t *testing.T) {
	c := codec.NewJSON()

	t.Run("Wire Format", func(t *testing.T) {
		out, err := c.Encode(sampleNotes()[:1])
		require.NoError(t, err)
		assert.Equal(t,
			`[{"id":"k3j9x0ab","title":"Groceries","content":"milk & <eggs>","createdAt":"2024-01-15T09:30:00.123Z","updatedAt":"2024-01-15T09:30:00.123Z"}]`,
			string(out))
	})

	t.Run("Empty Collection", func(t *testing.T) {
		out, err := c.Encode(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(out))
	})

	t.Run("Converts To UTC", func(t *testing.T) {
		loc := time.FixedZone("BRT", -3*60*60)
		n := core.Note{ID: "a", Title: "t", Content: "c", CreatedAt: created.In(loc), UpdatedAt: created.In(loc)}
		out, err := c.Encode([]core.Note{n})
		require.NoError(t, err)
		assert.Contains(t, string(out), `"createdAt":"2024-01-15T09:30:00.123Z"`)
	})
}

func TestJSON_RoundTrip(t *testing.T) {
	c := codec.NewJSON()
	want := sampleNotes()

	out, err := c.Encode(want)
	require.NoError(t, err)

	got, skipped, err := c.Decode(out)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, want, got)

	// Re-encoding is byte-for-byte stable.
	again, err := c.Encode(got)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestJSON_Decode(t *testing.T) {
	c := codec.NewJSON()

	tests := []struct {
		name      string
		input     string
		wantNotes int
		wantSkip  int
		wantErr   bool
	}{
		{name: "Empty", input: "", wantNotes: 0},
		{name: "Null", input: "null", wantNotes: 0},
		{name: "Empty Array", input: "[]", wantNotes: 0},
		{name: "Garbage", input: "not json", wantErr: true},
		{name: "Object", input: `{"id":"a"}`, wantErr: true},
		{name: "Truncated", input: `[{"id":"a"`, wantErr: true},
		{
			name:      "Epoch Milliseconds",
			input:     `[{"id":"a","title":"t","content":"c","createdAt":1705311000123,"updatedAt":1705311000123}]`,
			wantNotes: 1,
		},
		{
			name:      "RFC3339 Without Millis",
			input:     `[{"id":"a","title":"t","content":"c","createdAt":"2024-01-15T09:30:00Z","updatedAt":"2024-01-15T06:30:00-03:00"}]`,
			wantNotes: 1,
		},
		{
			name: "Skips Invalid Records",
			input: `[1, "x", {"title":"no id","content":"c","createdAt":"2024-01-15T09:30:00Z","updatedAt":"2024-01-15T09:30:00Z"},` +
				`{"id":"a","title":"t","content":"c","createdAt":"yesterday","updatedAt":"2024-01-15T09:30:00Z"},` +
				`{"id":"b","title":"t","createdAt":"2024-01-15T09:30:00Z","updatedAt":"2024-01-15T09:30:00Z"},` +
				`{"id":"c","title":"t","content":"c","createdAt":"2024-01-15T09:30:00Z","updatedAt":"2024-01-15T09:30:00Z"}]`,
			wantNotes: 1,
			wantSkip:  5,
		},
		{
			name:      "Ignores Unknown Fields",
			input:     `[{"id":"a","title":"t","content":"c","createdAt":"2024-01-15T09:30:00Z","updatedAt":"2024-01-15T09:30:00Z","pinned":true}]`,
			wantNotes: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, skipped, err := c.Decode([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Len(t, notes, tt.wantNotes)
			assert.Len(t, skipped, tt.wantSkip)
		})
	}
}

func TestJSON_DecodeTimestamps(t *testing.T) {
	c := codec.NewJSON()

	notes, _, err := c.Decode([]byte(`[{"id":"a","title":"t","content":"c","createdAt":1705311000123,"updatedAt":"2024-01-15T06:30:00.123456-03:00"}]`))
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 30, 0, 123_000_000, time.UTC), notes[0].CreatedAt)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 30, 0, 123_000_000, time.UTC), notes[0].UpdatedAt)

	// updatedAt before createdAt is raised to createdAt.
	notes, _, err = c.Decode([]byte(`[{"id":"a","title":"t","content":"c","createdAt":"2024-01-15T09:30:00Z","updatedAt":"2023-01-01T00:00:00Z"}]`))
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, notes[0].CreatedAt, notes[0].UpdatedAt)
}

func TestParseTime(t *testing.T) {
	got, err := codec.ParseTime("2024-01-15T09:30:00.123999Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15T09:30:00.123Z", codec.FormatTime(got))

	_, err = codec.ParseTime("Jan 15 2024")
	assert.Error(t, err)
}
