package codec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/aretw0/scribe/pkg/core"
)

// JSON is the canonical core.Codec.
type JSON struct{}

// NewJSON creates a new JSON codec.
func NewJSON() *JSON {
	return &JSON{}
}

type jsonNote struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Encode serializes notes as a compact JSON array, without HTML escaping.
func (c *JSON) Encode(notes []core.Note) ([]byte, error) {
	payload := make([]jsonNote, 0, len(notes))
	for _, n := range notes {
		payload = append(payload, jsonNote{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: FormatTime(n.CreatedAt),
			UpdatedAt: FormatTime(n.UpdatedAt),
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("failed to encode notes: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode parses a JSON array of note records.
// An empty or null value decodes to an empty collection.
func (c *JSON) Decode(data []byte) ([]core.Note, []error, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil, nil
	}
	if data[0] != '[' {
		return nil, nil, fmt.Errorf("%w: value is not an array", core.ErrMalformed)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", core.ErrMalformed, err)
	}

	notes := make([]core.Note, 0, len(records))
	var skipped []error
	for i, raw := range records {
		n, err := decodeJSONRecord(raw)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		notes = append(notes, n)
	}
	return notes, skipped, nil
}

func decodeJSONRecord(raw json.RawMessage) (core.Note, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return core.Note{}, errors.New("record is not an object")
	}

	var rec struct {
		ID        *string         `json:"id"`
		Title     *string         `json:"title"`
		Content   *string         `json:"content"`
		CreatedAt json.RawMessage `json:"createdAt"`
		UpdatedAt json.RawMessage `json:"updatedAt"`
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return core.Note{}, err
	}

	created, err := parseRawTime(rec.CreatedAt)
	if err != nil {
		return core.Note{}, fmt.Errorf("createdAt: %w", err)
	}
	updated, err := parseRawTime(rec.UpdatedAt)
	if err != nil {
		return core.Note{}, fmt.Errorf("updatedAt: %w", err)
	}

	return buildNote(rec.ID, rec.Title, rec.Content, created, updated)
}
