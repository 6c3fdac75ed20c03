package codec

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/scribe/pkg/core"
)

// YAML encodes the collection as a YAML sequence. It is used for exports.
type YAML struct{}

// NewYAML creates a new YAML codec.
func NewYAML() *YAML {
	return &YAML{}
}

type yamlNote struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Content   string `yaml:"content"`
	CreatedAt string `yaml:"createdAt"`
	UpdatedAt string `yaml:"updatedAt"`
}

// Encode serializes notes as a YAML sequence with RFC 3339 timestamps.
func (c *YAML) Encode(notes []core.Note) ([]byte, error) {
	payload := make([]yamlNote, 0, len(notes))
	for _, n := range notes {
		payload = append(payload, yamlNote{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: FormatTime(n.CreatedAt),
			UpdatedAt: FormatTime(n.UpdatedAt),
		})
	}

	out, err := yaml.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notes: %w", err)
	}
	return out, nil
}

// Decode parses a YAML sequence of note records. Records that fail validation
// are skipped and reported in the second return value; an empty document
// decodes to no notes.
func (c *YAML) Decode(data []byte) ([]core.Note, []error, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", core.ErrMalformed, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil, nil
	}

	seq := root.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, nil, fmt.Errorf("%w: value is not a sequence", core.ErrMalformed)
	}

	notes := make([]core.Note, 0, len(seq.Content))
	var skipped []error
	for i, item := range seq.Content {
		n, err := decodeYAMLRecord(item)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		notes = append(notes, n)
	}
	return notes, skipped, nil
}

func decodeYAMLRecord(node *yaml.Node) (core.Note, error) {
	if node.Kind != yaml.MappingNode {
		return core.Note{}, errors.New("record is not a mapping")
	}

	var rec struct {
		ID        *string `yaml:"id"`
		Title     *string `yaml:"title"`
		Content   *string `yaml:"content"`
		CreatedAt *string `yaml:"createdAt"`
		UpdatedAt *string `yaml:"updatedAt"`
	}
	if err := node.Decode(&rec); err != nil {
		return core.Note{}, err
	}
	if rec.CreatedAt == nil {
		return core.Note{}, errors.New("createdAt: missing timestamp")
	}
	if rec.UpdatedAt == nil {
		return core.Note{}, errors.New("updatedAt: missing timestamp")
	}

	created, err := ParseTime(*rec.CreatedAt)
	if err != nil {
		return core.Note{}, fmt.Errorf("createdAt: %w", err)
	}
	updated, err := ParseTime(*rec.UpdatedAt)
	if err != nil {
		return core.Note{}, fmt.Errorf("updatedAt: %w", err)
	}

	return buildNote(rec.ID, rec.Title, rec.Content, created, updated)
}
