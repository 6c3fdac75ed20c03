package codec

import (
	"errors"
	"time"

	"github.com/aretw0/scribe/pkg/core"
)

// buildNote checks the fields shared by every format and assembles the note.
// An updatedAt earlier than createdAt is raised to createdAt.
func buildNote(id, title, content *string, created, updated time.Time) (core.Note, error) {
	switch {
	case id == nil || *id == "":
		return core.Note{}, errors.New("missing id")
	case title == nil:
		return core.Note{}, errors.New("missing title")
	case content == nil:
		return core.Note{}, errors.New("missing content")
	}

	if updated.Before(created) {
		updated = created
	}

	return core.Note{
		ID:        *id,
		Title:     *title,
		Content:   *content,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}
