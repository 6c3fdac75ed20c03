package core

import "time"

// Note is the central entity of the domain.
// It is a user-authored title/content pair with creation and last-modified timestamps.
// It is agnostic to storage format.
type Note struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteFormData is the payload accepted by create and update operations.
// It is a projection of Note without the fields owned by the Store.
type NoteFormData struct {
	Title   string
	Content string
}

// FormData returns the editable projection of the note.
func (n Note) FormData() NoteFormData {
	return NoteFormData{Title: n.Title, Content: n.Content}
}

// Edited reports whether the note was updated after creation.
func (n Note) Edited() bool {
	return n.UpdatedAt.After(n.CreatedAt)
}
