// Package scribe is the Composition Root of a local-first notes store.
//
// It connects the notes state container (pkg/core) with a storage adapter
// (filesystem, in-memory or Redis) using the Hexagonal Architecture pattern.
//
// The store keeps the notes in memory and mirrors the whole collection, as a
// JSON array, to a single key ("savedNotes") of the storage after every change.
// Operations raise a busy flag for an artificial delay so interfaces can show
// progress; tests disable it with WithoutDelay.
//
// Usage:
//
//	store, err := scribe.New(ctx, "./.scribe",
//		scribe.WithLogger(logger),
//	)
//
//	note, err := store.AddNote(ctx, scribe.NoteFormData{Title: "A", Content: "first note body"})
//	_, err = store.UpdateNote(ctx, note.ID, scribe.NoteFormData{Title: "A2", Content: "first note body"})
//	_, err = store.DeleteNote(ctx, note.ID)
package scribe
