package core_test

import (
	"context"
	"testing"

	"pgregory.net/rapid"

	"github.com/aretw0/scribe/pkg/adapters/memory"
	"github.com/aretw0/scribe/pkg/core"
)

func formGenerator() *rapid.Generator[core.NoteFormData] {
	return rapid.Custom(func(t *rapid.T) core.NoteFormData {
		return core.NoteFormData{
			Title:   rapid.StringN(1, 100, -1).Draw(t, "title"),
			Content: rapid.StringN(1, 1000, -1).Draw(t, "content"),
		}
	})
}

func TestProperty_AddNote(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		store := newTestStore(t, memory.New())

		forms := rapid.SliceOfN(formGenerator(), 1, 20).Draw(t, "forms")
		ids := make(map[string]struct{})
		for i, d := range forms {
			note, err := store.AddNote(ctx, d)
			if err != nil {
				t.Fatalf("AddNote failed: %v", err)
			}
			if note.ID == "" {
				t.Fatal("empty id")
			}
			if _, dup := ids[note.ID]; dup {
				t.Fatalf("duplicate id %s", note.ID)
			}
			ids[note.ID] = struct{}{}
			if !note.CreatedAt.Equal(note.UpdatedAt) {
				t.Fatalf("createdAt %v != updatedAt %v", note.CreatedAt, note.UpdatedAt)
			}
			if store.Len() != i+1 {
				t.Fatalf("expected %d notes, got %d", i+1, store.Len())
			}
		}
	})
}

func TestProperty_UpdateNote(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		clock := newFixedClock()
		store := newTestStore(t, memory.New(), func(c *core.Config) { c.Clock = clock.Now })

		forms := rapid.SliceOfN(formGenerator(), 1, 10).Draw(t, "forms")
		for _, d := range forms {
			if _, err := store.AddNote(ctx, d); err != nil {
				t.Fatalf("AddNote failed: %v", err)
			}
		}

		notes := store.Notes()
		target := rapid.SampledFrom(notes).Draw(t, "target")
		update := formGenerator().Draw(t, "update")

		found, err := store.UpdateNote(ctx, target.ID, update)
		if err != nil || !found {
			t.Fatalf("UpdateNote: found=%v err=%v", found, err)
		}

		got, _ := store.Get(target.ID)
		if !got.UpdatedAt.After(got.CreatedAt) {
			t.Fatalf("updatedAt %v not after createdAt %v", got.UpdatedAt, got.CreatedAt)
		}
		if got.ID != target.ID || !got.CreatedAt.Equal(target.CreatedAt) {
			t.Fatal("id or createdAt changed")
		}
		if got.Title != update.Title || got.Content != update.Content {
			t.Fatal("fields not replaced")
		}
	})
}

func TestProperty_MissingIDIsNoop(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		store := newTestStore(t, memory.New())

		for _, d := range rapid.SliceOfN(formGenerator(), 0, 5).Draw(t, "forms") {
			if _, err := store.AddNote(ctx, d); err != nil {
				t.Fatalf("AddNote failed: %v", err)
			}
		}
		before := store.Notes()

		// Generated ids are 8 characters long.
		missing := rapid.StringMatching(`[A-Z]{12}`).Draw(t, "missing")
		if found, _ := store.UpdateNote(ctx, missing, formGenerator().Draw(t, "update")); found {
			t.Fatal("update reported found")
		}
		if found, _ := store.DeleteNote(ctx, missing); found {
			t.Fatal("delete reported found")
		}

		after := store.Notes()
		if len(before) != len(after) {
			t.Fatalf("collection changed: %d -> %d", len(before), len(after))
		}
		for i := range before {
			if before[i] != after[i] {
				t.Fatalf("note %d changed", i)
			}
		}
	})
}

func TestProperty_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		origin := memory.NewOrigin()
		store := newTestStore(t, origin.Open())

		for _, d := range rapid.SliceOfN(formGenerator(), 0, 10).Draw(t, "forms") {
			if _, err := store.AddNote(ctx, d); err != nil {
				t.Fatalf("AddNote failed: %v", err)
			}
		}

		reloaded := newTestStore(t, origin.Open())
		want, got := store.Notes(), reloaded.Notes()
		if len(want) != len(got) {
			t.Fatalf("expected %d notes, got %d", len(want), len(got))
		}
		for i := range want {
			if want[i].ID != got[i].ID || want[i].Title != got[i].Title || want[i].Content != got[i].Content {
				t.Fatalf("note %d differs: %+v vs %+v", i, want[i], got[i])
			}
			if !want[i].CreatedAt.Equal(got[i].CreatedAt) || !want[i].UpdatedAt.Equal(got[i].UpdatedAt) {
				t.Fatalf("note %d timestamps differ", i)
			}
		}
	})
}

func TestProperty_DeleteAll(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		store := newTestStore(t, memory.New())

		for _, d := range rapid.SliceOfN(formGenerator(), 1, 10).Draw(t, "forms") {
			if _, err := store.AddNote(ctx, d); err != nil {
				t.Fatalf("AddNote failed: %v", err)
			}
		}
		old := make(map[string]struct{})
		for _, n := range store.Notes() {
			old[n.ID] = struct{}{}
			if _, err := store.DeleteNote(ctx, n.ID); err != nil {
				t.Fatalf("DeleteNote failed: %v", err)
			}
		}
		if store.Len() != 0 {
			t.Fatalf("expected empty collection, got %d", store.Len())
		}

		note, err := store.AddNote(ctx, formGenerator().Draw(t, "again"))
		if err != nil {
			t.Fatalf("AddNote failed: %v", err)
		}
		if _, stale := old[note.ID]; stale {
			t.Fatalf("reused id %s", note.ID)
		}
	})
}
