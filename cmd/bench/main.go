package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/pkg/adapters/fs"
	"github.com/aretw0/scribe/pkg/codec"
	"github.com/aretw0/scribe/pkg/core"
)

// Every mutation rewrites the whole collection, so the cost of one operation
// grows with the number of stored notes. This measures that growth.
func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	ops := flag.Int("ops", 50, "Number of updates to time")
	keep := flag.Bool("keep", false, "Keep the benchmark directory after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "scribe_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	// Seed the key directly: going through the store would rewrite it count times.
	fmt.Printf("Generating %d notes in %s...\n", *count, benchDir)
	startGen := time.Now()
	notes := make([]core.Note, 0, *count)
	now := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < *count; i++ {
		notes = append(notes, core.Note{
			ID:        fmt.Sprintf("bench%03d", i),
			Title:     fmt.Sprintf("Note %d", i),
			Content:   "This is a benchmark note.",
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	data, err := codec.NewJSON().Encode(notes)
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(filepath.Join(benchDir, core.DefaultKey+fs.FileExt), data, 0644); err != nil {
		panic(err)
	}
	fmt.Printf("Generation took: %v (%d bytes)\n", time.Since(startGen), len(data))

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.TODO()

	fmt.Println("Loading store...")
	startLoad := time.Now()
	store, err := scribe.New(ctx, benchDir,
		scribe.WithLogger(logger),
		scribe.WithoutDelay(),
		scribe.WithDevSafety(false),
	)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Load took: %v (Items: %d)\n", time.Since(startLoad), store.Len())

	fmt.Printf("Running %d updates...\n", *ops)
	startOps := time.Now()
	for i := 0; i < *ops; i++ {
		id := notes[i%len(notes)].ID
		if _, err := store.UpdateNote(ctx, id, core.NoteFormData{Title: "Updated", Content: "Updated content"}); err != nil {
			panic(err)
		}
	}
	elapsed := time.Since(startOps)
	fmt.Printf("Updates took: %v (%v per op)\n", elapsed, elapsed/time.Duration(max(*ops, 1)))
}
