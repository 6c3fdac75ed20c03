package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/scribe/pkg/core"
)

// FileExt is the extension of key files.
const FileExt = ".json"

// Storage implements core.Storage with one file per key inside a directory.
type Storage struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watchers      int
	lastWrite     *time.Time
	lastWriteSize int
}

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path         string
	MustExist    bool // Fail Initialize instead of creating Path.
	ReadOnly     bool // Set returns core.ErrReadOnly; Initialize creates nothing.
	Logger       *slog.Logger
	ErrorHandler func(error) // Receives watcher runtime errors.
	Debounce     time.Duration
}

// NewStorage creates a new filesystem-backed storage.
func NewStorage(config Config) *Storage {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	return &Storage{
		Path:   config.Path,
		config: config,
	}
}

// Initialize ensures the storage directory exists.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("storage path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat storage path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("storage path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return nil
}

// Get reads the file holding key.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	filename, err := s.filename(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return data, nil
}

// Set atomically replaces the file holding key.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	filename, err := s.filename(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.config.Logger.Debug("writing key to disk", "key", key, "path", filename, "bytes", len(value))
	if err := writeFileAtomic(filename, value, 0644); err != nil {
		return err
	}

	now := time.Now()
	s.mu.Lock()
	s.lastWrite = &now
	s.lastWriteSize = len(value)
	s.mu.Unlock()
	return nil
}

func (s *Storage) filename(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.Path, key+FileExt), nil
}

// keyFromPath maps a file inside the storage directory back to its key.
func (s *Storage) keyFromPath(path string) (string, bool) {
	if filepath.Dir(path) != filepath.Clean(s.Path) {
		return "", false
	}
	base := filepath.Base(path)
	if strings.HasPrefix(base, TempFilePrefix) || filepath.Ext(base) != FileExt {
		return "", false
	}
	return strings.TrimSuffix(base, FileExt), true
}

func validateKey(key string) error {
	switch {
	case key == "":
		return errors.New("key cannot be empty")
	case key == "." || key == "..":
		return fmt.Errorf("invalid key: %q", key)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("key cannot contain path separators: %q", key)
	case strings.HasPrefix(key, TempFilePrefix):
		return fmt.Errorf("key uses reserved prefix: %q", key)
	}
	return nil
}

var _ core.Storage = (*Storage)(nil)
var _ core.Watchable = (*Storage)(nil)
