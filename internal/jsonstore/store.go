// Package jsonstore implements the append-only JSON file that backs one
// journal category. The file always holds a complete JSON array; every
// rewrite goes through a temp file in the same directory followed by an
// atomic rename, so readers observe either the old or the new content.
package jsonstore

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mesh-intelligence/journal/pkg/types"
)

// fileOps holds filesystem functions that can be overridden in tests.
var fileOps = struct {
	rename func(oldpath, newpath string) error
}{
	rename: os.Rename,
}

// Store is the durable container for one category's record sequence.
// Appends are serialized by an in-process mutex and, where supported, an
// advisory lock on a sibling ".lock" file shared with other processes.
type Store struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for diagnostics. The default is
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Store backed by the file at path. No I/O happens until
// Initialize, ReadAll, or Append is called.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the canonical location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Initialize creates the backing file holding an empty array if it does
// not exist. An existing file is never touched, whatever its content.
// Initialize is idempotent and safe to call concurrently.
func (s *Store) Initialize() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &types.WriteError{Path: s.path, Op: "create directory", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := lockFile(s.lockPath())
	if err != nil {
		return &types.WriteError{Path: s.path, Op: "lock", Err: err}
	}
	defer unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &types.WriteError{Path: s.path, Op: "stat", Err: err}
	}

	if err := writeArray(s.path, nil); err != nil {
		return err
	}
	s.logger.Debug("initialized store", "path", s.path)
	return nil
}

// ReadAll returns the full persisted sequence. When the file is missing,
// unreadable, or not a JSON array of objects, ReadAll returns an empty
// slice together with a *types.ReadError; the caller decides whether to
// surface it.
func (s *Store) ReadAll() ([]types.Record, error) {
	records, err := readArray(s.path)
	if err != nil {
		s.logger.Warn("store read failed, treating as empty", "path", s.path, "err", err)
		return []types.Record{}, err
	}
	return records, nil
}

// Append adds rec at the tail of the sequence and atomically rewrites the
// file. Elements already in the file are carried over token for token, so
// values this package would decode differently are never rewritten. A
// missing file is treated as empty. A file that exists but cannot be parsed
// is left untouched and Append fails, so unreadable data is never replaced
// by a shorter sequence. All failures are returned as *types.WriteError.
func (s *Store) Append(rec types.Record) error {
	elem, err := encodeRecord(rec)
	if err != nil {
		return &types.WriteError{Path: s.path, Op: "serialize", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := lockFile(s.lockPath())
	if err != nil {
		return &types.WriteError{Path: s.path, Op: "lock", Err: err}
	}
	defer unlock()

	elems, err := readElements(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return &types.WriteError{Path: s.path, Op: "read current content", Err: err}
		}
		elems = nil
	}

	elems = append(elems, elem)
	if err := writeArray(s.path, elems); err != nil {
		s.logger.Error("store append failed", "path", s.path, "err", err)
		return err
	}
	s.logger.Debug("appended record", "path", s.path, "count", len(elems))
	return nil
}

func (s *Store) lockPath() string {
	return s.path + ".lock"
}
