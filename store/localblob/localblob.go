// Package localblob provides a disk-backed filedock.Store. Stored content
// is addressed by the record's storage key, resolved relative to a root
// directory.
package localblob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/filedock"
)

type Store struct {
	name string
	root string
}

// New creates a store that reads content below root.
func New(name, root string) *Store {
	return &Store{name: name, root: root}
}

// Name returns the store name.
func (s *Store) Name() string { return s.name }

// CreateReadStream opens the record's content held by this store. The key
// of the store's named copy is used, falling back to the original's key. A
// nil rng reads the whole file; otherwise the inclusive byte range is
// returned.
func (s *Store) CreateReadStream(ctx context.Context, rec *filedock.FileRecord, rng *filedock.ByteRange) (io.ReadCloser, error) {
	key := rec.Key(s.name)
	if key == "" {
		key = rec.Key()
	}
	if key == "" {
		return nil, fmt.Errorf("no storage key for store %q: %w", s.name, filedock.ErrNotFound)
	}

	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", key, filedock.ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", key, err)
	}

	if rng == nil {
		return f, nil
	}
	if _, err := f.Seek(rng.Start, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("seek %s: %w", key, err)
	}
	return &rangeReadCloser{
		r: io.LimitReader(f, rng.End-rng.Start+1),
		c: f,
	}, nil
}

type rangeReadCloser struct {
	r io.Reader
	c io.Closer
}

func (rc *rangeReadCloser) Read(p []byte) (int, error) { return rc.r.Read(p) }
func (rc *rangeReadCloser) Close() error               { return rc.c.Close() }
