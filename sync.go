package filedock

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Reload replaces the in-memory document with the latest persisted version
// from the collection.
func (r *FileRecord) Reload(ctx context.Context) error {
	if r.collection == nil {
		return ErrNoCollection
	}
	if r.doc.ID == "" {
		return ErrNoID
	}
	doc, err := r.collection.FindOne(ctx, r.doc.ID)
	if err != nil {
		return fmt.Errorf("find %s: %w", r.doc.ID, err)
	}
	r.doc = doc
	return nil
}

// SaveOriginal persists the original metadata block through a field-level
// update. Saving when there is no original block is a successful no-op.
func (r *FileRecord) SaveOriginal(ctx context.Context) error {
	if r.doc.Original == nil {
		return nil
	}
	if r.collection == nil {
		return ErrNoCollection
	}
	if r.doc.ID == "" {
		return ErrNoID
	}
	mod := Modifier{Set: map[string]any{"original": r.doc.Original}}
	if err := r.collection.Update(ctx, r.doc.ID, mod); err != nil {
		return fmt.Errorf("save original: %w", err)
	}
	return nil
}

// SaveCopy persists one named copy's metadata block through a field-level
// update. Saving a copy that does not exist locally is a successful no-op.
// Store names that would corrupt the modifier's dotted field path are
// rejected with ErrInvalidStoreName.
func (r *FileRecord) SaveCopy(ctx context.Context, store string) error {
	if err := validateStoreName(store); err != nil {
		return err
	}
	info, ok := r.doc.Copies[store]
	if !ok || info == nil {
		return nil
	}
	if r.collection == nil {
		return ErrNoCollection
	}
	if r.doc.ID == "" {
		return ErrNoID
	}
	mod := Modifier{Set: map[string]any{"copies." + store: info}}
	if err := r.collection.Update(ctx, r.doc.ID, mod); err != nil {
		return fmt.Errorf("save copy %s: %w", store, err)
	}
	return nil
}

// Remove deletes the persisted record and detaches the collection from the
// session.
func (r *FileRecord) Remove(ctx context.Context) error {
	if r.collection == nil {
		return ErrNoCollection
	}
	if r.doc.ID == "" {
		return ErrNoID
	}
	if err := r.collection.Remove(ctx, r.doc.ID); err != nil {
		return fmt.Errorf("remove %s: %w", r.doc.ID, err)
	}
	r.collection = nil
	return nil
}

// UpdateDocument applies a caller-supplied modifier to the persisted
// record. The in-memory document is left untouched; call Reload to pick up
// the result.
func (r *FileRecord) UpdateDocument(ctx context.Context, mod Modifier) error {
	if r.collection == nil {
		return ErrNoCollection
	}
	if r.doc.ID == "" {
		return ErrNoID
	}
	if err := r.collection.Update(ctx, r.doc.ID, mod); err != nil {
		return fmt.Errorf("update %s: %w", r.doc.ID, err)
	}
	return nil
}

// validateStoreName rejects store names that cannot round-trip through a
// dotted field path: "." splits into extra path segments and "," breaks the
// Postgres text-array literal the path is rendered to.
func validateStoreName(store string) error {
	if strings.ContainsAny(store, ".,") {
		return fmt.Errorf("%w: %q", ErrInvalidStoreName, store)
	}
	return nil
}

// CreateReadStream opens a readable byte stream for the named storage copy,
// delegating to the store capability vended by the attached collection.
func (r *FileRecord) CreateReadStream(ctx context.Context, store string, rng *ByteRange) (io.ReadCloser, error) {
	if r.collection == nil {
		return nil, ErrNoCollection
	}
	st, err := r.collection.GetStore(store)
	if err != nil {
		return nil, fmt.Errorf("get store %s: %w", store, err)
	}
	rc, err := st.CreateReadStream(ctx, r, rng)
	if err != nil {
		return nil, fmt.Errorf("read stream %s: %w", store, err)
	}
	return rc, nil
}
