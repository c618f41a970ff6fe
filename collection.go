package filedock

import (
	"context"
	"io"
)

// Modifier describes a targeted, field-level document update. Paths are
// dotted (e.g. "original", "copies.thumbs"); a full-document overwrite is
// never expressed through it.
type Modifier struct {
	Set   map[string]any
	Unset []string
}

// Collection is the document-store collaborator a record syncs with. It is
// injected, never owned; implementations live under collection/.
type Collection interface {
	// Name identifies the collection.
	Name() string
	// FindOne loads the document with the given identifier. A missing
	// document is reported with ErrNotFound.
	FindOne(ctx context.Context, id string) (*Document, error)
	// Update applies a field-level modifier to the persisted document.
	Update(ctx context.Context, id string, mod Modifier) error
	// Remove deletes the persisted document.
	Remove(ctx context.Context, id string) error
	// GetStore resolves a registered storage backend capability by name.
	GetStore(name string) (Store, error)
}

// ByteRange selects an inclusive byte range [Start, End] of stored content.
type ByteRange struct {
	Start int64
	End   int64
}

// Store is a storage-backend capability vended by a Collection, used for
// streaming reads of stored file content.
type Store interface {
	// Name is the store name copies are keyed by.
	Name() string
	// CreateReadStream opens the stored bytes of the record's copy held by
	// this store. A nil rng reads the whole object.
	CreateReadStream(ctx context.Context, rec *FileRecord, rng *ByteRange) (io.ReadCloser, error)
}
