package filedock

import "time"

// FileInfo describes one stored version of a file. The same shape is used
// for the original and for named copies; RemoteURL, TempStoreID and
// UploadedAt are only ever populated on the original.
type FileInfo struct {
	// Name is the filename (e.g. "report.pdf").
	Name string `json:"name,omitempty"`
	// Size is the file size in bytes.
	Size int64 `json:"size,omitempty"`
	// Type is the MIME content type (e.g. "application/pdf").
	Type string `json:"type,omitempty"`
	// Key is the storage-backend key of the stored bytes, once stored.
	Key string `json:"key,omitempty"`
	// StorageAdapter names the backend that holds the bytes.
	StorageAdapter string `json:"storageAdapter,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`

	// RemoteURL marks a URL-sourced record whose content still has to be
	// fetched and stored out-of-band by an external worker.
	RemoteURL string `json:"remoteURL,omitempty"`
	// TempStoreID is the identifier assigned by the upload transport on
	// completion. It is set together with UploadedAt, exactly once.
	TempStoreID string `json:"tempStoreId,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt,omitzero"`
}

// Document is the persisted metadata shape of a file record: the original
// file's metadata plus store-specific derived copies keyed by store name.
type Document struct {
	ID       string               `json:"_id,omitempty"`
	Original *FileInfo            `json:"original,omitempty"`
	Copies   map[string]*FileInfo `json:"copies,omitempty"`
}

// Clone returns a deep copy of the document so callers do not share the
// internal map or info blocks.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{ID: d.ID}
	if d.Original != nil {
		orig := *d.Original
		out.Original = &orig
	}
	if d.Copies != nil {
		out.Copies = make(map[string]*FileInfo, len(d.Copies))
		for store, info := range d.Copies {
			if info == nil {
				out.Copies[store] = nil
				continue
			}
			cp := *info
			out.Copies[store] = &cp
		}
	}
	return out
}
