package filedock

import (
	"strings"
	"time"
)

// Metadata accessors come in explicit getter/setter pairs, one per field.
// Each takes an optional store name: with a store, the field is resolved
// against that named copy; without one, against the original. Getters
// return zero values for absent fields; setters mutate the in-memory
// document only — persistence requires an explicit SaveOriginal/SaveCopy.

// info resolves the metadata block for a scope without creating it.
func (r *FileRecord) info(store []string) *FileInfo {
	if len(store) > 0 && store[0] != "" {
		return r.doc.Copies[store[0]]
	}
	return r.doc.Original
}

// ensureInfo resolves the metadata block for a scope, creating the original
// block or the named copy entry as needed.
func (r *FileRecord) ensureInfo(store []string) *FileInfo {
	if len(store) > 0 && store[0] != "" {
		if r.doc.Copies == nil {
			r.doc.Copies = make(map[string]*FileInfo)
		}
		info := r.doc.Copies[store[0]]
		if info == nil {
			info = &FileInfo{}
			r.doc.Copies[store[0]] = info
		}
		return info
	}
	if r.doc.Original == nil {
		r.doc.Original = &FileInfo{}
	}
	return r.doc.Original
}

// Key returns the storage key for the scope.
func (r *FileRecord) Key(store ...string) string {
	if info := r.info(store); info != nil {
		return info.Key
	}
	return ""
}

// SetKey records the storage key for the scope.
func (r *FileRecord) SetKey(key string, store ...string) {
	r.ensureInfo(store).Key = key
}

// Name returns the filename for the scope.
func (r *FileRecord) Name(store ...string) string {
	if info := r.info(store); info != nil {
		return info.Name
	}
	return ""
}

// SetName records the filename for the scope.
func (r *FileRecord) SetName(name string, store ...string) {
	r.ensureInfo(store).Name = name
}

// Size returns the size in bytes for the scope.
func (r *FileRecord) Size(store ...string) int64 {
	if info := r.info(store); info != nil {
		return info.Size
	}
	return 0
}

// SetSize records the size in bytes for the scope.
func (r *FileRecord) SetSize(size int64, store ...string) {
	r.ensureInfo(store).Size = size
}

// Type returns the MIME type for the scope.
func (r *FileRecord) Type(store ...string) string {
	if info := r.info(store); info != nil {
		return info.Type
	}
	return ""
}

// SetType records the MIME type for the scope.
func (r *FileRecord) SetType(mimeType string, store ...string) {
	r.ensureInfo(store).Type = mimeType
}

// StorageAdapter returns the storage backend name for the scope.
func (r *FileRecord) StorageAdapter(store ...string) string {
	if info := r.info(store); info != nil {
		return info.StorageAdapter
	}
	return ""
}

// SetStorageAdapter records the storage backend name for the scope.
func (r *FileRecord) SetStorageAdapter(adapter string, store ...string) {
	r.ensureInfo(store).StorageAdapter = adapter
}

// CreatedAt returns the creation timestamp for the scope.
func (r *FileRecord) CreatedAt(store ...string) time.Time {
	if info := r.info(store); info != nil {
		return info.CreatedAt
	}
	return time.Time{}
}

// SetCreatedAt records the creation timestamp for the scope.
func (r *FileRecord) SetCreatedAt(t time.Time, store ...string) {
	r.ensureInfo(store).CreatedAt = t
}

// UpdatedAt returns the modification timestamp for the scope.
func (r *FileRecord) UpdatedAt(store ...string) time.Time {
	if info := r.info(store); info != nil {
		return info.UpdatedAt
	}
	return time.Time{}
}

// SetUpdatedAt records the modification timestamp for the scope.
func (r *FileRecord) SetUpdatedAt(t time.Time, store ...string) {
	r.ensureInfo(store).UpdatedAt = t
}

// Extension returns the lowercase filename extension for the scope, without
// the dot. A name with no dot, or a hidden file whose only dot leads the
// name, has no extension.
func (r *FileRecord) Extension(store ...string) string {
	return extensionOf(r.Name(store...))
}

// SetExtension rewrites the filename's suffix for the scope, replacing the
// current extension or appending one. It does nothing when the scope has no
// name yet; size and type are never touched.
func (r *FileRecord) SetExtension(ext string, store ...string) {
	info := r.info(store)
	if info == nil || info.Name == "" {
		return
	}
	ext = strings.TrimPrefix(ext, ".")
	if i := strings.LastIndex(info.Name, "."); i > 0 {
		info.Name = info.Name[:i+1] + ext
		return
	}
	info.Name = info.Name + "." + ext
}

func extensionOf(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
