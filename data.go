package filedock

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"time"
)

// Data is an in-memory handle to raw file content. A record owns its data
// exclusively; the handle is released once the content has been uploaded.
type Data interface {
	io.Reader

	// Name returns the filename the content was created with.
	Name() string
	// Size returns the content length in bytes.
	Size() int64
	// ContentType returns the MIME type of the content.
	ContentType() string
	// ModTime returns the last modification time of the content.
	ModTime() time.Time
}

// BytesData adapts a byte slice into a Data handle.
type BytesData struct {
	name        string
	contentType string
	modTime     time.Time
	r           *bytes.Reader
}

// NewBytesData wraps b as file content with the given name and MIME type.
// An empty contentType is resolved from the name's extension.
func NewBytesData(name, contentType string, b []byte) *BytesData {
	if contentType == "" {
		contentType = typeByName(name)
	}
	return &BytesData{
		name:        name,
		contentType: contentType,
		modTime:     time.Now(),
		r:           bytes.NewReader(b),
	}
}

func (d *BytesData) Read(p []byte) (int, error) { return d.r.Read(p) }
func (d *BytesData) Name() string               { return d.name }
func (d *BytesData) Size() int64                { return d.r.Size() }
func (d *BytesData) ContentType() string        { return d.contentType }
func (d *BytesData) ModTime() time.Time         { return d.modTime }

// FileData adapts an open *os.File into a Data handle. Metadata is captured
// from the file's stat at construction time.
type FileData struct {
	f           *os.File
	name        string
	size        int64
	contentType string
	modTime     time.Time
}

// NewFileData wraps an open file. A nil file is rejected with ErrInvalidData.
func NewFileData(f *os.File) (*FileData, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil file", ErrInvalidData)
	}
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", f.Name(), err)
	}
	name := filepath.Base(f.Name())
	return &FileData{
		f:           f,
		name:        name,
		size:        fi.Size(),
		contentType: typeByName(name),
		modTime:     fi.ModTime(),
	}, nil
}

func (d *FileData) Read(p []byte) (int, error) { return d.f.Read(p) }
func (d *FileData) Name() string               { return d.name }
func (d *FileData) Size() int64                { return d.size }
func (d *FileData) ContentType() string        { return d.contentType }
func (d *FileData) ModTime() time.Time         { return d.modTime }

// Close closes the underlying file.
func (d *FileData) Close() error { return d.f.Close() }

func typeByName(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
