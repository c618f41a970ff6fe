package filedock

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/filedock/internal/logging"
)

// Doer performs an HTTP request. URL-sourced records use it for the HEAD
// request that resolves remote metadata; *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// FileRecord pairs a metadata document with optional raw data, a pluggable
// upload transport and a pluggable document-store collection.
//
// Metadata accessors and the document itself follow the single-threaded,
// event-driven model of the protocol: they are not safe for concurrent
// mutation. The upload lifecycle (Upload, AbortUpload, progress observers)
// is internally synchronized.
type FileRecord struct {
	doc        *Document
	data       Data
	collection Collection
	transport  UploadTransport
	fetcher    Doer
	endpoints  Endpoints
	chunkSize  int64
	log        logging.Logger

	mu            sync.Mutex
	uploading     bool
	uploadSession UploadSession
	uploadDone    chan uploadResult

	obsMu     sync.Mutex
	obsNextID int
	observers map[int]func(UploadProgress)
}

// Option configures a FileRecord at construction time.
type Option func(*FileRecord)

// WithCollection attaches the document-store collection the record syncs
// its metadata with.
func WithCollection(c Collection) Option {
	return func(r *FileRecord) { r.collection = c }
}

// WithTransport sets the resumable-upload transport collaborator.
func WithTransport(t UploadTransport) Option {
	return func(r *FileRecord) { r.transport = t }
}

// WithFetcher sets the HTTP capability used by FromURL.
func WithFetcher(d Doer) Option {
	return func(r *FileRecord) { r.fetcher = d }
}

// WithEndpoints overrides the default endpoint configuration.
func WithEndpoints(e Endpoints) Option {
	return func(r *FileRecord) { r.endpoints = e }
}

// WithChunkSize overrides the default upload chunk size.
func WithChunkSize(n int64) Option {
	return func(r *FileRecord) {
		if n > 0 {
			r.chunkSize = n
		}
	}
}

// WithLogger sets the logger used for upload lifecycle transitions.
func WithLogger(l logging.Logger) Option {
	return func(r *FileRecord) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates a record around an existing document, e.g. one loaded from a
// collection. A nil document starts an empty transient record.
func New(doc *Document, opts ...Option) *FileRecord {
	if doc == nil {
		doc = &Document{}
	}
	r := &FileRecord{
		doc:       doc,
		chunkSize: DefaultChunkSize,
		log:       logging.Nop(),
		observers: make(map[int]func(UploadProgress)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.endpoints = r.endpoints.Normalized()
	return r
}

// FromData creates a transient record around raw local content. The
// original metadata block is populated from the handle's properties.
func FromData(data Data, opts ...Option) (*FileRecord, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil data", ErrInvalidData)
	}
	r := New(&Document{Original: &FileInfo{
		Name:      data.Name(),
		Size:      data.Size(),
		Type:      data.ContentType(),
		UpdatedAt: data.ModTime(),
	}}, opts...)
	r.data = data
	return r, nil
}

// FromURL creates a record for remote content. Metadata is resolved with a
// HEAD request through the configured fetcher; no data is attached and
// RemoteURL is set so that an external worker fetches and stores the
// content out-of-band.
func FromURL(ctx context.Context, rawURL string, opts ...Option) (*FileRecord, error) {
	r := New(&Document{}, opts...)
	if r.fetcher == nil {
		return nil, fmt.Errorf("%w: FromURL needs an HTTP capability", ErrNoFetcher)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := r.fetcher.Do(req)
	if err != nil {
		return nil, fmt.Errorf("head %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	info := &FileInfo{
		Name:      nameFromPath(u.Path),
		Type:      resp.Header.Get("Content-Type"),
		RemoteURL: rawURL,
	}
	if v := resp.Header.Get("Content-Length"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			info.Size = n
		}
	}
	if v := resp.Header.Get("Last-Modified"); v != "" {
		if t, err := http.ParseTime(v); err == nil {
			info.UpdatedAt = t
		}
	}
	r.doc.Original = info
	return r, nil
}

// nameFromPath derives a filename from a URL path, ignoring any query
// string (already stripped by url.Parse).
func nameFromPath(p string) string {
	name := path.Base(p)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// Document returns the in-memory metadata document.
func (r *FileRecord) Document() *Document { return r.doc }

// ID returns the record's persisted identifier, empty while transient.
func (r *FileRecord) ID() string { return r.doc.ID }

// Data returns the attached raw data handle, nil once uploaded or for
// document/URL-sourced records.
func (r *FileRecord) Data() Data {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data
}

// Collection returns the attached collection, nil after Remove.
func (r *FileRecord) Collection() Collection { return r.collection }

// DownloadURL builds the download URL for the record under the configured
// download prefix: prefix/collection/id/name. It returns an empty string
// while the record has no identifier.
func (r *FileRecord) DownloadURL(store ...string) string {
	if r.doc.ID == "" {
		return ""
	}
	name := r.Name(store...)
	segs := []string{r.endpoints.DownloadPrefix}
	if r.collection != nil {
		segs = append(segs, r.collection.Name())
	}
	segs = append(segs, r.doc.ID)
	if len(store) > 0 && store[0] != "" {
		segs = append(segs, store[0])
	}
	if name != "" {
		segs = append(segs, name)
	}
	return path.Join(segs...)
}

func (r *FileRecord) now() time.Time { return timeNow() }

// timeNow is a seam for tests.
var timeNow = time.Now
