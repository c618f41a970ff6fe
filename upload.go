package filedock

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"
)

// DefaultChunkSize is the upload chunk size used when none is configured.
const DefaultChunkSize int64 = 5 << 20

// DefaultRetryDelays is the fixed backoff schedule handed to the transport
// for transient chunk failures. The record itself never retries.
var DefaultRetryDelays = []time.Duration{0, time.Second, 3 * time.Second, 5 * time.Second}

// UploadProgress is emitted to registered observers after every completed
// chunk. Purely observational; it carries no backpressure semantics.
type UploadProgress struct {
	BytesUploaded int64
	BytesTotal    int64
	Percentage    float64
}

// UploadConfig is the configuration handed to the transport when an upload
// session is created.
type UploadConfig struct {
	ChunkSize int64
	Endpoint  string
	// Resume enables automatic resumption of interrupted uploads.
	Resume      bool
	RetryDelays []time.Duration
	// Metadata is attached to the upload at the transport level.
	Metadata map[string]string
}

// UploadCallbacks is how the transport reports back. Exactly one of OnError
// or OnSuccess fires to terminate a session; OnChunkComplete may fire any
// number of times before that.
type UploadCallbacks struct {
	OnError func(err error)
	// OnChunkComplete reports the size of the completed chunk and the
	// running totals.
	OnChunkComplete func(chunkSize, bytesUploaded, bytesTotal int64)
	// OnSuccess reports the final upload location.
	OnSuccess func(uploadURL string)
}

// UploadSession is an in-progress upload owned by a record. It exists only
// between Upload and completion or abort.
type UploadSession interface {
	Start()
	Abort()
}

// UploadTransport creates resumable-upload sessions. Implementations own
// the wire protocol, byte-range negotiation and retry policy.
type UploadTransport interface {
	CreateUpload(data Data, cfg UploadConfig, cb UploadCallbacks) (UploadSession, error)
}

type uploadResult struct {
	location string
	err      error
}

// Upload transfers the attached data through the configured transport and
// blocks until the transport reports a terminal result. On success the
// transport-assigned identifier is recorded as tempStoreId together with
// the upload timestamp, the data handle is released and the identifier is
// returned. Cancelling ctx aborts the transfer.
//
// Upload is permitted only while the record is transient: it rejects when
// no transport is configured, when another upload is in flight, when no
// data is attached, when the record already has an identifier, or when any
// of name/size/type is missing from the original metadata.
func (r *FileRecord) Upload(ctx context.Context) (string, error) {
	r.mu.Lock()
	if r.transport == nil {
		r.mu.Unlock()
		return "", ErrNoUploadTransport
	}
	if r.uploading {
		r.mu.Unlock()
		return "", ErrUploadInProgress
	}
	if r.data == nil {
		r.mu.Unlock()
		return "", ErrNoData
	}
	if r.doc.ID != "" {
		r.mu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrAlreadyPersisted, r.doc.ID)
	}
	orig := r.doc.Original
	if orig == nil || orig.Name == "" {
		r.mu.Unlock()
		return "", fmt.Errorf("%w: name", ErrIncompleteMetadata)
	}
	if orig.Size <= 0 {
		r.mu.Unlock()
		return "", fmt.Errorf("%w: size", ErrIncompleteMetadata)
	}
	if orig.Type == "" {
		r.mu.Unlock()
		return "", fmt.Errorf("%w: type", ErrIncompleteMetadata)
	}

	done := make(chan uploadResult, 1)
	cb := UploadCallbacks{
		OnError: func(err error) {
			select {
			case done <- uploadResult{err: err}:
			default:
			}
		},
		OnChunkComplete: func(_, bytesUploaded, bytesTotal int64) {
			r.emitProgress(bytesUploaded, bytesTotal)
		},
		OnSuccess: func(uploadURL string) {
			select {
			case done <- uploadResult{location: uploadURL}:
			default:
			}
		},
	}
	cfg := UploadConfig{
		ChunkSize:   r.chunkSize,
		Endpoint:    r.endpoints.UploadPath,
		Resume:      true,
		RetryDelays: DefaultRetryDelays,
		Metadata: map[string]string{
			"name": orig.Name,
			"size": strconv.FormatInt(orig.Size, 10),
			"type": orig.Type,
		},
	}

	sess, err := r.transport.CreateUpload(r.data, cfg, cb)
	if err != nil {
		r.mu.Unlock()
		return "", fmt.Errorf("create upload: %w", err)
	}
	r.uploading = true
	r.uploadSession = sess
	r.uploadDone = done
	r.mu.Unlock()

	r.log.Info(ctx, "upload started", "name", orig.Name, "size", orig.Size)
	sess.Start()

	var res uploadResult
	select {
	case <-ctx.Done():
		sess.Abort()
		r.finishUpload()
		r.log.Warn(ctx, "upload cancelled", "name", orig.Name)
		return "", ctx.Err()
	case res = <-done:
	}

	if res.err != nil {
		r.finishUpload()
		r.log.Error(ctx, "upload failed", "name", orig.Name, "error", res.err)
		// Transport errors surface verbatim so callers can match on them.
		return "", res.err
	}

	id := lastPathSegment(res.location)
	r.mu.Lock()
	orig.TempStoreID = id
	orig.UploadedAt = r.now()
	r.data = nil
	r.uploading = false
	r.uploadSession = nil
	r.uploadDone = nil
	r.mu.Unlock()

	r.log.Info(ctx, "upload completed", "name", orig.Name, "tempStoreId", id)
	return id, nil
}

// AbortUpload cancels an in-flight upload. The pending Upload call resolves
// with ErrUploadAborted; metadata already written in memory is not rolled
// back. It is a no-op when no upload is in flight.
func (r *FileRecord) AbortUpload() {
	r.mu.Lock()
	sess, done := r.uploadSession, r.uploadDone
	r.mu.Unlock()
	if sess == nil {
		return
	}
	sess.Abort()
	if done != nil {
		select {
		case done <- uploadResult{err: ErrUploadAborted}:
		default:
		}
	}
}

// OnUploadProgress registers an observer for chunk completion events and
// returns a function that unregisters it.
func (r *FileRecord) OnUploadProgress(fn func(UploadProgress)) (cancel func()) {
	r.obsMu.Lock()
	id := r.obsNextID
	r.obsNextID++
	r.observers[id] = fn
	r.obsMu.Unlock()
	return func() {
		r.obsMu.Lock()
		delete(r.observers, id)
		r.obsMu.Unlock()
	}
}

func (r *FileRecord) emitProgress(bytesUploaded, bytesTotal int64) {
	p := UploadProgress{BytesUploaded: bytesUploaded, BytesTotal: bytesTotal}
	if bytesTotal > 0 {
		p.Percentage = float64(bytesUploaded) / float64(bytesTotal) * 100
	}
	r.obsMu.Lock()
	fns := make([]func(UploadProgress), 0, len(r.observers))
	for _, fn := range r.observers {
		fns = append(fns, fn)
	}
	r.obsMu.Unlock()
	for _, fn := range fns {
		fn(p)
	}
}

func (r *FileRecord) finishUpload() {
	r.mu.Lock()
	r.uploading = false
	r.uploadSession = nil
	r.uploadDone = nil
	r.mu.Unlock()
}

func lastPathSegment(location string) string {
	return path.Base(strings.TrimRight(location, "/"))
}
