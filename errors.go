package filedock

import "errors"

var (
	// Configuration errors: a required collaborator was never injected.
	ErrNoUploadTransport = errors.New("no upload transport configured")
	ErrNoFetcher         = errors.New("no fetch capability configured")

	// Precondition errors for the upload lifecycle.
	ErrNoData             = errors.New("no data attached")
	ErrInvalidData        = errors.New("invalid data handle")
	ErrAlreadyPersisted   = errors.New("record already has an identifier")
	ErrIncompleteMetadata = errors.New("incomplete original metadata")
	ErrUploadInProgress   = errors.New("upload already in progress")

	// Precondition errors for store synchronization.
	ErrNoCollection     = errors.New("no collection attached")
	ErrNoID             = errors.New("no record identifier")
	ErrInvalidStoreName = errors.New("invalid store name")

	// ErrNotFound is surfaced verbatim by collection implementations when a
	// record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUploadAborted resolves a pending Upload after AbortUpload.
	ErrUploadAborted = errors.New("upload aborted")
)
