// Package filedock implements a client-side "file record": a metadata
// document describing a file (name, size, type, storage keys) plus an
// optional in-memory handle to the raw data, able to drive a resumable
// chunked upload through a pluggable transport and to mirror its metadata
// into a pluggable document-store collection.
//
// # Overview
//
// A FileRecord owns one Document with an "original" metadata block and any
// number of named "copies" (store-specific derived versions, e.g. a resized
// image). Records are created from an existing document, from raw local
// data, or from a remote URL (metadata fetched with a HEAD request; the
// content itself is fetched out-of-band by external workers).
//
// Key Types
//
//   - type FileRecord      — the session: document + optional data/collection
//   - type Document        — the persisted metadata shape
//   - type UploadTransport — resumable-upload collaborator contract
//   - type Collection      — document-store collaborator contract
//   - type Store           — read-stream capability vended by a Collection
//
// Typical Usage
//
//	rec, _ := filedock.FromData(data,
//		filedock.WithTransport(tr),
//		filedock.WithCollection(coll))
//	id, err := rec.Upload(ctx)
//	_ = rec.SaveOriginal(ctx)
//
// All failures are reported as wrapped sentinel errors; match them with
// errors.Is. Transport and collection errors are surfaced verbatim.
package filedock
