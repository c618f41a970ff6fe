package filedock

import "strings"

// IsAudio reports whether the resolved MIME type is an audio type. An
// absent type matches none of the media predicates.
func (r *FileRecord) IsAudio(store ...string) bool {
	return strings.HasPrefix(r.Type(store...), "audio/")
}

// IsImage reports whether the resolved MIME type is an image type.
func (r *FileRecord) IsImage(store ...string) bool {
	return strings.HasPrefix(r.Type(store...), "image/")
}

// IsVideo reports whether the resolved MIME type is a video type.
func (r *FileRecord) IsVideo(store ...string) bool {
	return strings.HasPrefix(r.Type(store...), "video/")
}

// IsUploaded reports whether the original content has completed an upload.
func (r *FileRecord) IsUploaded() bool {
	return r.doc.Original != nil && !r.doc.Original.UploadedAt.IsZero()
}

// HasStored reports whether the named copy (or the original, with no store
// given) has a storage key assigned.
func (r *FileRecord) HasStored(store ...string) bool {
	return r.Key(store...) != ""
}
