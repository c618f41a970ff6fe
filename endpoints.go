package filedock

import "strings"

const (
	// DefaultUploadPath is the endpoint path resumable uploads are sent to.
	DefaultUploadPath = "/uploads/"
	// DefaultDownloadPrefix is the path prefix download URLs are built under.
	DefaultDownloadPrefix = "/files"
)

// Endpoints carries the endpoint configuration that used to be process-wide
// state in older designs. A zero value means "use the defaults".
type Endpoints struct {
	// UploadPath is the resumable-upload endpoint path. Always normalized to
	// start and end with "/".
	UploadPath string
	// DownloadPrefix is the download URL prefix. Always normalized to start
	// with "/" and never end with one.
	DownloadPrefix string
}

// Normalized returns a copy with defaults applied and both paths brought
// into canonical form.
func (e Endpoints) Normalized() Endpoints {
	e.UploadPath = normalizeUploadPath(e.UploadPath)
	e.DownloadPrefix = normalizeDownloadPrefix(e.DownloadPrefix)
	return e
}

func normalizeUploadPath(p string) string {
	if p == "" {
		return DefaultUploadPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p = p + "/"
	}
	return p
}

func normalizeDownloadPrefix(p string) string {
	if p == "" {
		return DefaultDownloadPrefix
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return DefaultDownloadPrefix
	}
	return p
}
