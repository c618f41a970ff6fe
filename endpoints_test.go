package filedock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpoints_Normalized(t *testing.T) {
	tests := []struct {
		name string
		in   Endpoints
		want Endpoints
	}{
		{
			name: "zero value gets defaults",
			in:   Endpoints{},
			want: Endpoints{UploadPath: "/uploads/", DownloadPrefix: "/files"},
		},
		{
			name: "upload path gains surrounding slashes",
			in:   Endpoints{UploadPath: "up", DownloadPrefix: "dl"},
			want: Endpoints{UploadPath: "/up/", DownloadPrefix: "/dl"},
		},
		{
			name: "download prefix loses trailing slash",
			in:   Endpoints{UploadPath: "/up/", DownloadPrefix: "/dl/"},
			want: Endpoints{UploadPath: "/up/", DownloadPrefix: "/dl"},
		},
		{
			name: "bare slash prefix falls back to default",
			in:   Endpoints{UploadPath: "/", DownloadPrefix: "/"},
			want: Endpoints{UploadPath: "/", DownloadPrefix: "/files"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalized())
		})
	}
}
