package s3blob

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/filedock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func overrideGetObject(t *testing.T, fn func(ctx context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error)) {
	t.Helper()
	old := getObject
	getObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		return fn(ctx, in)
	}
	t.Cleanup(func() { getObject = old })
}

func TestCreateReadStream_UsesCopyKeyAndBucket(t *testing.T) {
	var gotKey, gotBucket string
	overrideGetObject(t, func(ctx context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		gotKey, gotBucket = *in.Key, *in.Bucket
		assert.Nil(t, in.Range)
		return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("payload"))}, nil
	})

	s := &Store{name: "thumbs", cfg: Config{Bucket: "media"}}
	rec := filedock.New(&filedock.Document{
		Copies: map[string]*filedock.FileInfo{"thumbs": {Key: "users/1/t.png"}},
	})

	rc, err := s.CreateReadStream(context.Background(), rec, nil)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
	assert.Equal(t, "users/1/t.png", gotKey)
	assert.Equal(t, "media", gotBucket)
}

func TestCreateReadStream_RangeHeader(t *testing.T) {
	var gotRange string
	overrideGetObject(t, func(ctx context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		gotRange = *in.Range
		return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("orld"))}, nil
	})

	s := &Store{name: "thumbs", cfg: Config{Bucket: "media"}}
	rec := filedock.New(&filedock.Document{Original: &filedock.FileInfo{Key: "k"}})

	rc, err := s.CreateReadStream(context.Background(), rec, &filedock.ByteRange{Start: 7, End: 10})
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, "bytes=7-10", gotRange)
}

func TestCreateReadStream_NoKey(t *testing.T) {
	s := &Store{name: "thumbs", cfg: Config{Bucket: "media"}}
	rec := filedock.New(&filedock.Document{})

	_, err := s.CreateReadStream(context.Background(), rec, nil)
	assert.ErrorIs(t, err, filedock.ErrNotFound)
}

func TestNew_BuildsClient(t *testing.T) {
	s, err := New(context.Background(), "thumbs", Config{
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000",
		Bucket:       "media",
		AccessKey:    "minio",
		SecretKey:    "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "thumbs", s.Name())
	assert.NotNil(t, s.client)
}
