// Package s3blob provides an S3-backed filedock.Store (works with MinIO and
// other S3-compatible endpoints). Reads are ranged GetObject calls.
package s3blob

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/filedock"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	getObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		return c.GetObject(ctx, in)
	}
)

// Config carries the connection settings for an S3-compatible backend.
type Config struct {
	Region string
	// BaseEndpoint overrides the AWS endpoint, e.g. a MinIO address. Path
	// style addressing is enabled when it is set.
	BaseEndpoint string
	Bucket       string
	AccessKey    string // MINIO_ROOT_USER
	SecretKey    string // MINIO_ROOT_PASSWORD
}

type Store struct {
	name   string
	cfg    Config
	client *s3.Client
}

// New constructs a store backed by the configured bucket.
func New(ctx context.Context, name string, cfg Config) (*Store, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{name: name, cfg: cfg, client: client}, nil
}

// Name returns the store name.
func (s *Store) Name() string { return s.name }

// CreateReadStream opens the record's content held by this store. The key
// of the store's named copy is used, falling back to the original's key. A
// non-nil rng is translated into an HTTP Range header (inclusive bounds).
func (s *Store) CreateReadStream(ctx context.Context, rec *filedock.FileRecord, rng *filedock.ByteRange) (io.ReadCloser, error) {
	key := rec.Key(s.name)
	if key == "" {
		key = rec.Key()
	}
	if key == "" {
		return nil, fmt.Errorf("no storage key for store %q: %w", s.name, filedock.ErrNotFound)
	}

	in := &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}
	if rng != nil {
		in.Range = aws.String(fmt.Sprintf("bytes=%d-%d", rng.Start, rng.End))
	}

	out, err := getObject(s.client, ctx, in)
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	return out.Body, nil
}
