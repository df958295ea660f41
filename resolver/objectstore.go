package resolver

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// ObjectStoreConfig locates an S3-compatible endpoint.
type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// ObjectStore fetches s3://bucket/key references from an S3-compatible
// object store. Dot-relative references resolve against an s3:// search
// directory.
type ObjectStore struct {
	client *minio.Client
	log    zerolog.Logger
}

// NewObjectStoreResolver connects an object store backend to cfg.Endpoint.
func NewObjectStoreResolver(cfg ObjectStoreConfig, opts ...Option) (*ObjectStore, error) {
	o := newOptions(opts)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to object store %s: %w", cfg.Endpoint, err)
	}

	return &ObjectStore{client: client, log: o.logger}, nil
}

// Canonicalize returns the absolute s3:// locator the reference addresses.
func (s *ObjectStore) Canonicalize(reference, searchDir string) (string, error) {
	switch {
	case strings.HasPrefix(reference, "s3://"):
		return reference, nil
	case strings.HasPrefix(reference, ".") && strings.HasPrefix(searchDir, "s3://"):
		return "s3://" + path.Join(strings.TrimPrefix(searchDir, "s3://"), reference), nil
	default:
		return "", notFound(reference)
	}
}

// Fetch downloads the referenced object.
func (s *ObjectStore) Fetch(ctx context.Context, reference, searchDir string) (*SourceFile, error) {
	target, err := s.Canonicalize(reference, searchDir)
	if err != nil {
		return nil, err
	}

	bucket, key, ok := splitObjectLocator(target)
	if !ok {
		return nil, notFound(reference)
	}

	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, &FetchError{Reference: reference, Err: err}
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return nil, notFound(reference)
		}
		return nil, &FetchError{Reference: reference, Err: err}
	}

	s.log.Debug().Str("bucket", bucket).Str("key", key).Msg("fetched from object store")

	return &SourceFile{Locator: target, Source: string(data), Provider: "objectstore"}, nil
}

// splitObjectLocator splits s3://bucket/key into bucket and key.
func splitObjectLocator(locator string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(locator, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
