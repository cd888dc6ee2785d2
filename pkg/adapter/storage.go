package adapter

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
)

// Archive keeps generated reports as objects
type Archive interface {
	// Put returns a writer that stores an object under key
	Put(ctx context.Context, key string) (io.WriteCloser, error)
	// Get reads the object stored under key
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// storageClient implements Archive using Cloud Storage
type storageClient struct {
	bucketName string
	client     *storage.Client
}

// NewStorage creates a new Cloud Storage archive
func NewStorage(ctx context.Context, bucketName string, opts ...option.ClientOption) (Archive, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &storageClient{
		bucketName: bucketName,
		client:     client,
	}, nil
}

func (s *storageClient) Put(ctx context.Context, key string) (io.WriteCloser, error) {
	obj := s.client.Bucket(s.bucketName).Object(key)
	writer := obj.NewWriter(ctx)
	writer.ContentType = "application/json"
	return writer, nil
}

func (s *storageClient) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj := s.client.Bucket(s.bucketName).Object(key)
	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read from storage", goerr.V("bucket", s.bucketName), goerr.V("key", key))
	}

	return reader, nil
}
