package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gcs "cloud.google.com/go/storage"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/oksasatya/go-bootcamp-directory/pkg/helpers"
)

// FileStore persists uploaded files under a flat name.
type FileStore interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
}

// Local writes files into Dir.
type Local struct {
	Dir string
}

func (l Local) Put(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	if name != filepath.Base(name) {
		return fmt.Errorf("storage: invalid file name %q", name)
	}
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(l.Dir, name))
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// GCS uploads into Bucket under Prefix.
type GCS struct {
	Client *gcs.Client
	Bucket string
	Prefix string
}

func (g GCS) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	obj := g.Client.Bucket(g.Bucket).Object(g.Prefix + name)
	if err := helpers.UploadObject(ctx, obj, r, size, contentType); err != nil {
		return fmt.Errorf("gcs put %s: %w", name, err)
	}
	return nil
}

// MinIO uploads into an S3-compatible bucket.
type MinIO struct {
	Client *minio.Client
	Bucket string
	Prefix string
}

func NewMinIOClient(endpoint, accessKey, secretKey string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
}

func (m MinIO) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	_, err := m.Client.PutObject(ctx, m.Bucket, m.Prefix+name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("minio put %s: %w", name, err)
	}
	return nil
}
