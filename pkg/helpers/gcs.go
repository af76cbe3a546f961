package helpers

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// resumableThreshold is the size above which uploads use resumable chunks.
const resumableThreshold = 8 << 20

// NewGCSClient uses credsPath when set, otherwise application default credentials.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	var opts []option.ClientOption
	if credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	return storage.NewClient(ctx, opts...)
}

// UploadObject streams r into obj. Small files go up in a single request.
func UploadObject(ctx context.Context, obj *storage.ObjectHandle, r io.Reader, size int64, contentType string) error {
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"
	if size >= 0 && size < resumableThreshold {
		wc.ChunkSize = 0
	}
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return err
	}
	return wc.Close()
}
