// Package minio implements snapstore.Store on MinIO / S3-compatible
// object storage.
package minio

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pgraph-io/pgraph/internal/errs"
	"github.com/pgraph-io/pgraph/internal/snapstore"
)

// Driver is a MinIO-backed snapshot store.
type Driver struct {
	client *minio.Client
	bucket string
}

// New creates a Driver from the given config. It does not contact the
// server; call Ping to validate connectivity.
func New(cfg *snapstore.Config) (*Driver, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindConfig, "invalid snapshot store config", err)
	}
	return &Driver{client: client, bucket: cfg.Bucket}, nil
}

// Ping verifies the bucket exists and is reachable.
func (d *Driver) Ping(ctx context.Context) error {
	ok, err := d.client.BucketExists(ctx, d.bucket)
	if err != nil {
		return errs.Wrap(errs.KindConnection, "snapshot store unreachable", err)
	}
	if !ok {
		return errs.New(errs.KindConfig, "snapshot bucket does not exist: "+d.bucket)
	}
	return nil
}

// Close is a no-op; the minio client holds no persistent connections.
func (d *Driver) Close() error { return nil }

// Put writes data under key with a JSON content type.
func (d *Driver) Put(ctx context.Context, key string, data []byte) error {
	_, err := d.client.PutObject(ctx, d.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return errs.Wrap(errs.KindSnapshot, "failed to store snapshot "+key, err)
	}
	return nil
}

// Get reads the object stored under key.
func (d *Driver) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := d.client.GetObject(ctx, d.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.Wrap(errs.KindSnapshot, "failed to open snapshot "+key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errs.Wrap(errs.KindSnapshot, "failed to read snapshot "+key, err)
	}
	return data, nil
}

// Stat returns metadata for the object under key.
func (d *Driver) Stat(ctx context.Context, key string) (*snapstore.SnapshotInfo, error) {
	info, err := d.client.StatObject(ctx, d.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, errs.Wrap(errs.KindSnapshot, "failed to stat snapshot "+key, err)
	}
	return &snapstore.SnapshotInfo{
		Key:          info.Key,
		Size:         info.Size,
		ETag:         info.ETag,
		LastModified: info.LastModified,
	}, nil
}

// List returns the objects under prefix.
func (d *Driver) List(ctx context.Context, prefix string) ([]snapstore.SnapshotInfo, error) {
	var out []snapstore.SnapshotInfo
	for obj := range d.client.ListObjects(ctx, d.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, errs.Wrap(errs.KindSnapshot, "failed to list snapshots", obj.Err)
		}
		out = append(out, snapstore.SnapshotInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			ETag:         obj.ETag,
			LastModified: obj.LastModified,
		})
	}
	return out, nil
}
