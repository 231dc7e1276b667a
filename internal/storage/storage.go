package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// UploadOptions conveys upload destination metadata.
type UploadOptions struct {
	Bucket      string
	Key         string
	ContentType string
}

// Service keeps blog list snapshots in remote object storage.
type Service interface {
	Upload(ctx context.Context, body io.Reader, opts UploadOptions) (string, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}

// SnapshotKey names a snapshot taken at the given instant under prefix.
func SnapshotKey(prefix string, at time.Time) string {
	name := fmt.Sprintf("blogs-%s.json", at.UTC().Format("20060102T150405.000Z"))
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// SnapshotPrefix is the listing prefix matching every key produced by SnapshotKey.
func SnapshotPrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return "blogs-"
	}
	return prefix + "/blogs-"
}
