package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"schemadiff/core/value"

	"github.com/minio/minio-go/v7"
)

const (
	// SnapshotPrefix is the object name prefix of all snapshots.
	SnapshotPrefix = "snapshots/"
	// SnapshotExt is the object name suffix of all snapshots.
	SnapshotExt = ".yaml"
)

var (
	// ErrSnapshotNotFound is returned when no snapshot has the requested name.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrInvalidSnapshotName is returned for names that cannot form an object key.
	ErrInvalidSnapshotName = errors.New("invalid snapshot name")
)

var snapshotName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// SnapshotObject returns the object name of the named snapshot.
func SnapshotObject(name string) (string, error) {
	if !snapshotName.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSnapshotName, name)
	}
	return SnapshotPrefix + name + SnapshotExt, nil
}

// EnsureBucket creates bucket when it does not exist yet.
func EnsureBucket(ctx context.Context, client Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// SaveSnapshot writes v under name, replacing an existing snapshot.
func SaveSnapshot(ctx context.Context, client Client, bucket, name string, v value.Value) error {
	object, err := SnapshotObject(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := value.Encode(&buf, v); err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", name, err)
	}

	_, err = client.PutObject(ctx, bucket, object, bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "application/yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot %s: %w", name, err)
	}
	return nil
}

// LoadSnapshot reads the named snapshot.
func LoadSnapshot(ctx context.Context, client Client, bucket, name string) (value.Value, error) {
	object, err := SnapshotObject(name)
	if err != nil {
		return nil, err
	}

	obj, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, snapshotError(name, err)
	}
	defer obj.Close()

	// minio reports a missing key on the first read
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, snapshotError(name, err)
	}

	v, err := value.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", name, err)
	}
	return v, nil
}

func snapshotError(name string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}
	return fmt.Errorf("failed to download snapshot %s: %w", name, err)
}

// ListSnapshots returns the snapshot names in bucket, sorted.
func ListSnapshots(ctx context.Context, client Client, bucket string) ([]string, error) {
	var names []string
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: SnapshotPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, SnapshotExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(obj.Key, SnapshotPrefix), SnapshotExt))
	}
	sort.Strings(names)
	return names, nil
}

// DeleteSnapshot removes the named snapshot.
func DeleteSnapshot(ctx context.Context, client Client, bucket, name string) error {
	object, err := SnapshotObject(name)
	if err != nil {
		return err
	}
	if err := client.RemoveObject(ctx, bucket, object, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", name, err)
	}
	return nil
}
