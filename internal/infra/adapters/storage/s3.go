package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// s3SubtitleAsset is the fixed subtitle key the publishing tool writes
// under every song prefix.
const s3SubtitleAsset = "subtitles.srt"

// S3Options carries the deployment settings for an S3-compatible bucket
// (R2, MinIO, AWS).
type S3Options struct {
	Endpoint        string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	UseSSL          bool

	// PublicURL is the public base URL of the bucket. When empty, songs
	// are served without video rather than with a dead link.
	PublicURL string
}

// S3Backend reads song assets from one key prefix per song. Prefixes
// starting with "_" are ignored.
type S3Backend struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewS3Backend(opts S3Options) (*S3Backend, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	return &S3Backend{
		client:    client,
		bucket:    opts.Bucket,
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
	}, nil
}

func (b *S3Backend) ListSongFolders(ctx context.Context) ([]string, error) {
	var folders []string

	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list bucket %s: %w", b.bucket, obj.Err)
		}

		// Non-recursive listing yields common prefixes as keys with a
		// trailing slash.
		if !strings.HasSuffix(obj.Key, "/") {
			continue
		}
		folder := strings.TrimSuffix(obj.Key, "/")
		if folder == "" || strings.HasPrefix(folder, "_") {
			continue
		}
		folders = append(folders, folder)
	}

	return folders, nil
}

func (b *S3Backend) LocateSubtitleAsset(_ context.Context, _ string) (string, bool) {
	return s3SubtitleAsset, true
}

func (b *S3Backend) ReadTextAsset(ctx context.Context, folder, name string) (string, error) {
	key := folder + "/" + name

	obj, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", ErrAssetNotFound
		}
		return "", fmt.Errorf("read %s: %w", key, err)
	}

	return decodeText(data), nil
}

func (b *S3Backend) LocateVideoAsset(ctx context.Context, folder string) (string, bool) {
	opts := minio.ListObjectsOptions{Prefix: folder + "/", Recursive: true}

	for obj := range b.client.ListObjects(ctx, b.bucket, opts) {
		if obj.Err != nil {
			return "", false
		}
		if IsVideoAsset(path.Base(obj.Key)) {
			return obj.Key, true
		}
	}

	return "", false
}

// ResolveVideoURL joins the bucket's public base URL with the object
// key. Without a public URL the video is unreachable from a browser.
func (b *S3Backend) ResolveVideoURL(_, asset string) (string, bool) {
	if b.publicURL == "" {
		return "", false
	}

	return b.publicURL + "/" + asset, true
}
