package export

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/natefinch/atomic"
)

const contentType = "text/csv; charset=utf-8"

// Destination stores a finished export.
type Destination interface {
	// Write stores data under name and returns where it ended up.
	Write(ctx context.Context, name string, data []byte) (string, error)
}

// FileDestination writes exports into a local directory.
type FileDestination struct {
	Dir string
}

// Write replaces any existing file of the same name atomically.
func (d FileDestination) Write(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	p := filepath.Join(dir, filepath.Base(name))
	if err := atomic.WriteFile(p, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("writing %s: %w", p, err)
	}
	if err := os.Chmod(p, 0o644); err != nil {
		return "", fmt.Errorf("setting permissions on %s: %w", p, err)
	}
	return p, nil
}

// s3API is the subset of *s3.Client used here.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Destination uploads exports to an S3-compatible bucket.
type S3Destination struct {
	client s3API
	bucket string
	prefix string
}

// NewS3Destination creates an S3 destination. If endpoint is non-empty,
// path-style addressing is enabled (for MinIO and similar).
func NewS3Destination(ctx context.Context, bucket, prefix, region, endpoint string) (*S3Destination, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}
	return &S3Destination{client: s3.NewFromConfig(cfg, s3opts...), bucket: bucket, prefix: prefix}, nil
}

// Key is the object key name is stored under.
func (d *S3Destination) Key(name string) string {
	return path.Join(d.prefix, name)
}

func (d *S3Destination) Write(ctx context.Context, name string, data []byte) (string, error) {
	key := d.Key(name)
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(d.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(data),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", name)),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}
	u := url.URL{Scheme: "s3", Host: d.bucket, Path: "/" + key}
	return u.String(), nil
}

var (
	_ Destination = FileDestination{}
	_ Destination = (*S3Destination)(nil)
)
