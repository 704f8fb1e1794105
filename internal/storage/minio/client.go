package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/tags"

	"github.com/dtroode/cardkeeper-server/internal/model"
)

const (
	visibilityTag    = "visibility"
	visibilityPublic = "public"
)

// Anonymous reads are allowed only for objects tagged visibility=public.
const publicReadPolicy = `{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"AWS": ["*"]},
    "Action": ["s3:GetObject"],
    "Resource": ["arn:aws:s3:::%s/*"],
    "Condition": {"StringEquals": {"s3:ExistingObjectTag/` + visibilityTag + `": "` + visibilityPublic + `"}}
  }]
}`

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	SetBucketPolicy(ctx context.Context, bucketName, policy string) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PutObjectTagging(ctx context.Context, bucketName, objectName string, otags *tags.Tags, opts minio.PutObjectTaggingOptions) error
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

var _ minioAPI = (*minio.Client)(nil)

var _ model.ObjectStore = (*Client)(nil)

// Client stores card images in a MinIO (S3-compatible) bucket.
type Client struct {
	api        minioAPI
	bucket     string
	publicBase url.URL
}

// Options describe where public image URLs point to.
type Options struct {
	Bucket     string
	PublicHost string
	UseSSL     bool
}

// NewClient creates a new MinIO storage client using a real *minio.Client instance.
func NewClient(ctx context.Context, client *minio.Client, opts Options) (*Client, error) {
	return NewClientWithAPI(ctx, client, opts)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, opts Options) (*Client, error) {
	scheme := "http"
	if opts.UseSSL {
		scheme = "https"
	}

	c := &Client{
		api:        api,
		bucket:     opts.Bucket,
		publicBase: url.URL{Scheme: scheme, Host: opts.PublicHost, Path: "/" + opts.Bucket},
	}

	if err := c.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return c, nil
}

// ensureBucket creates the bucket if it doesn't exist and installs the public read policy.
func (c *Client) ensureBucket(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	if err := c.api.SetBucketPolicy(ctx, c.bucket, fmt.Sprintf(publicReadPolicy, c.bucket)); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}

// Upload writes an object of the given size and content type.
func (c *Client) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := c.api.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// Delete deletes object from MinIO.
func (c *Client) Delete(ctx context.Context, key string) error {
	err := c.api.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// MakePublic tags the object so the bucket policy lets anyone read it.
func (c *Client) MakePublic(ctx context.Context, key string) error {
	t, err := tags.NewTags(map[string]string{visibilityTag: visibilityPublic}, true)
	if err != nil {
		return fmt.Errorf("failed to build object tags: %w", err)
	}

	if err := c.api.PutObjectTagging(ctx, c.bucket, key, t, minio.PutObjectTaggingOptions{}); err != nil {
		return fmt.Errorf("failed to make object public: %w", err)
	}
	return nil
}

// PublicURL returns the address the object is served from.
func (c *Client) PublicURL(key string) string {
	return c.publicBase.JoinPath(key).String()
}

// KeyFromURL returns the key of the object a public URL points to.
func (c *Client) KeyFromURL(rawURL string) (string, error) {
	return KeyFromURL(rawURL)
}

// KeyFromURL returns the blob key a public URL points to: its last path segment.
func KeyFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse image url: %w", err)
	}

	key := path.Base(u.Path)
	if key == "." || key == "/" {
		return "", fmt.Errorf("image url %q has no object key", rawURL)
	}

	return key, nil
}
