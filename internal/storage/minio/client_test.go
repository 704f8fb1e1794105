package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      bool

	policy    string
	policyErr error

	putErr  error
	putKey  string
	putSize int64
	putOpts minioLib.PutObjectOptions
	putData []byte

	taggingErr error
	taggedKey  string
	tags       map[string]string

	removeErr error
	removed   []string
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}
func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = true
	return f.makeBucketErr
}
func (f *fakeMinio) SetBucketPolicy(_ context.Context, _ string, policy string) error {
	f.policy = policy
	return f.policyErr
}
func (f *fakeMinio) PutObject(_ context.Context, _ string, key string, r io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return minioLib.UploadInfo{}, err
	}
	f.putKey, f.putSize, f.putOpts, f.putData = key, size, opts, data
	return minioLib.UploadInfo{Key: key, Size: int64(len(data))}, nil
}
func (f *fakeMinio) PutObjectTagging(_ context.Context, _ string, key string, t *tags.Tags, _ minioLib.PutObjectTaggingOptions) error {
	if f.taggingErr != nil {
		return f.taggingErr
	}
	f.taggedKey = key
	f.tags = t.ToMap()
	return nil
}
func (f *fakeMinio) RemoveObject(_ context.Context, _ string, key string, _ minioLib.RemoveObjectOptions) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, key)
	return nil
}

func newTestClient(t *testing.T, api *fakeMinio) *Client {
	t.Helper()
	api.bucketExists = true
	c, err := NewClientWithAPI(context.Background(), api, Options{Bucket: "b", PublicHost: "storage.example.com", UseSSL: true})
	require.NoError(t, err)
	return c
}

func TestNewClientWithAPI_BucketExists(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, Options{Bucket: "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", c.bucket)
	assert.False(t, api.madeBucket)
	assert.Contains(t, api.policy, "arn:aws:s3:::b/*")
	assert.Contains(t, api.policy, "s3:ExistingObjectTag/visibility")
}

func TestNewClientWithAPI_CreateBucket(t *testing.T) {
	api := &fakeMinio{bucketExists: false}
	c, err := NewClientWithAPI(context.Background(), api, Options{Bucket: "bucket"})
	require.NoError(t, err)
	assert.Equal(t, "bucket", c.bucket)
	assert.True(t, api.madeBucket)
}

func TestNewClientWithAPI_Errors(t *testing.T) {
	tests := []struct {
		name string
		api  *fakeMinio
	}{
		{name: "bucket exists error", api: &fakeMinio{bucketExistsErr: errors.New("boom")}},
		{name: "make bucket error", api: &fakeMinio{makeBucketErr: errors.New("fail")}},
		{name: "policy error", api: &fakeMinio{bucketExists: true, policyErr: errors.New("denied")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClientWithAPI(context.Background(), tt.api, Options{Bucket: "bucket"})
			assert.Nil(t, c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to ensure bucket exists")
		})
	}
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{}
		c := newTestClient(t, api)
		err := c.Upload(ctx, "k.jpg", bytes.NewReader([]byte("data")), 4, "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, "k.jpg", api.putKey)
		assert.Equal(t, int64(4), api.putSize)
		assert.Equal(t, "image/jpeg", api.putOpts.ContentType)
		assert.Equal(t, []byte("data"), api.putData)
	})

	t.Run("error", func(t *testing.T) {
		api := &fakeMinio{putErr: errors.New("put-fail")}
		c := newTestClient(t, api)
		err := c.Upload(ctx, "k", bytes.NewReader([]byte("data")), 4, "image/jpeg")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{}
		c := newTestClient(t, api)
		require.NoError(t, c.Delete(ctx, "k"))
		assert.Equal(t, []string{"k"}, api.removed)
	})

	t.Run("error", func(t *testing.T) {
		api := &fakeMinio{removeErr: errors.New("remove-fail")}
		c := newTestClient(t, api)
		err := c.Delete(ctx, "k")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete object")
	})
}

func TestClient_MakePublic(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{}
		c := newTestClient(t, api)
		require.NoError(t, c.MakePublic(ctx, "k.jpg"))
		assert.Equal(t, "k.jpg", api.taggedKey)
		assert.Equal(t, map[string]string{"visibility": "public"}, api.tags)
	})

	t.Run("error", func(t *testing.T) {
		api := &fakeMinio{taggingErr: errors.New("tag-fail")}
		c := newTestClient(t, api)
		err := c.MakePublic(ctx, "k.jpg")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to make object public")
	})
}

func TestClient_PublicURL(t *testing.T) {
	c := newTestClient(t, &fakeMinio{})
	assert.Equal(t, "https://storage.example.com/b/u1_c1_1700000000000.jpg", c.PublicURL("u1_c1_1700000000000.jpg"))

	plain, err := NewClientWithAPI(context.Background(), &fakeMinio{bucketExists: true}, Options{Bucket: "imgs", PublicHost: "localhost:9000"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/imgs/a.jpg", plain.PublicURL("a.jpg"))
}

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "public url", url: "https://storage.example.com/b/u1_c1_1.jpg", want: "u1_c1_1.jpg"},
		{name: "trailing query", url: "https://storage.example.com/b/k.jpg?x=1", want: "k.jpg"},
		{name: "bare key", url: "k.jpg", want: "k.jpg"},
		{name: "no path", url: "https://storage.example.com", wantErr: true},
		{name: "root path", url: "https://storage.example.com/", wantErr: true},
		{name: "bad url", url: "://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KeyFromURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	c := newTestClient(t, &fakeMinio{})
	key, err := c.KeyFromURL(c.PublicURL("round_trip.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "round_trip.jpg", key)
}
