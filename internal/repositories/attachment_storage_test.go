package repositories

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/AanchalGupta0502/SocialeX/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3AttachmentStorage_PresignCustomEndpoint(t *testing.T) {
	storage := NewS3AttachmentStorage(config.S3Config{
		Bucket:          "chat-files",
		Region:          "us-east-1",
		Endpoint:        "http://127.0.0.1:9000",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
	})

	raw, err := storage.PresignUpload(context.Background(), "chats/c1/abc-a.png", "image/png", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "/chat-files/chats/c1/abc-a.png", u.Path, "path-style addressing")
	q := u.Query()
	assert.Equal(t, "900", q.Get("X-Amz-Expires"))
	assert.NotEmpty(t, q.Get("X-Amz-Signature"))
	assert.Contains(t, q.Get("X-Amz-Credential"), "minioadmin/")

	assert.Equal(t, "http://127.0.0.1:9000/chat-files/chats/c1/abc-a.png", storage.PublicURL("chats/c1/abc-a.png"))
}

func TestS3AttachmentStorage_PublicURL(t *testing.T) {
	t.Run("aws default", func(t *testing.T) {
		storage := NewS3AttachmentStorage(config.S3Config{Bucket: "b", Region: "eu-west-1", AccessKeyID: "k", SecretAccessKey: "s"})
		assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com/k1", storage.PublicURL("k1"))
	})

	t.Run("explicit base", func(t *testing.T) {
		storage := NewS3AttachmentStorage(config.S3Config{
			Bucket: "b", Region: "auto", AccessKeyID: "k", SecretAccessKey: "s",
			Endpoint: "https://acct.r2.cloudflarestorage.com", PublicBaseURL: "https://cdn.example.com/",
		})
		assert.Equal(t, "https://cdn.example.com/k1", storage.PublicURL("k1"))
	})
}
