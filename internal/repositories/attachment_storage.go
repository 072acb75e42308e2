package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AanchalGupta0502/SocialeX/pkg/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// AttachmentStorage hands out direct-upload URLs for chat files.
type AttachmentStorage interface {
	PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
	PublicURL(key string) string
}

type S3AttachmentStorage struct {
	client        *s3.Client
	presigner     *s3.PresignClient
	bucket        string
	publicBaseURL string
}

// NewS3AttachmentStorage builds a client for any S3-compatible endpoint
// using static credentials.
func NewS3AttachmentStorage(cfg config.S3Config) *S3AttachmentStorage {
	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.PublicBaseURL
	if base == "" {
		if cfg.Endpoint != "" {
			base = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &S3AttachmentStorage{
		client:        client,
		presigner:     s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
	}
}

func (s *S3AttachmentStorage) PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}

func (s *S3AttachmentStorage) PublicURL(key string) string {
	return s.publicBaseURL + "/" + key
}
