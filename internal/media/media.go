// ABOUTME: Uploads session video clips to S3-compatible object storage.
// ABOUTME: Cloudflare R2 by account ID, or any S3 endpoint; returns the public URL.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/harperreed/hoops/internal/config"
	"github.com/harperreed/hoops/internal/models"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when media settings are incomplete.
var ErrNotConfigured = errors.New("media storage not configured")

// Uploader stores an object and returns the URL it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// R2Uploader talks to Cloudflare R2 or another S3-compatible store.
type R2Uploader struct {
	client   *s3.Client
	bucket   string
	endpoint string
	baseURL  string
	logger   *zap.Logger
}

// Endpoint returns the S3 endpoint for cfg: the explicit endpoint if set,
// otherwise the R2 endpoint for the account.
func Endpoint(cfg config.MediaConfig) string {
	if cfg.Endpoint != "" {
		return strings.TrimSuffix(cfg.Endpoint, "/")
	}
	if cfg.AccountID == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
}

// NewR2Uploader builds an uploader with static credentials.
func NewR2Uploader(ctx context.Context, cfg config.MediaConfig, logger *zap.Logger) (*R2Uploader, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	endpoint := Endpoint(cfg)

	sdkCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("load object storage config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Uploader{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: endpoint,
		baseURL:  cfg.PublicBaseURL,
		logger:   logger,
	}, nil
}

// Upload puts body under key and returns its public URL.
func (u *R2Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload object %s: %w", key, err)
	}
	u.logger.Debug("uploaded object", zap.String("bucket", u.bucket), zap.String("key", key))
	return PublicURL(u.baseURL, u.endpoint, u.bucket, key), nil
}

// PublicURL joins key onto baseURL. Without a public base URL it falls back
// to the path-style object URL on the endpoint.
func PublicURL(baseURL, endpoint, bucket, key string) string {
	key = strings.TrimPrefix(key, "/")
	if baseURL != "" {
		return strings.TrimSuffix(baseURL, "/") + "/" + key
	}
	return strings.TrimSuffix(endpoint, "/") + "/" + bucket + "/" + key
}

// ObjectKey returns a unique key for a clip recorded on date.
func ObjectKey(date models.Date, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("sessions/%s/%s%s", date, uuid.New().String(), ext)
}

var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".webm": "video/webm",
}

// ContentType guesses a MIME type from the file extension.
func ContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := videoTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// UploadFile uploads a local clip for the session on date.
func UploadFile(ctx context.Context, u Uploader, date models.Date, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open video: %w", err)
	}
	defer f.Close()

	return u.Upload(ctx, ObjectKey(date, path), ContentType(path), f)
}
