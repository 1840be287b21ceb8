// ABOUTME: Tests for media key, URL and upload helpers.
// ABOUTME: Uses an in-memory uploader; no network access.
package media

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/hoops/internal/config"
	"github.com/harperreed/hoops/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memUploader struct {
	key         string
	contentType string
	body        string
}

func (m *memUploader) Upload(_ context.Context, key, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.key, m.contentType, m.body = key, contentType, string(data)
	return "https://cdn.example.com/" + key, nil
}

func TestEndpoint(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MediaConfig
		want string
	}{
		{"r2 account", config.MediaConfig{AccountID: "abc123"}, "https://abc123.r2.cloudflarestorage.com"},
		{"explicit wins", config.MediaConfig{AccountID: "abc123", Endpoint: "http://localhost:9000/"}, "http://localhost:9000"},
		{"nothing", config.MediaConfig{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Endpoint(tt.cfg))
		})
	}
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/sessions/a.mp4",
		PublicURL("https://cdn.example.com/", "", "clips", "/sessions/a.mp4"))
	assert.Equal(t, "http://localhost:9000/clips/sessions/a.mp4",
		PublicURL("", "http://localhost:9000", "clips", "sessions/a.mp4"))
}

func TestObjectKey(t *testing.T) {
	date := models.MustParseDate("2024-06-03")

	key := ObjectKey(date, "/tmp/Practice.MP4")
	assert.True(t, strings.HasPrefix(key, "sessions/2024-06-03/"), key)
	assert.True(t, strings.HasSuffix(key, ".mp4"), key)
	assert.Len(t, strings.TrimSuffix(strings.TrimPrefix(key, "sessions/2024-06-03/"), ".mp4"), 36)

	assert.NotEqual(t, key, ObjectKey(date, "/tmp/Practice.MP4"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "video/mp4", ContentType("clip.mp4"))
	assert.Equal(t, "video/quicktime", ContentType("CLIP.MOV"))
	assert.Equal(t, "application/octet-stream", ContentType("clip"))
}

func TestUploadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shootaround.mp4")
	require.NoError(t, os.WriteFile(path, []byte("frames"), 0600))

	up := &memUploader{}
	url, err := UploadFile(context.Background(), up, models.MustParseDate("2024-06-05"), path)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/"+up.key, url)
	assert.Equal(t, "video/mp4", up.contentType)
	assert.Equal(t, "frames", up.body)

	_, err = UploadFile(context.Background(), up, models.MustParseDate("2024-06-05"), filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)
}

func TestNewR2UploaderNotConfigured(t *testing.T) {
	_, err := NewR2Uploader(context.Background(), config.MediaConfig{Bucket: "clips"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
