package storage

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestLocalUploader_Upload(t *testing.T) {
	dir := t.TempDir()
	u := NewLocalUploader(dir, "http://localhost:8080/")
	data := pngBytes(t)

	url, err := u.Upload(context.Background(), File{
		Owner:    uuid.New(),
		Kind:     KindCover,
		Filename: "Cover.PNG",
		Size:     int64(len(data)),
		Content:  bytes.NewReader(data),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/covers/cover_"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	saved, err := os.ReadFile(filepath.Join(dir, "covers", filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, data, saved)
}

func TestLocalUploader_Rejects(t *testing.T) {
	data := pngBytes(t)
	tests := []struct {
		name string
		file File
		max  int64
		want error
	}{
		{"empty", File{Kind: KindImage, Filename: "a.png", Content: bytes.NewReader(nil)}, DefaultMaxSize, ErrEmptyFile},
		{"declared too large", File{Kind: KindImage, Filename: "a.png", Size: DefaultMaxSize + 1, Content: bytes.NewReader(data)}, DefaultMaxSize, ErrTooLarge},
		{"actual too large", File{Kind: KindImage, Filename: "a.png", Size: 1, Content: bytes.NewReader(data)}, 10, ErrTooLarge},
		{"bad extension", File{Kind: KindImage, Filename: "a.gif", Size: int64(len(data)), Content: bytes.NewReader(data)}, DefaultMaxSize, ErrUnsupportedType},
		{"content mismatch", File{Kind: KindImage, Filename: "a.jpg", Size: int64(len(data)), Content: bytes.NewReader(data)}, DefaultMaxSize, ErrUnsupportedType},
		{"not an image", File{Kind: KindImage, Filename: "a.png", Size: 5, Content: strings.NewReader("hello")}, DefaultMaxSize, ErrUnsupportedType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewLocalUploader(t.TempDir(), "")
			u.MaxSize = tt.max
			_, err := u.Upload(context.Background(), tt.file)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
