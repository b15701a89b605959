package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

var allowedImages = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// LocalUploader writes files below Dir/<kind> and serves them from
// BaseURL + "/uploads/<kind>/".
type LocalUploader struct {
	Dir     string
	BaseURL string
	MaxSize int64
}

func NewLocalUploader(dir, baseURL string) *LocalUploader {
	return &LocalUploader{
		Dir:     dir,
		BaseURL: strings.TrimRight(baseURL, "/"),
		MaxSize: DefaultMaxSize,
	}
}

func (u *LocalUploader) Upload(ctx context.Context, f File) (string, error) {
	if f.Content == nil || f.Size == 0 {
		return "", ErrEmptyFile
	}
	if f.Size > u.MaxSize {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(f.Filename))
	want, ok := allowedImages[ext]
	if !ok {
		return "", ErrUnsupportedType
	}

	data, err := io.ReadAll(io.LimitReader(f.Content, u.MaxSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if int64(len(data)) > u.MaxSize {
		return "", ErrTooLarge
	}
	// the extension must match the actual content
	if !mimetype.Detect(data).Is(want) {
		return "", ErrUnsupportedType
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(u.Dir, string(f.Kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%d%s", prefixFor(f.Kind), f.Owner, time.Now().UnixNano(), ext)
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	return u.BaseURL + "/uploads/" + string(f.Kind) + "/" + filename, nil
}

func prefixFor(k Kind) string {
	if k == KindCover {
		return "cover"
	}
	return "img"
}
