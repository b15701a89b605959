// Package storage saves images attached to gigs and returns their public URLs.
package storage

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCover Kind = "covers"
	KindImage Kind = "images"
)

const DefaultMaxSize = 5 << 20

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrTooLarge        = errors.New("file exceeds the size limit")
	ErrUnsupportedType = errors.New("unsupported image format")
)

type File struct {
	Owner    uuid.UUID
	Kind     Kind
	Filename string
	Size     int64
	Content  io.Reader
}

type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}
