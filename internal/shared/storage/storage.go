// Package storage stores uploaded documents (payment proofs, contracts,
// invoices) on local disk or on any S3 compatible object store.
package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type FileStorage interface {
	Save(ctx context.Context, key string, content io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string) (string, error)
}

// Upload is a file received by a handler, already opened.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// NewKey builds "<segments...>/<uuid><ext>" keeping only the extension of
// the client supplied file name.
func NewKey(filename string, segments ...string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	parts := append(append([]string{}, segments...), uuid.NewString()+ext)
	return path.Join(parts...)
}
