package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// LocalStorage writes files below a root directory and serves them from
// baseURL (for example a static route on the API).
type LocalStorage struct {
	root    string
	baseURL string
	logger  *zap.Logger
}

func NewLocalStorage(root, baseURL string, logger ...*zap.Logger) (*LocalStorage, error) {
	if root == "" {
		return nil, errors.New("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	l := zap.L().Named("storage.local")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.local")
	}

	return &LocalStorage{root: root, baseURL: strings.TrimRight(baseURL, "/"), logger: l}, nil
}

func (s *LocalStorage) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *LocalStorage) Save(ctx context.Context, key string, content io.Reader, size int64, contentType string) error {
	target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()

	written, err := io.Copy(f, content)
	if err != nil {
		_ = os.Remove(target)
		return err
	}

	s.logger.Debug("file stored", zap.String("key", key), zap.Int64("bytes", written))
	return nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStorage) URL(ctx context.Context, key string) (string, error) {
	if _, err := s.resolve(key); err != nil {
		return "", err
	}
	escaped := (&url.URL{Path: key}).EscapedPath()
	return s.baseURL + "/" + strings.TrimLeft(escaped, "/"), nil
}
