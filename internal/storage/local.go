package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local 把对象写入本地上传目录，并通过静态路由对外提供访问。
type Local struct {
	dir     string
	urlPath string
}

// NewLocal creates the upload directory if needed.
func NewLocal(dir, urlPath string) (*Local, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	urlPath = "/" + strings.Trim(strings.TrimSpace(urlPath), "/")
	return &Local{dir: dir, urlPath: urlPath}, nil
}

// Dir returns the root directory served for uploads.
func (l *Local) Dir() string {
	return l.dir
}

// Put writes body to <dir>/<key>.
func (l *Local) Put(ctx context.Context, key string, body io.Reader, _ string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}

	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(file, body); err != nil {
		file.Close()
		os.Remove(target)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return l.PublicURL(key), nil
}

// Delete removes the object; a missing file yields ErrObjectNotFound.
func (l *Local) Delete(_ context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(l.dir, filepath.FromSlash(key))); err != nil {
		if os.IsNotExist(err) {
			return ErrObjectNotFound
		}
		return err
	}
	return nil
}

// PublicURL joins the URL prefix and key.
func (l *Local) PublicURL(key string) string {
	return strings.TrimSuffix(l.urlPath, "/") + "/" + strings.TrimPrefix(key, "/")
}
