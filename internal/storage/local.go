package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stages previews on the gateway's own disk; the router serves
// them back under the configured URL prefix.
type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	_ = ctx

	key, _, err := previewKey(in)
	if err != nil {
		return PutResult{}, err
	}

	dst := filepath.Join(l.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return PutResult{}, err
	}

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return PutResult{}, err
	}
	defer f.Close()

	// The declared size is checked up front; the copy is capped anyway
	// in case the declaration lied.
	n, err := io.Copy(f, io.LimitReader(r, MaxPreviewSize+1))
	if err != nil {
		os.Remove(dst)
		return PutResult{}, err
	}
	if n > MaxPreviewSize {
		os.Remove(dst)
		return PutResult{}, ErrTooLarge
	}

	url := strings.TrimRight(l.URLPrefix, "/") + "/" + key
	return PutResult{Key: key, URL: url}, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	_ = ctx
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return fmt.Errorf("invalid staging key %q", key)
	}
	return os.Remove(filepath.Join(l.BaseDir, filepath.FromSlash(key)))
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
