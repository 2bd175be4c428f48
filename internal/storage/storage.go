// Package storage stages uploaded images so the admin UI can preview
// them before the shop backend accepts the save. Staged objects live
// under a previews/ prefix; the backend copy is the durable one and a
// periodic sweep prunes the prefix.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// MaxPreviewSize bounds a staged image. The backend enforces its own
// limit; this one keeps the staging area small.
const MaxPreviewSize = 10 << 20

const previewPrefix = "previews"

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image too large")
)

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
}

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

// previewKey checks the upload against the image slot contract and
// mints a staging key. The returned content type falls back to the one
// implied by the extension when the client did not send a usable one.
func previewKey(in PutInput) (key, contentType string, err error) {
	if in.Size > MaxPreviewSize {
		return "", "", ErrTooLarge
	}
	ext := strings.ToLower(path.Ext(in.Filename))
	ct, ok := imageTypes[ext]
	if !ok {
		return "", "", ErrUnsupportedType
	}
	if in.ContentType != "" {
		if !strings.HasPrefix(in.ContentType, "image/") {
			return "", "", ErrUnsupportedType
		}
		ct = in.ContentType
	}
	return previewPrefix + "/" + uuid.NewString() + ext, ct, nil
}
