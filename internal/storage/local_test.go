package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocal_PutAndDelete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	l := NewLocal(dir, "/uploads/")
	ctx := context.Background()

	res, err := l.Put(ctx, strings.NewReader("png-bytes"), PutInput{
		Filename:    "mug.PNG",
		ContentType: "image/png",
		Size:        9,
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(res.Key, "previews/"), "staged under the preview prefix")
	require.True(t, strings.HasSuffix(res.Key, ".png"), "extension is lowercased")
	require.Equal(t, "/uploads/"+res.Key, res.URL)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(res.Key)))
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))

	require.NoError(t, l.Delete(ctx, res.Key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(res.Key)))
	require.True(t, os.IsNotExist(err))
}

func TestLocal_RejectsNonImage(t *testing.T) {
	t.Parallel()

	l := NewLocal(t.TempDir(), "/uploads")
	_, err := l.Put(context.Background(), strings.NewReader("x"), PutInput{Filename: "evil.sh"})
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLocal_RejectsMismatchedContentType(t *testing.T) {
	t.Parallel()

	l := NewLocal(t.TempDir(), "/uploads")
	_, err := l.Put(context.Background(), strings.NewReader("x"), PutInput{
		Filename:    "page.png",
		ContentType: "text/html",
	})
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLocal_RejectsDeclaredOversize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")
	_, err := l.Put(context.Background(), strings.NewReader("x"), PutInput{
		Filename: "big.png",
		Size:     MaxPreviewSize + 1,
	})
	require.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "nothing staged for a rejected upload")
}

func TestLocal_DeleteRejectsPathTraversal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")

	outside := filepath.Join(dir, "..", "victim")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	require.Error(t, l.Delete(context.Background(), "../victim"))
	require.Error(t, l.Delete(context.Background(), "/etc/passwd"))

	_, statErr := os.Stat(outside)
	require.NoError(t, statErr, "file outside the base dir survives")
}
