package blob

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/billmate/billmate/internal/config"
)

func newTestStore(t *testing.T, maxBytes int64) *Store {
	t.Helper()
	cfg := config.Config{
		Upload: config.Upload{
			Dir:          t.TempDir(),
			PublicPath:   "/uploads",
			MaxBytes:     maxBytes,
			AllowedTypes: []string{"image/jpeg", "image/jpg", "image/png", "image/gif"},
		},
	}
	store, err := NewStore(cfg, zap.NewNop())
	require.NoError(t, err)
	return store
}

// fileHeader builds a real multipart.FileHeader by round-tripping a form body.
func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="billUpload"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(64 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["billUpload"]
	require.Len(t, files, 1)
	return files[0]
}

func TestStore_SaveJPEG(t *testing.T) {
	store := newTestStore(t, 30<<20)
	content := []byte("fake jpeg bytes")

	att, err := store.Save(context.Background(), fileHeader(t, "bill.jpg", "image/jpeg", content))
	require.NoError(t, err)

	require.Equal(t, "image/jpeg", att.Mimetype)
	require.Equal(t, int64(len(content)), att.Size)
	require.True(t, strings.HasSuffix(att.Filename, ".jpg"))

	stored, err := os.ReadFile(att.Path)
	require.NoError(t, err)
	require.Equal(t, content, stored)
}

func TestStore_GeneratedNamesDoNotCollide(t *testing.T) {
	store := newTestStore(t, 30<<20)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		att, err := store.Save(context.Background(), fileHeader(t, "bill.png", "image/png", []byte("png")))
		require.NoError(t, err)
		require.False(t, seen[att.Filename], "duplicate generated name %s", att.Filename)
		seen[att.Filename] = true
	}
}

func TestStore_RejectsUnsupportedMediaType(t *testing.T) {
	store := newTestStore(t, 30<<20)

	_, err := store.Save(context.Background(), fileHeader(t, "bill.txt", "text/plain", []byte("hello")))
	require.ErrorIs(t, err, ErrUnsupportedMediaType)

	entries, readErr := os.ReadDir(storeDir(t, store))
	require.NoError(t, readErr)
	require.Empty(t, entries)
}

func TestStore_RejectsOversizedUpload(t *testing.T) {
	store := newTestStore(t, 16)

	_, err := store.Save(context.Background(), fileHeader(t, "bill.jpg", "image/jpeg", bytes.Repeat([]byte("x"), 17)))
	require.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestStore_JPGAliasAccepted(t *testing.T) {
	store := newTestStore(t, 30<<20)

	att, err := store.Save(context.Background(), fileHeader(t, "bill.jpeg", "image/jpg", []byte("jpg")))
	require.NoError(t, err)
	require.Equal(t, "image/jpg", att.Mimetype)
}

func storeDir(t *testing.T, s *Store) string {
	t.Helper()
	return filepath.Clean(s.dir)
}
