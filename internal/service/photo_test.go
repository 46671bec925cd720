package service_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mallkiller3-ctrl/daily-health/internal/service"
)

// smallest valid PNG signature plus IHDR prefix; enough for content sniffing
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestAddPhotoFromFileStoresDataURI(t *testing.T) {
	t.Parallel()
	tr := newTestTracker(t, newTestDB(t))
	path := filepath.Join(t.TempDir(), "front.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

	photo, err := service.AddPhotoFromFile(tr, tr.Today(), path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(photo.ImageURL, "data:image/png;base64,"))

	raw, mime, err := service.DecodeDataURI(photo.ImageURL)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, pngHeader, raw)
	assert.Equal(t, ".png", service.ImageExtension(mime))
}

func TestAddPhotoFromFileRejectsNonImages(t *testing.T) {
	t.Parallel()
	tr := newTestTracker(t, newTestDB(t))
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o644))

	_, err := service.AddPhotoFromFile(tr, tr.Today(), path)
	assert.Error(t, err)
	assert.Empty(t, tr.Photos())
}

func TestDecodeDataURIErrors(t *testing.T) {
	t.Parallel()
	for _, uri := range []string{"http://x", "data:image/png;base64", "data:image/png,AAAA", "data:image/png;base64,@@@"} {
		_, _, err := service.DecodeDataURI(uri)
		assert.Error(t, err, uri)
	}
}
