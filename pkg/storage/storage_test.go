package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPut(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := Local{Dir: dir}

	err := store.Put(context.Background(), "photo_abc.jpg", strings.NewReader("jpeg"), 4, "image/jpeg")
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "photo_abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(b))
}

func TestLocalPutRejectsPaths(t *testing.T) {
	store := Local{Dir: t.TempDir()}
	err := store.Put(context.Background(), "../escape.jpg", strings.NewReader("x"), 1, "image/jpeg")
	assert.Error(t, err)
}
