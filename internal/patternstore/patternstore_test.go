package patternstore_test

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optilab/voxelstore"
	"github.com/optilab/voxelstore/internal/patternstore"
	"github.com/optilab/voxelstore/pkg/pattern"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func openStore(t *testing.T) *patternstore.Store {
	t.Helper()
	store, err := patternstore.Open(t.TempDir(), quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func writePattern(t *testing.T, payload []byte) *pattern.StoragePattern {
	t.Helper()
	cfg := voxelstore.DefaultConfig()
	cfg.GridSize = [3]int{16, 16, 2}
	w, err := voxelstore.NewWriter(cfg)
	require.NoError(t, err)
	p, err := w.Write(payload)
	require.NoError(t, err)
	return p
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openStore(t)
	payload := []byte("persisted lattice")
	p := writePattern(t, payload)

	require.NoError(t, store.Put("sample", p))

	restored, err := store.Get("sample")
	require.NoError(t, err)
	assert.Equal(t, p.GridSize, restored.GridSize)
	assert.Equal(t, p.Voxels, restored.Voxels)
	assert.Equal(t, p.DataLengthBytes, restored.DataLengthBytes)
	assert.Equal(t, p.Scheme.Name(), restored.Scheme.Name())

	// The restored pattern must still decode to the original payload.
	r, err := voxelstore.NewReader(restored)
	require.NoError(t, err)
	result, err := r.Read(nil)
	require.NoError(t, err)
	assert.Equal(t, payload, result.Data)
}

func TestGetMissingPattern(t *testing.T) {
	store := openStore(t)
	_, err := store.Get("nope")
	assert.ErrorIs(t, err, patternstore.ErrNotFound)
}

func TestPutEmptyNameRejected(t *testing.T) {
	store := openStore(t)
	assert.Error(t, store.Put("", writePattern(t, []byte("x"))))
}

func TestListAndDelete(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.Put("alpha", writePattern(t, []byte("a"))))
	require.NoError(t, store.Put("beta", writePattern(t, []byte("b"))))

	names, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, names)

	require.NoError(t, store.Delete("alpha"))
	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, names)

	// Deleting a missing name is a no-op.
	assert.NoError(t, store.Delete("ghost"))
}
