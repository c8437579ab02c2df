package snapshot

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "data.json"))

	_, err := store.Load()

	assert.Equal(t, ErrNoSnapshot, err)
}

func TestFileStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewFileStore(path)

	balances := map[string]float64{
		"1001": 500.00,
		"1002": 1000.00,
		"1003": 250.00,
	}

	err := store.Save(balances)
	assert.NoError(t, err)

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, balances, loaded)
}

func TestFileStoreSaveOverwritesWholeState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewFileStore(path)

	assert.NoError(t, store.Save(map[string]float64{"1001": 500, "1002": 1000}))
	assert.NoError(t, store.Save(map[string]float64{"1001": 450}))

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, map[string]float64{"1001": 450}, loaded)
}

func TestFileStoreSaveLeavesNoTmpFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewFileStore(path)

	assert.NoError(t, store.Save(map[string]float64{"1001": 500}))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreRecordShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewFileStore(path)

	assert.NoError(t, store.Save(map[string]float64{"1001": 500.5}))

	b, err := ioutil.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(b), `"1001"`)
	assert.Contains(t, string(b), `"id": "1001"`)
	assert.Contains(t, string(b), `"balance": 500.5`)
}

func TestFileStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	assert.NoError(t, ioutil.WriteFile(path, []byte("{not json"), 0644))

	store := NewFileStore(path)

	_, err := store.Load()
	assert.Error(t, err)
	assert.NotEqual(t, ErrNoSnapshot, err)
}
