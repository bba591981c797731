package osext

import (
	"github.com/stretchr/testify/assert"
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "model.h5")
	err := os.WriteFile(file, []byte{1, 2, 3}, 0644)
	assert.NoError(t, err)
	assert.True(t, FileExists(dir))  // directory
	assert.True(t, FileExists(file)) // file
	assert.False(t, FileExists(filepath.Join(dir, "notexisting.h5")))
}

func TestIsDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "model.h5")
	err := os.WriteFile(file, []byte{1, 2, 3}, 0644)
	assert.NoError(t, err)
	assert.True(t, IsDirectory(dir))   // directory
	assert.False(t, IsDirectory(file)) // file
	assert.False(t, IsDirectory(filepath.Join(dir, "notexisting")))
}

func TestListFileNames(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "model.h5"), []byte{1}, 0644)
	assert.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "helpers.py"), []byte("pass"), 0644)
	assert.NoError(t, err)
	err = os.Mkdir(filepath.Join(dir, "sub"), 0755)
	assert.NoError(t, err)
	names, err := ListFileNames(dir)
	assert.NoError(t, err)
	assert.Equal(t, []string{"helpers.py", "model.h5"}, names)
}
