package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetKeys(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]int{1, 4, 8}, GetKeys(map[int]string{8: "a", 1: "b", 4: "c"}))
	assert.Empty(GetKeys(map[string]int{}))
}

func TestMinMaxSum(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(3, Min(3, 7))
	assert.Equal(7, Max(3, 7))
	assert.Equal(uint8(2), Min(uint8(9), uint8(2)))
	assert.Equal(uint64(10), Sum([]int{1, 2, 3, 4}))
}

func TestGatherAllMidiPaths(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	assert.NoError(os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for _, name := range []string{"a.mid", "b.txt", "nested/c.midi"} {
		assert.NoError(os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	paths, err := GatherAllMidiPaths(dir, 0)
	assert.NoError(err)
	assert.Equal([]string{filepath.Join(dir, "a.mid"), filepath.Join(dir, "nested", "c.midi")}, paths)

	paths, err = GatherAllMidiPaths(dir, 1)
	assert.NoError(err)
	assert.Len(paths, 1)

	_, err = GatherAllMidiPaths(filepath.Join(dir, "missing"), 0)
	assert.Error(err)
}
