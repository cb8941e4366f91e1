package yamlfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-games/parley/pkg/adapters/yamlfile"
)

func TestProvider(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "blacksmith.yaml", blacksmithYAML)
	writeTree(t, dir, "stable.yaml", "nodes:\n  - name: hay\n    text: The horses ignore you.\n")

	loader := yamlfile.NewLoader(dir)
	p := yamlfile.NewProvider(loader, "blacksmith")

	require.True(t, p.HasValidContent())

	main := p.MainTree()
	require.NotNil(t, main)
	assert.Equal(t, "blacksmith", main.Name())
	assert.Same(t, main, p.Tree("blacksmith"), "loaded trees are cached")

	side := p.Tree("stable")
	require.NotNil(t, side)
	assert.Same(t, side, p.Tree("stable"))

	assert.Nil(t, p.Tree("ghost"))
}

func TestProviderMissingMain(t *testing.T) {
	loader := yamlfile.NewLoader(t.TempDir())
	p := yamlfile.NewProvider(loader, "nothing")
	assert.False(t, p.HasValidContent())
	assert.Nil(t, p.MainTree())
}
