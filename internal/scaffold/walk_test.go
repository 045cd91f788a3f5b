package scaffold

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"TemplateReplace.XComMod":               "",
		"Config/XComGame.ini":                   "",
		"Src/TemplateReplace/Classes/Screen.uc": "",
		"Localization/TemplateReplace.int":      "",
		"Content/TemplateReplace_Assets.upk":    "",
	})
	require.NoError(t, os.Mkdir(filepath.Join(root, "Empty"), 0755))

	refs, err := Discover(root)
	require.NoError(t, err)

	var paths []string
	for _, r := range refs {
		rel, err := filepath.Rel(root, r.Path())
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
	}
	sort.Strings(paths)
	assert.Equal(t, []string{
		"Config/XComGame.ini",
		"Content/TemplateReplace_Assets.upk",
		"Localization/TemplateReplace.int",
		"Src/TemplateReplace/Classes/Screen.uc",
		"TemplateReplace.XComMod",
	}, paths)
}

func TestDiscoverSplitsDirAndName(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"Config/XComGame.ini": ""})

	refs, err := Discover(root)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, filepath.Join(root, "Config"), refs[0].Dir)
	assert.Equal(t, "XComGame.ini", refs[0].Name)
}
