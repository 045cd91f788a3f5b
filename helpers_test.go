package devtools

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xcom-modding/xcom-devtools/internal/sdk"
)

// fakeTerminal records commands instead of running them. onSend, if set,
// runs in the background like the process would.
type fakeTerminal struct {
	lock   sync.Mutex
	sent   []sdk.Command
	err    error
	onSend func(sdk.Command)
}

func (f *fakeTerminal) Send(_ context.Context, c sdk.Command) error {
	f.lock.Lock()
	f.sent = append(f.sent, c)
	f.lock.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.onSend != nil {
		go f.onSend(c)
	}
	return nil
}

func (f *fakeTerminal) commands() []sdk.Command {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]sdk.Command(nil), f.sent...)
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func newLayout(t *testing.T) sdk.Layout {
	t.Helper()
	return sdk.Layout{SDKPath: t.TempDir(), GamePath: t.TempDir()}
}

func newWorkspace(t *testing.T, name string, files map[string]string) *Workspace {
	t.Helper()
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{name + ".code-workspace": `{"folders":[{"path":"."}]}`})
	writeTree(t, dir, files)
	ws, err := OpenWorkspace(dir)
	require.NoError(t, err)
	return ws
}
