package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.png"))
	touch(t, filepath.Join(root, "a.PNG"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "ui", "button.qoi"))
	touch(t, filepath.Join(root, "ui", "button.json"))

	files, err := FindFilesByExtension(root, ".png", ".qoi")
	require.NoError(t, err)

	want := []string{
		filepath.Join(root, "a.PNG"),
		filepath.Join(root, "b.png"),
		filepath.Join(root, "ui", "button.qoi"),
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("unexpected files (-want +got):\n%s", diff)
	}
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "missing"), ".png")
	require.Error(t, err)
}

func TestFindFilesByExtension_PanicsWithoutExtensions(t *testing.T) {
	require.Panics(t, func() {
		_, _ = FindFilesByExtension(t.TempDir())
	})
}
