// Package testutil provides a harness for running full atlas builds from
// request files inside a temporary directory.
package testutil

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Terria-K/cluttered/internal/app"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Result    *app.Result
	// Dir is the temporary root every fixture was written under.
	Dir string
}

// Fixtures describes the files of one integration test. Paths are relative
// to the temporary root.
type Fixtures struct {
	// Files are text files; common indentation is removed before writing.
	Files map[string]string
	// Images are written as PNG.
	Images map[string]image.Image
	// Raw files are written unchanged.
	Raw map[string][]byte
}

// RunIntegrationTest provides a standardized harness for running integration
// tests using a default background context.
func RunIntegrationTest(t *testing.T, fixtures Fixtures, requestFile string) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, fixtures, requestFile)
}

// RunIntegrationTestWithContext writes the fixtures to a temporary root and
// runs the app against the request file at requestFile inside it.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, fixtures Fixtures, requestFile string) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range fixtures.Files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(unindent(content)), 0o644))
	}
	for name, data := range fixtures.Raw {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
	for name, img := range fixtures.Images {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())
	}

	appConfig, err := app.NewConfig(app.Config{
		ConfigPath: filepath.Join(tmpDir, requestFile),
		LogLevel:   "debug",
		LogFormat:  "text",
	})
	require.NoError(t, err)

	logBuffer := &app.SafeBuffer{}
	testApp := app.NewApp(logBuffer, appConfig)
	res, runErr := testApp.Run(ctx)

	if os.Getenv("CLUTTERED_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Result:    res,
		Dir:       tmpDir,
	}
}

// Path joins elem onto the harness root.
func (r *HarnessResult) Path(elem ...string) string {
	return filepath.Join(append([]string{r.Dir}, elem...)...)
}
