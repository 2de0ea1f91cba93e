package discovery

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/Terria-K/cluttered/internal/atlas"
	"github.com/Terria-K/cluttered/internal/ctxlog"
	"github.com/Terria-K/cluttered/internal/ron"
)

// readNinePatch reads the sidecar of the image at p. A .json sidecar takes
// precedence over a .ron one; a sidecar that fails to parse yields nil.
func readNinePatch(ctx context.Context, p string) *atlas.Rect {
	logger := ctxlog.FromContext(ctx)
	base := strings.TrimSuffix(p, filepath.Ext(p))

	for _, sc := range []struct {
		ext       string
		unmarshal func([]byte, any) error
	}{
		{ext: ".json", unmarshal: json.Unmarshal},
		{ext: ".ron", unmarshal: ron.Unmarshal},
	} {
		sidecar := base + sc.ext
		if !exists(sidecar) {
			continue
		}
		data, err := os.ReadFile(sidecar)
		if err != nil {
			logger.Warn("Failed to read nine-patch sidecar.", "path", sidecar, "error", err)
			return nil
		}
		var r atlas.Rect
		if err := sc.unmarshal(data, &r); err != nil {
			logger.Warn("Ignoring malformed nine-patch sidecar.", "path", sidecar, "error", err)
			return nil
		}
		logger.Debug("Nine-patch sidecar loaded.", "path", sidecar, "rect", r)
		return &r
	}
	return nil
}
