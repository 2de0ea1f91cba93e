package discovery

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/Terria-K/cluttered/internal/atlas"
	"github.com/Terria-K/cluttered/internal/config"
	"github.com/Terria-K/cluttered/internal/ctxlog"
	"github.com/Terria-K/cluttered/internal/fsutil"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

// Asset is one packable image with its logical name.
type Asset struct {
	Name      string
	Image     *image.NRGBA
	NinePatch *atlas.Rect
}

// source is a recognized file together with the root it was found under.
type source struct {
	root string
	path string
}

// Discover returns the assets of every recognized file under req.Folders,
// in folder order and lexical walk order within a folder. Files that fail
// to decode are logged and skipped. When two assets share a name the later
// one wins and the earlier one is dropped.
func Discover(ctx context.Context, req *config.Request) ([]Asset, error) {
	logger := ctxlog.FromContext(ctx)

	sources, err := walk(ctx, req)
	if err != nil {
		return nil, err
	}
	logger.Debug("Source files collected.", "count", len(sources))

	results := make([][]Asset, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			assets, err := load(gctx, req, src)
			if err != nil {
				logger.Warn("Skipping unreadable image.", "path", src.path, "error", err)
				return nil
			}
			results[i] = assets
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("discovery interrupted: %w", err)
	}

	return dedupe(ctx, results), nil
}

func walk(ctx context.Context, req *config.Request) ([]source, error) {
	logger := ctxlog.FromContext(ctx)
	exts := extensions(req)

	var sources []source
	for _, root := range req.Folders {
		files, err := fsutil.FindFilesByExtension(root, exts...)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("Input folder does not exist, skipping.", "folder", root)
				continue
			}
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
		for _, f := range files {
			sources = append(sources, source{root: root, path: f})
		}
	}
	return sources, nil
}

// extensions lists the recognized source extensions for req.
func extensions(req *config.Request) []string {
	exts := []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp", ".qoi"}
	if req.MultiFrame {
		exts = append(exts, ".aseprite", ".ase")
	}
	return exts
}

// load decodes one source file into its assets.
func load(ctx context.Context, req *config.Request, src source) ([]Asset, error) {
	name, err := logicalName(src.root, src.path, req.ShowExtension)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Info("Found image", "path", src.path, "name", name)

	frames, err := decodeFrames(src.path, req.MultiFrame)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, errors.New("file has no frames")
	}

	var np *atlas.Rect
	if req.NinePatch {
		np = readNinePatch(ctx, src.path)
	}

	if len(frames) == 1 {
		return []Asset{newAsset(name, frames[0], np)}, nil
	}
	if req.MultiFrameMode == config.SingleSheet {
		return []Asset{newAsset(name, tile(frames), np)}, nil
	}
	assets := make([]Asset, 0, len(frames))
	for i, frame := range frames {
		assets = append(assets, newAsset(name+"/"+strconv.Itoa(i), frame, np))
	}
	return assets, nil
}

// newAsset attaches np only when it lies inside img.
func newAsset(name string, img *image.NRGBA, np *atlas.Rect) Asset {
	a := Asset{Name: name, Image: img}
	if np != nil {
		size := img.Bounds().Size()
		if np.Fits(size.X, size.Y) {
			r := *np
			a.NinePatch = &r
		}
	}
	return a
}

// logicalName derives the frame name of file p found under root.
func logicalName(root, p string, showExtension bool) (string, error) {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve name of %s: %w", p, err)
	}
	name := strings.TrimPrefix(atlas.SlashPath(rel), "./")
	if !showExtension {
		name = strings.TrimSuffix(name, path.Ext(name))
	}
	return norm.NFC.String(name), nil
}

// dedupe flattens per-file results and keeps only the last asset of each name.
func dedupe(ctx context.Context, results [][]Asset) []Asset {
	logger := ctxlog.FromContext(ctx)

	var all []Asset
	for _, assets := range results {
		all = append(all, assets...)
	}

	last := make(map[string]int, len(all))
	for i, a := range all {
		if prev, ok := last[a.Name]; ok {
			logger.Warn("Duplicate frame name, keeping the later image.", "name", a.Name, "dropped_index", prev)
		}
		last[a.Name] = i
	}

	out := make([]Asset, 0, len(last))
	for i, a := range all {
		if last[a.Name] == i {
			out = append(out, a)
		}
	}
	return out
}

// exists reports whether a regular file exists at p.
func exists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
