package app

import (
	"context"
	"fmt"

	"github.com/Terria-K/cluttered/internal/atlas"
	"github.com/Terria-K/cluttered/internal/compositor"
	"github.com/Terria-K/cluttered/internal/config"
	"github.com/Terria-K/cluttered/internal/ctxlog"
	"github.com/Terria-K/cluttered/internal/discovery"
	"github.com/Terria-K/cluttered/internal/encoder"
	"github.com/Terria-K/cluttered/internal/packer"
)

// Result describes the files produced by one build.
type Result struct {
	SheetPath  string
	Width      int
	Height     int
	Descriptor *atlas.Descriptor
	Artifacts  []string
}

// Run executes the main application logic: it resolves the build request
// and runs the atlas pipeline.
func (a *App) Run(ctx context.Context) (*Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	req := a.config.Request
	if a.config.ConfigPath != "" {
		loaded, err := a.loaders.Load(ctx, a.config.ConfigPath)
		if err != nil {
			return nil, err
		}
		req = loaded
	}

	res, err := Build(ctx, req)
	if err != nil {
		return nil, err
	}
	a.logger.Info("🏁 Atlas build finished.", "sheet", res.SheetPath, "frames", res.Descriptor.Len(), "artifacts", len(res.Artifacts))
	return res, nil
}

// Build runs discovery, packing, compositing and encoding for req.
func Build(ctx context.Context, req *config.Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ctx, logger := ctxlog.With(ctx, "atlas", req.Name)
	logger.Debug("Build request validated.", "name", req.Name, "output", req.OutputDir, "max_size", req.MaxSize)

	encoders, err := encoder.ForRequest(req)
	if err != nil {
		return nil, err
	}

	assets, err := discovery.Discover(ctx, req)
	if err != nil {
		return nil, err
	}
	logger.Info("Discovery finished.", "assets", len(assets))

	items := make([]packer.Item, len(assets))
	for i, a := range assets {
		size := a.Image.Bounds().Size()
		items[i] = packer.Item{W: size.X, H: size.Y}
	}
	layout, err := packer.Pack(items, req.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %d images within %dx%d: %w", len(items), req.MaxSize, req.MaxSize, err)
	}
	logger.Info("Packed images.", "width", layout.Width, "height", layout.Height)

	blits := make([]compositor.Blit, len(assets))
	for i, a := range assets {
		p := layout.Placements[i]
		blits[i] = compositor.Blit{Image: a.Image, X: p.X, Y: p.Y}
	}
	canvas, err := compositor.Composite(layout.Width, layout.Height, blits)
	if err != nil {
		return nil, err
	}
	sheetPath, err := compositor.Save(req.OutputDir, req.Name, req.ImageFormat, canvas)
	if err != nil {
		return nil, err
	}
	logger.Info("Wrote sheet.", "path", sheetPath)

	d := atlas.New(sheetPath)
	for i, a := range assets {
		p := layout.Placements[i]
		d.Add(a.Name, atlas.Frame{
			X:         uint32(p.X),
			Y:         uint32(p.Y),
			Width:     uint32(p.W),
			Height:    uint32(p.H),
			NinePatch: a.NinePatch,
		})
	}

	written, err := encoder.WriteAll(ctx, encoders, d, req)
	if err != nil {
		return nil, err
	}

	return &Result{
		SheetPath:  sheetPath,
		Width:      layout.Width,
		Height:     layout.Height,
		Descriptor: d,
		Artifacts:  written,
	}, nil
}
