package encoder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Terria-K/cluttered/internal/atlas"
	"github.com/Terria-K/cluttered/internal/config"
	"github.com/Terria-K/cluttered/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// Kind identifies an output format.
type Kind string

const (
	KindJSON     = Kind(config.EncodingJSON)
	KindRON      = Kind(config.EncodingRON)
	KindTOML     = Kind(config.EncodingTOML)
	KindBinary   = Kind(config.EncodingBinary)
	KindTemplate = Kind(config.EncodingTemplate)
	KindMsgPack  = Kind(config.EncodingMsgPack)
)

// Artifact is one file produced by an encoder.
type Artifact struct {
	Path string
	Data []byte
}

// Encoder turns a descriptor into output artifacts.
type Encoder interface {
	Kind() Kind
	Encode(d *atlas.Descriptor, req *config.Request) ([]Artifact, error)
}

// New returns the encoder for kind.
func New(kind Kind) (Encoder, error) {
	switch kind {
	case KindJSON:
		return JSON{}, nil
	case KindRON:
		return RON{}, nil
	case KindTOML:
		return TOML{}, nil
	case KindBinary:
		return Binary{}, nil
	case KindTemplate:
		return Template{}, nil
	case KindMsgPack:
		return MsgPack{}, nil
	}
	return nil, fmt.Errorf("unknown encoder kind %q", kind)
}

// ForRequest selects the encoders for req in request order. Template output
// is produced whenever it is requested or template paths are configured;
// all other kinds are skipped when normal output is disabled.
func ForRequest(req *config.Request) ([]Encoder, error) {
	var encoders []Encoder
	wantTemplate := len(req.Templates) > 0 || req.Wants(config.EncodingTemplate)
	for _, e := range req.Encodings {
		if e == config.EncodingTemplate {
			continue
		}
		if !req.AllowNormalOutput {
			continue
		}
		enc, err := New(Kind(e))
		if err != nil {
			return nil, err
		}
		encoders = append(encoders, enc)
	}
	if wantTemplate {
		encoders = append(encoders, Template{})
	}
	return encoders, nil
}

// WriteAll runs every encoder concurrently against d, then writes all
// artifacts in encoder order. It returns the written paths.
func WriteAll(ctx context.Context, encoders []Encoder, d *atlas.Descriptor, req *config.Request) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	results := make([][]Artifact, len(encoders))
	g, gctx := errgroup.WithContext(ctx)
	for i, enc := range encoders {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			artifacts, err := enc.Encode(d, req)
			if err != nil {
				return fmt.Errorf("%s encoder: %w", enc.Kind(), err)
			}
			results[i] = artifacts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var written []string
	for _, artifacts := range results {
		for _, a := range artifacts {
			if err := os.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
				return written, fmt.Errorf("failed to create directory for %s: %w", a.Path, err)
			}
			if err := os.WriteFile(a.Path, a.Data, 0o644); err != nil {
				return written, fmt.Errorf("failed to write %s: %w", a.Path, err)
			}
			logger.Info("Wrote artifact.", "path", a.Path, "bytes", len(a.Data))
			written = append(written, a.Path)
		}
	}
	return written, nil
}

// outputPath returns <out>/<name><ext>.
func outputPath(req *config.Request, ext string) string {
	return filepath.Join(req.OutputDir, req.Name+ext)
}

// normalizeSlashes rewrites escaped backslashes in textual output to '/'.
func normalizeSlashes(data []byte) []byte {
	return bytes.ReplaceAll(data, []byte(`\\`), []byte("/"))
}
