package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Terria-K/cluttered/internal/ctxlog"
	"github.com/Terria-K/cluttered/internal/ron"
)

// ErrUnsupportedFormat is returned for request files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported request file format")

// Registry dispatches request files to a Loader by file extension.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry creates a registry from the given loaders. A later loader
// claiming the same extension replaces the earlier one.
func NewRegistry(loaders ...Loader) *Registry {
	r := &Registry{loaders: make(map[string]Loader)}
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			r.loaders[strings.ToLower(ext)] = l
		}
	}
	return r
}

// Extensions returns every registered extension in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.loaders))
	for ext := range r.loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load reads the request file at path and resolves it into a Request.
func (r *Registry) Load(ctx context.Context, path string) (*Request, error) {
	logger := ctxlog.FromContext(ctx)
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := r.loaders[ext]
	if !ok {
		return nil, fmt.Errorf("%w %q, supported: %s", ErrUnsupportedFormat, ext, strings.Join(r.Extensions(), ", "))
	}
	logger.Debug("Loading request file.", "path", path, "format", ext)

	file, err := loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	req, err := file.Request(filepath.Dir(path))
	if err != nil {
		return nil, fileError(path, err)
	}
	logger.Debug("Request file resolved.", "name", req.Name, "folders", len(req.Folders), "encodings", req.Encodings)
	return req, nil
}

// JSONLoader reads .json request files.
type JSONLoader struct{}

// Extensions implements Loader.
func (JSONLoader) Extensions() []string { return []string{".json"} }

// Load implements Loader.
func (JSONLoader) Load(_ context.Context, path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fileError(path, err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fileError(path, err)
	}
	return &f, nil
}

// TOMLLoader reads .toml request files.
type TOMLLoader struct{}

// Extensions implements Loader.
func (TOMLLoader) Extensions() []string { return []string{".toml"} }

// Load implements Loader.
func (TOMLLoader) Load(_ context.Context, path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fileError(path, err)
	}
	return &f, nil
}

// RONLoader reads .ron request files.
type RONLoader struct{}

// Extensions implements Loader.
func (RONLoader) Extensions() []string { return []string{".ron"} }

// Load implements Loader.
func (RONLoader) Load(_ context.Context, path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fileError(path, err)
	}
	var f File
	if err := ron.Unmarshal(data, &f); err != nil {
		return nil, fileError(path, err)
	}
	return &f, nil
}
