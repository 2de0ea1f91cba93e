package encoder

import (
	"bytes"
	"encoding/json"

	"github.com/BurntSushi/toml"
	"github.com/Terria-K/cluttered/internal/atlas"
	"github.com/Terria-K/cluttered/internal/config"
	"github.com/Terria-K/cluttered/internal/ron"
)

// JSON writes the descriptor as indented JSON. Frame names are written
// without HTML escaping.
type JSON struct{}

func (JSON) Kind() Kind { return KindJSON }

func (JSON) Encode(d *atlas.Descriptor, req *config.Request) ([]Artifact, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return []Artifact{{Path: outputPath(req, ".json"), Data: normalizeSlashes(data)}}, nil
}

// RON writes the descriptor as compact RON.
type RON struct{}

func (RON) Kind() Kind { return KindRON }

func (RON) Encode(d *atlas.Descriptor, req *config.Request) ([]Artifact, error) {
	data, err := ron.Marshal(d)
	if err != nil {
		return nil, err
	}
	return []Artifact{{Path: outputPath(req, ".ron"), Data: normalizeSlashes(data)}}, nil
}

// TOML writes the descriptor as a TOML document.
type TOML struct{}

func (TOML) Kind() Kind { return KindTOML }

func (TOML) Encode(d *atlas.Descriptor, req *config.Request) ([]Artifact, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(d); err != nil {
		return nil, err
	}
	return []Artifact{{Path: outputPath(req, ".toml"), Data: normalizeSlashes(buf.Bytes())}}, nil
}
