package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ImageFormat selects the encoding of the composited sheet.
type ImageFormat int

const (
	PNG ImageFormat = iota
	QOI
	JPEG
)

// Extension returns the file extension (without dot) for the format.
func (f ImageFormat) Extension() string {
	switch f {
	case QOI:
		return "qoi"
	case JPEG:
		return "jpg"
	default:
		return "png"
	}
}

func (f ImageFormat) String() string {
	return f.Extension()
}

// MarshalText implements encoding.TextMarshaler.
func (f ImageFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is
// case-insensitive and accepts both "jpg" and "jpeg".
func (f *ImageFormat) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "png":
		*f = PNG
	case "qoi":
		*f = QOI
	case "jpg", "jpeg":
		*f = JPEG
	default:
		return fmt.Errorf("unknown image format %q", text)
	}
	return nil
}

// Encoding is one descriptor output kind.
type Encoding string

const (
	EncodingJSON     Encoding = "json"
	EncodingRON      Encoding = "ron"
	EncodingTOML     Encoding = "toml"
	EncodingBinary   Encoding = "binary"
	EncodingTemplate Encoding = "template"
	EncodingMsgPack  Encoding = "msgpack"
)

// ParseEncoding resolves a case-insensitive encoding name.
func ParseEncoding(s string) (Encoding, error) {
	e := Encoding(strings.ToLower(strings.TrimSpace(s)))
	switch e {
	case EncodingJSON, EncodingRON, EncodingTOML, EncodingBinary, EncodingTemplate, EncodingMsgPack:
		return e, nil
	case "bin":
		return EncodingBinary, nil
	case "messagepack":
		return EncodingMsgPack, nil
	}
	return "", fmt.Errorf("unknown output type %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Encoding) UnmarshalText(text []byte) error {
	parsed, err := ParseEncoding(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// MultiFrameMode decides how multi-frame sources are packed.
type MultiFrameMode int

const (
	// SeparateFrames packs every frame as its own "<name>/<index>" entry.
	SeparateFrames MultiFrameMode = iota
	// SingleSheet tiles all frames into one entry before packing.
	SingleSheet
)

func (m MultiFrameMode) String() string {
	if m == SingleSheet {
		return "single_sheet"
	}
	return "separate_frames"
}

// DefaultMaxSize is the canvas bound used when none is configured.
const DefaultMaxSize = 1024

// Request is the fully resolved input of one atlas build.
type Request struct {
	Name              string
	OutputDir         string
	Folders           []string
	MaxSize           int
	ShowExtension     bool
	NinePatch         bool
	MultiFrame        bool
	MultiFrameMode    MultiFrameMode
	ImageFormat       ImageFormat
	Encodings         []Encoding
	Templates         []string
	AllowNormalOutput bool
}

// NewRequest returns a request carrying the defaults of the original tool:
// 1024 pixel canvases, extensions kept in names, PNG sheets and JSON output.
func NewRequest() *Request {
	return &Request{
		MaxSize:           DefaultMaxSize,
		ShowExtension:     true,
		ImageFormat:       PNG,
		Encodings:         []Encoding{EncodingJSON},
		AllowNormalOutput: true,
	}
}

// Validate checks the request invariants and removes duplicate encodings.
func (r *Request) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(r.OutputDir) == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if len(r.Folders) == 0 {
		errs = append(errs, errors.New("at least one input folder is required"))
	}
	if r.MaxSize <= 0 || r.MaxSize&(r.MaxSize-1) != 0 {
		errs = append(errs, fmt.Errorf("max size %d is not a power of two", r.MaxSize))
	}

	seen := make(map[Encoding]struct{}, len(r.Encodings))
	unique := r.Encodings[:0]
	for _, raw := range r.Encodings {
		e, err := ParseEncoding(string(raw))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		unique = append(unique, e)
	}
	r.Encodings = unique

	if len(errs) > 0 {
		return fmt.Errorf("invalid build request: %w", errors.Join(errs...))
	}
	return nil
}

// Wants reports whether the encoding e was requested.
func (r *Request) Wants(e Encoding) bool {
	for _, have := range r.Encodings {
		if have == e {
			return true
		}
	}
	return false
}

// StringList is a list of strings that also decodes from a single string,
// matching request files that write either `"a"` or `["a", "b"]`.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected a string or a list of strings: %w", err)
	}
	*l = many
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (l *StringList) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		*l = StringList{val}
	case []any:
		out := make(StringList, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected a list of strings, found %T", item)
			}
			out = append(out, s)
		}
		*l = out
	default:
		return fmt.Errorf("expected a string or a list of strings, found %T", v)
	}
	return nil
}
