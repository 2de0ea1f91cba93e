package encoder

import (
	"bytes"

	"github.com/Terria-K/cluttered/internal/atlas"
	"github.com/Terria-K/cluttered/internal/config"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgPack writes the descriptor as MessagePack using the JSON field names.
// Map keys are sorted so the output is stable across runs.
type MsgPack struct{}

func (MsgPack) Kind() Kind { return KindMsgPack }

func (MsgPack) Encode(d *atlas.Descriptor, req *config.Request) ([]Artifact, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.SetSortMapKeys(true)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return []Artifact{{Path: outputPath(req, ".msgpack"), Data: buf.Bytes()}}, nil
}

// DecodeMsgPack parses data written by the MsgPack encoder.
func DecodeMsgPack(data []byte) (*atlas.Descriptor, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	var d atlas.Descriptor
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}
