package loader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a type-descriptor module
type Format string

const (
	// FormatMsgpack is the compiled binary encoding
	FormatMsgpack Format = "msgpack"
	// FormatYAML is the readable encoding
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name from configuration
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatMsgpack, "":
		return FormatMsgpack, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown module format %q (expected %q or %q)", name, FormatMsgpack, FormatYAML)
	}
}

// Extension returns the fixed file extension for the format
func (f Format) Extension() string {
	if f == FormatYAML {
		return ".tdm.yaml"
	}
	return ".tdm"
}

// FileName returns the module file name for a module base name
func (f Format) FileName(name string) string {
	return name + f.Extension()
}

// Decode decodes a module document
func (f Format) Decode(data []byte) (*Document, error) {
	doc := &Document{}
	switch f {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(doc); err != nil {
			return nil, err
		}
	default:
		if err := msgpack.Unmarshal(data, doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Encode encodes a module document
func (f Format) Encode(doc *Document) ([]byte, error) {
	switch f {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return msgpack.Marshal(doc)
	}
}
