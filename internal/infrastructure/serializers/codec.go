// Package serializers reads and writes entity and entity diff documents.
package serializers

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
	"github.com/benestar/wikibase-datamodel/internal/domain/services"
)

// Codec defines the interface for reading and writing documents in one
// format.
type Codec interface {
	DecodeEntity(r io.Reader) (*entities.Entity, error)
	EncodeEntity(w io.Writer, e *entities.Entity) error
	DecodeDiff(r io.Reader) (*services.EntityDiff, error)
	EncodeDiff(w io.Writer, d *services.EntityDiff) error
	DecodeDump(r io.Reader) ([]services.ImportDocument, error)
}

// ForFormat returns the codec for the given format.
// Supported formats: "json", "yaml".
func ForFormat(format string) Codec {
	switch strings.ToLower(format) {
	case "json":
		return &JSONCodec{}
	case "yaml", "yml":
		return &YAMLCodec{}
	default:
		return nil
	}
}

// ForFile returns the codec matching the file extension.
func ForFile(filename string) Codec {
	return ForFormat(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// MarshalEntity returns the JSON document of e.
func MarshalEntity(e *entities.Entity) ([]byte, error) {
	doc, err := encodeEntity(e)
	if err != nil {
		return nil, fmt.Errorf("encoding entity: %w", err)
	}
	return json.Marshal(doc)
}

// UnmarshalEntity parses a JSON entity document.
func UnmarshalEntity(data []byte) (*entities.Entity, error) {
	var doc entityDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing entity JSON: %w", err)
	}
	return decodeEntity(doc)
}

// JSONCodec reads and writes JSON documents.
type JSONCodec struct{}

// DecodeEntity reads a JSON entity document.
func (c *JSONCodec) DecodeEntity(r io.Reader) (*entities.Entity, error) {
	var doc entityDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing entity JSON: %w", err)
	}
	return decodeEntity(doc)
}

// EncodeEntity writes e as indented JSON.
func (c *JSONCodec) EncodeEntity(w io.Writer, e *entities.Entity) error {
	doc, err := encodeEntity(e)
	if err != nil {
		return fmt.Errorf("encoding entity: %w", err)
	}
	return writeJSON(w, doc)
}

// DecodeDiff reads a JSON diff document.
func (c *JSONCodec) DecodeDiff(r io.Reader) (*services.EntityDiff, error) {
	var doc diffDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing diff JSON: %w", err)
	}
	return decodeEntityDiff(doc)
}

// EncodeDiff writes d as indented JSON.
func (c *JSONCodec) EncodeDiff(w io.Writer, d *services.EntityDiff) error {
	doc, err := encodeEntityDiff(d)
	if err != nil {
		return fmt.Errorf("encoding diff: %w", err)
	}
	return writeJSON(w, doc)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}

// YAMLCodec reads and writes YAML documents with the same structure as the
// JSON ones.
type YAMLCodec struct{}

// DecodeEntity reads a YAML entity document.
func (c *YAMLCodec) DecodeEntity(r io.Reader) (*entities.Entity, error) {
	data, err := yamlToJSON(r)
	if err != nil {
		return nil, err
	}
	return UnmarshalEntity(data)
}

// EncodeEntity writes e as YAML.
func (c *YAMLCodec) EncodeEntity(w io.Writer, e *entities.Entity) error {
	doc, err := encodeEntity(e)
	if err != nil {
		return fmt.Errorf("encoding entity: %w", err)
	}
	return writeYAML(w, doc)
}

// DecodeDiff reads a YAML diff document.
func (c *YAMLCodec) DecodeDiff(r io.Reader) (*services.EntityDiff, error) {
	data, err := yamlToJSON(r)
	if err != nil {
		return nil, err
	}
	var doc diffDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}
	return decodeEntityDiff(doc)
}

// EncodeDiff writes d as YAML.
func (c *YAMLCodec) EncodeDiff(w io.Writer, d *services.EntityDiff) error {
	doc, err := encodeEntityDiff(d)
	if err != nil {
		return fmt.Errorf("encoding diff: %w", err)
	}
	return writeYAML(w, doc)
}

func yamlToJSON(r io.Reader) ([]byte, error) {
	var v any
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("converting YAML: %w", err)
	}
	return data, nil
}

// writeYAML goes through JSON so the json tags define the layout, then
// re-emits the node tree in block style. Key order is kept.
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("converting document: %w", err)
	}
	clearFlowStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("writing YAML: %w", err)
	}
	return enc.Close()
}

func clearFlowStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	if n.Kind == yaml.ScalarNode && n.Style&yaml.DoubleQuotedStyle != 0 && n.Tag == "!!str" {
		n.Style &^= yaml.DoubleQuotedStyle
	}
	for _, child := range n.Content {
		clearFlowStyle(child)
	}
}
