package serializers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/benestar/wikibase-datamodel/internal/domain/services"
)

// DecodeDump reads a JSON array of entity documents. A document that fails
// to decode is returned with its error set; only a malformed array fails
// the whole dump.
func (c *JSONCodec) DecodeDump(r io.Reader) ([]services.ImportDocument, error) {
	var raws []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("parsing dump JSON: %w", err)
	}
	return decodeDump(raws), nil
}

// DecodeDump reads a YAML sequence of entity documents.
func (c *YAMLCodec) DecodeDump(r io.Reader) ([]services.ImportDocument, error) {
	data, err := yamlToJSON(r)
	if err != nil {
		return nil, err
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing dump: %w", err)
	}
	return decodeDump(raws), nil
}

func decodeDump(raws []json.RawMessage) []services.ImportDocument {
	docs := make([]services.ImportDocument, len(raws))
	for i, raw := range raws {
		docs[i].Index = i + 1
		docs[i].Entity, docs[i].Err = UnmarshalEntity(raw)
	}
	return docs
}
