package handlers

import (
	"fmt"
	"io"
	"os"

	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
	"github.com/benestar/wikibase-datamodel/internal/domain/services"
	"github.com/benestar/wikibase-datamodel/internal/infrastructure/serializers"
)

// codecFor picks the codec for format, or by file extension when format is
// empty or "auto".
func codecFor(path, format string) (serializers.Codec, error) {
	var codec serializers.Codec
	if format == "" || format == "auto" {
		codec = serializers.ForFile(path)
	} else {
		codec = serializers.ForFormat(format)
	}
	if codec == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", path)
	}
	return codec, nil
}

// ReadEntity reads an entity document from path.
func ReadEntity(path, format string) (*entities.Entity, error) {
	codec, err := codecFor(path, format)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	e, err := codec.DecodeEntity(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return e, nil
}

// ReadDiff reads an entity diff document from path.
func ReadDiff(path, format string) (*services.EntityDiff, error) {
	codec, err := codecFor(path, format)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	d, err := codec.DecodeDiff(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return d, nil
}

// WriteEntity writes e to w in format.
func WriteEntity(w io.Writer, e *entities.Entity, format string) error {
	codec := serializers.ForFormat(format)
	if codec == nil {
		return fmt.Errorf("unsupported format: %s", format)
	}
	return codec.EncodeEntity(w, e)
}

// WriteDiff writes d to w in format.
func WriteDiff(w io.Writer, d *services.EntityDiff, format string) error {
	codec := serializers.ForFormat(format)
	if codec == nil {
		return fmt.Errorf("unsupported format: %s", format)
	}
	return codec.EncodeDiff(w, d)
}
