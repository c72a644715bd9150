package services

import (
	"fmt"

	"github.com/benestar/wikibase-datamodel/internal/domain/diff"
	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
)

// FieldDataType is the extension key holding a property's data type.
const FieldDataType = "datatype"

// KindHandler diffs and patches the part of an entity that only its kind
// has. Both entities passed to DiffExtension are of the handler's kind.
type KindHandler interface {
	DiffExtension(from, to *entities.Entity) *diff.Diff
	PatchExtension(e *entities.Entity, ext *diff.Diff) error
}

// DefaultKindHandlers returns the handlers of all built-in kinds.
func DefaultKindHandlers() map[entities.Kind]KindHandler {
	return map[entities.Kind]KindHandler{
		entities.KindItem:     itemHandler{},
		entities.KindProperty: propertyHandler{},
	}
}

// itemHandler: items carry nothing beyond terms and claims.
type itemHandler struct{}

func (itemHandler) DiffExtension(_, _ *entities.Entity) *diff.Diff { return diff.New() }

func (itemHandler) PatchExtension(_ *entities.Entity, _ *diff.Diff) error { return nil }

type propertyHandler struct{}

func (propertyHandler) DiffExtension(from, to *entities.Entity) *diff.Diff {
	return diff.Compute(
		diff.Map{FieldDataType: from.DataType()},
		diff.Map{FieldDataType: to.DataType()},
	)
}

func (propertyHandler) PatchExtension(e *entities.Entity, ext *diff.Diff) error {
	if ext.IsEmpty() {
		return nil
	}

	patched := diff.Apply(diff.Map{FieldDataType: e.DataType()}, ext)
	var dataType string
	if v, ok := patched[FieldDataType]; ok {
		s, isString := v.(string)
		if !isString {
			return fmt.Errorf("data type: expected text, got %T", v)
		}
		dataType = s
	}

	return e.SetPayload(entities.PropertyPayload{DataType: dataType})
}
