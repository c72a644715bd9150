package entities

import (
	"strings"

	"github.com/google/uuid"
)

// GUIDSeparator splits a claim GUID into owner id and unique suffix.
const GUIDSeparator = "$"

// SplitGUID splits guid into its owner serialization and suffix.
// A GUID must contain exactly one separator with text on both sides.
func SplitGUID(guid string) (owner, suffix string, err error) {
	if strings.Count(guid, GUIDSeparator) != 1 {
		return "", "", formatErrorf("guid %q must contain exactly one %q", guid, GUIDSeparator)
	}
	owner, suffix, _ = strings.Cut(guid, GUIDSeparator)
	if owner == "" || suffix == "" {
		return "", "", formatErrorf("guid %q has an empty owner or suffix", guid)
	}
	return owner, suffix, nil
}

// GUIDOwner returns the id of the entity that owns guid.
func GUIDOwner(guid string) (EntityID, error) {
	owner, _, err := SplitGUID(guid)
	if err != nil {
		return EntityID{}, err
	}
	return ParseEntityIDSerialization(owner)
}

// NewGUID generates a fresh claim GUID owned by owner.
func NewGUID(owner EntityID) (string, error) {
	if owner.IsZero() {
		return "", illegalStatef("cannot generate a guid for an entity without id")
	}
	return strings.ToUpper(owner.Serialization()) + GUIDSeparator + uuid.New().String(), nil
}
