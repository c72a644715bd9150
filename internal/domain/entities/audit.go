package entities

import "time"

// Audit actions recorded by the revision service.
const (
	ActionSave   = "revision.save"
	ActionPatch  = "revision.patch"
	ActionRevert = "revision.revert"
)

// AuditEntry represents a logged action on an entity.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	EntityID  string         `json:"entity_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
