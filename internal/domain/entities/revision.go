package entities

import "time"

// Revision is a stored snapshot of an entity. Numbers start at 1 and grow
// by one per saved change of the same entity.
type Revision struct {
	ID        string    `json:"id"`
	EntityID  EntityID  `json:"entity_id"`
	Number    int       `json:"number"`
	Entity    *Entity   `json:"-"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
