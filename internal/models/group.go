package models

import "strings"

// Participant is a member of a group. Participants are embedded in their
// group and are not shared between groups.
type Participant struct {
	// ID is unique within the owning group (UUID format).
	ID string

	// Name is the display name. Payer matching is case-insensitive.
	Name string
}

// Group represents a set of people sharing expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Viaje a Roatán").
	Name string

	// Participants is the member list in insertion order.
	// A valid group always has at least two.
	Participants []Participant

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasParticipant reports whether name matches a participant of the group,
// ignoring case and surrounding whitespace.
func (g *Group) HasParticipant(name string) bool {
	trimmed := strings.TrimSpace(name)
	for _, p := range g.Participants {
		if strings.EqualFold(p.Name, trimmed) {
			return true
		}
	}
	return false
}
