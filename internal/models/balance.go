package models

// Balance is one participant's net position against the group pool.
// It is derived from the current unsettled expenses and never stored.
type Balance struct {
	// ParticipantName is the name of the participant this balance is for.
	ParticipantName string

	// Owes is the net amount relative to an equal split.
	// Positive = must pay this much into the pool.
	// Negative = the pool owes them this much.
	Owes float64
}
