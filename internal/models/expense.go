package models

// Expense represents a single payment made by one participant on behalf
// of the group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is the human-readable label (e.g., "Cena", "Gasolina").
	Description string

	// Amount is the amount paid, in the currency of record. Always > 0.
	Amount float64

	// PaidBy is the name of the participant who paid. This is a snapshot
	// of the name at creation time, matched case-insensitively against
	// the group's participants; it is not a live reference.
	PaidBy string

	// Settled marks the expense as excluded from balance computation.
	// The flip is one-way: there is no un-settle.
	Settled bool

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
