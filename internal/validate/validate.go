// Package validate implements the precondition checks that gate every
// ledger mutation. Each mutation is validated exactly once, through a
// single function returning a structured result, so the gate and any
// interactive hint surface share one source of truth.
package validate

import (
	"math"
	"strings"

	"github.com/dividircuenta/backend/internal/models"
)

// MinParticipants is the smallest participant count a group may have.
const MinParticipants = 2

// FieldError describes a single failed precondition on a named input field.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the outcome of one validation pass.
type Result struct {
	Errors []FieldError
}

// OK reports whether the validated input passed every check.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

func (r *Result) add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

// Group checks the inputs for group creation: non-empty trimmed name and
// at least MinParticipants pairwise-distinct participant names (distinct
// after trimming, compared case-insensitively).
func Group(name string, participantNames []string) Result {
	var res Result

	if strings.TrimSpace(name) == "" {
		res.add("name", "group name is required")
	}

	seen := make(map[string]bool, len(participantNames))
	valid := 0
	for _, pn := range participantNames {
		trimmed := strings.TrimSpace(pn)
		if trimmed == "" {
			res.add("participants", "participant name must not be empty")
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			res.add("participants", "duplicate participant name: "+trimmed)
			continue
		}
		seen[key] = true
		valid++
	}

	if valid < MinParticipants {
		res.add("participants", "a group needs at least 2 participants")
	}

	return res
}

// Expense checks the inputs for expense creation against the target group:
// non-empty trimmed description, a finite amount > 0, and a payer that
// matches one of the group's participants case-insensitively.
func Expense(description string, amount float64, paidBy string, group *models.Group) Result {
	var res Result

	if strings.TrimSpace(description) == "" {
		res.add("description", "description is required")
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		res.add("amount", "amount must be a positive number")
	}

	if strings.TrimSpace(paidBy) == "" {
		res.add("paidBy", "payer is required")
	} else if !group.HasParticipant(paidBy) {
		res.add("paidBy", "payer is not a member of the group")
	}

	return res
}
