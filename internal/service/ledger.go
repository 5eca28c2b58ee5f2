// Package service implements the ledger operations exposed to the UI
// collaborator: group and expense lifecycle, gated by validation, plus
// on-demand balance computation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dividircuenta/backend/internal/calculator"
	"github.com/dividircuenta/backend/internal/models"
	"github.com/dividircuenta/backend/internal/storage"
	"github.com/dividircuenta/backend/internal/validate"
)

// Ledger coordinates validation, storage and balance computation.
// All mutations are all-or-nothing: a validation or not-found failure
// leaves the store untouched.
type Ledger struct {
	store storage.Store
}

// NewLedger creates a Ledger backed by the given store.
func NewLedger(store storage.Store) *Ledger {
	return &Ledger{store: store}
}

// CreateGroup validates and creates a group from a name and participant
// names. Participant names are stored trimmed, in input order.
func (l *Ledger) CreateGroup(ctx context.Context, name string, participantNames []string) (*models.Group, error) {
	if res := validate.Group(name, participantNames); !res.OK() {
		return nil, &ValidationError{Fields: res.Errors}
	}

	participants := make([]models.Participant, len(participantNames))
	for i, pn := range participantNames {
		participants[i] = models.Participant{Name: strings.TrimSpace(pn)}
	}

	group := &models.Group{
		Name:         strings.TrimSpace(name),
		Participants: participants,
	}
	if err := l.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	slog.Info("Group created",
		"group_id", group.ID,
		"name", group.Name,
		"participants", len(group.Participants),
	)
	return group, nil
}

// GetGroup retrieves a group by ID.
func (l *Ledger) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := l.store.GetGroup(ctx, groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, &NotFoundError{Resource: "group", ID: groupID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// ListGroups retrieves all groups, most recent first.
func (l *Ledger) ListGroups(ctx context.Context) ([]*models.Group, error) {
	groups, err := l.store.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// DeleteGroup removes a group and all of its expenses. Absent IDs are a
// no-op.
func (l *Ledger) DeleteGroup(ctx context.Context, groupID string) error {
	if err := l.store.DeleteGroup(ctx, groupID); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	slog.Info("Group deleted", "group_id", groupID)
	return nil
}

// CreateExpense validates and records an expense against a group. The
// payer must be a current member of the group, matched case-insensitively.
func (l *Ledger) CreateExpense(ctx context.Context, groupID, description string, amount float64, paidBy string) (*models.Expense, error) {
	group, err := l.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if res := validate.Expense(description, amount, paidBy, group); !res.OK() {
		return nil, &ValidationError{Fields: res.Errors}
	}

	expense := &models.Expense{
		GroupID:     groupID,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		PaidBy:      strings.TrimSpace(paidBy),
		Settled:     false,
	}
	if err := l.store.CreateExpense(ctx, expense); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &NotFoundError{Resource: "group", ID: groupID}
		}
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", groupID,
		"amount", expense.Amount,
		"paid_by", expense.PaidBy,
	)
	return expense, nil
}

// DeleteExpense removes an expense. Absent IDs are a no-op.
func (l *Ledger) DeleteExpense(ctx context.Context, expenseID string) error {
	if err := l.store.DeleteExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	slog.Info("Expense deleted", "expense_id", expenseID)
	return nil
}

// SettleExpense marks an expense settled, excluding it from balance
// computation. Idempotent; absent IDs are a no-op.
func (l *Ledger) SettleExpense(ctx context.Context, expenseID string) error {
	if err := l.store.SettleExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to settle expense: %w", err)
	}
	slog.Info("Expense settled", "expense_id", expenseID)
	return nil
}

// ExpensesForGroup retrieves a group's expenses, most recent first.
func (l *Ledger) ExpensesForGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	expenses, err := l.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// CalculateBalances recomputes the per-participant balances for a group
// from its current unsettled expenses.
func (l *Ledger) CalculateBalances(ctx context.Context, groupID string) ([]models.Balance, error) {
	group, err := l.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	expenses, err := l.ExpensesForGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return calculator.CalculateBalances(group, expenses), nil
}
