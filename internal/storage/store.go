// Package storage provides abstractions for ledger data storage.
package storage

import (
	"context"
	"errors"

	"github.com/dividircuenta/backend/internal/models"
)

// ErrNotFound is returned when a referenced record does not exist.
// Implementations wrap it with detail; callers match with errors.Is.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for group and expense storage.
// This abstraction allows swapping backends (in-memory, SQLite, ...)
// without changing the service layer.
//
// Ordering contract: ListGroups and ListExpensesByGroup return records
// most-recently-created first. Input validation is the service layer's
// job; stores only enforce referential integrity.
type Store interface {
	// CreateGroup persists a new group. Missing ID, participant IDs and
	// CreatedAt are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID. Returns ErrNotFound if absent.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups, most recent first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// DeleteGroup removes a group and every expense referencing it.
	// Deleting an absent group is a no-op, not an error.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateExpense persists a new expense. Missing ID and CreatedAt are
	// populated by the store. Returns ErrNotFound if the group is absent.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense. No-op if absent.
	DeleteExpense(ctx context.Context, expenseID string) error

	// SettleExpense marks an expense settled. The operation is idempotent
	// and a no-op for absent or already-settled expenses.
	SettleExpense(ctx context.Context, expenseID string) error

	// ListExpensesByGroup retrieves the expenses of one group, most
	// recent first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
