// Package memory provides an in-memory implementation of the storage.Store
// interface. It is the default backend: a single process holds the ledger
// collections and every read reflects the latest mutation immediately.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dividircuenta/backend/internal/models"
	"github.com/dividircuenta/backend/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store with in-process slices.
// New records are prepended, so both collections stay ordered most
// recent first and list reads are plain filters, no index.
//
// The model assumes a single writer, but the HTTP surface serves
// concurrent requests, so a RWMutex guards the slices for memory safety.
type Store struct {
	mu       sync.RWMutex
	groups   []*models.Group
	expenses []*models.Expense
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// CreateGroup stores a new group, assigning IDs and creation time.
func (s *Store) CreateGroup(_ context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	for i := range group.Participants {
		if group.Participants[i].ID == "" {
			group.Participants[i].ID = uuid.New().String()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = append([]*models.Group{copyGroup(group)}, s.groups...)
	return nil
}

// GetGroup retrieves a group by ID.
func (s *Store) GetGroup(_ context.Context, groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.groups {
		if g.ID == groupID {
			return copyGroup(g), nil
		}
	}
	return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
}

// ListGroups retrieves all groups, most recent first.
func (s *Store) ListGroups(_ context.Context) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make([]*models.Group, len(s.groups))
	for i, g := range s.groups {
		groups[i] = copyGroup(g)
	}
	return groups, nil
}

// DeleteGroup removes a group and cascades to its expenses.
func (s *Store) DeleteGroup(_ context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.groups[:0]
	for _, g := range s.groups {
		if g.ID != groupID {
			kept = append(kept, g)
		}
	}
	s.groups = kept

	keptExpenses := s.expenses[:0]
	for _, e := range s.expenses {
		if e.GroupID != groupID {
			keptExpenses = append(keptExpenses, e)
		}
	}
	s.expenses = keptExpenses
	return nil
}

// CreateExpense stores a new expense after checking the group exists.
func (s *Store) CreateExpense(_ context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.groupExistsLocked(expense.GroupID) {
		return fmt.Errorf("group %s: %w", expense.GroupID, storage.ErrNotFound)
	}

	e := *expense
	s.expenses = append([]*models.Expense{&e}, s.expenses...)
	return nil
}

// DeleteExpense removes an expense; absent IDs are a no-op.
func (s *Store) DeleteExpense(_ context.Context, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.expenses[:0]
	for _, e := range s.expenses {
		if e.ID != expenseID {
			kept = append(kept, e)
		}
	}
	s.expenses = kept
	return nil
}

// SettleExpense flips the settled flag; absent or already-settled
// expenses are a no-op, so the call is idempotent.
func (s *Store) SettleExpense(_ context.Context, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.expenses {
		if e.ID == expenseID {
			e.Settled = true
			return nil
		}
	}
	return nil
}

// ListExpensesByGroup filters the expense collection, most recent first.
func (s *Store) ListExpensesByGroup(_ context.Context, groupID string) ([]*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expenses []*models.Expense
	for _, e := range s.expenses {
		if e.GroupID == groupID {
			copied := *e
			expenses = append(expenses, &copied)
		}
	}
	return expenses, nil
}

func (s *Store) groupExistsLocked(groupID string) bool {
	for _, g := range s.groups {
		if g.ID == groupID {
			return true
		}
	}
	return false
}

// copyGroup returns a copy detached from store-internal state, so callers
// cannot mutate the ledger through returned pointers.
func copyGroup(g *models.Group) *models.Group {
	copied := *g
	copied.Participants = make([]models.Participant, len(g.Participants))
	copy(copied.Participants, g.Participants)
	return &copied
}
