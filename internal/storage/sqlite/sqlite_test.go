package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dividircuenta/backend/internal/models"
	"github.com/dividircuenta/backend/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "ledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateGroup generates IDs and timestamp", func(t *testing.T) {
		store := newTestStore(t)
		group := &models.Group{
			Name: "Trip",
			Participants: []models.Participant{
				{Name: "Ana"}, {Name: "Beto"},
			},
		}

		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("expected CreatedAt to be set")
		}
		for i, p := range group.Participants {
			if p.ID == "" {
				t.Errorf("participant %d: expected ID to be generated", i)
			}
		}
	})

	t.Run("GetGroup retrieves participants in insertion order", func(t *testing.T) {
		store := newTestStore(t)
		group := &models.Group{
			Name: "Trip",
			Participants: []models.Participant{
				{Name: "Caro"}, {Name: "Ana"}, {Name: "Beto"},
			},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Trip" {
			t.Errorf("Name = %q, want Trip", got.Name)
		}
		want := []string{"Caro", "Ana", "Beto"}
		if len(got.Participants) != len(want) {
			t.Fatalf("expected %d participants, got %d", len(want), len(got.Participants))
		}
		for i, p := range got.Participants {
			if p.Name != want[i] {
				t.Errorf("participant %d = %q, want %q", i, p.Name, want[i])
			}
		}
	})

	t.Run("GetGroup returns ErrNotFound for unknown id", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.GetGroup(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListGroups returns most recent first", func(t *testing.T) {
		store := newTestStore(t)
		first := &models.Group{Name: "First", Participants: []models.Participant{{Name: "A"}, {Name: "B"}}}
		second := &models.Group{Name: "Second", Participants: []models.Participant{{Name: "C"}, {Name: "D"}}}
		store.CreateGroup(ctx, first)
		store.CreateGroup(ctx, second)

		groups, err := store.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(groups))
		}
		if groups[0].Name != "Second" || groups[1].Name != "First" {
			t.Errorf("unexpected order: %s, %s", groups[0].Name, groups[1].Name)
		}
	})

	t.Run("CreateExpense requires an existing group", func(t *testing.T) {
		store := newTestStore(t)
		err := store.CreateExpense(ctx, &models.Expense{
			GroupID: "missing", Description: "Cena", Amount: 10, PaidBy: "Ana",
		})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("expense round trip", func(t *testing.T) {
		store := newTestStore(t)
		group := &models.Group{Name: "Trip", Participants: []models.Participant{{Name: "Ana"}, {Name: "Beto"}}}
		store.CreateGroup(ctx, group)

		expense := &models.Expense{
			GroupID:     group.ID,
			Description: "Cena",
			Amount:      123.45,
			PaidBy:      "Ana",
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" || expense.CreatedAt == 0 {
			t.Error("expected ID and CreatedAt to be set")
		}

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(expenses))
		}
		got := expenses[0]
		if got.Description != "Cena" || got.Amount != 123.45 || got.PaidBy != "Ana" || got.Settled {
			t.Errorf("unexpected expense: %+v", got)
		}
	})

	t.Run("ListExpensesByGroup orders most recent first", func(t *testing.T) {
		store := newTestStore(t)
		group := &models.Group{Name: "Trip", Participants: []models.Participant{{Name: "Ana"}, {Name: "Beto"}}}
		store.CreateGroup(ctx, group)

		for _, desc := range []string{"Cena", "Taxi", "Hotel"} {
			store.CreateExpense(ctx, &models.Expense{
				GroupID: group.ID, Description: desc, Amount: 10, PaidBy: "Ana",
			})
		}

		expenses, _ := store.ListExpensesByGroup(ctx, group.ID)
		want := []string{"Hotel", "Taxi", "Cena"}
		for i, e := range expenses {
			if e.Description != want[i] {
				t.Errorf("expense %d = %q, want %q", i, e.Description, want[i])
			}
		}
	})

	t.Run("SettleExpense is idempotent", func(t *testing.T) {
		store := newTestStore(t)
		group := &models.Group{Name: "Trip", Participants: []models.Participant{{Name: "Ana"}, {Name: "Beto"}}}
		store.CreateGroup(ctx, group)
		expense := &models.Expense{GroupID: group.ID, Description: "Cena", Amount: 10, PaidBy: "Ana"}
		store.CreateExpense(ctx, expense)

		if err := store.SettleExpense(ctx, expense.ID); err != nil {
			t.Fatalf("SettleExpense failed: %v", err)
		}
		if err := store.SettleExpense(ctx, expense.ID); err != nil {
			t.Fatalf("second SettleExpense failed: %v", err)
		}
		if err := store.SettleExpense(ctx, "missing"); err != nil {
			t.Fatalf("settling unknown expense should be a no-op, got %v", err)
		}

		expenses, _ := store.ListExpensesByGroup(ctx, group.ID)
		if !expenses[0].Settled {
			t.Error("expected expense to be settled")
		}
	})

	t.Run("DeleteGroup cascades to participants and expenses", func(t *testing.T) {
		store := newTestStore(t)
		group := &models.Group{Name: "Trip", Participants: []models.Participant{{Name: "Ana"}, {Name: "Beto"}}}
		store.CreateGroup(ctx, group)
		store.CreateExpense(ctx, &models.Expense{GroupID: group.ID, Description: "Cena", Amount: 10, PaidBy: "Ana"})

		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}

		if _, err := store.GetGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected group gone, got %v", err)
		}
		expenses, _ := store.ListExpensesByGroup(ctx, group.ID)
		if len(expenses) != 0 {
			t.Errorf("expected 0 expenses after cascade, got %d", len(expenses))
		}
	})

	t.Run("deletes of unknown ids are no-ops", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.DeleteGroup(ctx, "missing"); err != nil {
			t.Errorf("DeleteGroup: expected no-op, got %v", err)
		}
		if err := store.DeleteExpense(ctx, "missing"); err != nil {
			t.Errorf("DeleteExpense: expected no-op, got %v", err)
		}
	})
}
