package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/dividircuenta/backend/internal/models"
	"github.com/dividircuenta/backend/internal/storage"
)

func newGroup(name string, participantNames ...string) *models.Group {
	g := &models.Group{Name: name}
	for _, pn := range participantNames {
		g.Participants = append(g.Participants, models.Participant{Name: pn})
	}
	return g
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateGroup assigns IDs and timestamp", func(t *testing.T) {
		store := New()
		group := newGroup("Trip", "Ana", "Beto")

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

	t.Run("ListGroups returns most recent first", func(t *testing.T) {
		store := New()
		first := newGroup("First", "Ana", "Beto")
		second := newGroup("Second", "Caro", "Dani")
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

	t.Run("GetGroup preserves participant order", func(t *testing.T) {
		store := New()
		group := newGroup("Trip", "Caro", "Ana", "Beto")
		store.CreateGroup(ctx, group)

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		want := []string{"Caro", "Ana", "Beto"}
		for i, p := range got.Participants {
			if p.Name != want[i] {
				t.Errorf("participant %d = %q, want %q", i, p.Name, want[i])
			}
		}
	})

	t.Run("GetGroup returns ErrNotFound for unknown id", func(t *testing.T) {
		store := New()
		_, err := store.GetGroup(ctx, "nope")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("returned groups are detached from store state", func(t *testing.T) {
		store := New()
		group := newGroup("Trip", "Ana", "Beto")
		store.CreateGroup(ctx, group)

		got, _ := store.GetGroup(ctx, group.ID)
		got.Name = "Mutated"
		got.Participants[0].Name = "Mutated"

		again, _ := store.GetGroup(ctx, group.ID)
		if again.Name != "Trip" || again.Participants[0].Name != "Ana" {
			t.Error("mutating a returned group leaked into the store")
		}
	})

	t.Run("CreateExpense requires an existing group", func(t *testing.T) {
		store := New()
		err := store.CreateExpense(ctx, &models.Expense{
			GroupID: "missing", Description: "Cena", Amount: 10, PaidBy: "Ana",
		})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListExpensesByGroup filters and orders most recent first", func(t *testing.T) {
		store := New()
		g1 := newGroup("Trip", "Ana", "Beto")
		g2 := newGroup("Casa", "Caro", "Dani")
		store.CreateGroup(ctx, g1)
		store.CreateGroup(ctx, g2)

		e1 := &models.Expense{GroupID: g1.ID, Description: "Cena", Amount: 100, PaidBy: "Ana"}
		e2 := &models.Expense{GroupID: g2.ID, Description: "Luz", Amount: 50, PaidBy: "Caro"}
		e3 := &models.Expense{GroupID: g1.ID, Description: "Taxi", Amount: 30, PaidBy: "Beto"}
		store.CreateExpense(ctx, e1)
		store.CreateExpense(ctx, e2)
		store.CreateExpense(ctx, e3)

		expenses, err := store.ListExpensesByGroup(ctx, g1.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 2 {
			t.Fatalf("expected 2 expenses, got %d", len(expenses))
		}
		if expenses[0].Description != "Taxi" || expenses[1].Description != "Cena" {
			t.Errorf("unexpected order: %s, %s", expenses[0].Description, expenses[1].Description)
		}
	})

	t.Run("DeleteGroup cascades to expenses", func(t *testing.T) {
		store := New()
		group := newGroup("Trip", "Ana", "Beto")
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

	t.Run("DeleteGroup of unknown id is a no-op", func(t *testing.T) {
		store := New()
		if err := store.DeleteGroup(ctx, "missing"); err != nil {
			t.Errorf("expected no-op, got %v", err)
		}
	})

	t.Run("SettleExpense is idempotent", func(t *testing.T) {
		store := New()
		group := newGroup("Trip", "Ana", "Beto")
		store.CreateGroup(ctx, group)
		expense := &models.Expense{GroupID: group.ID, Description: "Cena", Amount: 10, PaidBy: "Ana"}
		store.CreateExpense(ctx, expense)

		if err := store.SettleExpense(ctx, expense.ID); err != nil {
			t.Fatalf("SettleExpense failed: %v", err)
		}
		if err := store.SettleExpense(ctx, expense.ID); err != nil {
			t.Fatalf("second SettleExpense failed: %v", err)
		}

		expenses, _ := store.ListExpensesByGroup(ctx, group.ID)
		if !expenses[0].Settled {
			t.Error("expected expense to be settled")
		}
	})

	t.Run("SettleExpense of unknown id is a no-op", func(t *testing.T) {
		store := New()
		if err := store.SettleExpense(ctx, "missing"); err != nil {
			t.Errorf("expected no-op, got %v", err)
		}
	})

	t.Run("DeleteExpense removes only the matching expense", func(t *testing.T) {
		store := New()
		group := newGroup("Trip", "Ana", "Beto")
		store.CreateGroup(ctx, group)
		e1 := &models.Expense{GroupID: group.ID, Description: "Cena", Amount: 10, PaidBy: "Ana"}
		e2 := &models.Expense{GroupID: group.ID, Description: "Taxi", Amount: 5, PaidBy: "Beto"}
		store.CreateExpense(ctx, e1)
		store.CreateExpense(ctx, e2)

		if err := store.DeleteExpense(ctx, e1.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}

		expenses, _ := store.ListExpensesByGroup(ctx, group.ID)
		if len(expenses) != 1 || expenses[0].ID != e2.ID {
			t.Errorf("unexpected expenses after delete: %v", expenses)
		}

		// absent id is a no-op
		if err := store.DeleteExpense(ctx, e1.ID); err != nil {
			t.Errorf("expected no-op, got %v", err)
		}
	})
}
