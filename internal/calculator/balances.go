// Package calculator implements the pure balance computation for a group.
// It has no storage or transport dependencies so it can be tested in
// isolation and recomputed freely whenever the expense set changes.
package calculator

import (
	"strings"

	"github.com/dividircuenta/backend/internal/models"
)

// CalculateBalances computes one balance per participant from the group's
// unsettled expenses, in the group's participant order.
//
// Algorithm:
//   - Filter expenses to the group's unsettled ones. If none remain, the
//     result is empty: settled or absent expenses produce no output at all,
//     not a zero balance per participant.
//   - share = total / participant count (equal split only)
//   - owes = share - amount paid by that participant
//
// Payer matching is case-insensitive. No rounding is applied here; rounding
// is a presentation concern, applied only at display time, so repeated
// recomputation never compounds rounding error. The owes values over all
// participants sum to zero up to floating-point representation error.
func CalculateBalances(group *models.Group, expenses []*models.Expense) []models.Balance {
	var unsettled []*models.Expense
	for _, e := range expenses {
		if e.GroupID == group.ID && !e.Settled {
			unsettled = append(unsettled, e)
		}
	}
	if len(unsettled) == 0 {
		return nil
	}

	total := 0.0
	for _, e := range unsettled {
		total += e.Amount
	}
	share := total / float64(len(group.Participants))

	balances := make([]models.Balance, 0, len(group.Participants))
	for _, p := range group.Participants {
		paid := 0.0
		for _, e := range unsettled {
			if strings.EqualFold(e.PaidBy, p.Name) {
				paid += e.Amount
			}
		}
		balances = append(balances, models.Balance{
			ParticipantName: p.Name,
			Owes:            share - paid,
		})
	}

	return balances
}
