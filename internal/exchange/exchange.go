// Package exchange supplies the display-time currency conversion rate.
// The rate annotates amounts with an approximate secondary-currency figure;
// it is never authoritative, never persisted into the ledger, and has no
// effect on balance computation.
package exchange

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultFallbackRate is used when no live rate can be fetched:
// approximate Lempiras per 1 USD.
var DefaultFallbackRate = decimal.RequireFromString("24.7")

// Rate is a currency conversion rate as of a given date.
type Rate struct {
	// Value is the number of target-currency units per 1 base unit.
	Value decimal.Decimal

	// Date is the day the rate was published.
	Date time.Time
}

// Apply converts an amount in the base currency to the target currency,
// rounded to 2 decimal places. Rounding happens here, at display time only.
func (r Rate) Apply(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Mul(r.Value).Round(2)
}

// Provider fetches the current conversion rate.
type Provider interface {
	FetchRate(ctx context.Context) (Rate, error)
}

// Resolve fetches a rate from p, substituting fallback on any failure.
// The display path always gets a usable number; fetch errors are logged
// and swallowed, never surfaced to the caller. The second return value
// reports whether the rate came from a live fetch.
func Resolve(ctx context.Context, p Provider, fallback decimal.Decimal) (Rate, bool) {
	if p == nil {
		return Rate{Value: fallback, Date: time.Now().UTC()}, false
	}
	rate, err := p.FetchRate(ctx)
	if err != nil {
		slog.Warn("Rate fetch failed, using fallback",
			"error", err,
			"fallback", fallback.String(),
		)
		return Rate{Value: fallback, Date: time.Now().UTC()}, false
	}
	return rate, true
}
