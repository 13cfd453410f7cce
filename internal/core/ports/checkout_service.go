package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutSummary is the payable view of a user's pending orders. AsOf is the
// settlement cutoff: passing it back to Confirm guarantees that a pending
// order placed after this preview is not swept into the settlement.
type CheckoutSummary struct {
	Orders []OrderView
	Total  decimal.Decimal
	AsOf   time.Time
}

// SettlementResult is returned after a confirmed payment. Settled holds the
// orders the bulk transition actually swept; a repeat confirmation with no
// pending orders settles zero.
type SettlementResult struct {
	Settled []OrderView
	Total   decimal.Decimal
}

// CheckoutService aggregates pending orders into a payable total and performs
// the pending→paid bulk transition.
type CheckoutService interface {
	Preview(ctx context.Context, userID string) (*CheckoutSummary, error)
	// Confirm settles the caller's pending orders created at or before asOf.
	// A zero asOf settles everything pending at execution time.
	Confirm(ctx context.Context, userID string, asOf time.Time) (*SettlementResult, error)
}
