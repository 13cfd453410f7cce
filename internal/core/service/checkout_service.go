package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kusina/canteen-api/internal/core/domain"
	"github.com/kusina/canteen-api/internal/core/ports"
)

// CheckoutService aggregates a user's pending orders into a payable total and
// performs the pending→paid bulk transition.
type CheckoutService struct {
	orders ports.OrderRepository
	menu   ports.MenuRepository
	logger zerolog.Logger
}

func NewCheckoutService(orders ports.OrderRepository, menu ports.MenuRepository, logger zerolog.Logger) *CheckoutService {
	return &CheckoutService{orders: orders, menu: menu, logger: logger}
}

// Preview sums the stored totals of the user's pending orders. An empty set
// sums to exactly zero.
func (s *CheckoutService) Preview(ctx context.Context, userID string) (*ports.CheckoutSummary, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}

	pending, err := s.orders.List(ctx, ports.OrderListFilter{UserID: userID, Status: domain.StatusPending})
	if err != nil {
		return nil, err
	}

	views, err := s.views(ctx, pending)
	if err != nil {
		return nil, err
	}

	return &ports.CheckoutSummary{
		Orders: views,
		Total:  sumTotals(pending),
		AsOf:   time.Now().UTC(),
	}, nil
}

// Confirm settles every order matching (userID AND pending AND created at or
// before asOf) in one storage command. The predicate is evaluated server-side,
// so a pending order placed after the payment screen loaded its totals is not
// swept; it stays pending for the next checkout cycle. Re-confirming settles
// zero orders.
func (s *CheckoutService) Confirm(ctx context.Context, userID string, asOf time.Time) (*ports.SettlementResult, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	settled, err := s.orders.SettlePending(ctx, userID, asOf)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("settlement failed")
		return nil, err
	}

	views, err := s.views(ctx, settled)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Int("orders", len(settled)).
		Str("total", sumTotals(settled).String()).
		Msg("pending orders settled")

	return &ports.SettlementResult{Settled: views, Total: sumTotals(settled)}, nil
}

func (s *CheckoutService) views(ctx context.Context, orders []*domain.Order) ([]ports.OrderView, error) {
	menuIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		menuIDs = append(menuIDs, o.MenuID)
	}

	items, err := s.menu.FindByIDs(ctx, menuIDs)
	if err != nil {
		return nil, err
	}

	views := make([]ports.OrderView, 0, len(orders))
	for _, o := range orders {
		view := ports.OrderView{
			ID:        o.ID,
			ItemName:  domain.UnavailableItemName,
			Quantity:  o.Quantity,
			Total:     o.Total,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
		}
		if item, ok := items[o.MenuID]; ok {
			view.ItemName = item.Name
			view.ImageURL = item.ImageURL
		}
		views = append(views, view)
	}
	return views, nil
}

func sumTotals(orders []*domain.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return total
}
