package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kusina/canteen-api/internal/core/domain"
	"github.com/kusina/canteen-api/internal/core/ports"
)

type OrderService struct {
	orders ports.OrderRepository
	menu   ports.MenuRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, menu ports.MenuRepository, users ports.UserRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, menu: menu, users: users, logger: logger}
}

// Place creates a pending order. Total is quantity × the CURRENT catalog
// price at the moment of insertion, exact decimal arithmetic.
func (s *OrderService) Place(ctx context.Context, userID, menuItemID string, quantity int) (*domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	item, err := s.menu.FindByID(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:    userID,
		MenuID:    item.ID,
		Quantity:  quantity,
		Total:     item.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.orders.Insert(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Str("menu_id", menuItemID).Msg("failed to place order")
		return nil, err
	}

	s.logger.Info().
		Str("order_id", created.ID).
		Str("user_id", userID).
		Int("quantity", quantity).
		Str("total", created.Total.String()).
		Msg("order placed")

	return created, nil
}

// EditQuantity rewrites quantity and total in the same guarded write. The
// repository predicate (owner AND pending) decides the race; a settled order
// is never touched.
func (s *OrderService) EditQuantity(ctx context.Context, userID, orderID string, quantity int) (*domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	order, err := s.orders.FindByID(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusPending {
		return nil, domain.ErrOrderNotPending
	}

	item, err := s.menu.FindByID(ctx, order.MenuID)
	if err != nil {
		return nil, err
	}

	total := item.Price.Mul(decimal.NewFromInt(int64(quantity)))
	updated, err := s.orders.UpdatePendingQuantity(ctx, orderID, userID, quantity, total)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", orderID).
		Int("quantity", quantity).
		Str("total", total.String()).
		Msg("order quantity updated")

	return updated, nil
}

// Delete removes a pending order owned by the caller.
func (s *OrderService) Delete(ctx context.Context, userID, orderID string) error {
	if userID == "" {
		return domain.ErrAuthRequired
	}
	if err := s.orders.DeletePending(ctx, orderID, userID); err != nil {
		return err
	}
	s.logger.Info().Str("order_id", orderID).Str("user_id", userID).Msg("order deleted")
	return nil
}

// MarkDone transitions a paid order to its terminal state. Re-invoking on a
// done order fails the transition guard and never reverts status.
func (s *OrderService) MarkDone(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.MarkDone(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("order_id", orderID).Msg("order marked done")
	return order, nil
}

// ListForUser returns the caller's orders newest first, joined with catalog
// names. Orders whose menu item has since been deleted render a fallback name.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]ports.OrderView, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}
	orders, err := s.orders.List(ctx, ports.OrderListFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, orders, false)
}

// ListAll is the administrator view: every principal's orders, owner emails
// joined for display.
func (s *OrderService) ListAll(ctx context.Context) ([]ports.OrderView, error) {
	orders, err := s.orders.List(ctx, ports.OrderListFilter{})
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, orders, true)
}

func (s *OrderService) buildViews(ctx context.Context, orders []*domain.Order, withOwner bool) ([]ports.OrderView, error) {
	menuIDs := make([]string, 0, len(orders))
	userIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		menuIDs = append(menuIDs, o.MenuID)
		userIDs = append(userIDs, o.UserID)
	}

	items, err := s.menu.FindByIDs(ctx, menuIDs)
	if err != nil {
		return nil, err
	}

	emails := map[string]string{}
	if withOwner && len(userIDs) > 0 {
		emails, err = s.users.FindEmailsByIDs(ctx, userIDs)
		if err != nil {
			return nil, err
		}
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
		if withOwner {
			view.OwnerEmail = emails[o.UserID]
		}
		views = append(views, view)
	}
	return views, nil
}
