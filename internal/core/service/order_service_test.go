package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kusina/canteen-api/internal/core/domain"
)

func newOrderFixture() (*stubOrderRepo, *stubMenuRepo, *stubUserRepo, *OrderService) {
	orders := newStubOrderRepo()
	menu := newStubMenuRepo()
	users := newStubUserRepo()
	svc := NewOrderService(orders, menu, users, discardLogger)
	return orders, menu, users, svc
}

func TestOrderService_Place_ExactTotal(t *testing.T) {
	_, menu, _, svc := newOrderFixture()
	item := menu.seedMenuItem("Chicken Adobo", "100.00")

	order, err := svc.Place(context.Background(), "user_1", item.ID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !order.Total.Equal(decimal.RequireFromString("300.00")) {
		t.Errorf("total: expected 300.00, got %s", order.Total)
	}
	if order.Status != domain.StatusPending {
		t.Errorf("status: expected %q, got %q", domain.StatusPending, order.Status)
	}
	if order.CreatedAt.IsZero() {
		t.Error("CreatedAt must not be zero")
	}
}

func TestOrderService_Place_UsesCurrentCatalogPrice(t *testing.T) {
	_, menu, _, svc := newOrderFixture()
	item := menu.seedMenuItem("Sisig", "150.50")

	// Reprice before ordering; the order must price at the new value.
	newPrice := decimal.RequireFromString("175.25")
	menu.items[item.ID].Price = newPrice

	order, err := svc.Place(context.Background(), "user_1", item.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !order.Total.Equal(decimal.RequireFromString("350.50")) {
		t.Errorf("total must use the current price: expected 350.50, got %s", order.Total)
	}
}

func TestOrderService_Place_InvalidQuantity(t *testing.T) {
	_, menu, _, svc := newOrderFixture()
	item := menu.seedMenuItem("Sisig", "150.50")

	for _, qty := range []int{0, -3} {
		if _, err := svc.Place(context.Background(), "user_1", item.ID, qty); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
}

func TestOrderService_Place_RequiresPrincipal(t *testing.T) {
	_, menu, _, svc := newOrderFixture()
	item := menu.seedMenuItem("Sisig", "150.50")

	if _, err := svc.Place(context.Background(), "", item.ID, 1); !errors.Is(err, domain.ErrAuthRequired) {
		t.Errorf("expected ErrAuthRequired, got %v", err)
	}
}

func TestOrderService_Place_UnknownItem(t *testing.T) {
	_, _, _, svc := newOrderFixture()

	if _, err := svc.Place(context.Background(), "user_1", "menu_404", 1); !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Errorf("expected ErrMenuItemNotFound, got %v", err)
	}
}

func TestOrderService_EditQuantity_RewritesTotal(t *testing.T) {
	_, menu, _, svc := newOrderFixture()
	item := menu.seedMenuItem("Chicken Adobo", "100.00")

	order, _ := svc.Place(context.Background(), "user_1", item.ID, 3)

	updated, err := svc.EditQuantity(context.Background(), "user_1", order.ID, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Quantity != 5 {
		t.Errorf("quantity: expected 5, got %d", updated.Quantity)
	}
	if !updated.Total.Equal(decimal.RequireFromString("500.00")) {
		t.Errorf("total: expected 500.00, got %s", updated.Total)
	}
	if updated.Status != domain.StatusPending {
		t.Errorf("status must remain pending, got %q", updated.Status)
	}
}

func TestOrderService_EditQuantity_ForbiddenOncePaid(t *testing.T) {
	orders, menu, _, svc := newOrderFixture()
	item := menu.seedMenuItem("Chicken Adobo", "100.00")

	order, _ := svc.Place(context.Background(), "user_1", item.ID, 3)
	orders.orders[order.ID].Status = domain.StatusPaid

	_, err := svc.EditQuantity(context.Background(), "user_1", order.ID, 5)
	if !errors.Is(err, domain.ErrOrderNotPending) {
		t.Fatalf("expected ErrOrderNotPending, got %v", err)
	}

	stored := orders.orders[order.ID]
	if stored.Quantity != 3 || !stored.Total.Equal(decimal.RequireFromString("300.00")) {
		t.Errorf("a rejected edit must leave the order unchanged: qty=%d total=%s", stored.Quantity, stored.Total)
	}
}

func TestOrderService_EditQuantity_OwnerOnly(t *testing.T) {
	_, menu, _, svc := newOrderFixture()
	item := menu.seedMenuItem("Chicken Adobo", "100.00")

	order, _ := svc.Place(context.Background(), "user_1", item.ID, 3)

	if _, err := svc.EditQuantity(context.Background(), "user_2", order.ID, 5); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("another principal must not see the order: expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderService_Delete_PendingOnly(t *testing.T) {
	orders, menu, _, svc := newOrderFixture()
	item := menu.seedMenuItem("Chicken Adobo", "100.00")

	pending, _ := svc.Place(context.Background(), "user_1", item.ID, 1)
	paid, _ := svc.Place(context.Background(), "user_1", item.ID, 1)
	orders.orders[paid.ID].Status = domain.StatusPaid

	if err := svc.Delete(context.Background(), "user_1", pending.ID); err != nil {
		t.Fatalf("deleting a pending order failed: %v", err)
	}
	if err := svc.Delete(context.Background(), "user_1", paid.ID); !errors.Is(err, domain.ErrOrderNotPending) {
		t.Errorf("deleting a paid order: expected ErrOrderNotPending, got %v", err)
	}
}

func TestOrderService_MarkDone(t *testing.T) {
	orders, menu, _, svc := newOrderFixture()
	item := menu.seedMenuItem("Chicken Adobo", "100.00")

	order, _ := svc.Place(context.Background(), "user_1", item.ID, 1)
	orders.orders[order.ID].Status = domain.StatusPaid

	done, err := svc.MarkDone(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if done.Status != domain.StatusDone {
		t.Errorf("status: expected %q, got %q", domain.StatusDone, done.Status)
	}

	// A second invocation must fail the transition guard, never revert.
	if _, err := svc.MarkDone(context.Background(), order.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if orders.orders[order.ID].Status != domain.StatusDone {
		t.Errorf("status must stay done, got %q", orders.orders[order.ID].Status)
	}
}

func TestOrderService_MarkDone_PendingOrder(t *testing.T) {
	_, menu, _, svc := newOrderFixture()
	item := menu.seedMenuItem("Chicken Adobo", "100.00")

	order, _ := svc.Place(context.Background(), "user_1", item.ID, 1)

	if _, err := svc.MarkDone(context.Background(), order.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("pending -> done must be rejected: got %v", err)
	}
}

func TestOrderService_ListForUser_ScopedAndNewestFirst(t *testing.T) {
	orders, menu, _, svc := newOrderFixture()
	item := menu.seedMenuItem("Chicken Adobo", "100.00")

	first, _ := svc.Place(context.Background(), "user_1", item.ID, 1)
	second, _ := svc.Place(context.Background(), "user_1", item.ID, 2)
	_, _ = svc.Place(context.Background(), "user_2", item.ID, 1)

	// Force distinct timestamps; inserts within the same test run can share one.
	orders.orders[first.ID].CreatedAt = time.Now().UTC().Add(-time.Minute)
	orders.orders[second.ID].CreatedAt = time.Now().UTC()

	views, err := svc.ListForUser(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 orders for user_1, got %d", len(views))
	}
	if views[0].ID != second.ID {
		t.Errorf("newest order must come first, got %s", views[0].ID)
	}
	if views[0].ItemName != "Chicken Adobo" {
		t.Errorf("item name: expected Chicken Adobo, got %q", views[0].ItemName)
	}
}

func TestOrderService_ListForUser_DeletedItemFallback(t *testing.T) {
	_, menu, _, svc := newOrderFixture()
	item := menu.seedMenuItem("Chicken Adobo", "100.00")

	order, _ := svc.Place(context.Background(), "user_1", item.ID, 2)
	delete(menu.items, item.ID)

	views, err := svc.ListForUser(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("orphaned reference must not fail the listing: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 order, got %d", len(views))
	}
	if views[0].ItemName != domain.UnavailableItemName {
		t.Errorf("expected fallback name %q, got %q", domain.UnavailableItemName, views[0].ItemName)
	}
	if !views[0].Total.Equal(order.Total) {
		t.Errorf("stored total must survive item deletion, got %s", views[0].Total)
	}
}

func TestOrderService_ListAll_JoinsOwnerEmail(t *testing.T) {
	_, menu, users, svc := newOrderFixture()
	item := menu.seedMenuItem("Chicken Adobo", "100.00")

	owner, _ := users.Create(context.Background(), &domain.User{Email: "diner@example.com"})
	_, _ = svc.Place(context.Background(), owner.ID, item.ID, 1)

	views, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 order, got %d", len(views))
	}
	if views[0].OwnerEmail != "diner@example.com" {
		t.Errorf("owner email: expected diner@example.com, got %q", views[0].OwnerEmail)
	}
}
