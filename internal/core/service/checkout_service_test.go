package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kusina/canteen-api/internal/core/domain"
)

func newCheckoutFixture() (*stubOrderRepo, *stubMenuRepo, *OrderService, *CheckoutService) {
	orders := newStubOrderRepo()
	menu := newStubMenuRepo()
	users := newStubUserRepo()
	orderSvc := NewOrderService(orders, menu, users, discardLogger)
	checkoutSvc := NewCheckoutService(orders, menu, discardLogger)
	return orders, menu, orderSvc, checkoutSvc
}

func TestCheckoutService_Preview_SumsPendingTotals(t *testing.T) {
	_, menu, orderSvc, svc := newCheckoutFixture()
	adobo := menu.seedMenuItem("Chicken Adobo", "100.00")
	sisig := menu.seedMenuItem("Sisig", "150.50")

	_, _ = orderSvc.Place(context.Background(), "user_1", adobo.ID, 3)
	_, _ = orderSvc.Place(context.Background(), "user_1", sisig.ID, 1)
	_, _ = orderSvc.Place(context.Background(), "user_2", adobo.ID, 10)

	summary, err := svc.Preview(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.Orders) != 2 {
		t.Fatalf("expected 2 pending orders, got %d", len(summary.Orders))
	}
	if !summary.Total.Equal(decimal.RequireFromString("450.50")) {
		t.Errorf("total: expected 450.50, got %s", summary.Total)
	}
	if summary.AsOf.IsZero() {
		t.Error("preview must carry a settlement cutoff")
	}
}

func TestCheckoutService_Preview_EmptySetSumsToZero(t *testing.T) {
	_, _, _, svc := newCheckoutFixture()

	summary, err := svc.Preview(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.Total.Equal(decimal.Zero) {
		t.Errorf("empty set must sum to exactly 0, got %s", summary.Total)
	}
	if len(summary.Orders) != 0 {
		t.Errorf("expected no orders, got %d", len(summary.Orders))
	}
}

func TestCheckoutService_Confirm_SettlesPending(t *testing.T) {
	orders, menu, orderSvc, svc := newCheckoutFixture()
	adobo := menu.seedMenuItem("Chicken Adobo", "100.00")

	placed, _ := orderSvc.Place(context.Background(), "user_1", adobo.ID, 3)

	result, err := svc.Confirm(context.Background(), "user_1", time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Settled) != 1 {
		t.Fatalf("expected 1 settled order, got %d", len(result.Settled))
	}
	if !result.Total.Equal(decimal.RequireFromString("300.00")) {
		t.Errorf("total: expected 300.00, got %s", result.Total)
	}
	if orders.orders[placed.ID].Status != domain.StatusPaid {
		t.Errorf("order must be paid after settlement, got %q", orders.orders[placed.ID].Status)
	}
}

func TestCheckoutService_Confirm_Idempotent(t *testing.T) {
	_, menu, orderSvc, svc := newCheckoutFixture()
	adobo := menu.seedMenuItem("Chicken Adobo", "100.00")

	_, _ = orderSvc.Place(context.Background(), "user_1", adobo.ID, 3)

	first, err := svc.Confirm(context.Background(), "user_1", time.Time{})
	if err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}
	if len(first.Settled) != 1 {
		t.Fatalf("first confirm: expected 1 settled order, got %d", len(first.Settled))
	}

	second, err := svc.Confirm(context.Background(), "user_1", time.Time{})
	if err != nil {
		t.Fatalf("second confirm failed: %v", err)
	}
	if len(second.Settled) != 0 {
		t.Errorf("second confirm must settle zero orders, got %d", len(second.Settled))
	}
	if !second.Total.Equal(decimal.Zero) {
		t.Errorf("second confirm total must be 0, got %s", second.Total)
	}
}

func TestCheckoutService_Confirm_DoesNotSweepLaterOrders(t *testing.T) {
	orders, menu, orderSvc, svc := newCheckoutFixture()
	adobo := menu.seedMenuItem("Chicken Adobo", "100.00")

	early, _ := orderSvc.Place(context.Background(), "user_1", adobo.ID, 1)
	summary, err := svc.Preview(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}

	// A new pending order lands after the payment screen loaded its totals.
	late, _ := orderSvc.Place(context.Background(), "user_1", adobo.ID, 2)
	orders.orders[late.ID].CreatedAt = summary.AsOf.Add(time.Second)

	result, err := svc.Confirm(context.Background(), "user_1", summary.AsOf)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if len(result.Settled) != 1 || result.Settled[0].ID != early.ID {
		t.Fatalf("only the previewed order may settle, got %d settled", len(result.Settled))
	}
	if orders.orders[late.ID].Status != domain.StatusPending {
		t.Errorf("the later order must remain pending for the next cycle, got %q", orders.orders[late.ID].Status)
	}
}

func TestCheckoutService_Confirm_RequiresPrincipal(t *testing.T) {
	_, _, _, svc := newCheckoutFixture()

	if _, err := svc.Confirm(context.Background(), "", time.Time{}); !errors.Is(err, domain.ErrAuthRequired) {
		t.Errorf("expected ErrAuthRequired, got %v", err)
	}
}

func TestCheckoutService_Confirm_SettledOrdersStayEditable_OnlyByAdmin(t *testing.T) {
	orders, menu, orderSvc, svc := newCheckoutFixture()
	adobo := menu.seedMenuItem("Chicken Adobo", "100.00")

	placed, _ := orderSvc.Place(context.Background(), "user_1", adobo.ID, 3)
	if _, err := svc.Confirm(context.Background(), "user_1", time.Time{}); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	// The owner can no longer edit or delete the settled order.
	if _, err := orderSvc.EditQuantity(context.Background(), "user_1", placed.ID, 9); !errors.Is(err, domain.ErrOrderNotPending) {
		t.Errorf("edit after settlement: expected ErrOrderNotPending, got %v", err)
	}
	if err := orderSvc.Delete(context.Background(), "user_1", placed.ID); !errors.Is(err, domain.ErrOrderNotPending) {
		t.Errorf("delete after settlement: expected ErrOrderNotPending, got %v", err)
	}

	// The admin paid→done transition remains available.
	if _, err := orderSvc.MarkDone(context.Background(), placed.ID); err != nil {
		t.Errorf("markDone after settlement must succeed, got %v", err)
	}
	if orders.orders[placed.ID].Status != domain.StatusDone {
		t.Errorf("expected done, got %q", orders.orders[placed.ID].Status)
	}
}
