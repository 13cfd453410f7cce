package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kusina/canteen-api/internal/api/metrics"
	"github.com/kusina/canteen-api/internal/core/ports"
)

type OrderHandler struct {
	orderService ports.OrderService
}

func NewOrderHandler(orderService ports.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Place creates a pending order for one menu item.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      placeOrderRequest  true  "Order details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orderService.Place(c.Request().Context(), userID, req.MenuID, req.Quantity)
	if err != nil {
		return err
	}

	metrics.OrdersPlacedTotal.Inc()
	return c.JSON(http.StatusCreated, map[string]string{
		"id":     order.ID,
		"status": string(order.Status),
		"total":  order.Total.String(),
	})
}

// List returns the caller's order history, newest first.
//
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   orderResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	views, err := h.orderService.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponses(views))
}

// EditQuantity changes the quantity of a pending order; the total is repriced
// at the current catalog price in the same write.
//
// @Summary      Edit order quantity
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Order id"
// @Param        body  body      editOrderRequest  true  "New quantity"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/orders/{id} [patch]
func (h *OrderHandler) EditQuantity(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req editOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orderService.EditQuantity(c.Request().Context(), userID, c.Param("id"), req.Quantity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"id":     order.ID,
		"status": string(order.Status),
		"total":  order.Total.String(),
	})
}

// Delete removes a pending order.
//
// @Summary      Delete a pending order
// @Tags         orders
// @Security     BearerAuth
// @Param        id    path      string  true  "Order id"
// @Success      204
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.orderService.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAll returns every user's orders with owner emails joined. Admin only.
//
// @Summary      List all orders
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   orderResponse
// @Failure      403   {object}  map[string]string
// @Router       /v1/admin/orders [get]
func (h *OrderHandler) ListAll(c echo.Context) error {
	views, err := h.orderService.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponses(views))
}

// MarkDone transitions a paid order to done. Admin only.
//
// @Summary      Mark an order done
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Order id"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/orders/{id}/done [post]
func (h *OrderHandler) MarkDone(c echo.Context) error {
	order, err := h.orderService.MarkDone(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.OrdersCompletedTotal.Inc()
	return c.JSON(http.StatusOK, map[string]string{
		"id":     order.ID,
		"status": string(order.Status),
	})
}
