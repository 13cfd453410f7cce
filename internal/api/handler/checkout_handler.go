package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kusina/canteen-api/internal/api/metrics"
	"github.com/kusina/canteen-api/internal/core/ports"
)

type CheckoutHandler struct {
	checkoutService ports.CheckoutService
}

func NewCheckoutHandler(checkoutService ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Preview aggregates the caller's pending orders into a payable total. The
// returned as_of is the settlement cutoff to pass back on confirm.
//
// @Summary      Preview checkout
// @Tags         checkout
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  checkoutPreviewResponse
// @Router       /v1/checkout/preview [get]
func (h *CheckoutHandler) Preview(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	summary, err := h.checkoutService.Preview(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, checkoutPreviewResponse{
		Orders: toOrderResponses(summary.Orders),
		Total:  summary.Total.String(),
		AsOf:   summary.AsOf,
	})
}

// Confirm settles the caller's pending orders created at or before as_of in
// one bulk transition. Confirming with nothing pending settles zero orders.
//
// @Summary      Confirm checkout
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      confirmRequest  false  "Settlement cutoff from the preview"
// @Success      200   {object}  settlementResponse
// @Router       /v1/checkout/confirm [post]
func (h *CheckoutHandler) Confirm(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req confirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	start := time.Now()
	result, err := h.checkoutService.Confirm(c.Request().Context(), userID, req.AsOf)
	if err != nil {
		return err
	}
	metrics.SettlementDuration.Observe(time.Since(start).Seconds())
	metrics.OrdersSettledTotal.Add(float64(len(result.Settled)))

	return c.JSON(http.StatusOK, settlementResponse{
		Settled: toOrderResponses(result.Settled),
		Total:   result.Total.String(),
	})
}
