package handler

import (
	"errors"
	"fmt"
	"net/http"
	"sparemart/internal/dto"
	"sparemart/internal/model"
	"sparemart/internal/service"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// FinalizeCOD handles POST /api/checkout/:id/finalize.
func (h *CheckoutHandler) FinalizeCOD(c echo.Context) error {
	ctx := c.Request().Context()

	checkoutID := c.Param("id")
	if checkoutID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing checkout id")
	}

	resp, err := h.checkoutService.FinalizeCOD(ctx, checkoutID)
	if err != nil {
		return finalizeHTTPError(checkoutID, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// FinalizeOnline handles POST /api/payment/callback, the gateway's
// payment-success callback.
func (h *CheckoutHandler) FinalizeOnline(c echo.Context) error {
	ctx := c.Request().Context()

	var callback dto.PaymentCallback
	if err := c.Bind(&callback); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if callback.CheckoutID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing checkout id")
	}

	resp, err := h.checkoutService.FinalizeOnline(ctx, &callback)
	if err != nil {
		return finalizeHTTPError(callback.CheckoutID, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// GetOrder handles GET /api/orders/:id.
func (h *CheckoutHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.checkoutService.GetOrder(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, order)
}

// finalizeHTTPError maps the fatal pipeline errors onto user-facing HTTP
// errors. Swallowed downstream failures never reach this point.
func finalizeHTTPError(checkoutID string, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidCheckout):
		return echo.NewHTTPError(http.StatusNotFound, model.ErrInvalidCheckout.Error())
	case errors.Is(err, model.ErrOrderMismatch):
		return echo.NewHTTPError(http.StatusBadRequest, model.ErrOrderMismatch.Error())
	case errors.Is(err, model.ErrInvalidSignature):
		return echo.NewHTTPError(http.StatusBadRequest, model.ErrInvalidSignature.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf(
			"Could not complete your order. Please contact support with reference %s.", checkoutID))
	}
}
