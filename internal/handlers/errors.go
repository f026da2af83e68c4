package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"voidwebsite/internal/orderstate"
	"voidwebsite/internal/payment"
	"voidwebsite/internal/repository"
	"voidwebsite/internal/services"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors onto HTTP status codes. Unknown errors are
// server faults.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, orderstate.ErrOrderNotFound),
		errors.Is(err, orderstate.ErrSetNotFound),
		errors.Is(err, services.ErrCheckoutNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrStaleWrite):
		return http.StatusConflict
	case errors.Is(err, orderstate.ErrInvalidStatus),
		errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidCustomerInfo),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidItem),
		errors.Is(err, services.ErrInvalidPricing),
		errors.Is(err, payment.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrPaymentNotCompleted):
		return http.StatusPaymentRequired
	case errors.Is(err, services.ErrPaymentIntent):
		return http.StatusBadGateway
	case errors.Is(err, services.ErrPricingUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": ...}. Server faults get the generic message
// and are logged; everything else echoes the error.
func respondError(c *gin.Context, err error, generic string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": generic})
		return
	}
	if status == http.StatusConflict {
		c.JSON(status, gin.H{"error": "This record was changed by someone else. Reload and try again."})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
}
