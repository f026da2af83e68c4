package handlers

import (
	"net/http"
	"voidwebsite/internal/models"
	"voidwebsite/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CheckoutHandler struct {
	checkout services.CheckoutService
}

func NewCheckoutHandler(checkout services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

func (h *CheckoutHandler) Quote(c *gin.Context) {
	var req struct {
		Items []models.OrderItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	totals, err := h.checkout.Quote(c.Request.Context(), req.Items)
	if err != nil {
		respondError(c, err, "Failed to price cart")
		return
	}
	c.JSON(http.StatusOK, totals)
}

// Checkout answers 201 with the order for a free checkout and 200 with a
// client secret for a paid one.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	result, err := h.checkout.Checkout(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to place order. Please try again.")
		return
	}
	if result.Free {
		c.JSON(http.StatusCreated, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) Confirm(c *gin.Context) {
	var req struct {
		PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	order, err := h.checkout.Confirm(c.Request.Context(), req.PaymentIntentID)
	if err != nil {
		respondError(c, err, "Failed to confirm payment. Please try again.")
		return
	}
	c.JSON(http.StatusCreated, newOrderView(*order))
}

// CreatePaymentIntent takes {amount, currency, metadata} with amount in
// dollars and returns {clientSecret} or {error}.
func (h *CheckoutHandler) CreatePaymentIntent(c *gin.Context) {
	var req struct {
		Amount   decimal.Decimal   `json:"amount"`
		Currency string            `json:"currency"`
		Metadata map[string]string `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	secret, err := h.checkout.CreatePaymentIntent(c.Request.Context(), req.Amount, req.Currency, req.Metadata)
	if err != nil {
		respondError(c, err, "Failed to create payment intent")
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}
