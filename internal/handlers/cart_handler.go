package handlers

import (
	"context"
	"net/http"
	"strings"
	"voidwebsite/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CartStore interface {
	Get(ctx context.Context, cartID string) ([]models.OrderItem, error)
	AddItem(ctx context.Context, cartID string, item models.OrderItem) ([]models.OrderItem, error)
	SetQuantity(ctx context.Context, cartID, productID string, quantity int) ([]models.OrderItem, error)
	RemoveItem(ctx context.Context, cartID, productID string) ([]models.OrderItem, error)
	Clear(ctx context.Context, cartID string) error
}

type CartHandler struct {
	carts CartStore
}

func NewCartHandler(carts CartStore) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartResponse struct {
	CartID   string             `json:"cartId"`
	Items    []models.OrderItem `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
	Count    int                `json:"count"`
}

func newCartResponse(cartID string, items []models.OrderItem) cartResponse {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	if items == nil {
		items = []models.OrderItem{}
	}
	return cartResponse{CartID: cartID, Items: items, Subtotal: models.SumItems(items), Count: count}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cartID := c.Param("cartId")
	items, err := h.carts.Get(c.Request.Context(), cartID)
	if err != nil {
		respondError(c, err, "Failed to load cart")
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cartID, items))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var item models.OrderItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c)
		return
	}
	if strings.TrimSpace(item.ProductID) == "" || strings.TrimSpace(item.Name) == "" || item.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id, name and a non-negative price are required"})
		return
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	cartID := c.Param("cartId")
	items, err := h.carts.AddItem(c.Request.Context(), cartID, item)
	if err != nil {
		respondError(c, err, "Failed to update cart")
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cartID, items))
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	cartID := c.Param("cartId")
	items, err := h.carts.SetQuantity(c.Request.Context(), cartID, c.Param("productId"), req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to update cart")
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cartID, items))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID := c.Param("cartId")
	items, err := h.carts.RemoveItem(c.Request.Context(), cartID, c.Param("productId"))
	if err != nil {
		respondError(c, err, "Failed to update cart")
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cartID, items))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	cartID := c.Param("cartId")
	if err := h.carts.Clear(c.Request.Context(), cartID); err != nil {
		respondError(c, err, "Failed to clear cart")
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cartID, nil))
}
