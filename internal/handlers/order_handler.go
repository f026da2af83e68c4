package handlers

import (
	"context"
	"net/http"
	"voidwebsite/internal/models"
	"voidwebsite/internal/orderstate"
	"voidwebsite/internal/services"

	"github.com/gin-gonic/gin"
)

// OrderSets is the set half of the order store.
type OrderSets interface {
	Sets() []models.OrderSet
	SetOrders(setID string) ([]models.Order, error)
	UnsetOrders() []models.Order
	CreateSet(ctx context.Context, name string, orderIDs []string) (models.OrderSet, error)
	AssignToSet(ctx context.Context, setID string, orderIDs []string) (models.OrderSet, error)
	RemoveFromSet(ctx context.Context, setID string, orderIDs []string) (models.OrderSet, error)
	ToggleSet(ctx context.Context, setID string) (models.OrderSet, error)
	DeleteSet(ctx context.Context, setID string) error
}

// Reconcile runs one pass of the persistence retry queue.
type Reconcile interface {
	Flush(ctx context.Context) orderstate.FlushResult
}

type OrderHandler struct {
	orders     services.OrderService
	sets       OrderSets
	reconciler Reconcile
}

func NewOrderHandler(orders services.OrderService, sets OrderSets, reconciler Reconcile) *OrderHandler {
	return &OrderHandler{orders: orders, sets: sets, reconciler: reconciler}
}

type idsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// ListOrders supports ?q= over id, customer name and email, and ?status=.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders := h.orders.ListOrders(services.OrderFilter{
		Query:  c.Query("q"),
		Status: models.OrderStatus(c.Query("status")),
	})
	c.JSON(http.StatusOK, newOrderViews(orders))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, ok := h.orders.GetOrder(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, newOrderView(order))
}

func (h *OrderHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.orders.Summary())
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update order status. Please try again.")
		return
	}
	c.JSON(http.StatusOK, newOrderView(order))
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orders.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete order. Please try again.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) BulkDelete(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	c.JSON(http.StatusOK, h.orders.BulkDelete(c.Request.Context(), req.IDs))
}

func (h *OrderHandler) UnsetOrders(c *gin.Context) {
	c.JSON(http.StatusOK, newOrderViews(h.sets.UnsetOrders()))
}

// ListSets returns every set with its orders resolved.
func (h *OrderHandler) ListSets(c *gin.Context) {
	sets := h.sets.Sets()
	out := make([]orderSetView, 0, len(sets))
	for _, set := range sets {
		orders, err := h.sets.SetOrders(set.ID)
		if err != nil {
			continue
		}
		out = append(out, orderSetView{OrderSet: set, Orders: newOrderViews(orders)})
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) CreateSet(c *gin.Context) {
	var req struct {
		Name     string   `json:"name" binding:"required"`
		OrderIDs []string `json:"orderIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	set, err := h.sets.CreateSet(c.Request.Context(), req.Name, req.OrderIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondSet(c, http.StatusCreated, set)
}

func (h *OrderHandler) AssignToSet(c *gin.Context) {
	h.changeMembers(c, h.sets.AssignToSet)
}

func (h *OrderHandler) RemoveFromSet(c *gin.Context) {
	h.changeMembers(c, h.sets.RemoveFromSet)
}

func (h *OrderHandler) ToggleSet(c *gin.Context) {
	set, err := h.sets.ToggleSet(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to update order set")
		return
	}
	h.respondSet(c, http.StatusOK, set)
}

// DeleteSet removes only the set; its orders return to the unset list.
func (h *OrderHandler) DeleteSet(c *gin.Context) {
	if err := h.sets.DeleteSet(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete order set")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) Reconcile(c *gin.Context) {
	c.JSON(http.StatusOK, h.reconciler.Flush(c.Request.Context()))
}

func (h *OrderHandler) changeMembers(c *gin.Context, change func(context.Context, string, []string) (models.OrderSet, error)) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	set, err := change(c.Request.Context(), c.Param("id"), req.IDs)
	if err != nil {
		respondError(c, err, "Failed to update order set")
		return
	}
	h.respondSet(c, http.StatusOK, set)
}

func (h *OrderHandler) respondSet(c *gin.Context, status int, set models.OrderSet) {
	orders, err := h.sets.SetOrders(set.ID)
	if err != nil {
		respondError(c, err, "Failed to load order set")
		return
	}
	c.JSON(status, orderSetView{OrderSet: set, Orders: newOrderViews(orders)})
}
