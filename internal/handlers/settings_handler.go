package handlers

import (
	"net/http"
	"voidwebsite/internal/services"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	pricing services.PricingService
}

func NewSettingsHandler(pricing services.PricingService) *SettingsHandler {
	return &SettingsHandler{pricing: pricing}
}

func (h *SettingsHandler) GetPricing(c *gin.Context) {
	c.JSON(http.StatusOK, h.pricing.Current(c.Request.Context()))
}

func (h *SettingsHandler) UpdatePricing(c *gin.Context) {
	var req services.Pricing
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	pricing, err := h.pricing.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to save pricing settings")
		return
	}
	c.JSON(http.StatusOK, pricing)
}
