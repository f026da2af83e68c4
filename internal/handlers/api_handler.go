package handlers

import (
	"net/http"
	"strings"
	"voidwebsite/internal/models"
	"voidwebsite/internal/services"

	"github.com/gin-gonic/gin"
)

type (
	ProductService    = services.ResourceService[models.Product, *models.Product]
	AmbassadorService = services.ResourceService[models.Ambassador, *models.Ambassador]
	MatchService      = services.ResourceService[models.ScheduleMatch, *models.ScheduleMatch]
	EventService      = services.ResourceService[models.ScheduleEvent, *models.ScheduleEvent]
	DashboardService  = services.ResourceService[models.DashboardItem, *models.DashboardItem]
)

// StorefrontConfig is what the browser needs to mount the payment form.
type StorefrontConfig struct {
	StripePublishableKey string `json:"stripePublishableKey"`
	Currency             string `json:"currency"`
}

// APIHandler serves the public storefront.
type APIHandler struct {
	products    *ProductService
	reviews     *services.ReviewService
	teams       services.TeamService
	matches     *MatchService
	events      *EventService
	ambassadors *AmbassadorService
	dashboard   *DashboardService
	orders      services.OrderService
	config      StorefrontConfig
}

func NewAPIHandler(
	products *ProductService,
	reviews *services.ReviewService,
	teams services.TeamService,
	matches *MatchService,
	events *EventService,
	ambassadors *AmbassadorService,
	dashboard *DashboardService,
	orders services.OrderService,
	config StorefrontConfig,
) *APIHandler {
	return &APIHandler{
		products:    products,
		reviews:     reviews,
		teams:       teams,
		matches:     matches,
		events:      events,
		ambassadors: ambassadors,
		dashboard:   dashboard,
		orders:      orders,
		config:      config,
	}
}

func (h *APIHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.config)
}

// ListProducts supports ?q=, ?category= and ?featured=true.
func (h *APIHandler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to load products")
		return
	}
	category := c.Query("category")
	featured := c.Query("featured") == "true"

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if featured && !p.Featured {
			continue
		}
		out = append(out, p)
	}
	c.JSON(http.StatusOK, out)
}

func (h *APIHandler) GetProduct(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *APIHandler) GetProductReviews(c *gin.Context) {
	reviews, err := h.reviews.ForProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *APIHandler) SubmitReview(c *gin.Context) {
	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		badRequest(c)
		return
	}
	review.ProductID = c.Param("id")
	if err := h.reviews.Submit(c.Request.Context(), &review); err != nil {
		respondError(c, err, "Failed to submit review. Please try again.")
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *APIHandler) MarkReviewHelpful(c *gin.Context) {
	review, err := h.reviews.MarkHelpful(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to record vote")
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *APIHandler) ListTeams(c *gin.Context) {
	teams, err := h.teams.ListTeams(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to load teams")
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *APIHandler) GetTeam(c *gin.Context) {
	team, err := h.teams.GetTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load team")
		return
	}
	c.JSON(http.StatusOK, team)
}

// GetSchedule returns matches and events, each sorted by date.
func (h *APIHandler) GetSchedule(c *gin.Context) {
	ctx := c.Request.Context()
	matches, err := h.matches.List(ctx, c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to load schedule")
		return
	}
	events, err := h.events.List(ctx, c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to load schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "events": events})
}

func (h *APIHandler) ListAmbassadors(c *gin.Context) {
	ambassadors, err := h.ambassadors.List(c.Request.Context(), "")
	if err != nil {
		respondError(c, err, "Failed to load ambassadors")
		return
	}
	c.JSON(http.StatusOK, ambassadors)
}

func (h *APIHandler) ListDashboardItems(c *gin.Context) {
	items, err := h.dashboard.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, items)
}

// LookupOrder lets a customer view their order by number. The email on the
// order must match ?email=.
func (h *APIHandler) LookupOrder(c *gin.Context) {
	order, ok := h.orders.GetOrder(c.Param("id"))
	email := strings.TrimSpace(c.Query("email"))
	if !ok || email == "" || !strings.EqualFold(order.CustomerInfo.Email, email) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, newOrderView(order))
}
