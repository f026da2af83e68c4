package handlers

import (
	"net/http"
	"time"
	"voidwebsite/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Dependencies is everything the HTTP layer serves.
type Dependencies struct {
	Products    *ProductService
	Reviews     *services.ReviewService
	Teams       services.TeamService
	Matches     *MatchService
	Events      *EventService
	Ambassadors *AmbassadorService
	Dashboard   *DashboardService
	Orders      services.OrderService
	Sets        OrderSets
	Reconciler  Reconcile
	Checkout    services.CheckoutService
	Pricing     services.PricingService
	Carts       CartStore
	Auth        services.AuthService
	Users       services.UserService
	Storefront  StorefrontConfig

	AllowedOrigins []string
	// CheckoutLimiter guards the endpoints that reach the payment
	// processor. Nil disables limiting.
	CheckoutLimiter *RateLimiter
}

func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiHandler := NewAPIHandler(deps.Products, deps.Reviews, deps.Teams, deps.Matches, deps.Events,
		deps.Ambassadors, deps.Dashboard, deps.Orders, deps.Storefront)
	cartHandler := NewCartHandler(deps.Carts)
	checkoutHandler := NewCheckoutHandler(deps.Checkout)
	authHandler := NewAuthHandler(deps.Auth, deps.Users)

	limit := func(c *gin.Context) { c.Next() }
	if deps.CheckoutLimiter != nil {
		limit = deps.CheckoutLimiter.Middleware()
	}

	api := router.Group("/api")
	{
		api.GET("/config", apiHandler.GetConfig)

		api.GET("/products", apiHandler.ListProducts)
		api.GET("/products/:id", apiHandler.GetProduct)
		api.GET("/products/:id/reviews", apiHandler.GetProductReviews)
		api.POST("/products/:id/reviews", apiHandler.SubmitReview)
		api.POST("/reviews/:id/helpful", apiHandler.MarkReviewHelpful)

		api.GET("/teams", apiHandler.ListTeams)
		api.GET("/teams/:id", apiHandler.GetTeam)
		api.GET("/schedule", apiHandler.GetSchedule)
		api.GET("/ambassadors", apiHandler.ListAmbassadors)
		api.GET("/dashboard-items", apiHandler.ListDashboardItems)

		api.GET("/cart/:cartId", cartHandler.GetCart)
		api.POST("/cart/:cartId/items", cartHandler.AddItem)
		api.PUT("/cart/:cartId/items/:productId", cartHandler.UpdateItem)
		api.DELETE("/cart/:cartId/items/:productId", cartHandler.RemoveItem)
		api.DELETE("/cart/:cartId", cartHandler.ClearCart)

		api.POST("/checkout/quote", checkoutHandler.Quote)
		api.POST("/checkout", limit, checkoutHandler.Checkout)
		api.POST("/checkout/confirm", checkoutHandler.Confirm)
		api.POST("/create-payment-intent", limit, checkoutHandler.CreatePaymentIntent)
		api.GET("/orders/:id", apiHandler.LookupOrder)

		api.POST("/auth/login", authHandler.Login)
	}

	admin := api.Group("/admin", AuthMiddleware(deps.Auth))
	{
		admin.GET("/me", authHandler.Me)

		orderHandler := NewOrderHandler(deps.Orders, deps.Sets, deps.Reconciler)
		admin.GET("/orders", orderHandler.ListOrders)
		admin.GET("/orders/summary", orderHandler.Summary)
		admin.GET("/orders/unset", orderHandler.UnsetOrders)
		admin.POST("/orders/bulk-delete", orderHandler.BulkDelete)
		admin.GET("/orders/:id", orderHandler.GetOrder)
		admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)
		admin.DELETE("/orders/:id", orderHandler.DeleteOrder)

		admin.GET("/order-sets", orderHandler.ListSets)
		admin.POST("/order-sets", orderHandler.CreateSet)
		admin.POST("/order-sets/:id/assign", orderHandler.AssignToSet)
		admin.POST("/order-sets/:id/remove", orderHandler.RemoveFromSet)
		admin.POST("/order-sets/:id/toggle", orderHandler.ToggleSet)
		admin.DELETE("/order-sets/:id", orderHandler.DeleteSet)
		if deps.Reconciler != nil {
			admin.POST("/reconcile", orderHandler.Reconcile)
		}

		NewResourceHandler(deps.Products, "product").Register(admin, "/products")
		NewResourceHandler(deps.Reviews.ResourceService, "review").Register(admin, "/reviews")
		NewResourceHandler(deps.Ambassadors, "ambassador").Register(admin, "/ambassadors")
		NewResourceHandler(deps.Matches, "match").Register(admin, "/schedule/matches")
		NewResourceHandler(deps.Events, "event").Register(admin, "/schedule/events")
		NewResourceHandler(deps.Dashboard, "dashboard item").Register(admin, "/dashboard-items")

		teamHandler := NewTeamHandler(deps.Teams)
		admin.GET("/teams", teamHandler.ListTeams)
		admin.POST("/teams", teamHandler.CreateTeam)
		admin.POST("/teams/bulk-delete", teamHandler.BulkDelete)
		admin.GET("/teams/:id", teamHandler.GetTeam)
		admin.PUT("/teams/:id", teamHandler.UpdateTeam)
		admin.DELETE("/teams/:id", teamHandler.DeleteTeam)
		admin.POST("/teams/:id/players", teamHandler.AddPlayer)
		admin.PUT("/teams/:id/players/:playerId", teamHandler.UpdatePlayer)
		admin.DELETE("/teams/:id/players/:playerId", teamHandler.DeletePlayer)

		settingsHandler := NewSettingsHandler(deps.Pricing)
		admin.GET("/settings/pricing", settingsHandler.GetPricing)
		admin.PUT("/settings/pricing", settingsHandler.UpdatePricing)
	}

	return router
}
