package http

import (
	"log/slog"
	"net/http"

	"laundry/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig tunes the HTTP stack.
type RouterConfig struct {
	// RateLimit is the number of requests per second allowed per caller; zero disables limiting.
	RateLimit float64
}

// NewEcho builds the echo instance with middleware and every route of s.
func NewEcho(s *Server, cfg RouterConfig, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewCustomValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(Metrics())
	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiterWithConfig(RateLimiterConfig(cfg.RateLimit)))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("", IdempotencyMiddleware(), ActorMiddleware(isCollaboratorRoute), validator)
	s.RegisterRoutes(api)

	return e, nil
}

// isCollaboratorRoute reports routes called by other services rather than
// by marketplace users. They carry no actor.
func isCollaboratorRoute(c echo.Context) bool {
	switch c.Path() {
	case "/orders/:id/payment", "/payouts/:id/paid":
		return true
	default:
		return false
	}
}

// RegisterRoutes binds every endpoint of s to g.
func (s *Server) RegisterRoutes(g *echo.Group) {
	// orders
	g.POST("/orders", s.CreateOrder)
	g.POST("/orders/:id/accept", s.AcceptOrder)
	g.POST("/orders/:id/reject", s.RejectOrder)
	g.POST("/orders/:id/cancel", s.CancelOrder)
	g.POST("/orders/:id/reschedule", s.RescheduleOrder)
	g.POST("/orders/:id/in-cleaning", s.MarkInCleaning)
	g.POST("/orders/:id/ready-for-delivery", s.MarkReadyForDelivery)
	g.POST("/orders/:id/payment", s.RecordPayment)
	g.POST("/orders/:id/otp/:kind/issue", s.IssueOtp)
	g.POST("/orders/:id/otp/:kind/verify", s.VerifyOtp)
	g.GET("/orders/:id/summary", s.GetOrderSummary)
	g.GET("/orders/:id/track", s.GetOrderTracking)
	g.GET("/orders/:id/promotions", s.ListEligiblePromotions)
	g.POST("/orders/:id/apply-promo", s.ApplyPromotion)
	g.GET("/orders/history", s.ListCustomerOrders)
	g.GET("/provider/orders", s.ListProviderOrders)

	// deliveries
	g.GET("/deliveries/available", s.ListAvailableDeliveries)
	g.GET("/deliveries/today", s.ListAgentDeliveriesToday)
	g.POST("/deliveries/:id/accept", s.AcceptDelivery)
	g.POST("/deliveries/:id/decline", s.DeclineDelivery)

	// availability
	g.GET("/availability/check", s.CheckAvailability)
	g.GET("/availability/saved", s.ListSavedAvailability)
	g.POST("/availability/manage", s.SaveAvailability)
	g.PUT("/availability/manage/:id", s.EditAvailability)
	g.DELETE("/availability/manage/:id", s.DeleteAvailability)

	// payouts
	g.GET("/payouts/summary", s.GetPayoutSummary)
	g.GET("/payouts/paid", s.listPayouts(queries.PaidPayouts))
	g.GET("/payouts/pending", s.listPayouts(queries.PendingPayouts))
	g.GET("/payouts/all", s.listPayouts(queries.AllPayouts))
	g.POST("/payouts/:id/paid", s.MarkPayoutPaid)
}
