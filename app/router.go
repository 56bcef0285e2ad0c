package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rizalafandiv1-png/Website-Andikilz-Store/app/config"
	"github.com/rizalafandiv1-png/Website-Andikilz-Store/auth"
)

// Server holds the explicitly constructed dependencies for every handler.
// Provider handles are created once at process start and passed in here, so
// tests can substitute fakes.
type Server struct {
	cfg        *config.Config
	store      UserStore
	orders     OrderStore
	quota      *QuotaPolicy
	gateway    *Gateway
	reconciler *Reconciler
}

func NewServer(cfg *config.Config, store UserStore, orders OrderStore, generator Generator) *Server {
	quota := NewQuotaPolicy(store, nil)
	return &Server{
		cfg:        cfg,
		store:      store,
		orders:     orders,
		quota:      quota,
		gateway:    NewGateway(quota, generator),
		reconciler: NewReconciler(store),
	}
}

// Routes builds the shared HTTP router for both local and Lambda execution.
func (s *Server) Routes() (*gin.Engine, error) {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/health", s.Health)
	router.GET("/api/products", s.ListProducts)
	router.POST("/api/stripe/webhook", s.StripeWebhook)

	verifier, err := auth.NewVerifierFromEnv()
	if err != nil && !auth.AuthDisabled() {
		return nil, err
	}

	protected := router.Group("/")
	protected.Use(auth.Middleware(verifier, auth.MiddlewareConfig{
		OnAuthenticated: func(c *gin.Context, claims *auth.Claims) error {
			_, err := s.store.EnsureUser(c.Request.Context(), claims.Subject, claims.Email)
			return err
		},
	}))
	protected.POST("/api/user/sync", s.SyncUser)
	protected.GET("/api/user/me", s.Me)
	protected.POST("/api/generate", s.Generate)
	protected.POST("/api/billing/create-checkout-session", s.CreateCheckoutSession)
	protected.POST("/api/billing/portal-session", s.CreatePortalSession)
	protected.POST("/api/orders/qris", s.CreateQrisOrder)
	protected.GET("/api/orders", s.ListOrders)

	return router, nil
}
