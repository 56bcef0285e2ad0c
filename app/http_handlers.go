package app

import (
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rizalafandiv1-png/Website-Andikilz-Store/app/models"
	"github.com/rizalafandiv1-png/Website-Andikilz-Store/auth"
)

// USD to IDR display conversion for QRIS transfers, matching the price list
// the merchant publishes.
const idrPerUSD = 15500

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// authedUserID pulls the verified subject out of the request context.
func (s *Server) authedUserID(c *gin.Context) (string, bool) {
	claims, ok := auth.ClaimsFromContext(c.Request.Context())
	if !ok || claims.Subject == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
		return "", false
	}
	return claims.Subject, true
}

// SyncUser creates the caller's record on first sign-in and returns it.
// Re-syncs are idempotent: an existing row is left untouched.
func (s *Server) SyncUser(c *gin.Context) {
	userID, ok := s.authedUserID(c)
	if !ok {
		return
	}

	email := ""
	if claims, ok := auth.ClaimsFromContext(c.Request.Context()); ok {
		email = claims.Email
	}

	user, err := s.store.EnsureUser(c.Request.Context(), userID, email)
	if err != nil {
		log.Printf("user sync failed user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sync user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Me reports the caller's tier and usage with the day window already rolled,
// so a stale counter never shows through.
func (s *Server) Me(c *gin.Context) {
	userID, ok := s.authedUserID(c)
	if !ok {
		return
	}

	user, err := s.store.RefreshUsage(c.Request.Context(), userID, s.quota.today())
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Printf("user status failed user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

type generateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// Generate runs a prompt through the gateway and maps business outcomes onto
// HTTP statuses: quota denial is an upgrade prompt, provider failure is a 502
// and costs no quota.
func (s *Server) Generate(c *gin.Context) {
	userID, ok := s.authedUserID(c)
	if !ok {
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing prompt"})
		return
	}

	text, err := s.gateway.Generate(c.Request.Context(), userID, req.Prompt)
	if err != nil {
		var quotaErr QuotaError
		var upstreamErr UpstreamError
		switch {
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.As(err, &quotaErr):
			c.JSON(http.StatusForbidden, gin.H{"error": "Free tier limit reached. Please upgrade to Pro."})
		case errors.As(err, &upstreamErr):
			log.Printf("generate upstream failed user=%s: %v", userID, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate content"})
		default:
			log.Printf("generate failed user=%s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate content"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

func (s *Server) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": Catalog})
}

type qrisOrderRequest struct {
	ProductID  string `json:"product_id" binding:"required"`
	CategoryID string `json:"category_id" binding:"required"`
}

// CreateQrisOrder records a pending manual-transfer order for a catalog
// category. Payment verification and delivery happen out of band.
func (s *Server) CreateQrisOrder(c *gin.Context) {
	userID, ok := s.authedUserID(c)
	if !ok {
		return
	}

	var req qrisOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing product or category"})
		return
	}

	_, category, found := FindCategory(req.ProductID, req.CategoryID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown product or category"})
		return
	}

	order := models.Order{
		ID:         "ORD-" + uuid.NewString(),
		UserID:     userID,
		ProductID:  req.ProductID,
		CategoryID: req.CategoryID,
		AmountUSD:  category.PriceUSD,
		AmountIDR:  int64(math.Round(category.PriceUSD * idrPerUSD)),
		Status:     models.OrderStatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.orders.CreateOrder(c.Request.Context(), order); err != nil {
		log.Printf("qris order failed user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (s *Server) ListOrders(c *gin.Context) {
	userID, ok := s.authedUserID(c)
	if !ok {
		return
	}

	orders, err := s.orders.ListOrders(c.Request.Context(), userID)
	if err != nil {
		log.Printf("order list failed user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(orders),
		"orders": orders,
	})
}
