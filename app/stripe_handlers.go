package app

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	portal "github.com/stripe/stripe-go/v79/billingportal/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

// CreateCheckoutSession starts a Stripe Checkout Session for the authenticated user.
func (s *Server) CreateCheckoutSession(c *gin.Context) {
	userID, ok := s.authedUserID(c)
	if !ok {
		return
	}

	url, err := createSubscriptionCheckout(s.cfg, userID)
	if err != nil {
		log.Printf("stripe checkout session failed user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// CreatePortalSession creates a Stripe Customer Portal session for the authenticated user.
func (s *Server) CreatePortalSession(c *gin.Context) {
	userID, ok := s.authedUserID(c)
	if !ok {
		return
	}

	user, err := s.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Printf("portal lookup failed user=%s err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load customer"})
		return
	}
	if user.StripeCustomerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stripe customer missing for user"})
		return
	}

	appURL := strings.TrimRight(s.cfg.AppURL, "/")
	if appURL == "" {
		log.Printf("missing Stripe config: app_url=false")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "billing not configured"})
		return
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(user.StripeCustomerID),
		ReturnURL: stripe.String(appURL + "/dashboard"),
	}

	sess, err := portal.New(params)
	if err != nil {
		log.Printf("stripe portal session failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create portal session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": sess.URL})
}

// StripeWebhook handles Stripe subscription events and reconciles user entitlements.
// Signature verification failure is a hard rejection; an event that references an
// unknown user is dropped with a log line so the channel keeps flowing.
func (s *Server) StripeWebhook(c *gin.Context) {
	const maxBodyBytes = int64(65536)
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		log.Printf("stripe webhook read failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	endpointSecret := s.cfg.Stripe.WebhookSecret
	if endpointSecret == "" {
		log.Printf("stripe webhook secret missing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook not configured"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		body,
		c.GetHeader("Stripe-Signature"),
		endpointSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		log.Printf("stripe webhook signature failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "signature verification failed"})
		return
	}

	ctx := c.Request.Context()

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Printf("stripe session unmarshal failed: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session payload"})
			return
		}

		userID := sess.ClientReferenceID
		if userID == "" {
			log.Printf("stripe session missing client reference id")
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing client reference id"})
			return
		}
		customerRef := ""
		if sess.Customer != nil {
			customerRef = sess.Customer.ID
		}
		subscriptionRef := ""
		if sess.Subscription != nil {
			subscriptionRef = sess.Subscription.ID
		}

		if err := s.reconciler.SubscriptionActivated(ctx, userID, customerRef, subscriptionRef); err != nil {
			log.Printf("stripe activation failed user=%s err=%v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
			return
		}
	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			log.Printf("stripe subscription unmarshal failed: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription payload"})
			return
		}

		if err := s.reconciler.SubscriptionCancelled(ctx, sub.ID); err != nil {
			log.Printf("stripe cancellation failed sub=%s err=%v", sub.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
			return
		}
	default:
		// Intentionally ignore unhandled events.
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
