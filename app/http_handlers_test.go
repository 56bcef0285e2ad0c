package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rizalafandiv1-png/Website-Andikilz-Store/app/config"
	"github.com/rizalafandiv1-png/Website-Andikilz-Store/app/models"
)

// newTestRouter builds the full route table with auth disabled; the
// middleware then authenticates every request as "local-dev".
func newTestRouter(t *testing.T, store *memStore, gen Generator) *gin.Engine {
	t.Helper()
	t.Setenv("AUTH_DISABLED", "true")
	t.Setenv("ENV", "local")
	gin.SetMode(gin.TestMode)

	if gen == nil {
		gen = fakeGenerator{}
	}
	cfg := &config.Config{
		Stripe: config.StripeConfig{WebhookSecret: testWebhookSecret},
	}
	server := NewServer(cfg, store, store, gen)
	router, err := server.Routes()
	if err != nil {
		t.Fatalf("Routes error = %v", err)
	}
	return router
}

func todayUTC() string {
	return time.Now().UTC().Format(dateLayout)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, newMemStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", resp.Code)
	}
}

func TestSyncUserIdempotent(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(t, store, nil)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/user/sync", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("sync #%d status = %d, want 200", i+1, resp.Code)
		}
	}

	user, ok := store.snapshot("local-dev")
	if !ok || user.Plan != models.PlanFree {
		t.Fatalf("expected free user record after sync, got %+v", user)
	}
}

func TestMeRefreshesStaleWindow(t *testing.T) {
	store := newMemStore()
	store.seed(models.User{ID: "local-dev", Plan: models.PlanFree, RequestsCount: 3, LastRequestDate: "2020-01-01"})
	router := newTestRouter(t, store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("me status = %d, want 200", resp.Code)
	}

	var user models.User
	if err := json.Unmarshal(resp.Body.Bytes(), &user); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if user.RequestsCount != 0 || user.LastRequestDate != todayUTC() {
		t.Fatalf("stale window leaked through: count=%d date=%q", user.RequestsCount, user.LastRequestDate)
	}
}

func TestGenerateEndpointSuccess(t *testing.T) {
	store := newMemStore()
	store.seed(models.User{ID: "local-dev", Plan: models.PlanFree, RequestsCount: 2, LastRequestDate: todayUTC()})
	router := newTestRouter(t, store, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("generate status = %d body=%s, want 200", resp.Code, resp.Body.String())
	}

	user, _ := store.snapshot("local-dev")
	if user.RequestsCount != 3 {
		t.Fatalf("requests_count = %d, want 3", user.RequestsCount)
	}
}

func TestGenerateEndpointQuotaExceeded(t *testing.T) {
	store := newMemStore()
	store.seed(models.User{ID: "local-dev", Plan: models.PlanFree, RequestsCount: FreeDailyLimit, LastRequestDate: todayUTC()})
	router := newTestRouter(t, store, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("generate status = %d, want 403 upgrade prompt", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "upgrade") {
		t.Fatalf("expected upgrade prompt, got %s", resp.Body.String())
	}
}

func TestGenerateEndpointMissingPrompt(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(t, store, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("generate status = %d, want 400", resp.Code)
	}
}

func TestListProductsPublic(t *testing.T) {
	router := newTestRouter(t, newMemStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("products status = %d, want 200", resp.Code)
	}

	var body struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body.Products) == 0 {
		t.Fatalf("empty catalog")
	}
}

func TestCreateQrisOrder(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(t, store, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/orders/qris",
		strings.NewReader(`{"product_id":"youtube","category_id":"jaspay-1mo"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("order status = %d body=%s, want 200", resp.Code, resp.Body.String())
	}

	var order models.Order
	if err := json.Unmarshal(resp.Body.Bytes(), &order); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !strings.HasPrefix(order.ID, "ORD-") {
		t.Fatalf("order id = %q, want ORD- prefix", order.ID)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("order status = %q, want pending", order.Status)
	}
	if order.AmountUSD != 3.99 || order.AmountIDR != 61845 {
		t.Fatalf("order amounts = %v USD / %d IDR", order.AmountUSD, order.AmountIDR)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	listResp := httptest.NewRecorder()
	router.ServeHTTP(listResp, listReq)
	if listResp.Code != http.StatusOK {
		t.Fatalf("order list status = %d, want 200", listResp.Code)
	}
	if !strings.Contains(listResp.Body.String(), order.ID) {
		t.Fatalf("created order missing from list: %s", listResp.Body.String())
	}
}

func TestPortalSessionWithoutCustomer(t *testing.T) {
	store := newMemStore()
	store.seed(models.User{ID: "local-dev", Plan: models.PlanFree})
	router := newTestRouter(t, store, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/billing/portal-session", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("portal status = %d, want 400 for unlinked user", resp.Code)
	}
}

func TestCreateQrisOrderUnknownCategory(t *testing.T) {
	router := newTestRouter(t, newMemStore(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/orders/qris",
		strings.NewReader(`{"product_id":"youtube","category_id":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("order status = %d, want 404", resp.Code)
	}
}
