package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"sweetshop/internal/config"
	"sweetshop/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testConfig(t *testing.T) config.Config {
	return config.Config{
		AppPort:           ":0",
		DBDriver:          config.DriverMemory,
		JWTSecret:         "test_jwt_secret",
		AdminEmails:       []string{"owner@bakery.test"},
		AllowRegistration: true,
		UploadDir:         t.TempDir(),
		BaseURL:           "http://localhost:8080",
		ShippingFee:       decimal.NewFromInt(50),
		WhatsAppNumber:    "8801711111111",
		CORSOrigins:       "*",
	}
}

func newTestApp(t *testing.T) *fiber.App {
	app, cleanup, err := NewApp(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return app
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["events"])
	assert.Equal(t, config.DriverMemory, body["database"])
}

func TestSeededCatalogIsPublic(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	assert.Len(t, products, 4)
}

func TestUnauthenticatedAdminAccess(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/v1/orders", "/api/v1/ledger", "/api/v1/ledger/summary"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	body, _ := json.Marshal(map[string]string{"name": "x"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

type call struct {
	method string
	path   string
	body   interface{}
	token  string
	cartID string
}

func send(t *testing.T, app *fiber.App, c call) (*http.Response, map[string]interface{}) {
	t.Helper()
	var body io.Reader
	if c.body != nil {
		b, err := json.Marshal(c.body)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.cartID != "" {
		req.Header.Set(middleware.CartHeader, c.cartID)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	creds := map[string]string{"username": "owner", "email": "owner@bakery.test", "password": "password123"}
	resp, _ := send(t, app, call{method: http.MethodPost, path: "/api/v1/auth/register", body: creds})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, body := send(t, app, call{method: http.MethodPost, path: "/api/v1/auth/login", body: creds})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return body["token"].(string)
}

// Updates replace map entries in the memory stores; the ids must still
// resolve afterwards.
func TestMemoryDriverWorkflow(t *testing.T) {
	app := newTestApp(t)
	token := adminToken(t, app)

	cake := map[string]interface{}{"name": "Lemon Drizzle", "price": "300", "image": "https://img.example/ld.jpg", "category": "Cakes"}
	resp, body := send(t, app, call{method: http.MethodPost, path: "/api/v1/products", body: cake, token: token})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	productID := body["id"].(string)

	cake["price"] = "320"
	resp, body = send(t, app, call{method: http.MethodPut, path: "/api/v1/products/" + productID, body: cake, token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, productID, body["id"])

	resp, body = send(t, app, call{method: http.MethodGet, path: "/api/v1/products/" + productID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "320", body["price"])

	// Cart keyed by the session header across several requests
	cartID := uuid.New().String()
	resp, _ = send(t, app, call{method: http.MethodPost, path: "/api/v1/cart/items", cartID: cartID,
		body: map[string]interface{}{"product_id": productID, "quantity": 2}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, cartID, resp.Header.Get(middleware.CartHeader))

	resp, body = send(t, app, call{method: http.MethodGet, path: "/api/v1/cart", cartID: cartID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body["items"], 1)
	assert.Equal(t, "690", body["totals"].(map[string]interface{})["grand_total"])

	customer := map[string]string{"name": "Mina", "phone": "01711111111", "email": "mina@example.com", "address": "12 Baker Street"}
	resp, body = send(t, app, call{method: http.MethodPost, path: "/api/v1/checkout", cartID: cartID,
		body: map[string]interface{}{"customer": customer}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := body["order"].(map[string]interface{})["id"].(string)

	resp, body = send(t, app, call{method: http.MethodPut, path: "/api/v1/orders/" + orderID, token: token,
		body: map[string]string{"status": "shipped"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, orderID, body["id"])

	resp, body = send(t, app, call{method: http.MethodGet, path: "/api/v1/orders/" + orderID, token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "shipped", body["status"])
	assert.Equal(t, "640", body["totals"].(map[string]interface{})["subtotal"])

	// Ledger entry updated then fetched
	entry := map[string]interface{}{"type": "Expense", "description": "Butter", "category": "Ingredients", "amount": "120.50", "date": "2025-05-02"}
	resp, body = send(t, app, call{method: http.MethodPost, path: "/api/v1/ledger", body: entry, token: token})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	entryID := body["id"].(string)
	createdAt := body["created_at"]

	entry["amount"] = "130"
	resp, body = send(t, app, call{method: http.MethodPut, path: "/api/v1/ledger/" + entryID, body: entry, token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, createdAt, body["created_at"])

	resp, body = send(t, app, call{method: http.MethodGet, path: "/api/v1/ledger/" + entryID, token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "130", body["amount"])
	assert.Equal(t, entryID, body["id"])
}

func TestUnknownRouteIsJSON(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Route not found", body["message"])
}
