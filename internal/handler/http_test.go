package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ArtemGolubev/medshop-service/internal/config"
	"github.com/ArtemGolubev/medshop-service/internal/entities"
	"github.com/ArtemGolubev/medshop-service/internal/handler"
	"github.com/ArtemGolubev/medshop-service/internal/repo"
	"github.com/ArtemGolubev/medshop-service/internal/service"
	"github.com/ArtemGolubev/medshop-service/pkg/cache"
	"github.com/ArtemGolubev/medshop-service/pkg/trm"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopPublisher struct{}

func (nopPublisher) OrderCreated(context.Context, entities.Order) error       { return nil }
func (nopPublisher) OrderStatusChanged(context.Context, entities.Order) error { return nil }

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	store := repo.NewMemoryStore()
	repo.Seed(store)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pricing := config.Pricing{
		ShippingFee: decimal.RequireFromString("5.00"),
		TaxRate:     decimal.RequireFromString("0.05"),
	}

	orders := service.NewOrderService(
		logger, trm.NewNop(), store,
		cache.NewLRU[entities.Order](100, time.Minute),
		nopPublisher{}, pricing,
	)
	carts := service.NewCartService(logger, store, repo.NewCartStore())
	catalog := service.NewCatalogService(logger, store)

	h := handler.NewHTTPHandler(logger, orders, carts, catalog)

	r := chi.NewRouter()
	h.Init(r)
	return r
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func asCustomer(id string) map[string]string {
	return map[string]string{"X-User-ID": id}
}

func asPharmacist(id, pharmacyID string) map[string]string {
	return map[string]string{
		"X-User-ID":     id,
		"X-User-Role":   "pharmacist",
		"X-Pharmacy-ID": pharmacyID,
	}
}

func checkoutBody() map[string]any {
	return map[string]any{
		"full_name":      "John Doe",
		"address":        "1 Main St",
		"city":           "Springfield",
		"zip_code":       "62701",
		"phone":          "555-0199",
		"payment_method": "creditCard",
	}
}

func TestHTTPHandler_Catalog(t *testing.T) {
	router := newTestRouter(t)

	t.Run("list medicines", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/medicines", nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var medicines []map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &medicines))
		assert.Len(t, medicines, 6)
	})

	t.Run("filter by category", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/medicines?category=Antibiotics", nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Amoxicillin")
		assert.NotContains(t, rr.Body.String(), "Paracetamol")
	})

	t.Run("medicine not found", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/medicines/med-404", nil, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "medicine not found")
	})

	t.Run("get pharmacy", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/pharmacies/pharm-1", nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "HealthPlus Pharmacy")
	})

	t.Run("update stock requires matching pharmacy", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPatch, "/medicines/med-1/stock",
			map[string]any{"stock": 5}, asPharmacist("ph-2", "pharm-2"))
		assert.Equal(t, http.StatusForbidden, rr.Code)

		rr = doJSON(t, router, http.MethodPatch, "/medicines/med-1/stock",
			map[string]any{"stock": 5}, asPharmacist("ph-1", "pharm-1"))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"stock":5`)
	})
}

func TestHTTPHandler_Cart(t *testing.T) {
	router := newTestRouter(t)

	t.Run("requires identity", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/cart", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("add, update, remove", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/cart/items",
			map[string]any{"medicine_id": "med-1", "quantity": 2}, asCustomer("cust-1"))
		require.Equal(t, http.StatusOK, rr.Code)

		var cart map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cart))
		assert.EqualValues(t, 2, cart["total_items"])

		rr = doJSON(t, router, http.MethodPatch, "/cart/items/med-1",
			map[string]any{"quantity": 0}, asCustomer("cust-1"))
		require.Equal(t, http.StatusOK, rr.Code)
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cart))
		assert.EqualValues(t, 0, cart["total_items"])
	})

	t.Run("unknown medicine", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/cart/items",
			map[string]any{"medicine_id": "med-404", "quantity": 1}, asCustomer("cust-1"))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/cart/items",
			map[string]any{"quantity": 1}, asCustomer("cust-1"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "MedicineID")
	})
}

func TestHTTPHandler_Checkout(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router := newTestRouter(t)

		rr := doJSON(t, router, http.MethodPost, "/cart/items",
			map[string]any{"medicine_id": "med-1", "quantity": 2}, asCustomer("cust-1"))
		require.Equal(t, http.StatusOK, rr.Code)
		rr = doJSON(t, router, http.MethodPost, "/cart/items",
			map[string]any{"medicine_id": "med-3", "quantity": 1}, asCustomer("cust-1"))
		require.Equal(t, http.StatusOK, rr.Code)

		rr = doJSON(t, router, http.MethodPost, "/orders", checkoutBody(), asCustomer("cust-1"))
		require.Equal(t, http.StatusCreated, rr.Code)

		var order map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &order))
		assert.InDelta(t, 25.44, order["total_amount"], 0.001)
		assert.Equal(t, "pending", order["status"])
		assert.Equal(t, "pharm-1", order["pharmacy_id"])
		assert.Equal(t, "HealthPlus Pharmacy", order["pharmacy_name"])
		assert.Equal(t, "John Doe, 1 Main St, Springfield, 62701", order["shipping_address"])

		// корзина очищена после оформления
		rr = doJSON(t, router, http.MethodGet, "/cart", nil, asCustomer("cust-1"))
		require.Equal(t, http.StatusOK, rr.Code)
		var cart map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cart))
		assert.EqualValues(t, 0, cart["total_items"])
	})

	t.Run("validation error", func(t *testing.T) {
		router := newTestRouter(t)

		body := checkoutBody()
		delete(body, "full_name")
		rr := doJSON(t, router, http.MethodPost, "/orders", body, asCustomer("cust-1"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "FullName")
	})

	t.Run("empty cart", func(t *testing.T) {
		router := newTestRouter(t)

		rr := doJSON(t, router, http.MethodPost, "/orders", checkoutBody(), asCustomer("cust-1"))
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "cart is empty")
	})
}

func TestHTTPHandler_Orders(t *testing.T) {
	router := newTestRouter(t)

	// подготовка: оформляем заказ
	rr := doJSON(t, router, http.MethodPost, "/cart/items",
		map[string]any{"medicine_id": "med-1", "quantity": 1}, asCustomer("cust-1"))
	require.Equal(t, http.StatusOK, rr.Code)
	rr = doJSON(t, router, http.MethodPost, "/orders", checkoutBody(), asCustomer("cust-1"))
	require.Equal(t, http.StatusCreated, rr.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	orderID := created["id"].(string)

	t.Run("get by id", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/orders/"+orderID, nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), orderID)
	})

	t.Run("not found", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/orders/order-404", nil, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "order not found")
	})

	t.Run("list requires a filter", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/orders", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("list by customer", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/orders?customer_id=cust-1", nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var orders []map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &orders))
		require.Len(t, orders, 1)
		assert.Equal(t, orderID, orders[0]["id"])
	})

	t.Run("customer cannot change status", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPatch, "/orders/"+orderID+"/status",
			map[string]any{"status": "shipped", "tracking_number": "MDS123"}, asCustomer("cust-1"))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("pharmacist ships with tracking", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPatch, "/orders/"+orderID+"/status",
			map[string]any{"status": "shipped", "tracking_number": "MDS123"}, asPharmacist("ph-1", "pharm-1"))
		require.Equal(t, http.StatusOK, rr.Code)

		var order map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &order))
		assert.Equal(t, "shipped", order["status"])
		assert.EqualValues(t, 2, order["status_step"])
		assert.Equal(t, "MDS123", order["tracking_number"])
	})

	t.Run("unknown status", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPatch, "/orders/"+orderID+"/status",
			map[string]any{"status": "teleported"}, asPharmacist("ph-1", "pharm-1"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "unknown order status")
	})
}
