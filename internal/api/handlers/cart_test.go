package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JBcollo1/magnet-sub000/internal/api/handlers"
	"github.com/JBcollo1/magnet-sub000/internal/config"
	"github.com/JBcollo1/magnet-sub000/internal/cookie"
	"github.com/JBcollo1/magnet-sub000/internal/events"
	"github.com/JBcollo1/magnet-sub000/internal/gateway"
	"github.com/JBcollo1/magnet-sub000/internal/models"
	service "github.com/JBcollo1/magnet-sub000/internal/services"
	"github.com/JBcollo1/magnet-sub000/internal/store"
	"github.com/JBcollo1/magnet-sub000/internal/testutils"
	"github.com/JBcollo1/magnet-sub000/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cookieResolver backs every test with the cookie store so no external
// system is involved.
func cookieResolver() handlers.StoreResolver {
	codec := cookie.NewCodec(cookie.DefaultName, 30*24*time.Hour)

	return func(w http.ResponseWriter, r *http.Request) (store.Store, string) {
		return cookie.NewRequestStore(codec, w, r), "test-session"
	}
}

func newCartHandler(gw gateway.Client) *handlers.CartHandler {
	svc := service.NewCartService(gw, events.NewNoopPublisher())

	return handlers.NewCartHandler(svc, cookieResolver())
}

// testGateway points the resty client at a scripted httptest backend.
func testGateway(t *testing.T, handler http.HandlerFunc) gateway.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return gateway.NewClient(&config.Backend{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func decodeCartView(t *testing.T, rec *httptest.ResponseRecorder) *models.CartView {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    models.CartView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)

	return &envelope.Data
}

// carry copies the cart cookie written by one response onto the next request.
func carry(t *testing.T, rec *httptest.ResponseRecorder, req *http.Request) {
	t.Helper()

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cookie.DefaultName && ck.MaxAge >= 0 {
			req.AddCookie(ck)
		}
	}
}

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("adds an item and sets the cart cookie", func(t *testing.T) {
		// Arrange
		h := newCartHandler(testGateway(t, func(w http.ResponseWriter, r *http.Request) {}))
		body, _ := json.Marshal(models.AddItemRequest{ProductID: 7, Name: "Fridge Magnet", Price: 250})
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBuffer(body), nil)
		rec := httptest.NewRecorder()

		// Act
		h.AddItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)

		view := decodeCartView(t, rec)
		require.Len(t, view.Items, 1)
		assert.InDelta(t, 250.0, view.Total, 0.001)

		var found bool

		for _, ck := range rec.Result().Cookies() {
			if ck.Name == cookie.DefaultName {
				found = true

				assert.Positive(t, ck.MaxAge)
			}
		}

		assert.True(t, found, "expected cart cookie to be written")
	})

	t.Run("rejects a body missing required fields", func(t *testing.T) {
		// Arrange
		h := newCartHandler(testGateway(t, func(w http.ResponseWriter, r *http.Request) {}))
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString(`{"price": 250}`), nil)
		rec := httptest.NewRecorder()

		// Act
		h.AddItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var envelope response.APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		require.NotNil(t, envelope.Error)
		assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		// Arrange
		h := newCartHandler(testGateway(t, func(w http.ResponseWriter, r *http.Request) {}))
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBuffer(nil), nil)
		rec := httptest.NewRecorder()

		// Act
		h.AddItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartHandler_AddCustomItem(t *testing.T) {
	customBody := func() []byte {
		body, _ := json.Marshal(models.AddCustomItemRequest{
			ProductID: 9,
			Name:      "Custom Photo Magnet",
			Price:     500,
			Images: []models.CustomImageInput{
				{ID: "img-1", URL: "https://cdn.example.com/img-1.png", UploadStatus: models.UploadStatusApproved},
			},
		})

		return body
	}

	t.Run("creates an order upstream and returns the stamped line", func(t *testing.T) {
		// Arrange
		h := newCartHandler(testGateway(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/orders", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": 42}`))
		}))
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/custom-items", bytes.NewBuffer(customBody()), nil)
		rec := httptest.NewRecorder()

		// Act
		h.AddCustomItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rec.Code)

		view := decodeCartView(t, rec)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "42", view.Items[0].OrderID)
	})

	t.Run("relays the upstream error message", func(t *testing.T) {
		// Arrange
		h := newCartHandler(testGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error": "product out of stock"}`))
		}))
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/custom-items", bytes.NewBuffer(customBody()), nil)
		rec := httptest.NewRecorder()

		// Act
		h.AddCustomItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadGateway, rec.Code)

		var envelope response.APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		require.NotNil(t, envelope.Error)
		assert.Equal(t, "product out of stock", envelope.Error.Message)
	})

	t.Run("rejects a request without images", func(t *testing.T) {
		// Arrange
		h := newCartHandler(testGateway(t, func(w http.ResponseWriter, r *http.Request) {}))
		body, _ := json.Marshal(models.AddCustomItemRequest{ProductID: 9, Name: "Custom Photo Magnet", Price: 500})
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/custom-items", bytes.NewBuffer(body), nil)
		rec := httptest.NewRecorder()

		// Act
		h.AddCustomItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartHandler_UpdateQuantity(t *testing.T) {
	t.Run("round-trips through the cookie store", func(t *testing.T) {
		// Arrange
		h := newCartHandler(testGateway(t, func(w http.ResponseWriter, r *http.Request) {}))

		addBody, _ := json.Marshal(models.AddItemRequest{ProductID: 7, Name: "Fridge Magnet", Price: 250})
		addReq := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBuffer(addBody), nil)
		addRec := httptest.NewRecorder()
		h.AddItem().ServeHTTP(addRec, addReq)
		require.Equal(t, http.StatusOK, addRec.Code)

		updBody, _ := json.Marshal(models.UpdateQuantityRequest{ProductID: 7, Quantity: 4})
		updReq := testutils.CreateTestRequest(http.MethodPut, "/api/v1/cart/items", bytes.NewBuffer(updBody), nil)
		carry(t, addRec, updReq)
		updRec := httptest.NewRecorder()

		// Act
		h.UpdateQuantity().ServeHTTP(updRec, updReq)

		// Assert
		assert.Equal(t, http.StatusOK, updRec.Code)

		view := decodeCartView(t, updRec)
		require.Len(t, view.Items, 1)
		assert.Equal(t, 4, view.Items[0].Quantity)
		assert.InDelta(t, 1000.0, view.Total, 0.001)
	})
}

func TestCartHandler_RemoveItem(t *testing.T) {
	t.Run("removes by path id", func(t *testing.T) {
		// Arrange
		h := newCartHandler(testGateway(t, func(w http.ResponseWriter, r *http.Request) {}))

		addBody, _ := json.Marshal(models.AddItemRequest{ProductID: 7, Name: "Fridge Magnet", Price: 250})
		addReq := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBuffer(addBody), nil)
		addRec := httptest.NewRecorder()
		h.AddItem().ServeHTTP(addRec, addReq)

		delReq := testutils.CreateTestRequest(http.MethodDelete, "/api/v1/cart/items/7", nil, map[string]string{"id": "7"})
		carry(t, addRec, delReq)
		delRec := httptest.NewRecorder()

		// Act
		h.RemoveItem().ServeHTTP(delRec, delReq)

		// Assert
		assert.Equal(t, http.StatusOK, delRec.Code)
		assert.Empty(t, decodeCartView(t, delRec).Items)
	})

	t.Run("rejects a non-numeric id", func(t *testing.T) {
		// Arrange
		h := newCartHandler(testGateway(t, func(w http.ResponseWriter, r *http.Request) {}))
		req := testutils.CreateTestRequest(http.MethodDelete, "/api/v1/cart/items/abc", nil, map[string]string{"id": "abc"})
		rec := httptest.NewRecorder()

		// Act
		h.RemoveItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartHandler_ClearCart(t *testing.T) {
	t.Run("expires the cart cookie", func(t *testing.T) {
		// Arrange
		h := newCartHandler(testGateway(t, func(w http.ResponseWriter, r *http.Request) {}))
		req := testutils.CreateTestRequest(http.MethodDelete, "/api/v1/cart", nil, nil)
		rec := httptest.NewRecorder()

		// Act
		h.ClearCart().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, cookie.DefaultName, cookies[0].Name)
		assert.Negative(t, cookies[0].MaxAge)
	})
}

func TestCartHandler_OrderGroups(t *testing.T) {
	t.Run("returns groups derived from the stored cart", func(t *testing.T) {
		// Arrange
		h := newCartHandler(testGateway(t, func(w http.ResponseWriter, r *http.Request) {}))

		codec := cookie.NewCodec(cookie.DefaultName, time.Hour)
		value, err := codec.Encode([]models.CartLineItem{
			{ID: 1, Quantity: 1, OrderID: "A"},
			{ID: 2, Quantity: 1, OrderID: "B"},
			{ID: 3, Quantity: 1, OrderID: "A"},
		})
		require.NoError(t, err)

		req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/cart/orders", nil, nil)
		req.AddCookie(&http.Cookie{Name: cookie.DefaultName, Value: value})
		rec := httptest.NewRecorder()

		// Act
		h.OrderGroups().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Data models.OrderGroupsView `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, []string{"A", "B"}, envelope.Data.OrderIDs)
		require.Len(t, envelope.Data.Groups, 2)
		assert.Len(t, envelope.Data.Groups[0].Items, 2)
	})
}
