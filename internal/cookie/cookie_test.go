package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JBcollo1/magnet-sub000/internal/cookie"
	"github.com/JBcollo1/magnet-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []models.CartLineItem {
	approved := 1
	pending := 1

	return []models.CartLineItem{
		{
			ID:          1,
			Name:        "Magnet Pack",
			Price:       250,
			Image:       "https://cdn.example.com/magnet-pack.jpg",
			Description: "Pack of 6 fridge magnets",
			Quantity:    2,
			AddedAt:     time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:       7,
			Name:     "Custom Magnet",
			Price:    300,
			Quantity: 1,
			CustomImages: []models.CustomImage{
				{ID: "img-1", URL: "https://cdn.example.com/a.png", Name: "a.png", UploadStatus: models.UploadStatusApproved},
				{ID: "img-2", URL: "https://cdn.example.com/b.png", Name: "b.png", UploadStatus: models.UploadStatusPending},
			},
			AddedAt:       time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
			ApprovedCount: &approved,
			PendingCount:  &pending,
			OrderID:       "88",
		},
	}
}

// writtenCookie pulls the cart cookie out of a recorded response.
func writtenCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}

	t.Fatalf("cookie %q was not written", name)

	return nil
}

func TestRoundTrip(t *testing.T) {
	// Arrange
	codec := cookie.NewCodec("", 0)
	items := sampleItems()
	rec := httptest.NewRecorder()

	// Act
	codec.Write(rec, items)

	ck := writtenCookie(t, rec, cookie.DefaultName)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(ck)

	restored, ok := codec.Decode(req)

	// Assert
	require.True(t, ok)
	assert.Equal(t, items, restored, "round trip must be field-for-field identical")
}

func TestWriteAttributes(t *testing.T) {
	// Arrange
	codec := cookie.NewCodec("magnet_cart", 30*24*time.Hour)
	rec := httptest.NewRecorder()

	// Act
	codec.Write(rec, sampleItems())

	// Assert
	ck := writtenCookie(t, rec, "magnet_cart")
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, int((30 * 24 * time.Hour).Seconds()), ck.MaxAge)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), ck.Expires, time.Minute)
}

func TestDecode(t *testing.T) {
	codec := cookie.NewCodec("", 0)

	t.Run("Absent Cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		items, ok := codec.Decode(req)

		assert.False(t, ok)
		assert.Nil(t, items)
	})

	t.Run("Not Base64", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: cookie.DefaultName, Value: "%%%not-base64%%%"})

		items, ok := codec.Decode(req)

		assert.False(t, ok, "corrupt storage must fall back to an empty cart, never error")
		assert.Nil(t, items)
	})

	t.Run("Base64 But Not JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: cookie.DefaultName, Value: "bm90LWpzb24"}) // "not-json"

		items, ok := codec.Decode(req)

		assert.False(t, ok)
		assert.Nil(t, items)
	})

	t.Run("Empty Array Is A Valid Cart", func(t *testing.T) {
		rec := httptest.NewRecorder()
		codec.Write(rec, []models.CartLineItem{})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(writtenCookie(t, rec, cookie.DefaultName))

		items, ok := codec.Decode(req)

		assert.True(t, ok)
		assert.Empty(t, items)
	})
}

func TestClearDeletesCookie(t *testing.T) {
	// Arrange
	codec := cookie.NewCodec("", 0)
	rec := httptest.NewRecorder()

	// Act
	codec.Clear(rec)

	// Assert
	ck := writtenCookie(t, rec, cookie.DefaultName)
	assert.Empty(t, ck.Value)
	assert.Negative(t, ck.MaxAge, "clear must delete the key, not write an empty array")

	// A fresh "page load" carrying no cookie yields an empty cart.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	items, ok := codec.Decode(req)
	assert.False(t, ok)
	assert.Nil(t, items)
}

func TestRequestStore(t *testing.T) {
	codec := cookie.NewCodec("", 0)
	ctx := t.Context()

	t.Run("Save Then Load", func(t *testing.T) {
		// Arrange
		items := sampleItems()
		rec := httptest.NewRecorder()
		saveStore := cookie.NewRequestStore(codec, rec, httptest.NewRequest(http.MethodPost, "/", nil))

		// Act
		require.NoError(t, saveStore.Save(ctx, "ignored", items))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(writtenCookie(t, rec, cookie.DefaultName))
		loadStore := cookie.NewRequestStore(codec, httptest.NewRecorder(), req)

		restored, ok, err := loadStore.Load(ctx, "ignored")

		// Assert
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, items, restored)
	})

	t.Run("Clear Deletes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		st := cookie.NewRequestStore(codec, rec, httptest.NewRequest(http.MethodDelete, "/", nil))

		require.NoError(t, st.Clear(ctx, "ignored"))

		assert.Negative(t, writtenCookie(t, rec, cookie.DefaultName).MaxAge)
	})
}
