// Package cookie implements the browser-cookie persistence substrate for the
// cart: a single name-spaced cookie holding the full JSON-encoded line item
// array, rewritten wholesale on every qualifying mutation.
package cookie

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/JBcollo1/magnet-sub000/internal/models"
)

const DefaultName = "cart_items"

// DefaultTTL is re-armed on every write, not per read.
const DefaultTTL = 30 * 24 * time.Hour

type Codec struct {
	Name string
	TTL  time.Duration
}

func NewCodec(name string, ttl time.Duration) *Codec {
	if name == "" {
		name = DefaultName
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Codec{Name: name, TTL: ttl}
}

// Encode serializes the full item array. Base64 keeps the JSON inside the
// cookie-value charset.
func (c *Codec) Encode(items []models.CartLineItem) (string, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode reads the cart cookie from the request. An absent, unreadable or
// corrupt cookie yields (nil, false): the caller falls back to an empty cart.
// Corruption is logged, never surfaced.
func (c *Codec) Decode(r *http.Request) ([]models.CartLineItem, bool) {
	ck, err := r.Cookie(c.Name)
	if err != nil {
		return nil, false
	}

	data, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		slog.Warn("Discarding undecodable cart cookie", slog.String("cookie", c.Name), slog.String("error", err.Error()))

		return nil, false
	}

	var items []models.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("Discarding corrupt cart cookie", slog.String("cookie", c.Name), slog.String("error", err.Error()))

		return nil, false
	}

	return items, true
}

// Write replaces the cookie with the current item array and re-arms the TTL.
func (c *Codec) Write(w http.ResponseWriter, items []models.CartLineItem) {
	value, err := c.Encode(items)
	if err != nil {
		// Line items are plain data; marshalling them cannot realistically
		// fail. Swallow and log, per the fire-and-forget write contract.
		slog.Error("Failed to encode cart cookie", slog.String("error", err.Error()))

		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(c.TTL),
		MaxAge:   int(c.TTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear deletes the cookie outright rather than writing an empty array, so a
// stale cached value cannot resurrect a previous session.
func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequestStore binds the codec to one request/response pair so it satisfies
// the session store port. The session id is irrelevant here: the browser is
// the key.
type RequestStore struct {
	codec *Codec
	w     http.ResponseWriter
	r     *http.Request
}

func NewRequestStore(codec *Codec, w http.ResponseWriter, r *http.Request) *RequestStore {
	return &RequestStore{codec: codec, w: w, r: r}
}

func (s *RequestStore) Load(_ context.Context, _ string) ([]models.CartLineItem, bool, error) {
	items, ok := s.codec.Decode(s.r)

	return items, ok, nil
}

func (s *RequestStore) Save(_ context.Context, _ string, items []models.CartLineItem) error {
	s.codec.Write(s.w, items)

	return nil
}

func (s *RequestStore) Clear(_ context.Context, _ string) error {
	s.codec.Clear(s.w)

	return nil
}
