// Package session issues the signed cookie that keys server-side cart
// storage. The cookie is an HS256 JWT so the redis/postgres mirror key
// cannot be forged by editing the cookie value.
package session

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/JBcollo1/magnet-sub000/internal/config"
	"github.com/JBcollo1/magnet-sub000/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Manager struct {
	cookieName string
	jwtKey     []byte
	ttl        time.Duration
}

func NewManager(cfg *config.Session) *Manager {
	return &Manager{
		cookieName: cfg.CookieName,
		jwtKey:     []byte(cfg.JWTKey),
		ttl:        cfg.TTL,
	}
}

// Resolve returns the request's session id, minting a fresh session when the
// cookie is absent, tampered with or expired. A new session simply means an
// empty cart; this is never an error surface.
func (m *Manager) Resolve(w http.ResponseWriter, r *http.Request) string {
	if ck, err := r.Cookie(m.cookieName); err == nil {
		sid, err := m.parse(ck.Value)
		if err == nil {
			return sid
		}

		slog.Warn("Discarding invalid session cookie", slog.String("error", err.Error()))
	}

	sid := uuid.NewString()

	token, err := m.sign(sid)
	if err != nil {
		slog.Error("Failed to sign session cookie", slog.String("error", err.Error()))

		return sid
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		Expires:  time.Now().Add(m.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sid
}

func (m *Manager) sign(sessionID string) (string, error) {
	claims := &models.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.jwtKey)
}

func (m *Manager) parse(tokenString string) (string, error) {
	claims := &models.SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return m.jwtKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid || claims.SessionID == "" {
		return "", fmt.Errorf("invalid session token")
	}

	return claims.SessionID, nil
}
