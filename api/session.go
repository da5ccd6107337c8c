package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/shamim-001/portfolio-backend/errs"
)

const sessionCookieName = "admin_session"
const sessionLifetime = 24 * time.Hour

// sessionManager issues and verifies the signed admin session cookie and
// checks the admin password on login.
type sessionManager struct {
	secret       []byte
	passwordHash string // bcrypt hash, preferred
	password     string // plain-text fallback for local development
	secureCookie bool
	responder    Responder
}

func newSessionManager(secret, passwordHash, password string, secureCookie bool) sessionManager {
	logger := log.With().Str("handlerName", "sessionManager").Logger()
	return sessionManager{
		secret:       []byte(secret),
		passwordHash: passwordHash,
		password:     password,
		secureCookie: secureCookie,
		responder:    NewResponder(logger),
	}
}

func (m sessionManager) configured() bool {
	return len(m.secret) > 0 && (m.passwordHash != "" || m.password != "")
}

// verifyPassword checks the submitted admin password against the bcrypt
// hash when one is configured, otherwise against the plain password in
// constant time.
func (m sessionManager) verifyPassword(candidate string) bool {
	if m.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(m.passwordHash), []byte(candidate)) == nil
	}
	if m.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(m.password), []byte(candidate)) == 1
}

// issue sets a signed session cookie on the response.
func (m sessionManager) issue(w http.ResponseWriter, now time.Time) error {
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionLifetime)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(sessionLifetime.Seconds()),
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m sessionManager) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// valid reports whether the request carries a correctly signed, unexpired
// session cookie.
func (m sessionManager) valid(r *http.Request) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	token, err := jwt.ParseWithClaims(cookie.Value, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	return err == nil && token.Valid
}

// requireAdmin gates mutating routes behind the session cookie.
func (m sessionManager) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.valid(r) {
			m.responder.WriteError(w, errs.Unauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
