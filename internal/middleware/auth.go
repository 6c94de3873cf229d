package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mikra-backend/internal/models"
)

type contextKey string

const UserKey contextKey = "auth_user"

// unauthorizedMessage is the fixed envelope text for every identity failure.
const unauthorizedMessage = "Unauthorized - Please log in"

// TokenAuth resolves a caller identity from tokens issued by the external
// identity provider. It is constructed once in main and injected into the
// router; there is no process-wide client handle.
type TokenAuth struct {
	secret     []byte
	cookieName string
}

func NewTokenAuth(secret, cookieName string) *TokenAuth {
	return &TokenAuth{secret: []byte(secret), cookieName: cookieName}
}

// GenerateToken signs a short-lived HS256 token for the given identity.
// The identity provider issues production tokens; this exists for tests and
// local tooling that share the secret.
func (a *TokenAuth) GenerateToken(userID, email string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Middleware resolves the caller from a bearer header or session cookie and
// attaches the identity to the request context. Requests with no resolvable
// identity are rejected with the fixed 401 envelope.
func (a *TokenAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := a.extractToken(r)
		if tokenStr == "" {
			writeUnauthorized(w)
			return
		}

		user, err := a.resolve(tokenStr)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Resolve validates a raw token string and returns the identity it carries.
// Used by the websocket gateway, which authenticates via query parameter.
func (a *TokenAuth) Resolve(tokenStr string) (models.AuthenticatedUser, error) {
	return a.resolve(tokenStr)
}

func (a *TokenAuth) extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	// Browser clients carry the same token in a session cookie.
	if cookie, err := r.Cookie(a.cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (a *TokenAuth) resolve(tokenStr string) (models.AuthenticatedUser, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil {
		return models.AuthenticatedUser{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.AuthenticatedUser{}, jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.AuthenticatedUser{}, jwt.ErrTokenInvalidSubject
	}

	email, _ := claims["email"].(string)
	return models.AuthenticatedUser{ID: sub, Email: email}, nil
}

// GetUser extracts the resolved identity from the request context.
func GetUser(ctx context.Context) models.AuthenticatedUser {
	user, _ := ctx.Value(UserKey).(models.AuthenticatedUser)
	return user
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: unauthorizedMessage})
}
