// Package auth resolves the caller's identity from a bearer JWT. It is
// the only place that knows how identity is transported; everything
// downstream sees an opaque user id or an unauthorized outcome.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"weekplanner/internal/apperr"
)

type contextKey string

const userContextKey contextKey = "user-id"

// UserIDFromRequest extracts and verifies the user id from the
// Authorization header. HS256 only; the subject claim is the id.
func UserIDFromRequest(r *http.Request, secret []byte) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", apperr.New(apperr.Unauthorized, "missing authorization header")
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == header {
		return "", apperr.New(apperr.Unauthorized, "authorization header is not a bearer token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperr.Wrap(apperr.Unauthorized, "invalid token", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", apperr.New(apperr.Unauthorized, "token has no subject")
	}
	return sub, nil
}

// Middleware rejects unauthenticated requests and stores the user id in
// the request context for handlers.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := UserIDFromRequest(r, secret)
			if err != nil {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id stored by Middleware, or ""
// when the request did not pass through it.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userContextKey).(string)
	return id
}

// NewToken mints a token for the given user id. Used by tests and the
// bootstrap CLI; the deployment normally issues tokens elsewhere.
func NewToken(userID string, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": userID})
	return token.SignedString(secret)
}
