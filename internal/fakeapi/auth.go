package fakeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/akashkncse/odoo-hackathon-globetrotter/internal/logger"
)

// Claims represents the JWT claims issued on login.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// ContextKey is a custom type for storing values in context to avoid collisions.
type ContextKey string

// UserIDKey is the context key holding the authenticated user's ID.
const UserIDKey ContextKey = "userID"

var errNoBearer = errors.New("no bearer token in the Authorization header")

type tokenIssuer struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

func (ti *tokenIssuer) buildJWTString(userID string) (string, error) {
	now := ti.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(ti.signingKey)
}

func bearerToken(request *http.Request) (string, error) {
	header := request.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errNoBearer
	}

	return token, nil
}

func (ti *tokenIssuer) userIDFromRequest(request *http.Request) (string, error) {
	tokenString, err := bearerToken(request)
	if err != nil {
		return "", err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return ti.signingKey, nil
		},
	)
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.UserID == "" {
		return "", errors.New("invalid token")
	}

	return claims.UserID, nil
}

// authenticate is an HTTP middleware that rejects requests without a valid
// bearer token for an existing user and stores the user ID in the context.
func (a *API) authenticate(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		userID, err := a.tokens.userIDFromRequest(request)
		if err != nil {
			logger.Log.Debugln("rejecting request without a valid bearer token", zap.Error(err))
			writeDetail(response, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if _, err := a.store.GetUser(userID); err != nil {
			logger.Log.Debugln("rejecting token of an unknown user", zap.Error(err))
			writeDetail(response, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(request.Context(), UserIDKey, userID)
		h.ServeHTTP(response, request.WithContext(ctx))
	}

	return http.HandlerFunc(middleware)
}

func userIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}
