// Package auth implements the bearer-token authentication guard.
//
// Tokens are signed JWTs whose registered "sub" claim carries the user's
// ObjectID hex. That is the one canonical claim shape: issuance and
// verification both use it. On each request the middleware verifies the
// token and resolves a fresh user from the store, so role changes take
// effect immediately.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// AuthUser is the resolved identity injected into r.Context(). The
// password hash is never carried here.
type AuthUser struct {
	ID       string
	Username string
	Email    string
	Role     string
	TeamID   string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user and a found flag.
func CurrentUser(r *http.Request) (*AuthUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*AuthUser)
	return u, ok
}

func withUser(r *http.Request, u *AuthUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user into the request context, bypassing token
// verification. Test helper only.
func WithTestUser(r *http.Request, u *AuthUser) *http.Request {
	return withUser(r, u)
}

// UserFetcher resolves a user id (hex) to a user document, excluding the
// password hash. The user store provides the production implementation.
type UserFetcher interface {
	FetchUser(ctx context.Context, id string) (*models.User, error)
}

// ErrUserNotFound is returned by UserFetcher implementations when the
// token's subject no longer exists.
var ErrUserNotFound = errors.New("user not found")

// TokenManager issues and verifies bearer tokens and carries the
// middleware that guards protected routes.
type TokenManager struct {
	secret  []byte
	expiry  time.Duration
	fetcher UserFetcher
	log     *zap.Logger
}

// NewTokenManager builds a TokenManager from the configured signing
// secret and token lifetime.
func NewTokenManager(secret string, expiry time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty; provide ≥32 random chars")
	}
	if len(secret) < 32 {
		logger.Warn("jwt secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), expiry: expiry, log: logger}, nil
}

// SetUserFetcher wires the store lookup used to resolve token subjects.
func (tm *TokenManager) SetUserFetcher(f UserFetcher) {
	tm.fetcher = f
}

// Issue signs a token whose subject is the given user id hex.
func (tm *TokenManager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Verify checks signature and expiry and returns the subject user id.
// Expired tokens return jwt.ErrTokenExpired (possibly wrapped); any other
// failure means the token is malformed or forged.
func (tm *TokenManager) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return tm.secret, nil
		})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}

// RequireSignedIn guards protected routes. It extracts the bearer token,
// verifies it, resolves the user, and attaches the identity to the
// request context. Failure responses follow the API's taxonomy:
//
//	401 no token / invalid token / expired token / user vanished
//	500 anything unexpected during verification
func (tm *TokenManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httpjson.Unauthorized(w, "Not authorized, no token provided")
			return
		}

		userID, err := tm.Verify(token)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				httpjson.Unauthorized(w, "Not authorized, token expired")
			case errors.Is(err, jwt.ErrTokenMalformed),
				errors.Is(err, jwt.ErrTokenSignatureInvalid),
				errors.Is(err, jwt.ErrTokenInvalidClaims),
				errors.Is(err, jwt.ErrTokenUnverifiable):
				httpjson.Unauthorized(w, "Not authorized, invalid token")
			default:
				tm.log.Error("token verification failed", zap.Error(err))
				httpjson.Error(w, http.StatusInternalServerError, "Server error during token verification")
			}
			return
		}

		user, err := tm.fetcher.FetchUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				httpjson.Unauthorized(w, "Not authorized, user not found")
				return
			}
			tm.log.Error("user lookup failed during auth", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Server error during token verification")
			return
		}

		au := &AuthUser{
			ID:       user.ID.Hex(),
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		}
		if user.TeamID != nil {
			au.TeamID = user.TeamID.Hex()
		}
		next.ServeHTTP(w, withUser(r, au))
	})
}

// bearerToken pulls the token out of "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
