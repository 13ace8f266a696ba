// Package authz implements the role authorization guard and helpers for
// reading the authenticated identity out of the request context.
package authz

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/deadlinesdragons/questhub/internal/app/system/auth"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), username, Mongo ObjectID,
// and a found flag. If no user is present or the user id is malformed it
// returns ok=false, so callers can trust that ok=true means a valid,
// authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, username string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user id in context - fail closed.
		return "", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Username, userID, true
}

// RequireRole returns middleware enforcing a per-route role allow-list.
// It must run after auth.RequireSignedIn. A missing identity yields 401
// (defensive; the auth guard should have rejected already); a role
// outside the allow-list yields 403 naming the offending role.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := auth.CurrentUser(r)
			if !ok || u.Role == "" {
				httpjson.Unauthorized(w, "Not authorized")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				httpjson.Forbidden(w, fmt.Sprintf(
					"Forbidden: User role '%s' is not authorized to access this route", u.Role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// HasAnyRole reports whether the current request's user has any of the
// given roles. Returns false if no user is present.
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == strings.ToLower(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}

// IsMentor reports whether the current request's user is a mentor.
func IsMentor(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "mentor"
}

// IsCoordinator reports whether the current request's user is a coordinator.
func IsCoordinator(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "coordinator"
}
