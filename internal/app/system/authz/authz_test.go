package authz_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deadlinesdragons/questhub/internal/app/system/auth"
	"github.com/deadlinesdragons/questhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func reqWithRole(role string) *http.Request {
	r := httptest.NewRequest("GET", "/guarded", nil)
	return auth.WithTestUser(r, &auth.AuthUser{
		ID:       primitive.NewObjectID().Hex(),
		Username: "tester",
		Role:     role,
	})
}

func TestRequireRole(t *testing.T) {
	guard := authz.RequireRole("mentor", "admin")
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		req        *http.Request
		wantStatus int
		wantMsg    string
	}{
		{"allowed role", reqWithRole("mentor"), http.StatusOK, ""},
		{"allowed role case-insensitive", reqWithRole("Admin"), http.StatusOK, ""},
		{"forbidden role", reqWithRole("student"), http.StatusForbidden,
			"Forbidden: User role 'student' is not authorized to access this route"},
		{"no identity", httptest.NewRequest("GET", "/guarded", nil), http.StatusUnauthorized, "Not authorized"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			guard(inner).ServeHTTP(rec, tc.req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantMsg != "" && !strings.Contains(rec.Body.String(), tc.wantMsg) {
				t.Errorf("body %q does not contain %q", rec.Body.String(), tc.wantMsg)
			}
		})
	}
}

func TestUserCtx(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		id := primitive.NewObjectID()
		r := httptest.NewRequest("GET", "/", nil)
		r = auth.WithTestUser(r, &auth.AuthUser{ID: id.Hex(), Username: "frodo", Role: "Student"})

		role, username, uid, ok := authz.UserCtx(r)
		if !ok {
			t.Fatal("expected ok")
		}
		if role != "student" || username != "frodo" || uid != id {
			t.Errorf("unexpected values: %q %q %s", role, username, uid.Hex())
		}
	})

	t.Run("malformed id fails closed", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r = auth.WithTestUser(r, &auth.AuthUser{ID: "not-an-objectid", Role: "admin"})

		if _, _, _, ok := authz.UserCtx(r); ok {
			t.Error("expected ok=false for malformed id")
		}
	})

	t.Run("no user", func(t *testing.T) {
		if _, _, _, ok := authz.UserCtx(httptest.NewRequest("GET", "/", nil)); ok {
			t.Error("expected ok=false with no identity")
		}
	})
}

func TestRoleHelpers(t *testing.T) {
	if !authz.IsAdmin(reqWithRole("admin")) {
		t.Error("IsAdmin should be true for admin")
	}
	if authz.IsAdmin(reqWithRole("student")) {
		t.Error("IsAdmin should be false for student")
	}
	if !authz.IsMentor(reqWithRole("mentor")) {
		t.Error("IsMentor should be true for mentor")
	}
	if !authz.IsCoordinator(reqWithRole("coordinator")) {
		t.Error("IsCoordinator should be true for coordinator")
	}
	if !authz.HasAnyRole(reqWithRole("mentor"), "admin", "mentor") {
		t.Error("HasAnyRole should match mentor")
	}
	if authz.HasAnyRole(reqWithRole("student"), "admin", "mentor") {
		t.Error("HasAnyRole should not match student")
	}
}
