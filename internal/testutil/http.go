package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/genet-ke/genethub/internal/app/system/auth"
	"github.com/genet-ke/genethub/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AdminUser returns a signed-in user with the admin role.
func AdminUser() *models.User {
	return &models.User{
		ID:        1,
		Email:     "admin@test.com",
		FirstName: "Test",
		LastName:  "Admin",
		FullName:  "Test Admin",
		Role:      "admin",
	}
}

// MemberUser returns a signed-in user with the member role.
func MemberUser() *models.User {
	return &models.User{
		ID:        2,
		Email:     "member@test.com",
		FirstName: "Test",
		LastName:  "Member",
		FullName:  "Test Member",
		Role:      "member",
	}
}

// WithUser adds a user to the request context for testing authenticated
// handlers. This bypasses the session middleware and injects the user
// directly.
func WithUser(r *http.Request, user *models.User) *http.Request {
	return auth.WithTestUser(r, user)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}
