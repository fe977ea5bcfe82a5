package auth

import (
	"context"
	"time"
)

// User is the domain view of an account as the authorization layer needs
// it. The password digest never leaves the auth package.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"create_time"`
}

// RepositoryAPI is the storage surface the auth service and the gate need.
type RepositoryAPI interface {
	GetByUsername(username string) (*User, error)
	GetByID(id int64) (*User, error)
	// PermissionKeys returns the union of permission names across all
	// groups the user belongs to. Recomputed per call, never cached.
	PermissionKeys(userID int64) ([]string, error)
	UpdateLastLogin(userID int64, at time.Time) error
}

type ctxKey string

const claimsKey ctxKey = "authClaims"

// WithClaims stores the verified token claims for downstream handlers.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims placed by the authorization gate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
