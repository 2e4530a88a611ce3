// Package appctx provides request-scoped values extraction.
package appctx

import (
	"context"
)

// Actor contains authenticated user information. It exists so mutating
// operations can attribute their audit records to whoever performed them.
type Actor struct {
	UserID   string
	Username string
	Email    string
	Roles    []string
}

type actorKey struct{}

// WithActor adds Actor to context.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor returns Actor from context, or nil.
func GetActor(ctx context.Context) *Actor {
	if v, ok := ctx.Value(actorKey{}).(*Actor); ok {
		return v
	}
	return nil
}

// GetUsername returns the acting username from context or "anonymous".
func GetUsername(ctx context.Context) string {
	if a := GetActor(ctx); a != nil && a.Username != "" {
		return a.Username
	}
	return "anonymous"
}

// HasRole checks if the actor has a specific role.
func HasRole(ctx context.Context, role string) bool {
	a := GetActor(ctx)
	if a == nil {
		return false
	}
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
