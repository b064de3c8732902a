// Package gate implements the access gate: a request-boundary guard that
// requires and records a business justification before protected-data access
// is permitted. The audit write happens before the guarded operation runs, so
// an operation that fails afterward still leaves an access record.
package gate

import (
	"context"
)

// Actor is the authenticated identity supplied by the request pipeline. This
// engine never authenticates users itself; it only requires that an actor is
// present at guarded boundaries.
type Actor struct {
	ID             string
	OrganizationID string
	SessionID      string
	IPAddress      string
	UserAgent      string
}

// actorKey is a context key type for storing the authenticated actor.
type actorKey struct{}

// WithActor stores an authenticated actor in the context.
// This is typically called by the actor middleware after extracting identity
// from the request pipeline.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor retrieves the authenticated actor from the context.
// Returns (actor, true) if present, or (zero, false) if no actor was set.
func GetActor(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	if !ok || actor.ID == "" {
		return Actor{}, false
	}
	return actor, true
}
