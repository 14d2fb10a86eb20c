package domain

import (
	"context"

	"github.com/google/uuid"
)

// SystemUserID stamps audit columns for writes made without an actor
var SystemUserID = uuid.Nil

// Actor is the authenticated user on whose behalf a request runs
type Actor struct {
	UserID uuid.UUID
	Email  string
	Role   string
	// MFA is set when the session was established with a second factor
	MFA bool
}

type actorKey struct{}

// WithActor returns a context carrying the actor. Store calls made with it
// run under row level security.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// WithoutActor returns a context whose store calls run in service mode. The
// permission engine uses it: row level security would hide the grants of
// delegators from their delegates.
func WithoutActor(ctx context.Context) context.Context {
	return context.WithValue(ctx, actorKey{}, Actor{})
}

// ActorFromContext returns the actor carried by ctx, if any
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	if !ok || actor.UserID == uuid.Nil {
		return Actor{}, false
	}
	return actor, true
}

// ActorID returns the actor's user id, or SystemUserID for service calls
func ActorID(ctx context.Context) uuid.UUID {
	if actor, ok := ActorFromContext(ctx); ok {
		return actor.UserID
	}
	return SystemUserID
}
