package httpapi

import (
	"context"

	"github.com/statsrecord/stats-api/internal/domain/policy"
)

type contextKey string

const actorContextKey contextKey = "auth_actor"

func withActor(ctx context.Context, actor policy.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// actorFromContext returns the authenticated actor, or the anonymous actor
// when the request never went through RequireAuth.
func actorFromContext(ctx context.Context) policy.Actor {
	if actor, ok := ctx.Value(actorContextKey).(policy.Actor); ok {
		return actor
	}
	return policy.Anonymous
}
