package middleware

import (
	"go.uber.org/zap"

	"floral-studio/internal/domain"
)

// ActorSource reports who is signed in to the studio
type ActorSource interface {
	CurrentUser() *domain.User
}

func actorFields(actors ActorSource) []zap.Field {
	if actors == nil {
		return nil
	}
	user := actors.CurrentUser()
	if user == nil {
		return []zap.Field{zap.Bool("signed_in", false)}
	}
	return []zap.Field{
		zap.Bool("signed_in", true),
		zap.String("actor_id", user.ID.String()),
		zap.String("actor_role", string(user.Role)),
	}
}

// routeOf returns the matched route pattern, or "unmatched" for 404s
func routeOf(fullPath string) string {
	if fullPath == "" {
		return "unmatched"
	}
	return fullPath
}
