package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursehub/enrollment-api/internal/api/middleware"
	"github.com/coursehub/enrollment-api/internal/core/authz"
	"github.com/coursehub/enrollment-api/internal/core/domain"
)

// actorFromContext builds the authz actor from the claims injected by the
// auth middleware. On routes behind OptionalAuth the claims may be absent;
// the zero actor is the anonymous caller.
func actorFromContext(c echo.Context) authz.Actor {
	id, _ := c.Get(middleware.CtxUserID).(uint)
	role, _ := c.Get(middleware.CtxRole).(string)
	return authz.Actor{ID: id, Role: domain.Role(role)}
}

// requireActor extracts the actor and fast-fails when the auth middleware
// did not run: the role claim's presence proves it did.
func requireActor(c echo.Context) (authz.Actor, error) {
	actor := actorFromContext(c)
	if !actor.Authenticated() {
		return authz.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
