package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by the middleware and read by handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
)

// Auth validates the JWT and injects the actor's claims into context.
// Requests without an Authorization header are rejected.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			if err := applyClaims(c, header, jwtSecret); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// OptionalAuth injects claims when a token is presented but lets anonymous
// requests through; public course reads use it. A token that is present but
// invalid is still rejected.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header != "" {
				if err := applyClaims(c, header, jwtSecret); err != nil {
					return err
				}
			}
			return next(c)
		}
	}
}

func applyClaims(c echo.Context, header, jwtSecret string) error {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	// Numeric claims decode as float64.
	sub, _ := claims["sub"].(float64)
	if sub <= 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}

	c.Set(CtxUserID, uint(sub))
	c.Set(CtxUsername, claims["username"])
	c.Set(CtxRole, claims["role"])

	return nil
}
