package echo

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/unitynest/nest-backend/internal/infrastructure/security"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

type TokenParser interface {
	Parse(token string) (*security.Claims, error)
}

// RequireAuth verifies the bearer token and stores the caller's id and role
// on the context.
func RequireAuth(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return fail(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			}

			claims, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				return fail(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			}

			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxRole, claims.Role)
			return next(c)
		}
	}
}

func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := currentRole(c)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return fail(c, http.StatusForbidden, "forbidden", "insufficient permissions")
		}
	}
}

func currentUserID(c echo.Context) string {
	id, _ := c.Get(ctxUserID).(string)
	return id
}

func currentRole(c echo.Context) string {
	role, _ := c.Get(ctxRole).(string)
	return role
}
