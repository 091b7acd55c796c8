package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitrine-cms/vitrine/internal/app/services"
)

const claimsContextKey = "sessionClaims"

// RequireAuth admits admin API requests carrying a valid session cookie
// and rejects everything else with a 401. Claims land in the request
// context for handlers that need them.
func RequireAuth(sessions *services.SessionAuthority) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := verifySessionCookie(c, sessions)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "authentication required"})
			}
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// GateAdminPage redirects unauthenticated visitors of admin pages to the
// login page.
func GateAdminPage(sessions *services.SessionAuthority) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := verifySessionCookie(c, sessions); !ok {
				return c.Redirect(http.StatusFound, "/login")
			}
			return next(c)
		}
	}
}

// GateLoginPage sends already-authenticated visitors of the login page
// straight to the admin home.
func GateLoginPage(sessions *services.SessionAuthority) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := verifySessionCookie(c, sessions); ok {
				return c.Redirect(http.StatusFound, "/admin")
			}
			return next(c)
		}
	}
}

func verifySessionCookie(c echo.Context, sessions *services.SessionAuthority) (services.SessionClaims, bool) {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return services.SessionClaims{}, false
	}
	claims, err := sessions.Verify(cookie.Value)
	if err != nil {
		return services.SessionClaims{}, false
	}
	return claims, true
}

func claimsFromContext(c echo.Context) services.SessionClaims {
	claims, _ := c.Get(claimsContextKey).(services.SessionClaims)
	return claims
}
