package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitrine-cms/vitrine/internal/app/services"
	"github.com/vitrine-cms/vitrine/internal/webassets"
)

// PageRoutes serves the login and admin page shells behind the access
// gate. An authenticated visit to /login bounces to /admin and an
// unauthenticated visit to /admin bounces to /login; everything else
// passes through.
type PageRoutes struct {
	sessions *services.SessionAuthority
}

// NewPageRoutes constructs page routes.
func NewPageRoutes(sessions *services.SessionAuthority) *PageRoutes {
	return &PageRoutes{sessions: sessions}
}

// RegisterRoutes registers the page endpoints on the server.
func (r *PageRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/login", servePage("login"), GateLoginPage(r.sessions))
	s.GET("/admin", servePage("admin"), GateAdminPage(r.sessions))
}

func servePage(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := webassets.Page(name)
		if err != nil {
			return writeError(c, err)
		}
		return c.HTMLBlob(http.StatusOK, page)
	}
}
