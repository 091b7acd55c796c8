package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vitrine-cms/vitrine/internal/app/services"
)

const sessionCookieName = "vitrine_session"

// AuthRoutes registers authentication endpoints.
type AuthRoutes struct {
	identity     *services.IdentityService
	sessions     *services.SessionAuthority
	secureCookie bool
}

// NewAuthRoutes constructs auth routes.
func NewAuthRoutes(identity *services.IdentityService, sessions *services.SessionAuthority, secureCookie bool) *AuthRoutes {
	return &AuthRoutes{identity: identity, sessions: sessions, secureCookie: secureCookie}
}

// RegisterRoutes registers authentication routes on the server.
func (a *AuthRoutes) RegisterRoutes(s *echo.Echo) {
	s.POST("/api/auth/login", a.handleLogin)
	s.POST("/api/auth/logout", a.handleLogout)
	s.GET("/api/auth/me", a.handleMe, RequireAuth(a.sessions))
	s.PUT("/api/auth/password", a.handleChangePassword, RequireAuth(a.sessions))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *AuthRoutes) handleLogin(c echo.Context) error {
	var request loginRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "malformed request body"})
	}

	token, err := a.identity.Login(c.Request().Context(), request.Email, request.Password)
	if err != nil {
		return writeError(c, err)
	}

	c.SetCookie(a.sessionCookie(token, services.TokenLifetime))
	claims, _ := a.sessions.Verify(token)
	return c.JSON(http.StatusOK, map[string]string{"email": claims.Email, "role": claims.Role})
}

func (a *AuthRoutes) handleLogout(c echo.Context) error {
	c.SetCookie(a.sessionCookie("", -time.Hour))
	return c.NoContent(http.StatusNoContent)
}

func (a *AuthRoutes) handleMe(c echo.Context) error {
	claims := claimsFromContext(c)
	return c.JSON(http.StatusOK, map[string]string{"email": claims.Email, "role": claims.Role})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (a *AuthRoutes) handleChangePassword(c echo.Context) error {
	var request changePasswordRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "malformed request body"})
	}

	err := a.identity.ChangePassword(c.Request().Context(), request.CurrentPassword, request.NewPassword)
	if err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *AuthRoutes) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		cookie.Expires = time.Unix(0, 0)
	}
	return cookie
}
