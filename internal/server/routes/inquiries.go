package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitrine-cms/vitrine/internal/app/ports"
	"github.com/vitrine-cms/vitrine/internal/app/services"
)

// InquiryRoutes serves the public contact form and the admin inbox.
type InquiryRoutes struct {
	inquiries *services.InquiryService
	sessions  *services.SessionAuthority
}

// NewInquiryRoutes constructs inquiry routes.
func NewInquiryRoutes(inquiries *services.InquiryService, sessions *services.SessionAuthority) *InquiryRoutes {
	return &InquiryRoutes{inquiries: inquiries, sessions: sessions}
}

// RegisterRoutes registers inquiry endpoints on the server.
func (r *InquiryRoutes) RegisterRoutes(s *echo.Echo) {
	s.POST("/api/inquiries", r.handleSubmit)
	s.GET("/api/inquiries", r.handleList, RequireAuth(r.sessions))
	s.DELETE("/api/inquiries/:id", r.handleDelete, RequireAuth(r.sessions))
}

func (r *InquiryRoutes) handleSubmit(c echo.Context) error {
	var fields ports.InquiryFields
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "malformed request body"})
	}

	inquiry, err := r.inquiries.Submit(c.Request().Context(), fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, inquiry)
}

func (r *InquiryRoutes) handleList(c echo.Context) error {
	inquiries, err := r.inquiries.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, inquiries)
}

func (r *InquiryRoutes) handleDelete(c echo.Context) error {
	if err := r.inquiries.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
