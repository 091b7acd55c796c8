package routes

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitrine-cms/vitrine/internal/app/ports"
	"github.com/vitrine-cms/vitrine/internal/app/services"
)

// SectionRoutes serves the single-document content records.
type SectionRoutes struct {
	store    ports.SectionStore
	sessions *services.SessionAuthority
}

// NewSectionRoutes constructs section routes.
func NewSectionRoutes(store ports.SectionStore, sessions *services.SessionAuthority) *SectionRoutes {
	return &SectionRoutes{store: store, sessions: sessions}
}

// RegisterRoutes registers section endpoints on the server.
func (r *SectionRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/api/sections/:name", r.handleGet)
	s.PUT("/api/sections/:name", r.handleReplace, RequireAuth(r.sessions))
}

type sectionResponse struct {
	Name     string          `json:"name"`
	Document json.RawMessage `json:"document"`
}

func (r *SectionRoutes) handleGet(c echo.Context) error {
	section, err := r.store.GetSection(c.Request().Context(), c.Param("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sectionResponse{Name: section.Name, Document: section.Document})
}

func (r *SectionRoutes) handleReplace(c echo.Context) error {
	var document json.RawMessage
	if err := c.Bind(&document); err != nil || len(document) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "malformed request body"})
	}

	section, err := r.store.ReplaceSection(c.Request().Context(), c.Param("name"), document)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sectionResponse{Name: section.Name, Document: section.Document})
}
