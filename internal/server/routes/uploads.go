package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitrine-cms/vitrine/internal/app/services"
	"github.com/vitrine-cms/vitrine/internal/uploads"
)

// UploadRoutes serves asset ingestion and retrieval.
type UploadRoutes struct {
	ingestor *uploads.Ingestor
	sessions *services.SessionAuthority
}

// NewUploadRoutes constructs upload routes.
func NewUploadRoutes(ingestor *uploads.Ingestor, sessions *services.SessionAuthority) *UploadRoutes {
	return &UploadRoutes{ingestor: ingestor, sessions: sessions}
}

// RegisterRoutes registers upload endpoints on the server.
func (r *UploadRoutes) RegisterRoutes(s *echo.Echo) {
	s.POST("/api/uploads", r.handleUpload, RequireAuth(r.sessions))
	s.GET("/uploads/*", r.handleRetrieve)
}

func (r *UploadRoutes) handleUpload(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "a file part is required"})
	}
	section := c.FormValue("section")

	file, err := header.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer file.Close()

	referencePath, err := r.ingestor.Ingest(file, header.Size, header.Filename, section)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"path": referencePath})
}

func (r *UploadRoutes) handleRetrieve(c echo.Context) error {
	// The raw wildcard goes to the ingestor uncleaned so traversal
	// attempts are judged, not silently normalized away.
	referencePath := uploads.PathPrefix + c.Param("*")

	file, contentType, err := r.ingestor.Open(referencePath)
	if err != nil {
		return writeError(c, err)
	}
	defer file.Close()

	return c.Stream(http.StatusOK, contentType, file)
}
