package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitrine-cms/vitrine/internal/app/ports"
	"github.com/vitrine-cms/vitrine/internal/app/services"
)

// CollectionRoutes serves one ordered collection. It is registered once
// for the gallery and once for the portfolio; only the path prefix and
// backing store differ.
type CollectionRoutes struct {
	prefix   string
	store    ports.OrderedCollectionStore
	sessions *services.SessionAuthority
}

// NewCollectionRoutes constructs routes for one ordered collection under
// /api/<name>.
func NewCollectionRoutes(name string, store ports.OrderedCollectionStore, sessions *services.SessionAuthority) *CollectionRoutes {
	return &CollectionRoutes{prefix: "/api/" + name, store: store, sessions: sessions}
}

// RegisterRoutes registers the collection endpoints on the server.
func (r *CollectionRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET(r.prefix, r.handleList)

	admin := RequireAuth(r.sessions)
	s.POST(r.prefix, r.handleCreate, admin)
	s.PATCH(r.prefix+"/:id", r.handleUpdate, admin)
	s.DELETE(r.prefix+"/:id", r.handleDelete, admin)
	s.PUT(r.prefix+"/reorder", r.handleReorder, admin)
	s.POST(r.prefix+"/compact", r.handleCompact, admin)
}

func (r *CollectionRoutes) handleList(c echo.Context) error {
	items, err := r.store.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (r *CollectionRoutes) handleCreate(c echo.Context) error {
	var fields ports.OrderedItemFields
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "malformed request body"})
	}

	item, err := r.store.Append(c.Request().Context(), fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (r *CollectionRoutes) handleUpdate(c echo.Context) error {
	var patch ports.OrderedItemPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "malformed request body"})
	}

	item, err := r.store.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (r *CollectionRoutes) handleDelete(c echo.Context) error {
	if err := r.store.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

func (r *CollectionRoutes) handleReorder(c echo.Context) error {
	var request reorderRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "malformed request body"})
	}

	items, err := r.store.Reorder(c.Request().Context(), request.IDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (r *CollectionRoutes) handleCompact(c echo.Context) error {
	items, err := r.store.Compact(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
