// Package handler exposes HTTP handlers for the public and admin endpoints.
// This file defines handlers for the project catalog. These routes are
// public and read-only.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/luxury-estate-api/internal/model"
	"github.com/iliyamo/luxury-estate-api/internal/repository"
)

// ProjectStore is the read side of the project catalog.
type ProjectStore interface {
	ListAll(ctx context.Context) ([]model.Project, error)
	GetByID(ctx context.Context, id string) (model.Project, error)
}

// ProjectHandler serves the static catalog.
type ProjectHandler struct {
	Projects ProjectStore
	Logger   *zap.Logger
}

// NewProjectHandler constructs a ProjectHandler and panics if a dependency is nil.
func NewProjectHandler(projects ProjectStore, logger *zap.Logger) *ProjectHandler {
	if projects == nil || logger == nil {
		panic("nil dependency passed to NewProjectHandler")
	}
	return &ProjectHandler{Projects: projects, Logger: logger}
}

// ListProjects returns the whole catalog as a JSON array.
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	projects, err := h.Projects.ListAll(c.Request().Context())
	if err != nil {
		h.Logger.Error("list projects", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, projects)
}

// GetProject returns one project by slug, or 404 when the slug is unknown.
func (h *ProjectHandler) GetProject(c echo.Context) error {
	p, err := h.Projects.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		h.Logger.Error("get project", zap.String("id", c.Param("id")), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, p)
}
