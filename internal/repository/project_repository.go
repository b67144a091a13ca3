// Package repository contains data access logic separated from HTTP handlers.
// This file holds the static project catalog. Projects are compiled-in seed
// data; nothing in the API writes them.
package repository

import (
	"context"

	"github.com/iliyamo/luxury-estate-api/internal/model"
)

// seedProjects is the fixed catalog served by the public API.
var seedProjects = []model.Project{
	{
		ID:             "aurora-towers",
		Title:          "Aurora Towers",
		Location:       "Downtown",
		Status:         "Now Selling",
		Description:    "Ultra-modern residences with panoramic skyline views.",
		AvailableUnits: 21,
		HeroVideo:      "https://cdn.coverr.co/videos/coverr-city-sunrise-1300/1080p.mp4",
		VirtualTourURL: "https://www.youtube.com/embed/Scxs7L0vhZ4",
		Thumbnail:      "https://images.unsplash.com/photo-1501183638710-841dd1904471?q=80&w=1600&auto=format&fit=crop",
	},
	{
		ID:             "serenity-bay",
		Title:          "Serenity Bay",
		Location:       "Waterfront",
		Status:         "Under Construction",
		Description:    "Private marina residences with resort amenities.",
		AvailableUnits: 8,
		HeroVideo:      "https://cdn.coverr.co/videos/coverr-sunrise-over-the-sea-4210/1080p.mp4",
		VirtualTourURL: "https://www.youtube.com/embed/ysz5S6PUM-U",
		Thumbnail:      "https://images.unsplash.com/photo-1494526585095-c41746248156?q=80&w=1600&auto=format&fit=crop",
	},
}

// ProjectRepo serves the seed catalog. The zero value is not usable; build
// one with NewProjectRepo so the catalog can be swapped in tests.
type ProjectRepo struct {
	projects []model.Project
}

// NewProjectRepo returns a repository over the built-in seed catalog.
func NewProjectRepo() *ProjectRepo {
	return &ProjectRepo{projects: seedProjects}
}

// NewProjectRepoWith returns a repository over an arbitrary catalog.
func NewProjectRepoWith(projects []model.Project) *ProjectRepo {
	return &ProjectRepo{projects: projects}
}

// ListAll returns every project in catalog order. The slice is a copy so
// callers cannot alter the seed data.
func (r *ProjectRepo) ListAll(ctx context.Context) ([]model.Project, error) {
	out := make([]model.Project, len(r.projects))
	copy(out, r.projects)
	return out, nil
}

// GetByID fetches a project by its slug. It returns ErrProjectNotFound if
// no project matches.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (model.Project, error) {
	for _, p := range r.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Project{}, ErrProjectNotFound
}
