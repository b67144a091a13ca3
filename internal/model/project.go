package model

// Project represents a real-estate development shown on the marketing
// site.  Projects are seed data compiled into the binary; they are never
// written by the API.
//
// Fields:
//
//	ID             – slug used in URLs (e.g. "aurora-towers").
//	Title          – display name.
//	Location       – neighbourhood or district.
//	HeroVideo      – optional background video URL.
//	Thumbnail      – optional card image URL.
//	Status         – sales stage (e.g. "Now Selling").
//	Description    – marketing blurb.
//	AvailableUnits – number of units still on sale.
//	VirtualTourURL – optional embeddable tour URL.
type Project struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Location       string `json:"location"`
	HeroVideo      string `json:"hero_video,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
	Status         string `json:"status"`
	Description    string `json:"description"`
	AvailableUnits int    `json:"available_units"`
	VirtualTourURL string `json:"virtual_tour_url,omitempty"`
}
