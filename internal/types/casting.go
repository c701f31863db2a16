// Package types provides type definitions for the records flowing through the casting-agent pipelines.
package types

import (
	"strings"

	"github.com/google/uuid"
)

// SourceCraigslist tags castings discovered on Craigslist.
const SourceCraigslist = "craigslist"

// DefaultDescriptionLimit is the display truncation applied to posting bodies.
const DefaultDescriptionLimit = 500

// Listing is one search-result row from a gigs endpoint.
// Produced by the collection pipeline's search-page parse; read-only downstream.
type Listing struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	PostedDate string `json:"postedDate"`
	Location   string `json:"location"`
}

// Casting is a contact-bearing record derived from one listing.
// It exists only when a contact email was recoverable from the posting.
type Casting struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	Email        string `json:"email"`
	PostedDate   string `json:"postedDate"`
	Location     string `json:"location"`
	Compensation string `json:"compensation"`
	Source       string `json:"source"`
}

// NewCasting assembles a Casting from a listing, its posting body, and the
// recovered contact email. The body is truncated to descriptionLimit runes
// for display; pass 0 to use DefaultDescriptionLimit.
func NewCasting(listing Listing, body, email, compensation string, descriptionLimit int) Casting {
	if descriptionLimit <= 0 {
		descriptionLimit = DefaultDescriptionLimit
	}
	return Casting{
		ID:           CastingID(listing.URL),
		Title:        listing.Title,
		Description:  truncate(body, descriptionLimit),
		URL:          listing.URL,
		Email:        email,
		PostedDate:   listing.PostedDate,
		Location:     listing.Location,
		Compensation: compensation,
		Source:       SourceCraigslist,
	}
}

// CastingID derives a stable ID from the last path segment of the listing
// URL (extension stripped), falling back to a generated ID when the URL has
// no usable segment.
func CastingID(rawURL string) string {
	seg := rawURL
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	if i := strings.IndexByte(seg, '.'); i >= 0 {
		seg = seg[:i]
	}
	if seg == "" {
		return "cl_" + uuid.New().String()
	}
	return seg
}

// ApplicationResult records the outcome of one application send.
// A send either succeeds or fails once; there are no partial or retry states.
type ApplicationResult struct {
	CastingID    string `json:"castingId"`
	CastingTitle string `json:"castingTitle"`
	CastingURL   string `json:"castingUrl"`
	Success      bool   `json:"success"`
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
