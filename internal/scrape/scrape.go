// Package scrape implements the collection pipeline: it walks the configured
// gigs endpoints, visits each listing, and assembles a casting record for
// every posting with a recoverable contact address.
package scrape

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/casting-agent/internal/extract"
	"github.com/jonathan/casting-agent/internal/fetch"
	"github.com/jonathan/casting-agent/internal/types"
)

// Renderer loads a URL in the run's browsing context and returns the settled
// document. Satisfied by *fetch.Browser.
type Renderer interface {
	Render(ctx context.Context, url string, timeout time.Duration) (*fetch.Page, error)
}

// DefaultEndpoints are the New York talent-gig search partitions.
var DefaultEndpoints = []string{
	"https://newyork.craigslist.org/search/tlg",
	"https://newyork.craigslist.org/search/brk/tlg",
	"https://newyork.craigslist.org/search/que/tlg",
	"https://newyork.craigslist.org/search/brx/tlg",
}

const (
	// DefaultListingCap bounds how many rows are taken per endpoint.
	DefaultListingCap = 15

	// DefaultMinDelay and DefaultDelayJitter pace listing visits: a fixed
	// floor plus random jitter. This is an anti-blocking measure, not a
	// performance knob; keep it visible here, never inside the Renderer.
	DefaultMinDelay    = 2 * time.Second
	DefaultDelayJitter = 3 * time.Second

	endpointTimeout = 30 * time.Second
	listingTimeout  = 15 * time.Second

	// compensationNotSpecified is the literal recorded when the summary
	// block carries no compensation marker or fails to extract.
	compensationNotSpecified = "Not specified"
)

// Scraper walks endpoints strictly sequentially. Failures are absorbed at the
// smallest enclosing scope: a bad listing never aborts its endpoint and a bad
// endpoint never aborts the run.
type Scraper struct {
	Renderer         Renderer
	Endpoints        []string
	ListingCap       int
	DescriptionLimit int
	MinDelay         time.Duration
	DelayJitter      time.Duration
}

// Options configures a collection run. Zero values fall back to the defaults
// above.
type Options struct {
	Endpoints        []string
	ListingCap       int
	DescriptionLimit int
	MinDelay         time.Duration
	DelayJitter      time.Duration
}

// NewScraper builds a Scraper over the given renderer with defaults applied.
func NewScraper(r Renderer, opts Options) *Scraper {
	s := &Scraper{
		Renderer:         r,
		Endpoints:        opts.Endpoints,
		ListingCap:       opts.ListingCap,
		DescriptionLimit: opts.DescriptionLimit,
		MinDelay:         opts.MinDelay,
		DelayJitter:      opts.DelayJitter,
	}
	if len(s.Endpoints) == 0 {
		s.Endpoints = DefaultEndpoints
	}
	if s.ListingCap <= 0 {
		s.ListingCap = DefaultListingCap
	}
	if s.MinDelay <= 0 {
		s.MinDelay = DefaultMinDelay
	}
	if s.DelayJitter <= 0 {
		s.DelayJitter = DefaultDelayJitter
	}
	return s
}

// Collect runs one full collection pass with its own browser, torn down on
// both success and failure paths.
func Collect(ctx context.Context, opts Options) ([]types.Casting, error) {
	browser, err := fetch.NewBrowser(ctx)
	if err != nil {
		return nil, err
	}
	defer browser.Close()

	return NewScraper(browser, opts).Run(ctx), nil
}

// Run visits every endpoint and returns the assembled castings in
// endpoint-then-listing order.
func (s *Scraper) Run(ctx context.Context) []types.Casting {
	castings := make([]types.Casting, 0)
	for _, endpoint := range s.Endpoints {
		listings, err := s.listings(ctx, endpoint)
		if err != nil {
			log.Printf("[SCRAPE] endpoint %s failed: %v", endpoint, err)
			continue
		}
		log.Printf("[SCRAPE] %s: %d listings", endpoint, len(listings))

		for _, listing := range listings {
			if listing.URL == "" {
				continue
			}
			casting, err := s.visit(ctx, listing)
			switch {
			case err != nil:
				log.Printf("[SCRAPE] listing %s failed: %v", listing.URL, err)
			case casting == nil:
				log.Printf("[SCRAPE] listing %s has no contact address, dropped", listing.URL)
			default:
				castings = append(castings, *casting)
			}
			s.pause(ctx)
		}
	}
	return castings
}

// listings renders one endpoint and parses up to ListingCap result rows.
func (s *Scraper) listings(ctx context.Context, endpoint string) ([]types.Listing, error) {
	page, err := s.Renderer.Render(ctx, endpoint, endpointTimeout)
	if err != nil {
		return nil, err
	}

	var listings []types.Listing
	page.Find(".result-row").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if len(listings) >= s.ListingCap {
			return false
		}
		link := row.Find("a").First()
		href, _ := link.Attr("href")
		datetime, _ := row.Find(".result-date").First().Attr("datetime")
		listings = append(listings, types.Listing{
			Title:      strings.TrimSpace(link.Text()),
			URL:        href,
			PostedDate: datetime,
			Location:   strings.TrimSpace(row.Find(".result-hood").First().Text()),
		})
		return true
	})
	return listings, nil
}

// visit renders one listing's detail page and assembles a casting when a
// contact address is recoverable. Returns (nil, nil) when the listing has no
// address and must be dropped.
func (s *Scraper) visit(ctx context.Context, listing types.Listing) (*types.Casting, error) {
	page, err := s.Renderer.Render(ctx, listing.URL, listingTimeout)
	if err != nil {
		return nil, err
	}

	body := page.Text("#postingbody")

	compensation := compensationNotSpecified
	if attrs := page.Text(".attrgroup"); strings.Contains(attrs, "compensation") {
		compensation = attrs
	}

	email := ""
	if found := extract.Emails(body); len(found) > 0 {
		email = found[0]
	} else if href := page.Attr(`a[href^="mailto:"]`, "href"); href != "" {
		// Relay fallback: the site hides the poster behind a mail-relay link.
		email = extract.FromMailto(href)
	}
	if email == "" {
		return nil, nil
	}

	casting := types.NewCasting(listing, body, email, compensation, s.DescriptionLimit)
	return &casting, nil
}

// pause waits the pacing delay after a listing visit, success or failure.
func (s *Scraper) pause(ctx context.Context) {
	delay := s.MinDelay
	if s.DelayJitter > 0 {
		delay += time.Duration(rand.Int63n(int64(s.DelayJitter)))
	}
	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}
}
