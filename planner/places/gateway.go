// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package places

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/tabi-planner/japan-planner/planner/poi"
)

const (
	searchFailed   = "Failed to search for places. Please try again."
	nextPageFailed = "Failed to load more results. Please try again."
)

// ErrSuperseded is returned to a search whose results arrived after a newer
// search was started. Its results are discarded.
var ErrSuperseded = errors.New("search superseded by a newer one")

// Results is a snapshot of a session's search state.
type Results struct {
	Term           string                `json:"term"`
	Places         []poi.PointOfInterest `json:"places"`
	NextPageToken  string                `json:"nextPageToken,omitempty"`
	HasMoreResults bool                  `json:"hasMoreResults"`
	IsLoading      bool                  `json:"isLoading"`
	Error          string                `json:"error,omitempty"`
}

// Gateway holds one session's search state. Network calls are made without the
// lock held; every search takes a sequence number and only the latest one may
// write its results.
type Gateway struct {
	backend Backend
	prices  PriceSource

	mu        sync.Mutex
	seq       uint64
	term      string
	location  *poi.Position
	places    []poi.PointOfInterest
	nextToken string
	loading   bool
	err       string
}

func NewGateway(backend Backend, prices PriceSource) *Gateway {
	return &Gateway{backend: backend, prices: prices, places: []poi.PointOfInterest{}}
}

func validPlaces(in []poi.PointOfInterest) []poi.PointOfInterest {
	out := make([]poi.PointOfInterest, 0, len(in))
	for i := range in {
		if in[i].Valid() {
			out = append(out, in[i].Clone())
		}
	}
	return out
}

// snapshot copies the state out. Callers must hold g.mu.
func (g *Gateway) snapshot() Results {
	places := make([]poi.PointOfInterest, len(g.places))
	for i := range g.places {
		places[i] = g.places[i].Clone()
	}
	return Results{
		Term:           g.term,
		Places:         places,
		NextPageToken:  g.nextToken,
		HasMoreResults: g.nextToken != "",
		IsLoading:      g.loading,
		Error:          g.err,
	}
}

func (g *Gateway) Results() Results {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// Search starts a new search for term, replacing any earlier results. Places
// missing a name, position or place id are dropped. An empty term changes
// nothing.
func (g *Gateway) Search(ctx context.Context, term string, location *poi.Position) (Results, error) {
	term = strings.TrimSpace(term)
	g.mu.Lock()
	if term == "" {
		defer g.mu.Unlock()
		return g.snapshot(), nil
	}
	g.seq++
	seq := g.seq
	g.term = term
	g.location = location
	g.loading = true
	g.err = ""
	g.mu.Unlock()

	page, err := g.backend.Search(ctx, SearchRequest{Query: term, Location: location})

	g.mu.Lock()
	defer g.mu.Unlock()
	if seq != g.seq {
		return g.snapshot(), ErrSuperseded
	}
	g.loading = false
	if err != nil {
		log.Printf("Search for %q failed: %v", term, err)
		g.err = searchFailed
		return g.snapshot(), err
	}
	g.places = validPlaces(page.Places)
	g.nextToken = page.NextPageToken
	return g.snapshot(), nil
}

// FetchNextPage appends the next page of the current search. It does nothing
// when there is no continuation token or a fetch is already in flight.
func (g *Gateway) FetchNextPage(ctx context.Context) (Results, error) {
	g.mu.Lock()
	if g.nextToken == "" || g.loading {
		defer g.mu.Unlock()
		return g.snapshot(), nil
	}
	seq := g.seq
	req := SearchRequest{Query: g.term, Location: g.location, PageToken: g.nextToken}
	g.loading = true
	g.mu.Unlock()

	page, err := g.backend.Search(ctx, req)

	g.mu.Lock()
	defer g.mu.Unlock()
	if seq != g.seq {
		return g.snapshot(), ErrSuperseded
	}
	g.loading = false
	if err != nil {
		log.Printf("Fetching next page of %q failed: %v", g.term, err)
		g.err = nextPageFailed
		return g.snapshot(), err
	}
	g.places = append(g.places, validPlaces(page.Places)...)
	g.nextToken = page.NextPageToken
	return g.snapshot(), nil
}

// ClearSearch forgets the current search. A search still in flight will find
// itself superseded.
func (g *Gateway) ClearSearch() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	g.term = ""
	g.location = nil
	g.places = []poi.PointOfInterest{}
	g.nextToken = ""
	g.loading = false
	g.err = ""
}

// GetDetails fetches a place and merges its price estimate into it. It returns
// nil without an error when there is nothing known about the place. A failed
// price lookup leaves the details as they were.
func (g *Gateway) GetDetails(ctx context.Context, placeID string) (*poi.PointOfInterest, error) {
	if placeID == "" {
		return nil, ErrNoQuery
	}
	details, err := g.backend.Details(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if details.Empty() || !details.Valid() {
		log.Printf("No detailed information available for place ID: %s", placeID)
		return nil, nil
	}
	if g.prices == nil {
		return details, nil
	}
	estimate, err := g.prices.Prices(ctx, placeID, details.Name, poi.PrimaryType(details.Types))
	if err != nil {
		log.Printf("Price lookup for %s failed, using base details: %v", placeID, err)
		return details, nil
	}
	MergePrice(details, estimate)
	return details, nil
}

// Prices looks up the price estimate of a place directly.
func (g *Gateway) Prices(ctx context.Context, placeID, name, placeType string) (*PriceEstimate, error) {
	if g.prices == nil {
		est := Estimate(placeType, nil, name)
		return &est, nil
	}
	return g.prices.Prices(ctx, placeID, name, placeType)
}
