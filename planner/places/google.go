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
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/honeycombio/beeline-go"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	gmaps "googlemaps.github.io/maps"

	"github.com/tabi-planner/japan-planner/planner/poi"
	"github.com/tabi-planner/japan-planner/planner/quota"
)

const PhotoPath = "/api/places/photo"

const defaultPhotoWidth = 400

var detailFields = []string{
	"name", "formatted_address", "geometry", "place_id", "types", "photos",
	"rating", "price_level", "reviews", "website", "formatted_phone_number",
	"opening_hours",
}

// GoogleBackend serves places from the Google Places API. Calls are rate
// limited and charged against the monthly quota; details are cached briefly so
// that a price lookup right after a details lookup costs nothing.
type GoogleBackend struct {
	client  *gmaps.Client
	limiter *rate.Limiter
	quota   *quota.Tracker
	details *cache.Cache
	fields  []gmaps.PlaceDetailsFieldMask
}

// NewGoogleBackend wraps client. qps <= 0 disables rate limiting; a nil tracker
// disables quota accounting.
func NewGoogleBackend(client *gmaps.Client, qps float64, tracker *quota.Tracker) (*GoogleBackend, error) {
	fields := make([]gmaps.PlaceDetailsFieldMask, 0, len(detailFields))
	for _, f := range detailFields {
		mask, err := gmaps.ParsePlaceDetailsFieldMask(f)
		if err != nil {
			return nil, fmt.Errorf("bad details field %q: %w", f, err)
		}
		fields = append(fields, mask)
	}
	limit := rate.Inf
	if qps > 0 {
		limit = rate.Limit(qps)
	}
	return &GoogleBackend{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		quota:   tracker,
		details: cache.New(5*time.Minute, 10*time.Minute),
		fields:  fields,
	}, nil
}

func (g *GoogleBackend) spend(ctx context.Context, credits int) error {
	if err := g.quota.Allow(ctx); err != nil {
		return err
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	_ = g.quota.ChargeCredits(ctx, credits)
	return nil
}

// The default search centre is Tokyo.
var tokyo = gmaps.LatLng{Lat: 35.6762, Lng: 139.6503}

const searchRadius = 50000

func (g *GoogleBackend) Search(ctx context.Context, req SearchRequest) (*SearchPage, error) {
	ctx, span := beeline.StartSpan(ctx, "places_text_search")
	defer span.Send()
	span.AddField("query", req.Query)

	var r gmaps.TextSearchRequest
	if req.PageToken != "" {
		r.PageToken = req.PageToken
	} else {
		if strings.TrimSpace(req.Query) == "" {
			return nil, ErrNoQuery
		}
		location := tokyo
		if req.Location != nil {
			location = gmaps.LatLng{Lat: req.Location.Lat, Lng: req.Location.Lng}
		}
		r.Query = req.Query + " japan"
		r.Location = &location
		r.Radius = searchRadius
	}
	if err := g.spend(ctx, quota.TextSearchCredits); err != nil {
		span.AddField("error", err)
		return nil, err
	}
	resp, err := g.client.TextSearch(ctx, &r)
	if err != nil {
		span.AddField("error", err)
		return nil, fmt.Errorf("text search failed: %w", err)
	}
	page := &SearchPage{NextPageToken: resp.NextPageToken}
	for _, result := range resp.Results {
		place := poi.PointOfInterest{
			ID:       result.PlaceID,
			Name:     result.Name,
			Address:  result.FormattedAddress,
			Position: &poi.Position{Lat: result.Geometry.Location.Lat, Lng: result.Geometry.Location.Lng},
			PlaceID:  result.PlaceID,
			Types:    result.Types,
			Rating:   rating(result.Rating),
			Photos:   photoURLs(result.Photos),
		}
		if result.PriceLevel > 0 {
			level := result.PriceLevel
			place.Price = &poi.Price{Level: &level, Currency: "JPY"}
		}
		if result.OpeningHours != nil {
			place.OpeningHours = result.OpeningHours.WeekdayText
		}
		page.Places = append(page.Places, place)
	}
	span.AddField("results", len(page.Places))
	log.Printf("Found %d places matching %q", len(page.Places), req.Query)
	return page, nil
}

// Details returns a copy of the place, with price and extra information mined
// from its reviews.
func (g *GoogleBackend) Details(ctx context.Context, placeID string) (*poi.PointOfInterest, error) {
	if v, ok := g.details.Get(placeID); ok {
		if p, ok := v.(*poi.PointOfInterest); ok {
			return clonePlace(p), nil
		}
	}
	ctx, span := beeline.StartSpan(ctx, "places_details")
	defer span.Send()
	span.AddField("place_id", placeID)

	if err := g.spend(ctx, quota.PlaceDetailsCredits); err != nil {
		span.AddField("error", err)
		return nil, err
	}
	result, err := g.client.PlaceDetails(ctx, &gmaps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields:  g.fields,
	})
	if err != nil {
		if notFound(err) {
			log.Printf("No details found for place ID: %s", placeID)
			g.details.Set(placeID, (*poi.PointOfInterest)(nil), cache.DefaultExpiration)
			return nil, nil
		}
		span.AddField("error", err)
		return nil, fmt.Errorf("place details failed: %w", err)
	}
	if result.PlaceID == "" && result.Name == "" {
		g.details.Set(placeID, (*poi.PointOfInterest)(nil), cache.DefaultExpiration)
		return nil, nil
	}

	var reviews []string
	for _, r := range result.Reviews {
		if r.Text != "" {
			reviews = append(reviews, r.Text)
		}
	}
	var level *int
	if result.PriceLevel > 0 {
		level = poi.Int(result.PriceLevel)
	}
	place := &poi.PointOfInterest{
		ID:             result.PlaceID,
		Name:           result.Name,
		Address:        result.FormattedAddress,
		Position:       &poi.Position{Lat: result.Geometry.Location.Lat, Lng: result.Geometry.Location.Lng},
		PlaceID:        result.PlaceID,
		Types:          result.Types,
		Price:          minePrice(level, result.Types, reviews),
		Rating:         rating(result.Rating),
		Photos:         photoURLs(result.Photos),
		Website:        result.Website,
		PhoneNumber:    result.FormattedPhoneNumber,
		AdditionalInfo: mineInfo(reviews),
	}
	if place.Types == nil {
		place.Types = []string{}
	}
	if result.OpeningHours != nil {
		place.OpeningHours = result.OpeningHours.WeekdayText
	}
	g.details.Set(placeID, place, cache.DefaultExpiration)
	return clonePlace(place), nil
}

func (g *GoogleBackend) Photo(ctx context.Context, ref string, maxWidth uint) (*Photo, error) {
	ctx, span := beeline.StartSpan(ctx, "places_photo")
	defer span.Send()
	if maxWidth == 0 {
		maxWidth = defaultPhotoWidth
	}
	if err := g.spend(ctx, quota.PlacePhotoCredits); err != nil {
		span.AddField("error", err)
		return nil, err
	}
	resp, err := g.client.PlacePhoto(ctx, &gmaps.PlacePhotoRequest{
		PhotoReference: ref,
		MaxWidth:       maxWidth,
	})
	if err != nil {
		span.AddField("error", err)
		return nil, fmt.Errorf("place photo failed: %w", err)
	}
	return &Photo{ContentType: resp.ContentType, Data: resp.Data}, nil
}

func notFound(err error) bool {
	s := err.Error()
	return strings.Contains(s, "NOT_FOUND") || strings.Contains(s, "ZERO_RESULTS")
}

func rating(r float32) *float64 {
	if r <= 0 {
		return nil
	}
	return poi.Float(float64(r))
}

// photoURLs points photos at the local proxy, so that the API key never reaches
// the browser.
func photoURLs(photos []gmaps.Photo) []string {
	var out []string
	for _, p := range photos {
		if p.PhotoReference == "" {
			continue
		}
		out = append(out, fmt.Sprintf("%s?ref=%s&maxWidth=%d", PhotoPath, url.QueryEscape(p.PhotoReference), defaultPhotoWidth))
	}
	return out
}

func clonePlace(p *poi.PointOfInterest) *poi.PointOfInterest {
	if p == nil {
		return nil
	}
	out := p.Clone()
	return &out
}
