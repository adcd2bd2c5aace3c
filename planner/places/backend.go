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

// Package places fronts the place search, details and price collaborators. The
// Gateway holds one session's search state; a Backend does the talking to the
// outside world.
package places

import (
	"context"
	"errors"
	"io"

	"github.com/tabi-planner/japan-planner/planner/poi"
)

var ErrNoQuery = errors.New("search query is required")

type SearchRequest struct {
	Query     string
	Location  *poi.Position
	PageToken string
}

type SearchPage struct {
	Places        []poi.PointOfInterest `json:"places"`
	NextPageToken string                `json:"nextPageToken,omitempty"`
}

type Photo struct {
	ContentType string
	Data        io.ReadCloser
}

// Backend is a source of places. Details returns nil without an error when the
// upstream knows nothing about the place.
type Backend interface {
	Search(ctx context.Context, req SearchRequest) (*SearchPage, error)
	Details(ctx context.Context, placeID string) (*poi.PointOfInterest, error)
	Photo(ctx context.Context, ref string, maxWidth uint) (*Photo, error)
}

// PriceSource supplies the price estimate merged into place details.
type PriceSource interface {
	Prices(ctx context.Context, placeID, name, placeType string) (*PriceEstimate, error)
}
