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

package planner

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/exp/slices"
	"nhooyr.io/websocket"

	"github.com/tabi-planner/japan-planner/planner/itinerary"
	"github.com/tabi-planner/japan-planner/planner/notify"
	"github.com/tabi-planner/japan-planner/planner/stations"
	"github.com/tabi-planner/japan-planner/planner/widgets"
)

// handleReset forgets everything the session has: pins, trips, the current
// search and remembered station positions.
func (s *Service) handleReset(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	ctx := r.Context()
	sess.Pins.ClearPins(ctx)
	sess.Planner.Reset(ctx)
	sess.Search.ClearSearch()
	sess.Positions.PurgeStations()
	sess.Notices.Info("All saved locations and trips were cleared")
	rw.WriteHeader(http.StatusNoContent)
}

// parseRegions reads a comma separated region list. "all" means every region.
func parseRegions(raw string) ([]stations.Region, error) {
	var regions []stations.Region
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if part == "all" {
			return stations.Regions, nil
		}
		region := stations.Region(part)
		if !slices.Contains(stations.Regions, region) {
			return nil, fmt.Errorf("%w: unknown region %q", itinerary.ErrInvalidInput, part)
		}
		if !slices.Contains(regions, region) {
			regions = append(regions, region)
		}
	}
	return regions, nil
}

func (s *Service) mapWidget(r *http.Request, sess *Session) (widgets.MapWidget, error) {
	regions, err := parseRegions(r.URL.Query().Get("regions"))
	if err != nil {
		return widgets.MapWidget{}, err
	}
	return widgets.Build(sess.Pins.Pins(), sess.Pins.SelectedPins(), regions...), nil
}

func (s *Service) handleMarkers(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	w, err := s.mapWidget(r, sess)
	if err != nil {
		respondErr(rw, err)
		return
	}
	respondJSON(rw, http.StatusOK, w)
}

func (s *Service) handleStaticMap(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	if s.maps == nil {
		respondError(rw, http.StatusServiceUnavailable, "static maps are not configured")
		return
	}
	w, err := s.mapWidget(r, sess)
	if err != nil {
		respondErr(rw, err)
		return
	}
	width, _ := strconv.Atoi(r.URL.Query().Get("width"))
	height, _ := strconv.Atoi(r.URL.Query().Get("height"))
	img, err := widgets.StaticMap(r.Context(), s.maps, s.quota, w, width, height)
	if err != nil {
		log.Printf("Failed to render static map: %v", err)
		respondErr(rw, err)
		return
	}
	rw.Header().Set("Content-Type", "image/png")
	rw.Header().Set("Cache-Control", "private, max-age=60")
	_, _ = rw.Write(img)
}

// originPatterns turns the allowed CORS origins into host patterns for the
// websocket origin check.
func originPatterns(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
		} else {
			patterns = append(patterns, o)
		}
	}
	return patterns
}

func (s *Service) handleEvents(rw http.ResponseWriter, r *http.Request, _ httprouter.Params, sess *Session) {
	conn, err := websocket.Accept(rw, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(s.origins),
	})
	if err != nil {
		log.Printf("Failed to accept websocket: %v", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")
	if err := notify.Stream(r.Context(), conn, sess.Notices); err != nil {
		log.Printf("Notification stream for %s ended: %v", sess.ID, err)
	}
}
