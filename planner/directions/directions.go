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

// Package directions turns two places into a Google Maps directions link.
// Routing itself is left to the maps application.
package directions

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/umahmood/haversine"

	"github.com/tabi-planner/japan-planner/planner/poi"
)

const dirURL = "https://www.google.com/maps/dir/"

type TravelMode string

const (
	Transit TravelMode = "transit"
	Walking TravelMode = "walking"
	Driving TravelMode = "driving"
)

var Modes = []TravelMode{Transit, Walking, Driving}

var ErrUnknownMode = errors.New("unknown travel mode")

// ParseMode accepts the mode names in any case. The empty string means transit.
func ParseMode(s string) (TravelMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "transit":
		return Transit, nil
	case "walking", "walk":
		return Walking, nil
	case "driving", "drive":
		return Driving, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownMode, s)
	}
}

func coord(p poi.Position) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

// DeepLink opens the maps application with directions from origin to
// destination.
func DeepLink(origin, destination poi.Position, mode TravelMode) string {
	return fmt.Sprintf("%s?api=1&origin=%s&destination=%s&travelmode=%s", dirURL, coord(origin), coord(destination), mode)
}

type Endpoint struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Position poi.Position `json:"position"`
}

type Route struct {
	Origin        Endpoint              `json:"origin"`
	Destination   Endpoint              `json:"destination"`
	Mode          TravelMode            `json:"mode"`
	URL           string                `json:"url"`
	Links         map[TravelMode]string `json:"links"`
	DistanceKm    float64               `json:"distanceKm"`
	DistanceMiles float64               `json:"distanceMiles"`
	// Distance is the straight-line distance for display, e.g. "3.2 km".
	Distance string `json:"distance"`
}

// Plan builds the route between two places. Both must have a position.
func Plan(from, to poi.PointOfInterest, mode TravelMode) (*Route, error) {
	if from.Position == nil || to.Position == nil {
		return nil, errors.New("both endpoints need a position")
	}
	o, d := *from.Position, *to.Position
	r := &Route{
		Origin:      Endpoint{ID: from.ID, Name: from.Name, Position: o},
		Destination: Endpoint{ID: to.ID, Name: to.Name, Position: d},
		Mode:        mode,
		URL:         DeepLink(o, d, mode),
		Links:       make(map[TravelMode]string, len(Modes)),
	}
	for _, m := range Modes {
		r.Links[m] = DeepLink(o, d, m)
	}
	r.DistanceMiles, r.DistanceKm = haversine.Distance(
		haversine.Coord{Lat: o.Lat, Lon: o.Lng},
		haversine.Coord{Lat: d.Lat, Lon: d.Lng},
	)
	r.Distance = FormatDistance(r.DistanceKm)
	return r, nil
}

func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(km*1000+0.5))
	}
	return fmt.Sprintf("%.1f km", km)
}
