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

// Package stations holds the static rail overlay (Shinkansen and city lines)
// and the helpers for the temporary pins created when a station is picked as
// a route endpoint.
package stations

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/tabi-planner/japan-planner/planner/poi"
)

// PinPrefix starts the id of every station pin. A station pin id is
// "station-<line>-<station>-<index>".
const PinPrefix = "station-"

var ErrInvalidStationID = errors.New("invalid station id")

// TokyoStation is where a station pin lands when its position is unknown.
var TokyoStation = poi.Position{Lat: 35.6812, Lng: 139.7671}

type Marker struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Line     string       `json:"line"`
	Color    string       `json:"color"`
	Position poi.Position `json:"position"`
}

// Lines returns the rail lines in the given regions, or every line when none
// are given.
func Lines(regions ...Region) []Line {
	var out []Line
	for _, l := range lines {
		if len(regions) == 0 || slices.Contains(regions, l.Region) {
			out = append(out, l)
		}
	}
	return out
}

// Markers returns one marker per station stop of the selected lines. A station
// served by several lines gets one marker per line.
func Markers(regions ...Region) []Marker {
	var out []Marker
	for _, l := range Lines(regions...) {
		for i, s := range l.Stations {
			out = append(out, Marker{
				ID:       MarkerID(l.Name, s.Name, i),
				Name:     s.Name,
				Line:     l.Name,
				Color:    l.Color,
				Position: s.Position,
			})
		}
	}
	return out
}

func MarkerID(line, station string, index int) string {
	return fmt.Sprintf("%s-%s-%d", line, station, index)
}

func IsStationID(id string) bool {
	return strings.HasPrefix(id, PinPrefix)
}

// ID identifies one stop of one line.
type ID struct {
	Line    string
	Station string
	Index   int
}

// PinID is the id of the pin for this stop.
func (id ID) PinID() string {
	return PinPrefix + MarkerID(id.Line, id.Station, id.Index)
}

// ParseID splits a station pin id. The line is the first dash-separated
// segment and the index the last; everything between is the station name, so
// names such as "Shin-Osaka" survive.
func ParseID(pinID string) (ID, error) {
	if !IsStationID(pinID) {
		return ID{}, fmt.Errorf("%w: %q lacks the %q prefix", ErrInvalidStationID, pinID, PinPrefix)
	}
	parts := strings.Split(strings.TrimPrefix(pinID, PinPrefix), "-")
	if len(parts) < 3 {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidStationID, pinID)
	}
	line := parts[0]
	station := strings.Join(parts[1:len(parts)-1], "-")
	index, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || index < 0 || strings.TrimSpace(line) == "" || strings.TrimSpace(station) == "" {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidStationID, pinID)
	}
	return ID{Line: line, Station: station, Index: index}, nil
}

// Lookup finds the position of a stop in the static line data.
func Lookup(id ID) (poi.Position, bool) {
	for _, l := range lines {
		if l.Name != id.Line {
			continue
		}
		if id.Index < len(l.Stations) && l.Stations[id.Index].Name == id.Station {
			return l.Stations[id.Index].Position, true
		}
	}
	return poi.Position{}, false
}

// Pin builds the place record for a temporary station pin.
func Pin(id ID, pos poi.Position) poi.PointOfInterest {
	return poi.PointOfInterest{
		ID:       id.PinID(),
		Name:     fmt.Sprintf("%s Station (%s Line)", id.Station, id.Line),
		Address:  fmt.Sprintf("Train Station on %s Line", id.Line),
		Position: &poi.Position{Lat: pos.Lat, Lng: pos.Lng},
		PlaceID:  id.PinID(),
		Types:    []string{"transit_station", "train_station"},
	}
}
