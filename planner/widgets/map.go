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

// Package widgets builds what the map view draws: pin and station markers, the
// rail overlay, and a static rendering of the same for sharing.
package widgets

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strconv"

	"github.com/honeycombio/beeline-go"
	gmaps "googlemaps.github.io/maps"

	"github.com/tabi-planner/japan-planner/planner/pins"
	"github.com/tabi-planner/japan-planner/planner/poi"
	"github.com/tabi-planner/japan-planner/planner/quota"
	"github.com/tabi-planner/japan-planner/planner/stations"
)

type Icon string

const (
	IconDefault  Icon = "default"
	IconSelected Icon = "selected"
	IconStation  Icon = "station"
)

var iconColours = map[Icon]string{
	IconDefault:  "0x555555",
	IconSelected: "red",
	IconStation:  "blue",
}

// The map opens on Tokyo when there is nothing to frame.
var defaultCenter = poi.Position{Lat: 35.6762, Lng: 139.6503}

type MapMarker struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Position poi.Position `json:"position"`
	Icon     Icon         `json:"icon"`
	Colour   string       `json:"color,omitempty"`
}

type Polyline struct {
	Line   string         `json:"line"`
	Colour string         `json:"color"`
	Path   []poi.Position `json:"path"`
}

type MapWidget struct {
	Center    poi.Position `json:"center"`
	Markers   []MapMarker  `json:"markers"`
	Polylines []Polyline   `json:"polylines"`
	// ids of the selected pins, oldest selection first
	Selected []string `json:"selected"`
}

// Build lays out the pins of a session, and the rail lines of the given regions
// when any are given. Station markers carry station pin ids, so clicking one
// goes straight to pin selection.
func Build(saved []pins.MapPin, selected []pins.MapPin, regions ...stations.Region) MapWidget {
	w := MapWidget{
		Center:    defaultCenter,
		Markers:   []MapMarker{},
		Polylines: []Polyline{},
		Selected:  []string{},
	}
	for _, p := range selected {
		w.Selected = append(w.Selected, p.ID)
	}
	onMap := map[string]bool{}
	for _, p := range saved {
		if p.Position == nil {
			continue
		}
		icon := IconDefault
		switch {
		case p.IsSelected:
			icon = IconSelected
		case p.IsStation:
			icon = IconStation
		}
		w.Markers = append(w.Markers, MapMarker{ID: p.ID, Title: p.Name, Position: *p.Position, Icon: icon})
		onMap[p.ID] = true
	}
	if len(w.Markers) > 0 {
		w.Center = centroid(w.Markers)
	}
	if len(regions) == 0 {
		return w
	}
	for _, l := range stations.Lines(regions...) {
		line := Polyline{Line: l.Name, Colour: l.Color}
		for _, s := range l.Stations {
			line.Path = append(line.Path, s.Position)
		}
		w.Polylines = append(w.Polylines, line)
	}
	for _, m := range stations.Markers(regions...) {
		id := stations.PinPrefix + m.ID
		if onMap[id] {
			continue
		}
		w.Markers = append(w.Markers, MapMarker{
			ID:       id,
			Title:    fmt.Sprintf("%s (%s)", m.Name, m.Line),
			Position: m.Position,
			Icon:     IconStation,
			Colour:   m.Color,
		})
	}
	return w
}

func centroid(markers []MapMarker) poi.Position {
	var lat, lng float64
	for _, m := range markers {
		lat += m.Position.Lat
		lng += m.Position.Lng
	}
	n := float64(len(markers))
	return poi.Position{Lat: lat / n, Lng: lng / n}
}

func latLng(p poi.Position) gmaps.LatLng {
	return gmaps.LatLng{Lat: p.Lat, Lng: p.Lng}
}

// StaticMap renders the widget's pins and lines as a PNG through the Static
// Maps API. Station markers of the overlay are left out; there are far too many
// of them for a static map URL.
func StaticMap(ctx context.Context, client *gmaps.Client, tracker *quota.Tracker, w MapWidget, width, height int) ([]byte, error) {
	ctx, span := beeline.StartSpan(ctx, "static_map")
	defer span.Send()
	if width <= 0 || width > 640 {
		width = 640
	}
	if height <= 0 || height > 640 {
		height = 400
	}
	labels := map[string]string{}
	for i, id := range w.Selected {
		labels[id] = string(rune('A' + i))
	}

	var mapMarkers []gmaps.Marker
	for _, m := range w.Markers {
		if m.Icon == IconStation && m.Colour != "" {
			continue
		}
		mapMarkers = append(mapMarkers, gmaps.Marker{
			Location: []gmaps.LatLng{latLng(m.Position)},
			Label:    labels[m.ID],
			Color:    iconColours[m.Icon],
			Size:     "mid",
		})
	}
	var paths []gmaps.Path
	for _, l := range w.Polylines {
		path := gmaps.Path{Weight: 3, Color: "0x" + trimHash(l.Colour)}
		for _, p := range l.Path {
			path.Location = append(path.Location, latLng(p))
		}
		paths = append(paths, path)
	}
	request := gmaps.StaticMapRequest{
		Size:    strconv.Itoa(width) + "x" + strconv.Itoa(height),
		Format:  "png",
		MapType: "roadmap",
		Markers: mapMarkers,
		Paths:   paths,
	}
	if len(mapMarkers) == 0 {
		request.Center = fmt.Sprintf("%f,%f", w.Center.Lat, w.Center.Lng)
		request.Zoom = 10
	}

	if err := tracker.Allow(ctx); err != nil {
		span.AddField("error", err)
		return nil, err
	}
	_ = tracker.ChargeCredits(ctx, quota.StaticMapCredits)
	img, err := client.StaticMap(ctx, &request)
	if err != nil {
		span.AddField("error", err)
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func trimHash(colour string) string {
	if len(colour) > 0 && colour[0] == '#' {
		return colour[1:]
	}
	return colour
}
