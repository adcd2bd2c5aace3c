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

package poi

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Price is the optional cost information attached to a place. Numeric fields are
// pointers so that "unknown" and "free" stay distinguishable when merging.
type Price struct {
	Level          *int        `json:"level,omitempty"`
	Value          *float64    `json:"value,omitempty"`
	Currency       string      `json:"currency,omitempty"`
	Range          *PriceRange `json:"range,omitempty"`
	Description    string      `json:"description,omitempty"`
	FormattedPrice string      `json:"formattedPrice,omitempty"`
	TicketInfo     string      `json:"ticketInfo,omitempty"`
	EntranceFee    *float64    `json:"entranceFee,omitempty"`
	Source         string      `json:"source,omitempty"`
}

type PopularTime struct {
	Day  string `json:"day"`
	Busy []int  `json:"busy"`
}

type AdditionalInfo struct {
	Accessibility     string        `json:"accessibility,omitempty"`
	BestTimeToVisit   string        `json:"bestTimeToVisit,omitempty"`
	EstimatedDuration string        `json:"estimatedDuration,omitempty"`
	PopularTimes      []PopularTime `json:"popularTimes,omitempty"`
}

type PointOfInterest struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	Position       *Position       `json:"position,omitempty"`
	PlaceID        string          `json:"placeId"`
	Types          []string        `json:"types"`
	Price          *Price          `json:"price,omitempty"`
	Rating         *float64        `json:"rating,omitempty"`
	OpeningHours   []string        `json:"openingHours,omitempty"`
	Photos         []string        `json:"photos,omitempty"`
	Website        string          `json:"website,omitempty"`
	PhoneNumber    string          `json:"phoneNumber,omitempty"`
	AdditionalInfo *AdditionalInfo `json:"additionalInfo,omitempty"`
}

// Valid reports whether p carries the fields every consumer relies on: a name,
// a position and a place id. Anything else is dropped before it reaches a store.
func (p *PointOfInterest) Valid() bool {
	return p != nil && p.Name != "" && p.Position != nil && p.PlaceID != ""
}

// Empty reports whether a details lookup came back with nothing in it.
func (p *PointOfInterest) Empty() bool {
	return p == nil || (p.Name == "" && p.PlaceID == "" && p.Position == nil && len(p.Types) == 0)
}

// Clone returns a deep copy, so that a snapshot held by one store can never be
// changed through another.
func (p PointOfInterest) Clone() PointOfInterest {
	out := p
	if p.Position != nil {
		pos := *p.Position
		out.Position = &pos
	}
	out.Types = cloneStrings(p.Types)
	out.OpeningHours = cloneStrings(p.OpeningHours)
	out.Photos = cloneStrings(p.Photos)
	if p.Price != nil {
		price := p.Price.Clone()
		out.Price = &price
	}
	if p.Rating != nil {
		r := *p.Rating
		out.Rating = &r
	}
	if p.AdditionalInfo != nil {
		info := *p.AdditionalInfo
		if p.AdditionalInfo.PopularTimes != nil {
			info.PopularTimes = make([]PopularTime, len(p.AdditionalInfo.PopularTimes))
			for i, pt := range p.AdditionalInfo.PopularTimes {
				info.PopularTimes[i] = PopularTime{Day: pt.Day, Busy: append([]int(nil), pt.Busy...)}
			}
		}
		out.AdditionalInfo = &info
	}
	return out
}

func (p Price) Clone() Price {
	out := p
	out.Level = cloneInt(p.Level)
	out.Value = cloneFloat(p.Value)
	out.EntranceFee = cloneFloat(p.EntranceFee)
	if p.Range != nil {
		out.Range = &PriceRange{Min: cloneFloat(p.Range.Min), Max: cloneFloat(p.Range.Max)}
	}
	return out
}

// Float returns a pointer to f, for filling in optional numeric fields.
func Float(f float64) *float64 {
	return &f
}

func Int(i int) *int {
	return &i
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
