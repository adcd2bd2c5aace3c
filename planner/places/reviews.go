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
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/tabi-planner/japan-planner/planner/poi"
)

var (
	sentenceBreak = regexp.MustCompile(`[.!?。]+`)
	yenAmount     = regexp.MustCompile(`(?i)(\d{3,})\s*(?:yen|円|¥)`)
	entranceFee   = regexp.MustCompile(`(?i)(?:entrance|admission|entry)\s+fee\s*(?:is|was|:)?\s*(\d{3,})\s*(?:yen|円|¥)`)
	roomPrice     = regexp.MustCompile(`(?i)(?:room|night|per night|nightly).*?(\d{3,})\s*(?:yen|円|¥)`)
	mealPrice     = regexp.MustCompile(`(?i)(?:meal|dish|course|menu|set|lunch|dinner).*?(\d{3,})\s*(?:yen|円|¥)`)
	visitDuration = regexp.MustCompile(`(?i)(?:spent|took|requires|need|needs|recommended)\s+(?:about|around)?\s*(\d+)[- ]*(hour|hr|minute|min|day)`)

	priceKeywords         = []string{"price", "cost", "fee", "ticket", "admission", "entrance", "expensive", "cheap", "円", "¥", "yen"}
	ticketKeywords        = []string{"ticket", "admission", "entrance fee", "entry fee"}
	accessibilityKeywords = []string{"accessibility", "wheelchair", "accessible", "disability"}

	priceLevelLabels = []string{"Free", "Inexpensive", "Moderate", "Expensive", "Very Expensive"}
)

// PriceLevelLabel names a Google price level, or returns "" for anything out of
// range.
func PriceLevelLabel(level *int) string {
	if level == nil || *level < 0 || *level >= len(priceLevelLabels) {
		return ""
	}
	return priceLevelLabels[*level]
}

// firstSentence returns the first sentence of any review that mentions one of
// the keywords.
func firstSentence(reviews []string, keywords []string) string {
	for _, review := range reviews {
		for _, sentence := range sentenceBreak.Split(review, -1) {
			lower := strings.ToLower(sentence)
			if slices.ContainsFunc(keywords, func(k string) bool { return strings.Contains(lower, k) }) {
				return strings.TrimSpace(sentence)
			}
		}
	}
	return ""
}

// amounts collects every yen amount mentioned in the reviews within (lo, hi).
func amounts(reviews []string, lo, hi int) []float64 {
	var out []float64
	for _, review := range reviews {
		for _, m := range yenAmount.FindAllStringSubmatch(review, -1) {
			if v, ok := bounded(m[1], lo, hi); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

// firstAmounts takes at most one amount per review: the first match of re.
func firstAmounts(reviews []string, re *regexp.Regexp, lo, hi int) []float64 {
	var out []float64
	for _, review := range reviews {
		m := re.FindStringSubmatch(review)
		if m == nil {
			continue
		}
		if v, ok := bounded(m[1], lo, hi); ok {
			out = append(out, v)
		}
	}
	return out
}

func bounded(digits string, lo, hi int) (float64, bool) {
	v, err := strconv.Atoi(digits)
	if err != nil || v <= lo || v >= hi {
		return 0, false
	}
	return float64(v), true
}

// applyAmounts sets the rounded mean of values on price, and a range when there
// is more than one.
func applyAmounts(price *poi.Price, values []float64) {
	if len(values) == 0 {
		return
	}
	sum, lo, hi := 0.0, values[0], values[0]
	for _, v := range values {
		sum += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	price.Value = poi.Float(math.Round(sum / float64(len(values))))
	if len(values) > 1 {
		price.Range = &poi.PriceRange{Min: poi.Float(lo), Max: poi.Float(hi)}
	}
}

// minePrice builds the price record of a place from its price level and what
// its reviews say about cost.
func minePrice(level *int, types []string, reviews []string) *poi.Price {
	price := &poi.Price{
		Level:          level,
		Currency:       "JPY",
		FormattedPrice: PriceLevelLabel(level),
		Source:         "Google Places",
	}
	if len(reviews) == 0 {
		return price
	}
	price.Description = firstSentence(reviews, priceKeywords)
	applyAmounts(price, amounts(reviews, 0, 100000))

	switch poi.Classify(types) {
	case poi.Activities:
		price.TicketInfo = firstSentence(reviews, ticketKeywords)
		if fees := firstAmounts(reviews, entranceFee, 0, 10000); len(fees) > 0 {
			price.EntranceFee = poi.Float(fees[0])
		}
	case poi.Accommodation:
		applyAmounts(price, firstAmounts(reviews, roomPrice, 1000, 100000))
	case poi.Food:
		applyAmounts(price, firstAmounts(reviews, mealPrice, 100, 50000))
	}
	return price
}

// mineInfo pulls accessibility notes and a typical visit length out of reviews.
func mineInfo(reviews []string) *poi.AdditionalInfo {
	info := &poi.AdditionalInfo{
		Accessibility: firstSentence(reviews, accessibilityKeywords),
	}
	for _, review := range reviews {
		m := visitDuration.FindStringSubmatch(review)
		if m == nil {
			continue
		}
		unit := m[2]
		if m[1] != "1" {
			unit += "s"
		}
		info.EstimatedDuration = fmt.Sprintf("%s %s", m[1], unit)
		break
	}
	if info.Accessibility == "" && info.EstimatedDuration == "" {
		return nil
	}
	return info
}
