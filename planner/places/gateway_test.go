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
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabi-planner/japan-planner/planner/poi"
)

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)

type fakeBackend struct {
	mu       sync.Mutex
	pages    map[string]*SearchPage
	details  map[string]*poi.PointOfInterest
	err      error
	gates    map[string]chan struct{}
	requests []SearchRequest
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		pages:   map[string]*SearchPage{},
		details: map[string]*poi.PointOfInterest{},
		gates:   map[string]chan struct{}{},
	}
}

func (f *fakeBackend) Search(ctx context.Context, req SearchRequest) (*SearchPage, error) {
	key := req.Query
	if req.PageToken != "" {
		key = req.PageToken
	}
	f.mu.Lock()
	f.requests = append(f.requests, req)
	gate := f.gates[key]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	page, ok := f.pages[key]
	if !ok {
		return &SearchPage{}, nil
	}
	return page, nil
}

func (f *fakeBackend) Details(ctx context.Context, placeID string) (*poi.PointOfInterest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return clonePlace(f.details[placeID]), nil
}

func (f *fakeBackend) Photo(ctx context.Context, ref string, maxWidth uint) (*Photo, error) {
	return &Photo{ContentType: "image/jpeg", Data: io.NopCloser(strings.NewReader("jpeg"))}, nil
}

type fakePrices struct {
	estimate *PriceEstimate
	err      error
	calls    []string
}

func (f *fakePrices) Prices(ctx context.Context, placeID, name, placeType string) (*PriceEstimate, error) {
	f.calls = append(f.calls, placeID+"|"+name+"|"+placeType)
	return f.estimate, f.err
}

func place(id, name string) poi.PointOfInterest {
	return poi.PointOfInterest{
		ID:       id,
		Name:     name,
		PlaceID:  id,
		Position: &poi.Position{Lat: 35.0, Lng: 135.7},
		Types:    []string{"tourist_attraction"},
	}
}

func TestSearchDropsMalformedPlaces(t *testing.T) {
	backend := newFakeBackend()
	noPosition := place("p2", "No position")
	noPosition.Position = nil
	backend.pages["temples"] = &SearchPage{
		Places: []poi.PointOfInterest{
			place("p1", "Kinkaku-ji"),
			noPosition,
			place("", "No id"),
			place("p4", ""),
		},
		NextPageToken: "t1",
	}
	g := NewGateway(backend, nil)

	res, err := g.Search(context.Background(), "temples", nil)
	require.NoError(t, err)
	require.Len(t, res.Places, 1)
	assert.Equal(t, "p1", res.Places[0].PlaceID)
	assert.True(t, res.HasMoreResults)
	assert.False(t, res.IsLoading)
	assert.Equal(t, "temples", backend.requests[0].Query)
}

func TestEmptySearchIsIgnored(t *testing.T) {
	backend := newFakeBackend()
	g := NewGateway(backend, nil)
	res, err := g.Search(context.Background(), "   ", nil)
	require.NoError(t, err)
	assert.Empty(t, res.Places)
	assert.Empty(t, backend.requests)
}

func TestFetchNextPageAppends(t *testing.T) {
	backend := newFakeBackend()
	backend.pages["ramen"] = &SearchPage{Places: []poi.PointOfInterest{place("a", "A")}, NextPageToken: "t1"}
	backend.pages["t1"] = &SearchPage{Places: []poi.PointOfInterest{place("b", "B"), place("", "bad")}}
	g := NewGateway(backend, nil)
	ctx := context.Background()

	_, err := g.Search(ctx, "ramen", nil)
	require.NoError(t, err)
	res, err := g.FetchNextPage(ctx)
	require.NoError(t, err)
	require.Len(t, res.Places, 2)
	assert.Equal(t, "b", res.Places[1].PlaceID)
	assert.False(t, res.HasMoreResults)

	// No token left: nothing is fetched.
	before := len(backend.requests)
	res, err = g.FetchNextPage(ctx)
	require.NoError(t, err)
	assert.Len(t, res.Places, 2)
	assert.Len(t, backend.requests, before)
}

func TestFetchNextPageWhileLoadingIsNoop(t *testing.T) {
	backend := newFakeBackend()
	backend.pages["sushi"] = &SearchPage{Places: []poi.PointOfInterest{place("a", "A")}, NextPageToken: "t1"}
	backend.pages["t1"] = &SearchPage{Places: []poi.PointOfInterest{place("b", "B")}}
	gate := make(chan struct{})
	backend.gates["t1"] = gate
	g := NewGateway(backend, nil)
	ctx := context.Background()
	_, err := g.Search(ctx, "sushi", nil)
	require.NoError(t, err)

	done := make(chan Results)
	go func() {
		res, _ := g.FetchNextPage(ctx)
		done <- res
	}()
	require.Eventually(t, func() bool { return g.Results().IsLoading }, timeout, tick)

	res, err := g.FetchNextPage(ctx)
	require.NoError(t, err)
	assert.Len(t, res.Places, 1)

	close(gate)
	res = <-done
	assert.Len(t, res.Places, 2)
}

func TestLatestSearchWins(t *testing.T) {
	backend := newFakeBackend()
	backend.pages["slow"] = &SearchPage{Places: []poi.PointOfInterest{place("old", "Old")}}
	backend.pages["fast"] = &SearchPage{Places: []poi.PointOfInterest{place("new", "New")}}
	gate := make(chan struct{})
	backend.gates["slow"] = gate
	g := NewGateway(backend, nil)
	ctx := context.Background()

	errs := make(chan error)
	go func() {
		_, err := g.Search(ctx, "slow", nil)
		errs <- err
	}()
	require.Eventually(t, func() bool { return g.Results().Term == "slow" }, timeout, tick)

	res, err := g.Search(ctx, "fast", nil)
	require.NoError(t, err)
	require.Len(t, res.Places, 1)

	close(gate)
	assert.ErrorIs(t, <-errs, ErrSuperseded)
	res = g.Results()
	require.Len(t, res.Places, 1)
	assert.Equal(t, "new", res.Places[0].PlaceID)
	assert.Equal(t, "fast", res.Term)
}

func TestSearchFailureSetsError(t *testing.T) {
	backend := newFakeBackend()
	backend.err = errors.New("boom")
	g := NewGateway(backend, nil)
	res, err := g.Search(context.Background(), "anything", nil)
	assert.Error(t, err)
	assert.Equal(t, searchFailed, res.Error)
	assert.False(t, res.IsLoading)
}

func TestClearSearch(t *testing.T) {
	backend := newFakeBackend()
	backend.pages["x"] = &SearchPage{Places: []poi.PointOfInterest{place("a", "A")}, NextPageToken: "t"}
	g := NewGateway(backend, nil)
	_, err := g.Search(context.Background(), "x", nil)
	require.NoError(t, err)
	g.ClearSearch()
	res := g.Results()
	assert.Empty(t, res.Places)
	assert.False(t, res.HasMoreResults)
	assert.Empty(t, res.Term)
}

func TestGetDetailsEmptyIsNil(t *testing.T) {
	backend := newFakeBackend()
	prices := &fakePrices{}
	g := NewGateway(backend, prices)
	got, err := g.GetDetails(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, prices.calls)
}

func TestGetDetailsMergesPrice(t *testing.T) {
	backend := newFakeBackend()
	p := place("p1", "Tokyo Tower")
	p.Types = []string{"point_of_interest", "museum", "tourist_attraction"}
	p.Price = &poi.Price{Level: poi.Int(2), Value: poi.Float(1200), Currency: "JPY", Description: "from reviews"}
	backend.details["p1"] = &p
	prices := &fakePrices{estimate: &PriceEstimate{
		EntranceFee: poi.Float(1500),
		PriceRange:  between(1000, 2000),
		Source:      "Estimated",
	}}
	g := NewGateway(backend, prices)

	got, err := g.GetDetails(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"p1|Tokyo Tower|tourist_attraction"}, prices.calls)
	require.NotNil(t, got.Price)
	assert.Equal(t, 1500.0, *got.Price.EntranceFee)
	assert.Equal(t, 1200.0, *got.Price.Value)
	assert.Equal(t, 2, *got.Price.Level)
	assert.Equal(t, "from reviews", got.Price.Description)
	assert.Equal(t, "Estimated", got.Price.Source)
	assert.Equal(t, 2000.0, *got.Price.Range.Max)
}

func TestGetDetailsSurvivesPriceFailure(t *testing.T) {
	backend := newFakeBackend()
	p := place("p1", "Somewhere")
	p.Price = &poi.Price{Value: poi.Float(900)}
	backend.details["p1"] = &p
	g := NewGateway(backend, &fakePrices{err: errors.New("down")})

	got, err := g.GetDetails(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 900.0, *got.Price.Value)
	assert.Nil(t, got.Price.EntranceFee)
}
