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

package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

func TestQueueBacklog(t *testing.T) {
	q := NewQueue(2)
	q.Info("one")
	q.Success("two")
	q.Error("three")
	events := q.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, "two", events[0].Message)
	assert.Equal(t, Error, events[1].Level)
	assert.Empty(t, q.Drain())
}

func TestQueueSubscriberGetsEventsLive(t *testing.T) {
	q := NewQueue(5)
	ch, stop := q.Subscribe()
	q.Success("Location added to your trip")
	e := <-ch
	assert.Equal(t, "Location added to your trip", e.Message)
	assert.Empty(t, q.Drain())

	stop()
	stop()
	q.Info("later")
	assert.Len(t, q.Drain(), 1)
}

func TestQueueNext(t *testing.T) {
	q := NewQueue(5)
	q.Info("queued")
	e, err := q.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "queued", e.Message)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = q.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStream(t *testing.T) {
	q := NewQueue(5)
	q.Error("This location is already saved")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		_ = Stream(r.Context(), conn, q)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	var e Event
	require.NoError(t, wsjson.Read(ctx, conn, &e))
	assert.Equal(t, "This location is already saved", e.Message)
	assert.Equal(t, Error, e.Level)

	q.Success("Trip created")
	require.NoError(t, wsjson.Read(ctx, conn, &e))
	assert.Equal(t, "Trip created", e.Message)
}
