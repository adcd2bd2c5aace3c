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

// Package notify queues the short messages shown to a session ("Location added
// to your trip", "This location is already saved") and streams them to the
// browser.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Error   Level = "error"
)

type Event struct {
	ID      string    `json:"id"`
	Level   Level     `json:"type"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

const defaultBacklog = 20

// Queue holds the events nobody has seen yet, up to a fixed backlog, and hands
// new ones to live subscribers. Oldest events are dropped first.
type Queue struct {
	mu      sync.Mutex
	backlog int
	pending []Event
	subs    map[chan Event]struct{}
}

func NewQueue(backlog int) *Queue {
	if backlog <= 0 {
		backlog = defaultBacklog
	}
	return &Queue{backlog: backlog, subs: map[chan Event]struct{}{}}
}

// Push records an event. With a subscriber listening the event is delivered
// straight away; otherwise it waits in the backlog.
func (q *Queue) Push(level Level, message string) Event {
	e := Event{ID: uuid.NewString(), Level: level, Message: message, Time: time.Now()}
	q.mu.Lock()
	defer q.mu.Unlock()
	delivered := false
	for ch := range q.subs {
		select {
		case ch <- e:
			delivered = true
		default:
		}
	}
	if !delivered {
		q.pending = append(q.pending, e)
		if over := len(q.pending) - q.backlog; over > 0 {
			q.pending = append(q.pending[:0:0], q.pending[over:]...)
		}
	}
	return e
}

func (q *Queue) Info(message string) Event {
	return q.Push(Info, message)
}

func (q *Queue) Success(message string) Event {
	return q.Push(Success, message)
}

func (q *Queue) Error(message string) Event {
	return q.Push(Error, message)
}

// Drain returns and forgets the backlog.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Subscribe returns a channel of new events and a function to stop listening.
func (q *Queue) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, q.backlog)
	q.mu.Lock()
	q.subs[ch] = struct{}{}
	q.mu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			q.mu.Lock()
			delete(q.subs, ch)
			q.mu.Unlock()
		})
	}
}

// Next waits for the next event: the oldest pending one if there is any.
func (q *Queue) Next(ctx context.Context) (Event, error) {
	q.mu.Lock()
	if len(q.pending) > 0 {
		e := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()
		return e, nil
	}
	q.mu.Unlock()
	ch, stop := q.Subscribe()
	defer stop()
	select {
	case e := <-ch:
		return e, nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}
