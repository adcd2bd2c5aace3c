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
	"errors"
	"log"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const writeTimeout = 10 * time.Second

// Stream sends the backlog and then every new event over conn until the client
// goes away or ctx ends. Messages from the client are ignored.
func Stream(ctx context.Context, conn *websocket.Conn, q *Queue) error {
	ctx = conn.CloseRead(ctx)
	events, stop := q.Subscribe()
	defer stop()
	for _, e := range q.Drain() {
		if err := write(ctx, conn, e); err != nil {
			return err
		}
	}
	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "")
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case e := <-events:
			if err := write(ctx, conn, e); err != nil {
				return err
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, e Event) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, conn, e); err != nil {
		log.Printf("write to websocket failed: %v", err)
		return err
	}
	return nil
}
