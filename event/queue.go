//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Queue carries intents from any number of producers to the
// single dispatcher.
//

package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultQueueSize is used when NewQueue is given a non-positive size.
const DefaultQueueSize = 64

// Envelope is a queued intent with an id for log correlation.
type Envelope struct {
	ID       uuid.UUID
	Intent   Intent
	QueuedAt time.Time
}

// Queue is an ordered, buffered intent channel. Delivery order is arrival
// order and nothing is ever re-queued.
type Queue struct {
	ch chan Envelope
}

// NewQueue returns a queue holding up to size pending intents.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Envelope, size)}
}

// Push enqueues intent, waiting for room when the queue is full.
func (q *Queue) Push(ctx context.Context, intent Intent) (uuid.UUID, error) {
	env := Envelope{ID: uuid.New(), Intent: intent, QueuedAt: time.Now()}
	select {
	case q.ch <- env:
		return env.ID, nil
	case <-ctx.Done():
		return uuid.Nil, ctx.Err()
	}
}

// TryPop returns the oldest pending intent without blocking.
func (q *Queue) TryPop() (Envelope, bool) {
	select {
	case env := <-q.ch:
		return env, true
	default:
		return Envelope{}, false
	}
}

// C exposes the receive side for select loops.
func (q *Queue) C() <-chan Envelope {
	return q.ch
}

// Len returns the number of pending intents.
func (q *Queue) Len() int {
	return len(q.ch)
}
