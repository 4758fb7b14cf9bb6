// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package channel provides the notification channel used by chain components
// to publish out-of-band events. A channel is either connected, in which case
// messages are fanned out to all current subscribers, or disconnected, in
// which case every message is silently dropped.
package channel

import (
	"github.com/ethereum/go-ethereum/event"
)

// ErrDisconnected is returned when subscribing to a disconnected channel.
const ErrDisconnected = constError("channel is disconnected")

type constError string

func (e constError) Error() string {
	return string(e)
}

// Channel delivers messages of type T to its subscribers. The zero value and
// a nil *Channel behave like a disconnected channel.
type Channel[T any] struct {
	feed *event.FeedOf[T]
}

// New creates a connected channel without subscribers.
func New[T any]() *Channel[T] {
	return &Channel[T]{feed: new(event.FeedOf[T])}
}

// Disconnected creates a channel without a receiving end. Sending on it never
// blocks and never delivers anything.
func Disconnected[T any]() *Channel[T] {
	return &Channel[T]{}
}

// IsConnected reports whether messages sent on this channel may reach a
// subscriber.
func (c *Channel[T]) IsConnected() bool {
	return c != nil && c.feed != nil
}

// Send delivers msg to all subscribers and returns the number of subscribers
// it was delivered to. On a disconnected channel the message is dropped and
// zero is returned.
func (c *Channel[T]) Send(msg T) int {
	if !c.IsConnected() {
		return 0
	}
	return c.feed.Send(msg)
}

// Subscribe registers sink as a receiver of future messages. Delivery blocks
// until sink accepts the message, so sinks should be buffered or drained.
func (c *Channel[T]) Subscribe(sink chan<- T) (event.Subscription, error) {
	if !c.IsConnected() {
		return nil, ErrDisconnected
	}
	return c.feed.Subscribe(sink), nil
}
