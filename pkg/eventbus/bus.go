// Package eventbus delivers typed notifications to subscribers.
//
// Handlers are invoked synchronously by Publish, in subscription order.
// Every subscription is represented by a *Subscription handle, which is
// the only way to stop receiving events.
package eventbus

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/facebookincubator/go-belt/tool/logger"
)

type Bus struct {
	mu            sync.Mutex
	subscriptions map[reflect.Type][]*Subscription
}

func New() *Bus {
	return &Bus{
		subscriptions: map[reflect.Type][]*Subscription{},
	}
}

// Subscription represents an active subscription to one event type.
type Subscription struct {
	bus       *Bus
	eventType reflect.Type
	handler   func(context.Context, any)
	canceled  atomic.Bool
}

// Cancel stops the delivery of events to the subscription. It is safe
// to call it multiple times.
func (s *Subscription) Cancel() {
	if s.canceled.CompareAndSwap(false, true) {
		s.bus.remove(s)
	}
}

func (s *Subscription) IsCanceled() bool {
	return s.canceled.Load()
}

// Subscribe registers handler for events of type E.
func Subscribe[E any](b *Bus, handler func(context.Context, E)) *Subscription {
	sub := &Subscription{
		bus:       b,
		eventType: reflect.TypeFor[E](),
		handler: func(ctx context.Context, ev any) {
			handler(ctx, ev.(E))
		},
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions[sub.eventType] = append(b.subscriptions[sub.eventType], sub)
	return sub
}

// Publish delivers ev to every active subscriber of its type.
func Publish[E any](ctx context.Context, b *Bus, ev E) {
	eventType := reflect.TypeFor[E]()

	b.mu.Lock()
	subs := make([]*Subscription, len(b.subscriptions[eventType]))
	copy(subs, b.subscriptions[eventType])
	b.mu.Unlock()

	logger.Tracef(ctx, "publishing %T to %d subscribers", ev, len(subs))
	for _, sub := range subs {
		if sub.IsCanceled() {
			continue
		}
		sub.handler(ctx, ev)
	}
}

// Subscribers returns the amount of active subscriptions to events of
// type E.
func Subscribers[E any](b *Bus) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscriptions[reflect.TypeFor[E]()])
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subscriptions[sub.eventType]
	for i, s := range subs {
		if s == sub {
			b.subscriptions[sub.eventType] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subscriptions[sub.eventType]) == 0 {
		delete(b.subscriptions, sub.eventType)
	}
}
