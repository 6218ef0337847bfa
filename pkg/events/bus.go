// Package events is a typed in-process publish/subscribe bus. Publishers and
// subscribers share an injected Bus instance; there is no ambient channel.
package events

import (
	"sync"

	"github.com/mealbasket/gateway/pkg/models"
)

type Type string

const (
	ProductAdded   Type = "PRODUCT_ADDED"
	ProductUpdated Type = "PRODUCT_UPDATED"
	ProductDeleted Type = "PRODUCT_DELETED"
	UserDeleted    Type = "USER_DELETED"
)

type Event struct {
	Type      Type
	VendorID  string
	ProductID string
	Product   *models.Product
}

type Handler func(Event)

type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[int]Handler
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]Handler)}
}

// Subscribe registers a handler and returns its unsubscribe function.
// Handlers run synchronously on the publisher's goroutine and should be
// quick.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}
