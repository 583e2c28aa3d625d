package container

import (
	"slices"

	"go.uber.org/zap"
)

// EventKind identifies what happened to a service.
type EventKind uint8

const (
	// EventRegistered fires after Register or Instance succeeds.
	EventRegistered EventKind = iota + 1
	// EventUnregistered fires after Unregister. Instance holds the evicted
	// value when Instantiated is true.
	EventUnregistered
	// EventCreated fires the first time Get produces a service's instance.
	EventCreated
)

func (k EventKind) String() string {
	switch k {
	case EventRegistered:
		return "registered"
	case EventUnregistered:
		return "unregistered"
	case EventCreated:
		return "created"
	}
	return "unknown"
}

// Event is delivered to listeners synchronously, after the container state
// has changed.
type Event struct {
	Kind         EventKind
	Name         string
	Instance     any
	Instantiated bool
}

// Listener observes container events. It must not rely on being called for
// correctness; the container never inspects its behaviour.
type Listener func(Event)

// Subscribe adds l to the container's listeners and returns a function that
// removes it again.
//
//	cancel := c.Subscribe(func(ev container.Event) {
//	    if ev.Kind == container.EventCreated {
//	        log.Printf("built %s", ev.Name)
//	    }
//	})
//	defer cancel()
func (c *Container) Subscribe(l Listener) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextListen
	c.nextListen++
	c.listeners[id] = l
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// notify runs listeners in subscription order without holding the lock, so
// a listener may call back into the container.
func (c *Container) notify(ev Event) {
	c.mu.RLock()
	if len(c.listeners) == 0 {
		c.mu.RUnlock()
		return
	}
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	ls := make([]Listener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		ls = append(ls, c.listeners[id])
	}
	c.mu.RUnlock()

	for _, l := range ls {
		l(ev)
	}
	c.logger.Debug("event delivered",
		zap.Stringer("kind", ev.Kind),
		zap.String("service", ev.Name),
		zap.Int("listeners", len(ls)),
	)
}
