package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered signal bus. Signals emitted during a tick are
// collected in the back buffer and delivered together when the dispatch
// system swaps and drains at the output phase. Signals emitted from inside
// a handler land in the fresh back buffer and go out next tick, so
// dispatch cannot recurse.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues a signal into the back buffer.
func Emit[T any](b *Bus, sig T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.back[t] = append(b.back[t], sig)
}

// Subscribe registers a typed handler for signals of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// SwapBuffers rotates back→front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// DispatchAll delivers all front-buffer signals to their subscribed handlers.
func (b *Bus) DispatchAll() {
	for t, sigs := range b.front {
		handlers := b.handlers[t]
		for _, sig := range sigs {
			for _, h := range handlers {
				// Type-assert the handler and call it.
				// This is safe because Subscribe and Emit use the same type key.
				callHandler(h, sig)
			}
		}
	}
}

func callHandler(handler any, sig any) {
	reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(sig)})
}
