package event

import "reflect"

// Bus is a typed publish/subscribe bus with immediate dispatch. The engine
// is invoked synchronously per character, so events are delivered inline
// during the emitting operation; there is no tick buffering.
type Bus struct {
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[reflect.Type][]any)}
}

// Emit delivers an event to every subscribed handler, in subscription order.
func Emit[T any](b *Bus, ev T) {
	if b == nil {
		return
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	for _, h := range b.handlers[t] {
		h.(func(T))(ev)
	}
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}
