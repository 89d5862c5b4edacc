package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitReachesAllSubscribersInOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	Subscribe(bus, func(ev LevelGained) { order = append(order, 1) })
	Subscribe(bus, func(ev LevelGained) { order = append(order, 2) })

	Emit(bus, LevelGained{CharID: 7, NewLevel: 3})
	assert.Equal(t, []int{1, 2}, order)
}

func TestEmitIsTypeScoped(t *testing.T) {
	bus := NewBus()
	levels := 0
	forges := 0
	Subscribe(bus, func(ev LevelGained) { levels++ })
	Subscribe(bus, func(ev ItemForged) { forges++ })

	Emit(bus, LevelGained{})
	Emit(bus, LevelGained{})
	Emit(bus, ItemForged{})

	assert.Equal(t, 2, levels)
	assert.Equal(t, 1, forges)
}

func TestEmitOnNilBusIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		Emit(nil, QuestClaimed{CharID: 1})
	})
}

func TestEmitWithoutSubscribersIsSafe(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() {
		Emit(bus, RebirthPerformed{CharID: 1})
	})
}
