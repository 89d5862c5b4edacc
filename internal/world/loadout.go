package world

import (
	"github.com/questling/server/internal/component"
	"github.com/questling/server/internal/core/ident"
)

// Loadout maps each equipment slot to the worn item's ID (zero = empty).
// Invariant, maintained by the equip system: loadout[slot] == item.ID exactly
// when item.Equipped is true.
type Loadout struct {
	Slots [component.SlotMax]ident.ID
}

// Get returns the item ID worn in a slot, or zero.
func (l *Loadout) Get(slot component.Slot) ident.ID {
	if slot < 0 || int(slot) >= component.SlotMax {
		return 0
	}
	return l.Slots[slot]
}

// Set places an item ID in a slot (or zero to clear).
func (l *Loadout) Set(slot component.Slot, id ident.ID) {
	if slot >= 0 && int(slot) < component.SlotMax {
		l.Slots[slot] = id
	}
}

// SlotOf returns the slot an item ID occupies, or false.
func (l *Loadout) SlotOf(id ident.ID) (component.Slot, bool) {
	if id.IsZero() {
		return 0, false
	}
	for _, slot := range component.AllSlots {
		if l.Slots[slot] == id {
			return slot, true
		}
	}
	return 0, false
}
