package engine

import (
	"fmt"

	"github.com/questling/server/internal/component"
	"github.com/questling/server/internal/core/ident"
	"github.com/questling/server/internal/world"
	"go.uber.org/zap"
)

// EquipSystem maintains the loadout/item invariant: item.Equipped holds
// exactly when the owner's loadout carries that item in its slot, and each
// slot carries at most one item.
type EquipSystem struct {
	deps *Deps
}

func NewEquipSystem(deps *Deps) *EquipSystem {
	return &EquipSystem{deps: deps}
}

// Equip wears an owned item. Fails (no mutation) when the character's level
// is below the item's requirement. Whatever occupies the slot is unequipped
// first. An ID the inventory does not own is an invariant violation.
func (s *EquipSystem) Equip(sess *world.Session, id ident.ID) (bool, error) {
	item := sess.Inv.Get(id)
	if item == nil {
		return false, fmt.Errorf("equip: item %d not owned by character %d: %w", id, sess.Char.ID, ErrInvariant)
	}
	if item.Equipped {
		return false, nil
	}
	if sess.Char.Level < item.LevelReq {
		return false, nil
	}

	if cur := sess.Loadout.Get(item.Slot); !cur.IsZero() {
		if ok, err := s.Unequip(sess, cur); err != nil {
			return false, err
		} else if !ok {
			return false, fmt.Errorf("equip: slot %s occupied by unremovable item %d: %w",
				item.Slot, cur, ErrInvariant)
		}
	}

	item.Equipped = true
	sess.Loadout.Set(item.Slot, item.ID)
	sess.Char.Dirty = true

	s.deps.Log.Debug("item equipped",
		zap.Int64("char", sess.Char.ID),
		zap.String("slot", item.Slot.String()),
		zap.String("rarity", item.Rarity.String()),
	)
	return true, nil
}

// Unequip removes a worn item. Succeeds only if this character currently has
// it equipped.
func (s *EquipSystem) Unequip(sess *world.Session, id ident.ID) (bool, error) {
	item := sess.Inv.Get(id)
	if item == nil || !item.Equipped {
		return false, nil
	}
	if sess.Loadout.Get(item.Slot) != id {
		return false, fmt.Errorf("unequip: item %d flagged equipped but absent from loadout slot %s: %w",
			id, item.Slot, ErrInvariant)
	}

	item.Equipped = false
	sess.Loadout.Set(item.Slot, 0)
	sess.Char.Dirty = true
	return true, nil
}

// VerifyLoadout checks the full loadout/item invariant for a session. Used
// after loading a snapshot; a failure means the snapshot is corrupt.
func (s *EquipSystem) VerifyLoadout(sess *world.Session) error {
	seen := make(map[ident.ID]component.Slot, component.SlotMax)
	for _, slot := range component.AllSlots {
		id := sess.Loadout.Get(slot)
		if id.IsZero() {
			continue
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("loadout: item %d in slots %s and %s: %w", id, prev, slot, ErrInvariant)
		}
		seen[id] = slot
		item := sess.Inv.Get(id)
		if item == nil {
			return fmt.Errorf("loadout: slot %s references unowned item %d: %w", slot, id, ErrInvariant)
		}
		if !item.Equipped {
			return fmt.Errorf("loadout: slot %s item %d not flagged equipped: %w", slot, id, ErrInvariant)
		}
		if item.Slot != slot {
			return fmt.Errorf("loadout: %s item %d declares slot %s: %w", slot, id, item.Slot, ErrInvariant)
		}
	}
	for id, item := range sess.Inv.Items {
		if item.Equipped {
			if _, ok := seen[id]; !ok {
				return fmt.Errorf("inventory: item %d flagged equipped but not in loadout: %w", id, ErrInvariant)
			}
		}
	}
	return nil
}
