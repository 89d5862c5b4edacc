package component

import "github.com/questling/server/internal/core/ident"

// EquipmentItem is one forged piece of gear. Created by the forge system,
// destroyed only by salvage. Equipped is maintained exclusively by the equip
// system, in lockstep with the owner's loadout.
type EquipmentItem struct {
	ID      ident.ID
	OwnerID int64

	Slot   Slot
	Rarity Rarity
	Tier   int // forge tier that produced it

	PrimaryStat  Stat
	PrimaryBonus int

	HasSecondary   bool
	SecondaryStat  Stat
	SecondaryBonus int

	LevelReq int
	Equipped bool
}

// BonusFor returns the item's contribution to the given stat. An item
// contributes to at most two stats.
func (it *EquipmentItem) BonusFor(s Stat) int {
	total := 0
	if it.PrimaryStat == s {
		total += it.PrimaryBonus
	}
	if it.HasSecondary && it.SecondaryStat == s {
		total += it.SecondaryBonus
	}
	return total
}
