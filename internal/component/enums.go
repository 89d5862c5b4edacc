package component

import "fmt"

// Slot is an equipment slot. A loadout holds at most one item per slot.
type Slot int

const (
	SlotWeapon Slot = iota
	SlotArmor
	SlotAccessory
	SlotTrinket

	SlotMax = 4
)

var slotNames = [SlotMax]string{"weapon", "armor", "accessory", "trinket"}

// AllSlots lists the four slots in canonical order.
var AllSlots = [SlotMax]Slot{SlotWeapon, SlotArmor, SlotAccessory, SlotTrinket}

func (s Slot) String() string {
	if s < 0 || int(s) >= SlotMax {
		return fmt.Sprintf("slot#%d", int(s))
	}
	return slotNames[s]
}

func ParseSlot(name string) (Slot, error) {
	for i, n := range slotNames {
		if n == name {
			return Slot(i), nil
		}
	}
	return 0, fmt.Errorf("unknown slot %q", name)
}

// Rarity orders item quality from Common to Legendary.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary

	RarityMax = 5
)

var rarityNames = [RarityMax]string{"common", "uncommon", "rare", "epic", "legendary"}

func (r Rarity) String() string {
	if r < 0 || int(r) >= RarityMax {
		return fmt.Sprintf("rarity#%d", int(r))
	}
	return rarityNames[r]
}

func ParseRarity(name string) (Rarity, error) {
	for i, n := range rarityNames {
		if n == name {
			return Rarity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rarity %q", name)
}

func (r *Rarity) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseRarity(name)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MaterialKind is a forge resource category.
type MaterialKind int

const (
	MaterialEssence MaterialKind = iota
	MaterialOre
	MaterialFragment

	MaterialMax = 3
)

var materialNames = [MaterialMax]string{"essence", "ore", "fragment"}

func (m MaterialKind) String() string {
	if m < 0 || int(m) >= MaterialMax {
		return fmt.Sprintf("material#%d", int(m))
	}
	return materialNames[m]
}

// CounterKind identifies an externally reported progress counter. Daily
// quests and achievements both track these.
type CounterKind int

const (
	CounterTasksCompleted CounterKind = iota
	CounterMoodsLogged
	CounterItemsForged
	CounterQuestsClaimed
	CounterLevelsGained
	CounterGoldEarned
	CounterRebirths

	CounterMax = 7
)

var counterNames = [CounterMax]string{
	"tasks_completed", "moods_logged", "items_forged",
	"quests_claimed", "levels_gained", "gold_earned", "rebirths",
}

func (c CounterKind) String() string {
	if c < 0 || int(c) >= CounterMax {
		return fmt.Sprintf("counter#%d", int(c))
	}
	return counterNames[c]
}

func ParseCounterKind(name string) (CounterKind, error) {
	for i, n := range counterNames {
		if n == name {
			return CounterKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown counter %q", name)
}

func (c *CounterKind) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseCounterKind(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
