package engine

import (
	"fmt"

	"github.com/questling/server/internal/component"
	"github.com/questling/server/internal/data"
	"github.com/questling/server/internal/world"
)

// SourceAmount is one named contribution to an effective stat.
type SourceAmount struct {
	Source string
	Amount int
}

// EffectiveStats is the result of stat resolution: the usable value per stat
// plus a per-stat breakdown whose amounts sum exactly to that value.
type EffectiveStats struct {
	Values    component.StatBlock
	Breakdown [component.StatCount][]SourceAmount
}

// StatSystem resolves effective stats. Pure queries only; it never mutates
// the session.
type StatSystem struct {
	deps *Deps
}

func NewStatSystem(deps *Deps) *StatSystem {
	return &StatSystem{deps: deps}
}

// Resolve combines base stats, class bonus, zodiac boost and equipped item
// bonuses, then scales by the rebirth all-stats percentage (floored). The
// post-floor remainder of the scaling is exposed as its own "rebirth"
// breakdown entry so the sum invariant holds exactly.
func (s *StatSystem) Resolve(sess *world.Session) (EffectiveStats, error) {
	char := sess.Char

	var class *data.Class
	if char.ClassID != 0 {
		class = s.deps.Classes.Get(char.ClassID)
		if class == nil {
			return EffectiveStats{}, fmt.Errorf("class %d: %w", char.ClassID, ErrConfiguration)
		}
	}

	zodiac := s.deps.Zodiacs.Get(char.ZodiacID)
	if zodiac == nil {
		return EffectiveStats{}, fmt.Errorf("zodiac %d: %w", char.ZodiacID, ErrConfiguration)
	}

	// Gather equipped items, validating the loadout/ownership invariant.
	var worn [component.SlotMax]*component.EquipmentItem
	for _, slot := range component.AllSlots {
		id := sess.Loadout.Get(slot)
		if id.IsZero() {
			continue
		}
		item := sess.Inv.Get(id)
		if item == nil {
			return EffectiveStats{}, fmt.Errorf("loadout %s references item %d not owned by character %d: %w",
				slot, id, char.ID, ErrInvariant)
		}
		if !item.Equipped {
			return EffectiveStats{}, fmt.Errorf("loadout %s holds item %d with equipped flag unset: %w",
				slot, id, ErrInvariant)
		}
		worn[slot] = item
	}

	allStatsPct := RebirthBonusesFor(char.RebirthCount).AllStatsPct

	var out EffectiveStats
	for _, stat := range component.AllStats {
		sources := make([]SourceAmount, 0, 8)

		base := char.BaseStats.Get(stat)
		sources = append(sources, SourceAmount{Source: "base", Amount: base})
		sum := base

		if class != nil {
			if v := class.Bonuses.Get(stat); v != 0 {
				sources = append(sources, SourceAmount{Source: "class:" + class.Name, Amount: v})
				sum += v
			}
		}

		if zodiac.BoostedStat == stat {
			sources = append(sources, SourceAmount{Source: "zodiac:" + zodiac.Name, Amount: data.ZodiacBoost})
			sum += data.ZodiacBoost
		}

		for _, slot := range component.AllSlots {
			item := worn[slot]
			if item == nil {
				continue
			}
			if v := item.BonusFor(stat); v != 0 {
				sources = append(sources, SourceAmount{Source: "item:" + slot.String(), Amount: v})
				sum += v
			}
		}

		effective := sum * (100 + allStatsPct) / 100
		if rebirth := effective - sum; rebirth != 0 {
			sources = append(sources, SourceAmount{Source: "rebirth", Amount: rebirth})
		}

		out.Values[stat] = effective
		out.Breakdown[stat] = sources
	}
	return out, nil
}
