package engine

import (
	"github.com/questling/server/internal/component"
	"github.com/questling/server/internal/core/event"
	"github.com/questling/server/internal/core/ident"
	"github.com/questling/server/internal/data"
	"github.com/questling/server/internal/world"
	"go.uber.org/zap"
)

// ForgeSystem turns recipe costs into equipment. Forging is atomic: either
// every cost is deducted and an item lands in the inventory, or nothing
// changes at all.
type ForgeSystem struct {
	deps *Deps
}

func NewForgeSystem(deps *Deps) *ForgeSystem {
	return &ForgeSystem{deps: deps}
}

// CanAfford checks gold and every material category against the recipe.
// Pure; no mutation.
func (s *ForgeSystem) CanAfford(recipe *data.ForgeRecipe, sess *world.Session) bool {
	if sess.Char.Gold < recipe.GoldCost {
		return false
	}
	for kind := component.MaterialKind(0); kind < component.MaterialMax; kind++ {
		if sess.Inv.MaterialCount(kind) < recipe.MaterialCost(kind) {
			return false
		}
	}
	return true
}

// Forge deducts the recipe's exact costs and produces an item for the given
// slot. Returns (nil, false) without touching state when unaffordable. The
// rarity is rolled inside the recipe's declared range, biased upward by tier.
func (s *ForgeSystem) Forge(sess *world.Session, slot component.Slot, recipe *data.ForgeRecipe) (*component.EquipmentItem, bool) {
	if slot < 0 || int(slot) >= component.SlotMax {
		return nil, false
	}
	if !s.CanAfford(recipe, sess) {
		return nil, false
	}

	char := sess.Char
	char.Gold -= recipe.GoldCost
	for kind := component.MaterialKind(0); kind < component.MaterialMax; kind++ {
		if cost := recipe.MaterialCost(kind); cost > 0 {
			// Cannot fail: CanAfford held and nothing ran in between.
			sess.Inv.ConsumeMaterial(kind, cost)
		}
	}

	rarity := s.rollRarity(recipe)
	item := s.buildItem(sess, slot, recipe, rarity)
	sess.Inv.Add(item)
	char.Dirty = true

	event.Emit(s.deps.Bus, event.ItemForged{
		CharID:   char.ID,
		ItemID:   item.ID,
		RecipeID: recipe.ID,
		Rarity:   rarity,
	})
	s.deps.Log.Info("item forged",
		zap.Int64("char", char.ID),
		zap.Int32("recipe", recipe.ID),
		zap.String("slot", slot.String()),
		zap.String("rarity", rarity.String()),
	)
	return item, true
}

// rollRarity draws from [MinRarity, MaxRarity]. The weight of the i-th step
// above the minimum is 1 + tier*i, so higher tiers favor the top of the
// range while every declared rarity stays reachable.
func (s *ForgeSystem) rollRarity(recipe *data.ForgeRecipe) component.Rarity {
	span := int(recipe.MaxRarity - recipe.MinRarity)
	if span == 0 {
		return recipe.MinRarity
	}

	total := 0
	for i := 0; i <= span; i++ {
		total += 1 + recipe.Tier*i
	}
	roll := s.deps.Rand.Intn(total)
	for i := 0; i <= span; i++ {
		roll -= 1 + recipe.Tier*i
		if roll < 0 {
			return recipe.MinRarity + component.Rarity(i)
		}
	}
	return recipe.MaxRarity
}

// buildItem rolls the stat lines and scales bonuses via the Lua formulas.
// Rare and better always carry a secondary stat.
func (s *ForgeSystem) buildItem(sess *world.Session, slot component.Slot, recipe *data.ForgeRecipe, rarity component.Rarity) *component.EquipmentItem {
	primary := component.AllStats[s.deps.Rand.Intn(component.StatCount)]
	bonus := s.deps.Formulas.ForgeBonus(recipe.Tier, int(rarity))

	item := &component.EquipmentItem{
		ID:           s.deps.State.ItemIDs().Acquire(),
		OwnerID:      sess.Char.ID,
		Slot:         slot,
		Rarity:       rarity,
		Tier:         recipe.Tier,
		PrimaryStat:  primary,
		PrimaryBonus: bonus,
		LevelReq:     s.deps.Formulas.ForgeLevelReq(recipe.Tier, int(rarity)),
	}

	if rarity >= component.RarityRare {
		secondary := component.AllStats[s.deps.Rand.Intn(component.StatCount-1)]
		if secondary >= primary {
			secondary++ // skip the primary stat
		}
		item.HasSecondary = true
		item.SecondaryStat = secondary
		item.SecondaryBonus = bonus / 2
		if item.SecondaryBonus < 1 {
			item.SecondaryBonus = 1
		}
	}
	return item
}

// Salvage destroys an unequipped owned item, refunding materials scaled by
// its tier and rarity. The item's ID is released to the pool, so any stale
// reference to it goes dead.
func (s *ForgeSystem) Salvage(sess *world.Session, id ident.ID) bool {
	item := sess.Inv.Get(id)
	if item == nil || item.Equipped || item.OwnerID != sess.Char.ID {
		return false
	}

	for kind := component.MaterialKind(0); kind < component.MaterialMax; kind++ {
		refund := s.deps.Formulas.SalvageRefund(item.Tier, int(item.Rarity), int(kind))
		sess.Inv.AddMaterial(kind, refund)
	}

	sess.Inv.Remove(id)
	s.deps.State.ItemIDs().Release(id)
	sess.Char.Dirty = true

	event.Emit(s.deps.Bus, event.ItemSalvaged{CharID: sess.Char.ID, ItemID: id, Rarity: item.Rarity})
	return true
}
