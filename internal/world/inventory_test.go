package world

import (
	"testing"

	"github.com/questling/server/internal/component"
	"github.com/questling/server/internal/core/ident"
	"github.com/stretchr/testify/assert"
)

func TestInventoryMaterials(t *testing.T) {
	inv := NewInventory()

	inv.AddMaterial(component.MaterialOre, 5)
	inv.AddMaterial(component.MaterialOre, -3) // ignored
	assert.Equal(t, 5, inv.MaterialCount(component.MaterialOre))

	assert.False(t, inv.ConsumeMaterial(component.MaterialOre, 6), "insufficient")
	assert.Equal(t, 5, inv.MaterialCount(component.MaterialOre))

	assert.True(t, inv.ConsumeMaterial(component.MaterialOre, 5))
	assert.Zero(t, inv.MaterialCount(component.MaterialOre))
}

func TestInventoryItems(t *testing.T) {
	inv := NewInventory()
	pool := ident.NewPool()

	item := &component.EquipmentItem{ID: pool.Acquire(), Slot: component.SlotWeapon}
	inv.Add(item)
	assert.Same(t, item, inv.Get(item.ID))
	assert.Equal(t, 1, inv.Size())

	inv.Remove(item.ID)
	assert.Nil(t, inv.Get(item.ID))
	assert.Zero(t, inv.Size())
}

func TestLoadoutSlotTracking(t *testing.T) {
	pool := ident.NewPool()
	var lo Loadout

	id := pool.Acquire()
	lo.Set(component.SlotArmor, id)
	assert.Equal(t, id, lo.Get(component.SlotArmor))
	assert.True(t, lo.Get(component.SlotWeapon).IsZero())

	slot, ok := lo.SlotOf(id)
	assert.True(t, ok)
	assert.Equal(t, component.SlotArmor, slot)

	lo.Set(component.SlotArmor, 0)
	assert.True(t, lo.Get(component.SlotArmor).IsZero())
	_, ok = lo.SlotOf(id)
	assert.False(t, ok)
}
