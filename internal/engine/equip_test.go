package engine

import (
	"testing"

	"github.com/questling/server/internal/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipAndUnequip(t *testing.T) {
	deps := newTestDeps(t)
	sess := newTestSession(t, deps)
	equip := NewEquipSystem(deps)

	item := newTestItem(deps, sess, component.SlotWeapon, component.StatStrength, 3)

	ok, err := equip.Equip(sess, item.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, item.Equipped)
	assert.Equal(t, item.ID, sess.Loadout.Get(component.SlotWeapon))

	ok, err = equip.Equip(sess, item.ID)
	require.NoError(t, err)
	assert.False(t, ok, "already equipped")

	ok, err = equip.Unequip(sess, item.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, item.Equipped)
	assert.True(t, sess.Loadout.Get(component.SlotWeapon).IsZero())

	ok, err = equip.Unequip(sess, item.ID)
	require.NoError(t, err)
	assert.False(t, ok, "already unequipped")
}

func TestEquipEnforcesLevelRequirement(t *testing.T) {
	deps := newTestDeps(t)
	sess := newTestSession(t, deps)
	equip := NewEquipSystem(deps)

	item := newTestItem(deps, sess, component.SlotArmor, component.StatDefense, 5)
	item.LevelReq = 5

	ok, err := equip.Equip(sess, item.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, item.Equipped)

	sess.Char.Level = 5
	ok, err = equip.Equip(sess, item.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEquipSwapsSlotOccupant(t *testing.T) {
	deps := newTestDeps(t)
	sess := newTestSession(t, deps)
	equip := NewEquipSystem(deps)

	first := newTestItem(deps, sess, component.SlotWeapon, component.StatStrength, 3)
	second := newTestItem(deps, sess, component.SlotWeapon, component.StatStrength, 6)

	_, err := equip.Equip(sess, first.ID)
	require.NoError(t, err)

	ok, err := equip.Equip(sess, second.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.False(t, first.Equipped)
	assert.True(t, second.Equipped)
	assert.Equal(t, second.ID, sess.Loadout.Get(component.SlotWeapon))
	require.NoError(t, equip.VerifyLoadout(sess))
}

func TestEquipUnownedItemIsInvariantViolation(t *testing.T) {
	deps := newTestDeps(t)
	sess := newTestSession(t, deps)
	equip := NewEquipSystem(deps)

	_, err := equip.Equip(sess, deps.State.ItemIDs().Acquire())
	require.ErrorIs(t, err, ErrInvariant)
}

func TestLoadoutInvariantHoldsUnderRandomSequences(t *testing.T) {
	deps := newTestDeps(t)
	sess := newTestSession(t, deps)
	equip := NewEquipSystem(deps)

	var items []*component.EquipmentItem
	for i := 0; i < 12; i++ {
		slot := component.AllSlots[i%component.SlotMax]
		items = append(items, newTestItem(deps, sess, slot, component.StatLuck, i+1))
	}

	for step := 0; step < 500; step++ {
		item := items[deps.Rand.Intn(len(items))]
		var err error
		if deps.Rand.Intn(2) == 0 {
			_, err = equip.Equip(sess, item.ID)
		} else {
			_, err = equip.Unequip(sess, item.ID)
		}
		require.NoError(t, err)
		require.NoError(t, equip.VerifyLoadout(sess), "after step %d", step)
	}

	// At most one item per slot, always.
	for _, slot := range component.AllSlots {
		worn := 0
		for _, item := range items {
			if item.Equipped && item.Slot == slot {
				worn++
			}
		}
		assert.LessOrEqual(t, worn, 1, "slot %s", slot)
	}
}

func TestVerifyLoadoutDetectsCorruption(t *testing.T) {
	deps := newTestDeps(t)
	equip := NewEquipSystem(deps)

	t.Run("clean session passes", func(t *testing.T) {
		sess := newTestSession(t, deps)
		item := newTestItem(deps, sess, component.SlotWeapon, component.StatLuck, 2)
		_, err := equip.Equip(sess, item.ID)
		require.NoError(t, err)
		assert.NoError(t, equip.VerifyLoadout(sess))
	})

	t.Run("unowned reference", func(t *testing.T) {
		sess := newTestSession(t, deps)
		sess.Loadout.Set(component.SlotWeapon, deps.State.ItemIDs().Acquire())
		assert.ErrorIs(t, equip.VerifyLoadout(sess), ErrInvariant)
	})

	t.Run("flag out of sync", func(t *testing.T) {
		sess := newTestSession(t, deps)
		item := newTestItem(deps, sess, component.SlotWeapon, component.StatLuck, 2)
		sess.Loadout.Set(component.SlotWeapon, item.ID) // Equipped still false
		assert.ErrorIs(t, equip.VerifyLoadout(sess), ErrInvariant)
	})

	t.Run("slot mismatch", func(t *testing.T) {
		sess := newTestSession(t, deps)
		item := newTestItem(deps, sess, component.SlotArmor, component.StatLuck, 2)
		item.Equipped = true
		sess.Loadout.Set(component.SlotWeapon, item.ID)
		assert.ErrorIs(t, equip.VerifyLoadout(sess), ErrInvariant)
	})

	t.Run("orphan equipped item", func(t *testing.T) {
		sess := newTestSession(t, deps)
		item := newTestItem(deps, sess, component.SlotWeapon, component.StatLuck, 2)
		item.Equipped = true // never placed in the loadout
		assert.ErrorIs(t, equip.VerifyLoadout(sess), ErrInvariant)
	})

	t.Run("same item in two slots", func(t *testing.T) {
		sess := newTestSession(t, deps)
		item := newTestItem(deps, sess, component.SlotWeapon, component.StatLuck, 2)
		item.Equipped = true
		sess.Loadout.Set(component.SlotWeapon, item.ID)
		sess.Loadout.Set(component.SlotArmor, item.ID)
		assert.ErrorIs(t, equip.VerifyLoadout(sess), ErrInvariant)
	})
}
