package world

import (
	"github.com/questling/server/internal/component"
	"github.com/questling/server/internal/core/ident"
)

// Inventory holds one character's forge materials and owned equipment.
// Accessed only under the caller's per-character serialization, so no locks.
type Inventory struct {
	Materials [component.MaterialMax]int
	Items     map[ident.ID]*component.EquipmentItem
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		Items: make(map[ident.ID]*component.EquipmentItem, 8),
	}
}

// MaterialCount returns the owned quantity of one material kind.
func (inv *Inventory) MaterialCount(kind component.MaterialKind) int {
	return inv.Materials[kind]
}

// AddMaterial grants materials. Negative amounts are ignored.
func (inv *Inventory) AddMaterial(kind component.MaterialKind, amount int) {
	if amount > 0 {
		inv.Materials[kind] += amount
	}
}

// ConsumeMaterial removes exactly amount of a material kind, or nothing.
func (inv *Inventory) ConsumeMaterial(kind component.MaterialKind, amount int) bool {
	if amount < 0 || inv.Materials[kind] < amount {
		return false
	}
	inv.Materials[kind] -= amount
	return true
}

// Get returns an owned item by ID, or nil.
func (inv *Inventory) Get(id ident.ID) *component.EquipmentItem {
	return inv.Items[id]
}

// Add places an item into the inventory.
func (inv *Inventory) Add(item *component.EquipmentItem) {
	inv.Items[item.ID] = item
}

// Remove deletes an item from the inventory.
func (inv *Inventory) Remove(id ident.ID) {
	delete(inv.Items, id)
}

// Size returns the number of owned items.
func (inv *Inventory) Size() int {
	return len(inv.Items)
}
