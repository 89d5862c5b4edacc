package engine

// RebirthBonuses is the permanent bonus ledger derived from a character's
// rebirth count. Never stored, always recomputed, so it is monotonic
// non-decreasing in the count by construction.
type RebirthBonuses struct {
	ExpPct      int
	GoldPct     int
	LootPct     int
	AllStatsPct int
}

// RebirthBonusesFor maps a rebirth count to the ledger. Tier 1 grants +5%
// EXP, tier 2 +5% gold, tier 3 +5% loot chance, tier 4 +3% all stats, and
// every tier past that stacks +1% all stats.
func RebirthBonusesFor(count int) RebirthBonuses {
	var b RebirthBonuses
	if count >= 1 {
		b.ExpPct = 5
	}
	if count >= 2 {
		b.GoldPct = 5
	}
	if count >= 3 {
		b.LootPct = 5
	}
	if count >= 4 {
		b.AllStatsPct = 3
	}
	if count >= 5 {
		b.AllStatsPct += count - 4
	}
	return b
}
