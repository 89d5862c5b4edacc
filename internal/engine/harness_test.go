package engine

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/questling/server/internal/component"
	"github.com/questling/server/internal/config"
	"github.com/questling/server/internal/core/event"
	"github.com/questling/server/internal/data"
	"github.com/questling/server/internal/world"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubFormulas replaces the Lua curves with fixed arithmetic so thresholds in
// tests stay readable.
type stubFormulas struct{}

func (stubFormulas) ExpForLevel(level int) int64 {
	n := int64(level - 1)
	return 100 * n * n
}

func (stubFormulas) ParagonExpForLevel(paragonLevel int) int64 {
	return int64(1000 * (paragonLevel + 1))
}

func (stubFormulas) LevelUpHP(classID int32, level int) int { return 3 }

func (stubFormulas) ForgeBonus(tier, rarity int) int { return (2 + tier) * (1 + rarity) }

func (stubFormulas) ForgeLevelReq(tier, rarity int) int { return tier }

func (stubFormulas) SalvageRefund(tier, rarity, kind int) int {
	if kind == int(component.MaterialFragment) {
		if rarity >= int(component.RarityEpic) {
			return rarity - 2
		}
		return 0
	}
	return (tier + rarity) / 2
}

const classFixture = `
classes:
  - id: 1
    name: Warrior
    tier: starter
    bonuses: { strength: 5, defense: 3 }
    hp_restore_frac: 0.6
    start_hp: 60
  - id: 2
    name: Mage
    tier: starter
    bonuses: { wisdom: 5 }
    hp_restore_frac: 0.4
    start_hp: 40
  - id: 10
    name: Berserker
    tier: evolved
    bonuses: { strength: 10 }
    evolves_from: 1
    evolve_stat: strength
    evolve_threshold: 40
    hp_restore_frac: 0.7
    start_hp: 80
`

const zodiacFixture = `
zodiacs:
  - { id: 1, name: Aries, boosted_stat: strength }
  - { id: 2, name: Taurus, boosted_stat: defense }
`

const recipeFixture = `
recipes:
  - id: 1
    name: Basic Forge
    tier: 1
    essence_cost: 2
    ore_cost: 4
    fragment_cost: 0
    gold_cost: 100
    min_rarity: common
    max_rarity: uncommon
  - id: 2
    name: Fine Forge
    tier: 3
    essence_cost: 8
    ore_cost: 14
    fragment_cost: 1
    gold_cost: 1200
    min_rarity: uncommon
    max_rarity: epic
  - id: 3
    name: Mythic Forge
    tier: 5
    essence_cost: 24
    ore_cost: 36
    fragment_cost: 6
    gold_cost: 12000
    min_rarity: epic
    max_rarity: legendary
`

const questFixture = `
quests:
  - { id: 1, name: Tasks, counter: tasks_completed, target: 5, exp_reward: 400, gold_reward: 150 }
  - { id: 2, name: Moods, counter: moods_logged, target: 3, exp_reward: 300, gold_reward: 120 }
  - { id: 3, name: Forging, counter: items_forged, target: 2, exp_reward: 500, gold_reward: 200 }
  - { id: 4, name: Earning, counter: gold_earned, target: 500, exp_reward: 450, gold_reward: 100 }
  - { id: 100, name: Sweep, counter: quests_claimed, target: 0, exp_reward: 1000, gold_reward: 500, bonus: true }
`

const achievementFixture = `
achievements:
  - { id: 1, name: First Task, counter: tasks_completed, target: 1, exp_reward: 100, gold_reward: 50, gem_reward: 0 }
  - { id: 2, name: Ten Tasks, counter: tasks_completed, target: 10, exp_reward: 0, gold_reward: 500, gem_reward: 5 }
  - { id: 3, name: Smith, counter: items_forged, target: 2, exp_reward: 0, gold_reward: 200, gem_reward: 0 }
  - { id: 4, name: Reborn, counter: rebirths, target: 1, exp_reward: 0, gold_reward: 1000, gem_reward: 10 }
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestDeps(t *testing.T) *Deps {
	t.Helper()
	dir := t.TempDir()

	cfg, err := config.Load(writeFixture(t, dir, "server.toml", ""))
	require.NoError(t, err)

	classes, err := data.LoadClassTable(writeFixture(t, dir, "classes.yaml", classFixture))
	require.NoError(t, err)
	zodiacs, err := data.LoadZodiacTable(writeFixture(t, dir, "zodiacs.yaml", zodiacFixture))
	require.NoError(t, err)
	recipes, err := data.LoadRecipeTable(writeFixture(t, dir, "recipes.yaml", recipeFixture))
	require.NoError(t, err)
	quests, err := data.LoadQuestPool(writeFixture(t, dir, "quests.yaml", questFixture))
	require.NoError(t, err)
	achievements, err := data.LoadAchievementTable(writeFixture(t, dir, "achievements.yaml", achievementFixture))
	require.NoError(t, err)

	return &Deps{
		Log:          zap.NewNop(),
		Cfg:          cfg,
		Classes:      classes,
		Zodiacs:      zodiacs,
		Recipes:      recipes,
		Quests:       quests,
		Achievements: achievements,
		Formulas:     stubFormulas{},
		Bus:          event.NewBus(),
		Rand:         rand.New(rand.NewSource(7)),
		State:        world.NewState(),
	}
}

// newTestSession registers a level-1 classless character with the Aries sign.
func newTestSession(t *testing.T, deps *Deps) *world.Session {
	t.Helper()
	sess := world.NewSession(&component.Character{
		ID:       1,
		Name:     "Tester",
		Level:    1,
		ZodiacID: 1,
		HP:       50,
		MaxHP:    50,
	})
	deps.State.Put(sess)
	return sess
}

// newTestItem builds an unequipped item straight into the inventory.
func newTestItem(deps *Deps, sess *world.Session, slot component.Slot, stat component.Stat, bonus int) *component.EquipmentItem {
	item := &component.EquipmentItem{
		ID:           deps.State.ItemIDs().Acquire(),
		OwnerID:      sess.Char.ID,
		Slot:         slot,
		Rarity:       component.RarityCommon,
		Tier:         1,
		PrimaryStat:  stat,
		PrimaryBonus: bonus,
		LevelReq:     1,
	}
	sess.Inv.Add(item)
	return item
}
