// Package engine implements the progression and economy rules: stat
// resolution, leveling and prestige, the forging economy, and quest and
// achievement tracking. All operations are synchronous in-memory
// transformations; the host serializes mutations per character.
package engine

import (
	"github.com/questling/server/internal/component"
	"github.com/questling/server/internal/core/event"
	"github.com/questling/server/internal/core/ident"
	"github.com/questling/server/internal/data"
	"github.com/questling/server/internal/world"
)

// Engine aggregates the rule systems and wires progress counters: forging,
// leveling, claiming and rebirthing feed the quest and achievement counters
// through the event bus.
type Engine struct {
	deps *Deps

	Stats   *StatSystem
	Level   *LevelSystem
	Forge   *ForgeSystem
	Equip   *EquipSystem
	Quest   *QuestSystem
	Achieve *AchievementSystem
}

func New(deps *Deps) *Engine {
	stats := NewStatSystem(deps)
	level := NewLevelSystem(deps, stats)
	e := &Engine{
		deps:    deps,
		Stats:   stats,
		Level:   level,
		Forge:   NewForgeSystem(deps),
		Equip:   NewEquipSystem(deps),
		Quest:   NewQuestSystem(deps, level),
		Achieve: NewAchievementSystem(deps, level),
	}
	e.wireCounters()
	return e
}

// wireCounters subscribes internal events to the progress counters. The
// recursion this permits (an unlock grants EXP, which levels up, which
// advances the levels counter) terminates because levels and unlocks are
// both bounded.
func (e *Engine) wireCounters() {
	bus := e.deps.Bus
	if bus == nil {
		return
	}
	event.Subscribe(bus, func(ev event.ItemForged) {
		e.report(ev.CharID, component.CounterItemsForged, 1)
	})
	event.Subscribe(bus, func(ev event.LevelGained) {
		e.report(ev.CharID, component.CounterLevelsGained, 1)
	})
	event.Subscribe(bus, func(ev event.QuestClaimed) {
		e.report(ev.CharID, component.CounterQuestsClaimed, 1)
		if ev.GoldReward > 0 {
			e.report(ev.CharID, component.CounterGoldEarned, int(ev.GoldReward))
		}
	})
	event.Subscribe(bus, func(ev event.RebirthPerformed) {
		e.report(ev.CharID, component.CounterRebirths, 1)
	})
}

func (e *Engine) report(charID int64, counter component.CounterKind, amount int) {
	sess := e.deps.State.Get(charID)
	if sess == nil {
		return
	}
	e.Quest.Advance(sess, counter, amount)
	e.Achieve.Advance(sess, counter, amount)
}

// --- External interface; thin delegation so hosts depend on one type. ---

// ResolveStats is the read-side query: effective stats plus breakdown.
func (e *Engine) ResolveStats(sess *world.Session) (EffectiveStats, error) {
	return e.Stats.Resolve(sess)
}

func (e *Engine) AddExp(sess *world.Session, base int64) int64 {
	return e.Level.AddExp(sess, base)
}

func (e *Engine) LevelUp(sess *world.Session) bool {
	return e.Level.LevelUp(sess)
}

func (e *Engine) ParagonLevelUp(sess *world.Session) bool {
	return e.Level.ParagonLevelUp(sess)
}

func (e *Engine) EvolveClass(sess *world.Session, targetID int32) (bool, error) {
	return e.Level.EvolveClass(sess, targetID)
}

func (e *Engine) PerformRebirth(sess *world.Session, newStarterID int32) bool {
	return e.Level.PerformRebirth(sess, newStarterID)
}

func (e *Engine) CanAffordRecipe(recipe *data.ForgeRecipe, sess *world.Session) bool {
	return e.Forge.CanAfford(recipe, sess)
}

func (e *Engine) ForgeItem(sess *world.Session, slot component.Slot, recipe *data.ForgeRecipe) (*component.EquipmentItem, bool) {
	return e.Forge.Forge(sess, slot, recipe)
}

func (e *Engine) EquipItem(sess *world.Session, id ident.ID) (bool, error) {
	return e.Equip.Equip(sess, id)
}

func (e *Engine) UnequipItem(sess *world.Session, id ident.ID) (bool, error) {
	return e.Equip.Unequip(sess, id)
}

func (e *Engine) AdvanceQuestProgress(sess *world.Session, counter component.CounterKind, amount int) {
	e.Quest.Advance(sess, counter, amount)
}

func (e *Engine) ClaimQuest(sess *world.Session, quest *component.DailyQuest) bool {
	return e.Quest.Claim(sess, quest)
}

func (e *Engine) AdvanceAchievementProgress(sess *world.Session, counter component.CounterKind, amount int) {
	e.Achieve.Advance(sess, counter, amount)
}

// ReportCounter feeds one external event (task completed, mood logged, …)
// into both trackers at once.
func (e *Engine) ReportCounter(sess *world.Session, counter component.CounterKind, amount int) {
	e.Quest.Advance(sess, counter, amount)
	e.Achieve.Advance(sess, counter, amount)
}
