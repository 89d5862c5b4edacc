package engine

import (
	"time"

	"github.com/questling/server/internal/component"
	"github.com/questling/server/internal/core/event"
	"github.com/questling/server/internal/world"
	"go.uber.org/zap"
)

// AchievementSystem tracks monotonic counters against the achievement
// catalogue. Unlocks are one-way and their rewards grant exactly once.
type AchievementSystem struct {
	deps  *Deps
	level *LevelSystem
}

func NewAchievementSystem(deps *Deps, level *LevelSystem) *AchievementSystem {
	return &AchievementSystem{deps: deps, level: level}
}

// EnsureProgress creates a progress row for every definition the session
// does not have yet. Called once at character creation and again after
// catalogue updates add definitions.
func (s *AchievementSystem) EnsureProgress(sess *world.Session) {
	for _, def := range s.deps.Achievements.All() {
		if _, ok := sess.Achievements[def.ID]; !ok {
			sess.Achievements[def.ID] = &component.AchievementProgress{DefID: def.ID}
		}
	}
}

// Advance applies a counter increment to every achievement tracking it.
// Negative or zero amounts are ignored; counters only grow. Rows already
// unlocked still accumulate but never re-grant.
func (s *AchievementSystem) Advance(sess *world.Session, counter component.CounterKind, amount int) {
	if amount <= 0 {
		return
	}
	for _, def := range s.deps.Achievements.ForCounter(counter) {
		row := sess.Achievements[def.ID]
		if row == nil {
			row = &component.AchievementProgress{DefID: def.ID}
			sess.Achievements[def.ID] = row
		}
		row.Current += amount
		if row.Unlocked || row.Current < def.Target {
			continue
		}

		row.Unlocked = true
		row.UnlockedAt = time.Now()

		char := sess.Char
		char.Gold += def.GoldReward
		char.Gems += def.GemReward
		if def.ExpReward > 0 {
			s.level.AddExp(sess, def.ExpReward)
		}
		char.Dirty = true

		event.Emit(s.deps.Bus, event.AchievementUnlocked{CharID: char.ID, DefID: def.ID})
		s.deps.Log.Info("achievement unlocked",
			zap.Int64("char", char.ID),
			zap.String("achievement", def.Name),
		)
	}
	sess.Char.Dirty = true
}
