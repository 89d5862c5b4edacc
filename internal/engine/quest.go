package engine

import (
	"github.com/questling/server/internal/component"
	"github.com/questling/server/internal/core/event"
	"github.com/questling/server/internal/world"
	"go.uber.org/zap"
)

// regularQuestsPerDay is fixed: three regular quests plus the bonus
// meta-quest per rollover.
const regularQuestsPerDay = 3

// QuestSystem rotates and settles daily quests. Reward intake is routed
// through the level system so rebirth and rate bonuses apply uniformly.
type QuestSystem struct {
	deps  *Deps
	level *LevelSystem
}

func NewQuestSystem(deps *Deps, level *LevelSystem) *QuestSystem {
	return &QuestSystem{deps: deps, level: level}
}

// RolloverDaily replaces the quest log with a fresh day: three distinct
// regular quests drawn from the pool plus the bonus quest. Idempotent within
// a day: calling again with the same stamp keeps the current log.
func (s *QuestSystem) RolloverDaily(sess *world.Session, day int64) bool {
	if sess.Quests.Day == day && len(sess.Quests.Quests) > 0 {
		return false
	}

	pool := s.deps.Quests.Regular()
	picked := s.deps.Rand.Perm(len(pool))[:regularQuestsPerDay]

	quests := make([]*component.DailyQuest, 0, regularQuestsPerDay+1)
	for _, idx := range picked {
		def := pool[idx]
		quests = append(quests, &component.DailyQuest{
			DefID:      def.ID,
			Counter:    def.Counter,
			Target:     def.Target,
			ExpReward:  def.ExpReward,
			GoldReward: def.GoldReward,
		})
	}

	bonus := s.deps.Quests.BonusDef()
	quests = append(quests, &component.DailyQuest{
		DefID:      bonus.ID,
		Counter:    bonus.Counter,
		Target:     regularQuestsPerDay,
		ExpReward:  bonus.ExpReward,
		GoldReward: bonus.GoldReward,
		Bonus:      true,
	})

	sess.Quests.Day = day
	sess.Quests.Quests = quests
	sess.Char.Dirty = true

	s.deps.Log.Debug("daily quests rolled", zap.Int64("char", sess.Char.ID), zap.Int64("day", day))
	return true
}

// Advance applies an externally reported counter increment to every matching
// unclaimed regular quest, clamped to its target. The bonus quest never
// advances from counters; its completion is derived.
func (s *QuestSystem) Advance(sess *world.Session, counter component.CounterKind, amount int) {
	if amount <= 0 {
		return
	}
	for _, q := range sess.Quests.Quests {
		if q.Bonus || q.Claimed || q.Counter != counter {
			continue
		}
		q.Current += amount
		if q.Current > q.Target {
			q.Current = q.Target
		}
	}
	sess.Char.Dirty = true
}

// BonusCompletable reports whether every regular quest of the day is
// completed, which is the bonus quest's real target, independent of its own counter.
func (s *QuestSystem) BonusCompletable(sess *world.Session) bool {
	count := 0
	for _, q := range sess.Quests.Quests {
		if !q.Bonus && q.Completed() {
			count++
		}
	}
	return count >= regularQuestsPerDay
}

// Claim settles a completed quest exactly once: EXP through the level
// system, gold with rate and rebirth bonuses. Claiming again, or claiming an
// incomplete quest, is a no-op.
func (s *QuestSystem) Claim(sess *world.Session, quest *component.DailyQuest) bool {
	if quest.Claimed {
		return false
	}
	if quest.Bonus {
		if !s.BonusCompletable(sess) {
			return false
		}
	} else if !quest.Completed() {
		return false
	}

	quest.Claimed = true
	char := sess.Char

	gold := int64(float64(quest.GoldReward) * s.deps.Cfg.Rates.GoldRate)
	gold += gold * int64(RebirthBonusesFor(char.RebirthCount).GoldPct) / 100
	char.Gold += gold
	s.level.AddExp(sess, quest.ExpReward)
	char.Dirty = true

	event.Emit(s.deps.Bus, event.QuestClaimed{
		CharID:     char.ID,
		QuestDefID: quest.DefID,
		ExpReward:  quest.ExpReward,
		GoldReward: gold,
	})
	s.deps.Log.Info("quest claimed",
		zap.Int64("char", char.ID),
		zap.Int32("quest", quest.DefID),
		zap.Int64("gold", gold),
	)
	return true
}
