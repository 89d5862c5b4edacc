package engine

import (
	"github.com/questling/server/internal/component"
	"github.com/questling/server/internal/core/event"
	"github.com/questling/server/internal/data"
	"github.com/questling/server/internal/world"
	"go.uber.org/zap"
)

// hpRestoreDefault applies when a character has no class yet.
const hpRestoreDefault = 0.5

// LevelSystem owns EXP accrual, level-ups, paragon levels, class evolution,
// rebirth and stat point allocation. Every gated operation is a boolean
// no-op when its preconditions fail; state is never partially mutated.
type LevelSystem struct {
	deps  *Deps
	stats *StatSystem
}

func NewLevelSystem(deps *Deps, stats *StatSystem) *LevelSystem {
	return &LevelSystem{deps: deps, stats: stats}
}

// AddExp grants EXP after applying the configured rate and the rebirth EXP
// bonus, then loops level-ups (and paragon level-ups at the cap) until no
// threshold remains crossed. Returns the EXP actually credited.
func (s *LevelSystem) AddExp(sess *world.Session, base int64) int64 {
	if base <= 0 {
		return 0
	}
	char := sess.Char

	bonus := RebirthBonusesFor(char.RebirthCount)
	gain := int64(float64(base) * s.deps.Cfg.Rates.ExpRate)
	gain += gain * int64(bonus.ExpPct) / 100
	if gain <= 0 {
		return 0
	}

	char.Exp += gain
	char.Dirty = true

	for s.CanLevelUp(char) {
		if !s.LevelUp(sess) {
			break
		}
	}
	for s.CanParagonLevelUp(char) {
		if !s.ParagonLevelUp(sess) {
			break
		}
	}
	return gain
}

// CanLevelUp reports whether the next level threshold is crossed and the
// character is below the cap.
func (s *LevelSystem) CanLevelUp(char *component.Character) bool {
	if char.Level >= s.deps.Cfg.Progression.MaxLevel {
		return false
	}
	return char.Exp >= s.deps.Formulas.ExpForLevel(char.Level+1)
}

// LevelUp advances exactly one level: grants stat points, raises MaxHP and
// restores HP to the class fraction. No-op below the threshold or at the cap.
func (s *LevelSystem) LevelUp(sess *world.Session) bool {
	char := sess.Char
	if !s.CanLevelUp(char) {
		return false
	}

	char.Level++
	char.UnspentStatPoints += s.deps.Cfg.Progression.StatPointsPerLevel
	char.MaxHP += s.deps.Cfg.Progression.HPPerLevel + s.deps.Formulas.LevelUpHP(char.ClassID, char.Level)

	frac := hpRestoreDefault
	if class := s.deps.Classes.Get(char.ClassID); class != nil {
		frac = class.HPRestoreFrac
	}
	restored := int(float64(char.MaxHP) * frac)
	if restored > char.HP {
		char.HP = restored
	}
	if char.HP > char.MaxHP {
		char.HP = char.MaxHP
	}
	char.Dirty = true

	event.Emit(s.deps.Bus, event.LevelGained{CharID: char.ID, NewLevel: char.Level})
	s.deps.Log.Info("level up",
		zap.Int64("char", char.ID),
		zap.Int("level", char.Level),
		zap.Int("max_hp", char.MaxHP),
	)
	return true
}

// CanParagonLevelUp reports whether the character is at the cap with enough
// EXP past it for the next paragon level.
func (s *LevelSystem) CanParagonLevelUp(char *component.Character) bool {
	cfg := s.deps.Cfg.Progression
	if char.Level != cfg.MaxLevel {
		return false
	}
	capExp := s.deps.Formulas.ExpForLevel(cfg.MaxLevel)
	return char.Exp-capExp >= s.deps.Formulas.ParagonExpForLevel(char.ParagonLevel)
}

// ParagonLevelUp advances one paragon level, granting diminishing but always
// nonzero stat points.
func (s *LevelSystem) ParagonLevelUp(sess *world.Session) bool {
	char := sess.Char
	if !s.CanParagonLevelUp(char) {
		return false
	}

	char.ParagonLevel++
	char.UnspentStatPoints += paragonStatPoints(char.ParagonLevel)
	char.Dirty = true

	event.Emit(s.deps.Bus, event.ParagonGained{CharID: char.ID, NewParagonLevel: char.ParagonLevel})
	s.deps.Log.Info("paragon level up",
		zap.Int64("char", char.ID),
		zap.Int("paragon", char.ParagonLevel),
	)
	return true
}

// paragonStatPoints diminishes from 3 toward a floor of 1.
func paragonStatPoints(paragonLevel int) int {
	points := 3 - paragonLevel/10
	if points < 1 {
		points = 1
	}
	return points
}

// AssignClass sets a starter class on a character that has none yet. Gated
// on the class-unlock level except right after a rebirth, where the level is
// back at 1 but the character has already earned a class.
func (s *LevelSystem) AssignClass(sess *world.Session, classID int32) bool {
	char := sess.Char
	if char.ClassID != 0 {
		return false
	}
	if char.Level < s.deps.Cfg.Progression.ClassUnlockLevel && char.RebirthCount == 0 {
		return false
	}
	class := s.deps.Classes.Get(classID)
	if class == nil || class.Tier != data.TierStarter {
		return false
	}
	char.ClassID = classID
	char.Dirty = true
	return true
}

// EvolveClass replaces a starter class with one of its evolutions. Gates:
// current class is starter tier, the evolve level is reached, the target
// evolves from the current class, and the target's required stat, resolved
// through effective stats, meets its threshold. Fails without mutation.
func (s *LevelSystem) EvolveClass(sess *world.Session, targetID int32) (bool, error) {
	char := sess.Char

	current := s.deps.Classes.Get(char.ClassID)
	if current == nil || current.Tier != data.TierStarter {
		return false, nil
	}
	if char.Level < s.deps.Cfg.Progression.EvolveMinLevel {
		return false, nil
	}
	target := s.deps.Classes.Get(targetID)
	if target == nil || target.Tier != data.TierEvolved || target.EvolvesFrom != current.ID {
		return false, nil
	}

	resolved, err := s.stats.Resolve(sess)
	if err != nil {
		return false, err
	}
	if resolved.Values.Get(target.EvolveStat) < target.EvolveThreshold {
		return false, nil
	}

	char.ClassID = targetID
	char.Dirty = true

	event.Emit(s.deps.Bus, event.ClassEvolved{CharID: char.ID, FromClass: current.ID, ToClass: targetID})
	s.deps.Log.Info("class evolved",
		zap.Int64("char", char.ID),
		zap.String("from", current.Name),
		zap.String("to", target.Name),
	)
	return true, nil
}

// PerformRebirth resets level, EXP, paragon level and class in exchange for
// a permanent ledger tier. Gold, gems, equipment, materials and achievements
// are untouched. One-way: once the gates pass, the whole reset applies.
func (s *LevelSystem) PerformRebirth(sess *world.Session, newStarterID int32) bool {
	char := sess.Char
	if char.Level < s.deps.Cfg.Progression.MaxLevel {
		return false
	}
	starter := s.deps.Classes.Get(newStarterID)
	if starter == nil || starter.Tier != data.TierStarter {
		return false
	}

	char.Level = 1
	char.Exp = 0
	char.ParagonLevel = 0
	char.ClassID = starter.ID
	char.MaxHP = starter.StartHP
	char.HP = starter.StartHP
	char.RebirthCount++
	char.Dirty = true

	event.Emit(s.deps.Bus, event.RebirthPerformed{
		CharID:       char.ID,
		RebirthCount: char.RebirthCount,
		NewClass:     starter.ID,
	})
	s.deps.Log.Info("rebirth performed",
		zap.Int64("char", char.ID),
		zap.Int("rebirth_count", char.RebirthCount),
		zap.String("class", starter.Name),
	)
	return true
}

// AllocateStatPoint spends one unspent point on a base stat.
func (s *LevelSystem) AllocateStatPoint(sess *world.Session, stat component.Stat) bool {
	char := sess.Char
	if char.UnspentStatPoints <= 0 {
		return false
	}
	if stat < 0 || int(stat) >= component.StatCount {
		return false
	}
	char.BaseStats.Add(stat, 1)
	char.UnspentStatPoints--
	char.Dirty = true
	return true
}
