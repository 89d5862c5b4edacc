package engine

import (
	"math/rand"

	"github.com/questling/server/internal/config"
	"github.com/questling/server/internal/core/event"
	"github.com/questling/server/internal/data"
	"github.com/questling/server/internal/world"
	"go.uber.org/zap"
)

// Formulas exposes the Lua-scripted tunables. Implemented by
// scripting.Engine; tests substitute fixed curves.
type Formulas interface {
	// ExpForLevel returns the total EXP required to reach a level.
	// Must be strictly increasing with ExpForLevel(1) == 0.
	ExpForLevel(level int) int64
	// ParagonExpForLevel returns the total EXP past the level cap required
	// to go from the given paragon level to the next.
	ParagonExpForLevel(paragonLevel int) int64
	// LevelUpHP returns extra MaxHP rolled on one level-up.
	LevelUpHP(classID int32, level int) int
	// ForgeBonus returns a forged item's stat bonus for a tier/rarity pair.
	// Non-decreasing in tier for a fixed rarity.
	ForgeBonus(tier, rarity int) int
	// ForgeLevelReq returns a forged item's level requirement.
	ForgeLevelReq(tier, rarity int) int
	// SalvageRefund returns materials refunded per kind on salvage.
	SalvageRefund(tier, rarity, kind int) int
}

// Deps bundles everything the rule systems need. Catalogues are immutable
// after load; Rand is the single seedable randomness source so tests can
// inject deterministic sequences.
type Deps struct {
	Log          *zap.Logger
	Cfg          *config.Config
	Classes      *data.ClassTable
	Zodiacs      *data.ZodiacTable
	Recipes      *data.RecipeTable
	Quests       *data.QuestPool
	Achievements *data.AchievementTable
	Formulas     Formulas
	Bus          *event.Bus
	Rand         *rand.Rand
	State        *world.State
}
