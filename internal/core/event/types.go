package event

import (
	"github.com/questling/server/internal/component"
	"github.com/questling/server/internal/core/ident"
)

// LevelGained fires once per level step (looped level-ups fire it repeatedly).
type LevelGained struct {
	CharID   int64
	NewLevel int
}

// ParagonGained fires on each paragon level-up past the level cap.
type ParagonGained struct {
	CharID          int64
	NewParagonLevel int
}

// ClassEvolved fires when a starter class evolves.
type ClassEvolved struct {
	CharID     int64
	FromClass  int32
	ToClass    int32
}

// RebirthPerformed fires after a completed rebirth.
type RebirthPerformed struct {
	CharID       int64
	RebirthCount int
	NewClass     int32
}

// ItemForged fires when the forge produces an item.
type ItemForged struct {
	CharID   int64
	ItemID   ident.ID
	RecipeID int32
	Rarity   component.Rarity
}

// ItemSalvaged fires when an item is destroyed for materials.
type ItemSalvaged struct {
	CharID int64
	ItemID ident.ID
	Rarity component.Rarity
}

// QuestClaimed fires when a completed quest's reward is granted.
type QuestClaimed struct {
	CharID     int64
	QuestDefID int32
	ExpReward  int64
	GoldReward int64
}

// AchievementUnlocked fires exactly once per achievement per character.
type AchievementUnlocked struct {
	CharID int64
	DefID  int32
}
