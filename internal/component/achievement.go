package component

import "time"

// AchievementProgress tracks one achievement definition for one character.
// Current only grows; Unlocked is a one-way transition and the reward is
// granted exactly once, at unlock.
type AchievementProgress struct {
	DefID      int32
	Current    int
	Unlocked   bool
	UnlockedAt time.Time
}
