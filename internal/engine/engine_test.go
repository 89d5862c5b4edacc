package engine

import (
	"testing"

	"github.com/questling/server/internal/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForgingFeedsQuestAndAchievementCounters(t *testing.T) {
	deps := newTestDeps(t)
	eng := New(deps)
	sess := newTestSession(t, deps)

	quest := &component.DailyQuest{DefID: 3, Counter: component.CounterItemsForged, Target: 2}
	sess.Quests.Quests = []*component.DailyQuest{quest}

	recipe := deps.Recipes.Get(1)
	for i := 0; i < 2; i++ {
		grantRecipeCosts(sess, 1, deps)
		_, ok := eng.ForgeItem(sess, component.SlotWeapon, recipe)
		require.True(t, ok)
	}

	assert.Equal(t, 2, quest.Current)
	assert.True(t, quest.Completed())

	smith := sess.Achievements[3] // Smith: 2 items forged
	require.NotNil(t, smith)
	assert.True(t, smith.Unlocked)
}

func TestRebirthFeedsCounters(t *testing.T) {
	deps := newTestDeps(t)
	eng := New(deps)
	sess := newTestSession(t, deps)
	sess.Char.Level = deps.Cfg.Progression.MaxLevel

	require.True(t, eng.PerformRebirth(sess, 1))

	reborn := sess.Achievements[4]
	require.NotNil(t, reborn)
	assert.True(t, reborn.Unlocked)
	assert.Equal(t, int64(1000), sess.Char.Gold)
	assert.Equal(t, int64(10), sess.Char.Gems)
}

func TestClaimFeedsGoldEarnedCounter(t *testing.T) {
	deps := newTestDeps(t)
	eng := New(deps)
	sess := newTestSession(t, deps)

	done := &component.DailyQuest{DefID: 1, Counter: component.CounterTasksCompleted, Target: 1, Current: 1, GoldReward: 600}
	earner := &component.DailyQuest{DefID: 4, Counter: component.CounterGoldEarned, Target: 500}
	sess.Quests.Quests = []*component.DailyQuest{done, earner}

	require.True(t, eng.ClaimQuest(sess, done))
	assert.Equal(t, 500, earner.Current, "gold payout advances the earning quest, clamped")
}

func TestReportCounterReachesBothTrackers(t *testing.T) {
	deps := newTestDeps(t)
	eng := New(deps)
	sess := newTestSession(t, deps)

	quest := &component.DailyQuest{DefID: 1, Counter: component.CounterTasksCompleted, Target: 5}
	sess.Quests.Quests = []*component.DailyQuest{quest}

	eng.ReportCounter(sess, component.CounterTasksCompleted, 3)

	assert.Equal(t, 3, quest.Current)
	row := sess.Achievements[1]
	require.NotNil(t, row)
	assert.Equal(t, 3, row.Current)
	assert.True(t, row.Unlocked)
}

func TestEngineDelegatesStatResolution(t *testing.T) {
	deps := newTestDeps(t)
	eng := New(deps)
	sess := newTestSession(t, deps)
	sess.Char.BaseStats = component.StatBlock{8, 8, 8, 8, 8, 8}

	resolved, err := eng.ResolveStats(sess)
	require.NoError(t, err)
	assert.Equal(t, 10, resolved.Values.Get(component.StatStrength)) // +2 Aries
	assert.Equal(t, 8, resolved.Values.Get(component.StatWisdom))
}
