package engine

import (
	"testing"

	"github.com/questling/server/internal/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuestSystem(deps *Deps) *QuestSystem {
	return NewQuestSystem(deps, newLevelSystem(deps))
}

func TestRolloverDailyPicksThreePlusBonus(t *testing.T) {
	deps := newTestDeps(t)
	sess := newTestSession(t, deps)
	quests := newQuestSystem(deps)

	require.True(t, quests.RolloverDaily(sess, 100))
	require.Len(t, sess.Quests.Quests, 4)
	assert.Equal(t, int64(100), sess.Quests.Day)

	seen := make(map[int32]bool)
	for i, q := range sess.Quests.Quests {
		assert.False(t, seen[q.DefID], "duplicate quest %d", q.DefID)
		seen[q.DefID] = true
		if i < 3 {
			assert.False(t, q.Bonus)
			assert.NotNil(t, deps.Quests.Get(q.DefID))
		}
	}

	bonus := sess.Quests.Quests[3]
	assert.True(t, bonus.Bonus)
	assert.Equal(t, 3, bonus.Target)
}

func TestRolloverDailyIdempotentWithinDay(t *testing.T) {
	deps := newTestDeps(t)
	sess := newTestSession(t, deps)
	quests := newQuestSystem(deps)

	require.True(t, quests.RolloverDaily(sess, 100))
	sess.Quests.Quests[0].Current = 2

	assert.False(t, quests.RolloverDaily(sess, 100))
	assert.Equal(t, 2, sess.Quests.Quests[0].Current, "same-day rollover must keep progress")
}

func TestRolloverDailyNewDayResets(t *testing.T) {
	deps := newTestDeps(t)
	sess := newTestSession(t, deps)
	quests := newQuestSystem(deps)

	require.True(t, quests.RolloverDaily(sess, 100))
	sess.Quests.Quests[0].Current = 2
	sess.Quests.Quests[0].Claimed = true

	require.True(t, quests.RolloverDaily(sess, 101))
	assert.Equal(t, int64(101), sess.Quests.Day)
	for _, q := range sess.Quests.Quests {
		assert.Zero(t, q.Current)
		assert.False(t, q.Claimed)
	}
}

func TestAdvanceClampsAndSkips(t *testing.T) {
	deps := newTestDeps(t)
	sess := newTestSession(t, deps)
	quests := newQuestSystem(deps)

	active := &component.DailyQuest{DefID: 1, Counter: component.CounterTasksCompleted, Target: 5}
	claimed := &component.DailyQuest{DefID: 2, Counter: component.CounterTasksCompleted, Target: 5, Claimed: true}
	bonus := &component.DailyQuest{DefID: 100, Counter: component.CounterTasksCompleted, Target: 3, Bonus: true}
	sess.Quests.Quests = []*component.DailyQuest{active, claimed, bonus}

	quests.Advance(sess, component.CounterTasksCompleted, 8)
	assert.Equal(t, 5, active.Current, "clamped to target")
	assert.Zero(t, claimed.Current, "claimed quests stop advancing")
	assert.Zero(t, bonus.Current, "the bonus quest never advances from counters")

	quests.Advance(sess, component.CounterTasksCompleted, -3)
	assert.Equal(t, 5, active.Current)
}

func TestClaimGrantsRewardsOnce(t *testing.T) {
	deps := newTestDeps(t)
	sess := newTestSession(t, deps)
	quests := newQuestSystem(deps)

	quest := &component.DailyQuest{
		DefID: 1, Counter: component.CounterTasksCompleted,
		Target: 5, Current: 5, ExpReward: 400, GoldReward: 150,
	}
	sess.Quests.Quests = []*component.DailyQuest{quest}

	require.True(t, quests.Claim(sess, quest))
	assert.True(t, quest.Claimed)
	assert.Equal(t, int64(150), sess.Char.Gold)
	assert.Equal(t, int64(400), sess.Char.Exp)

	assert.False(t, quests.Claim(sess, quest), "claim is one-way")
	assert.Equal(t, int64(150), sess.Char.Gold, "no double payout")
}

func TestClaimRefusesIncomplete(t *testing.T) {
	deps := newTestDeps(t)
	sess := newTestSession(t, deps)
	quests := newQuestSystem(deps)

	quest := &component.DailyQuest{DefID: 1, Target: 5, Current: 4, GoldReward: 150}
	sess.Quests.Quests = []*component.DailyQuest{quest}

	assert.False(t, quests.Claim(sess, quest))
	assert.False(t, quest.Claimed)
	assert.Zero(t, sess.Char.Gold)
}

func TestClaimAppliesRebirthGoldBonus(t *testing.T) {
	deps := newTestDeps(t)
	sess := newTestSession(t, deps)
	sess.Char.RebirthCount = 2 // +5% gold
	quests := newQuestSystem(deps)

	quest := &component.DailyQuest{DefID: 1, Target: 1, Current: 1, GoldReward: 100}
	sess.Quests.Quests = []*component.DailyQuest{quest}

	require.True(t, quests.Claim(sess, quest))
	assert.Equal(t, int64(105), sess.Char.Gold)
}

func TestBonusQuestGatedOnRegularCompletion(t *testing.T) {
	deps := newTestDeps(t)
	sess := newTestSession(t, deps)
	quests := newQuestSystem(deps)

	regulars := []*component.DailyQuest{
		{DefID: 1, Counter: component.CounterTasksCompleted, Target: 2},
		{DefID: 2, Counter: component.CounterMoodsLogged, Target: 1},
		{DefID: 3, Counter: component.CounterItemsForged, Target: 1},
	}
	bonus := &component.DailyQuest{DefID: 100, Target: 3, Bonus: true, GoldReward: 500}
	sess.Quests.Quests = append(regulars, bonus)

	assert.False(t, quests.BonusCompletable(sess))
	assert.False(t, quests.Claim(sess, bonus))

	quests.Advance(sess, component.CounterTasksCompleted, 2)
	quests.Advance(sess, component.CounterMoodsLogged, 1)
	assert.False(t, quests.BonusCompletable(sess), "two of three done")
	assert.False(t, quests.Claim(sess, bonus))

	quests.Advance(sess, component.CounterItemsForged, 1)
	assert.True(t, quests.BonusCompletable(sess))
	require.True(t, quests.Claim(sess, bonus))
	assert.Equal(t, int64(500), sess.Char.Gold)
}
