package component

// DailyQuest is one day's quest instance. Created at rollover, replaced at
// the next rollover. Completion is derived from Current/Target, never stored.
type DailyQuest struct {
	DefID   int32
	Counter CounterKind
	Target  int
	Current int // clamped to Target

	ExpReward  int64
	GoldReward int64

	Bonus   bool // the meta-quest "complete the other three"
	Claimed bool // terminal, one-way
}

// Completed reports whether the quest's own counter is satisfied. For the
// bonus quest the engine additionally requires all regular quests claimed-or-
// completed; see engine.QuestSystem.
func (q *DailyQuest) Completed() bool {
	return q.Current >= q.Target
}

// QuestLog holds the active day's quests for one character.
type QuestLog struct {
	Day    int64 // day stamp of the last rollover (unix days)
	Quests []*DailyQuest
}
