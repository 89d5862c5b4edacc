package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// QuestRow mirrors one daily_quests row.
type QuestRow struct {
	OwnerID    int64
	DefID      int32
	Day        int64
	Counter    int
	Target     int
	Current    int
	ExpReward  int64
	GoldReward int64
	Bonus      bool
	Claimed    bool
}

// AchievementRow mirrors one achievement_progress row.
type AchievementRow struct {
	OwnerID    int64
	DefID      int32
	Current    int
	Unlocked   bool
	UnlockedAt *time.Time
}

// ProgressRepo persists quest logs and achievement progress.
type ProgressRepo struct {
	db *DB
}

func NewProgressRepo(db *DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// LoadQuests returns a character's quest rows for one day stamp.
func (r *ProgressRepo) LoadQuests(ctx context.Context, ownerID int64, day int64) ([]*QuestRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT owner_id, def_id, day, counter, target, current,
		        exp_reward, gold_reward, bonus, claimed
		 FROM daily_quests WHERE owner_id = $1 AND day = $2 ORDER BY def_id`, ownerID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*QuestRow
	for rows.Next() {
		var q QuestRow
		if err := rows.Scan(
			&q.OwnerID, &q.DefID, &q.Day, &q.Counter, &q.Target, &q.Current,
			&q.ExpReward, &q.GoldReward, &q.Bonus, &q.Claimed,
		); err != nil {
			return nil, err
		}
		result = append(result, &q)
	}
	return result, rows.Err()
}

// ReplaceQuests rewrites a character's quest log: stale days are dropped,
// the current day's rows inserted.
func (r *ProgressRepo) ReplaceQuests(ctx context.Context, ownerID int64, quests []*QuestRow) error {
	return pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM daily_quests WHERE owner_id = $1`, ownerID); err != nil {
			return fmt.Errorf("clear quests: %w", err)
		}
		for _, q := range quests {
			if _, err := tx.Exec(ctx,
				`INSERT INTO daily_quests (owner_id, def_id, day, counter, target,
				     current, exp_reward, gold_reward, bonus, claimed)
				 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
				q.OwnerID, q.DefID, q.Day, q.Counter, q.Target,
				q.Current, q.ExpReward, q.GoldReward, q.Bonus, q.Claimed,
			); err != nil {
				return fmt.Errorf("insert quest: %w", err)
			}
		}
		return nil
	})
}

// LoadAchievements returns all achievement rows for a character.
func (r *ProgressRepo) LoadAchievements(ctx context.Context, ownerID int64) ([]*AchievementRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT owner_id, def_id, current, unlocked, unlocked_at
		 FROM achievement_progress WHERE owner_id = $1 ORDER BY def_id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*AchievementRow
	for rows.Next() {
		var a AchievementRow
		if err := rows.Scan(&a.OwnerID, &a.DefID, &a.Current, &a.Unlocked, &a.UnlockedAt); err != nil {
			return nil, err
		}
		result = append(result, &a)
	}
	return result, rows.Err()
}

// UpsertAchievements writes achievement progress. Unlocks are one-way in the
// engine, so a plain upsert is safe.
func (r *ProgressRepo) UpsertAchievements(ctx context.Context, achievements []*AchievementRow) error {
	for _, a := range achievements {
		if _, err := r.db.Pool.Exec(ctx,
			`INSERT INTO achievement_progress (owner_id, def_id, current, unlocked, unlocked_at)
			 VALUES ($1,$2,$3,$4,$5)
			 ON CONFLICT (owner_id, def_id) DO UPDATE
			 SET current = EXCLUDED.current,
			     unlocked = EXCLUDED.unlocked,
			     unlocked_at = EXCLUDED.unlocked_at`,
			a.OwnerID, a.DefID, a.Current, a.Unlocked, a.UnlockedAt,
		); err != nil {
			return fmt.Errorf("upsert achievement %d/%d: %w", a.OwnerID, a.DefID, err)
		}
	}
	return nil
}
