package persist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ItemRow mirrors one equipment_items row.
type ItemRow struct {
	ID             int64
	OwnerID        int64
	Slot           int
	Rarity         int
	Tier           int
	PrimaryStat    int
	PrimaryBonus   int
	HasSecondary   bool
	SecondaryStat  int
	SecondaryBonus int
	LevelReq       int
	Equipped       bool
}

type ItemRepo struct {
	db *DB
}

func NewItemRepo(db *DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// LoadByOwner returns all of a character's items.
func (r *ItemRepo) LoadByOwner(ctx context.Context, ownerID int64) ([]*ItemRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, owner_id, slot, rarity, tier, primary_stat, primary_bonus,
		        has_secondary, secondary_stat, secondary_bonus, level_req, equipped
		 FROM equipment_items WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*ItemRow
	for rows.Next() {
		var it ItemRow
		if err := rows.Scan(
			&it.ID, &it.OwnerID, &it.Slot, &it.Rarity, &it.Tier,
			&it.PrimaryStat, &it.PrimaryBonus, &it.HasSecondary,
			&it.SecondaryStat, &it.SecondaryBonus, &it.LevelReq, &it.Equipped,
		); err != nil {
			return nil, err
		}
		result = append(result, &it)
	}
	return result, rows.Err()
}

// ReplaceByOwner rewrites a character's item set in one transaction.
// Inventories are small, so delete-and-insert beats row diffing.
func (r *ItemRepo) ReplaceByOwner(ctx context.Context, ownerID int64, items []*ItemRow) error {
	return pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM equipment_items WHERE owner_id = $1`, ownerID); err != nil {
			return fmt.Errorf("clear items: %w", err)
		}
		for _, it := range items {
			if _, err := tx.Exec(ctx,
				`INSERT INTO equipment_items (owner_id, slot, rarity, tier,
				     primary_stat, primary_bonus, has_secondary,
				     secondary_stat, secondary_bonus, level_req, equipped)
				 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
				ownerID, it.Slot, it.Rarity, it.Tier,
				it.PrimaryStat, it.PrimaryBonus, it.HasSecondary,
				it.SecondaryStat, it.SecondaryBonus, it.LevelReq, it.Equipped,
			); err != nil {
				return fmt.Errorf("insert item: %w", err)
			}
		}
		return nil
	})
}
