package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/questling/server/internal/component"
	"github.com/questling/server/internal/world"
)

// Snapshotter loads character snapshots into sessions and writes dirty
// sessions back. The engine itself never sees this layer.
type Snapshotter struct {
	Characters *CharacterRepo
	Items      *ItemRepo
	Progress   *ProgressRepo
}

func NewSnapshotter(db *DB) *Snapshotter {
	return &Snapshotter{
		Characters: NewCharacterRepo(db),
		Items:      NewItemRepo(db),
		Progress:   NewProgressRepo(db),
	}
}

// LoadSession materializes one character with inventory, loadout, quest log
// and achievement progress. The loadout is rebuilt from equipped flags.
func (s *Snapshotter) LoadSession(ctx context.Context, state *world.State, charID int64, day int64) (*world.Session, error) {
	row, err := s.Characters.Load(ctx, charID)
	if err != nil {
		return nil, fmt.Errorf("load character %d: %w", charID, err)
	}
	if row == nil {
		return nil, nil
	}

	sess := world.NewSession(&component.Character{
		ID:                row.ID,
		Name:              row.Name,
		Level:             row.Level,
		Exp:               row.Exp,
		RebirthCount:      row.RebirthCount,
		ParagonLevel:      row.ParagonLevel,
		UnspentStatPoints: row.UnspentStatPoints,
		BaseStats: component.StatBlock{
			row.Strength, row.Wisdom, row.Charisma,
			row.Dexterity, row.Luck, row.Defense,
		},
		ClassID:  row.ClassID,
		ZodiacID: row.ZodiacID,
		Gold:     row.Gold,
		Gems:     row.Gems,
		HP:       row.HP,
		MaxHP:    row.MaxHP,
	})
	sess.Inv.Materials[component.MaterialEssence] = row.Essence
	sess.Inv.Materials[component.MaterialOre] = row.Ore
	sess.Inv.Materials[component.MaterialFragment] = row.Fragment

	itemRows, err := s.Items.LoadByOwner(ctx, charID)
	if err != nil {
		return nil, fmt.Errorf("load items for %d: %w", charID, err)
	}
	for _, ir := range itemRows {
		item := &component.EquipmentItem{
			ID:             state.ItemIDs().Acquire(),
			OwnerID:        ir.OwnerID,
			Slot:           component.Slot(ir.Slot),
			Rarity:         component.Rarity(ir.Rarity),
			Tier:           ir.Tier,
			PrimaryStat:    component.Stat(ir.PrimaryStat),
			PrimaryBonus:   ir.PrimaryBonus,
			HasSecondary:   ir.HasSecondary,
			SecondaryStat:  component.Stat(ir.SecondaryStat),
			SecondaryBonus: ir.SecondaryBonus,
			LevelReq:       ir.LevelReq,
			Equipped:       ir.Equipped,
		}
		sess.Inv.Add(item)
		if item.Equipped {
			sess.Loadout.Set(item.Slot, item.ID)
		}
	}

	questRows, err := s.Progress.LoadQuests(ctx, charID, day)
	if err != nil {
		return nil, fmt.Errorf("load quests for %d: %w", charID, err)
	}
	if len(questRows) > 0 {
		sess.Quests.Day = day
		for _, qr := range questRows {
			sess.Quests.Quests = append(sess.Quests.Quests, &component.DailyQuest{
				DefID:      qr.DefID,
				Counter:    component.CounterKind(qr.Counter),
				Target:     qr.Target,
				Current:    qr.Current,
				ExpReward:  qr.ExpReward,
				GoldReward: qr.GoldReward,
				Bonus:      qr.Bonus,
				Claimed:    qr.Claimed,
			})
		}
	}

	achRows, err := s.Progress.LoadAchievements(ctx, charID)
	if err != nil {
		return nil, fmt.Errorf("load achievements for %d: %w", charID, err)
	}
	for _, ar := range achRows {
		row := &component.AchievementProgress{
			DefID:    ar.DefID,
			Current:  ar.Current,
			Unlocked: ar.Unlocked,
		}
		if ar.UnlockedAt != nil {
			row.UnlockedAt = *ar.UnlockedAt
		}
		sess.Achievements[ar.DefID] = row
	}

	state.Put(sess)
	return sess, nil
}

// SaveSession flushes one session and clears its dirty flag.
func (s *Snapshotter) SaveSession(ctx context.Context, sess *world.Session) error {
	char := sess.Char
	row := &CharacterRow{
		ID:                char.ID,
		Name:              char.Name,
		Level:             char.Level,
		Exp:               char.Exp,
		RebirthCount:      char.RebirthCount,
		ParagonLevel:      char.ParagonLevel,
		UnspentStatPoints: char.UnspentStatPoints,
		Strength:          char.BaseStats[component.StatStrength],
		Wisdom:            char.BaseStats[component.StatWisdom],
		Charisma:          char.BaseStats[component.StatCharisma],
		Dexterity:         char.BaseStats[component.StatDexterity],
		Luck:              char.BaseStats[component.StatLuck],
		Defense:           char.BaseStats[component.StatDefense],
		ClassID:           char.ClassID,
		ZodiacID:          char.ZodiacID,
		Gold:              char.Gold,
		Gems:              char.Gems,
		HP:                char.HP,
		MaxHP:             char.MaxHP,
		Essence:           sess.Inv.Materials[component.MaterialEssence],
		Ore:               sess.Inv.Materials[component.MaterialOre],
		Fragment:          sess.Inv.Materials[component.MaterialFragment],
	}
	if err := s.Characters.Save(ctx, row); err != nil {
		return fmt.Errorf("save character %d: %w", char.ID, err)
	}

	items := make([]*ItemRow, 0, sess.Inv.Size())
	for _, item := range sess.Inv.Items {
		items = append(items, &ItemRow{
			OwnerID:        item.OwnerID,
			Slot:           int(item.Slot),
			Rarity:         int(item.Rarity),
			Tier:           item.Tier,
			PrimaryStat:    int(item.PrimaryStat),
			PrimaryBonus:   item.PrimaryBonus,
			HasSecondary:   item.HasSecondary,
			SecondaryStat:  int(item.SecondaryStat),
			SecondaryBonus: item.SecondaryBonus,
			LevelReq:       item.LevelReq,
			Equipped:       item.Equipped,
		})
	}
	if err := s.Items.ReplaceByOwner(ctx, char.ID, items); err != nil {
		return fmt.Errorf("save items for %d: %w", char.ID, err)
	}

	quests := make([]*QuestRow, 0, len(sess.Quests.Quests))
	for _, q := range sess.Quests.Quests {
		quests = append(quests, &QuestRow{
			OwnerID:    char.ID,
			DefID:      q.DefID,
			Day:        sess.Quests.Day,
			Counter:    int(q.Counter),
			Target:     q.Target,
			Current:    q.Current,
			ExpReward:  q.ExpReward,
			GoldReward: q.GoldReward,
			Bonus:      q.Bonus,
			Claimed:    q.Claimed,
		})
	}
	if err := s.Progress.ReplaceQuests(ctx, char.ID, quests); err != nil {
		return fmt.Errorf("save quests for %d: %w", char.ID, err)
	}

	achievements := make([]*AchievementRow, 0, len(sess.Achievements))
	for _, a := range sess.Achievements {
		ar := &AchievementRow{
			OwnerID:  char.ID,
			DefID:    a.DefID,
			Current:  a.Current,
			Unlocked: a.Unlocked,
		}
		if a.Unlocked {
			t := a.UnlockedAt
			if t.IsZero() {
				t = time.Now()
			}
			ar.UnlockedAt = &t
		}
		achievements = append(achievements, ar)
	}
	if err := s.Progress.UpsertAchievements(ctx, achievements); err != nil {
		return fmt.Errorf("save achievements for %d: %w", char.ID, err)
	}

	char.Dirty = false
	return nil
}
