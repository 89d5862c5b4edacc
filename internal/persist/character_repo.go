package persist

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// CharacterRow mirrors one characters table row.
type CharacterRow struct {
	ID                int64
	Name              string
	Level             int
	Exp               int64
	RebirthCount      int
	ParagonLevel      int
	UnspentStatPoints int
	Strength          int
	Wisdom            int
	Charisma          int
	Dexterity         int
	Luck              int
	Defense           int
	ClassID           int32
	ZodiacID          int32
	Gold              int64
	Gems              int64
	HP                int
	MaxHP             int
	Essence           int
	Ore               int
	Fragment          int
}

type CharacterRepo struct {
	db *DB
}

func NewCharacterRepo(db *DB) *CharacterRepo {
	return &CharacterRepo{db: db}
}

const characterColumns = `id, name, level, exp, rebirth_count, paragon_level,
	unspent_stat_points, strength, wisdom, charisma, dexterity, luck, defense,
	class_id, zodiac_id, gold, gems, hp, max_hp, essence, ore, fragment`

func scanCharacter(row pgx.Row) (*CharacterRow, error) {
	var c CharacterRow
	err := row.Scan(
		&c.ID, &c.Name, &c.Level, &c.Exp, &c.RebirthCount, &c.ParagonLevel,
		&c.UnspentStatPoints, &c.Strength, &c.Wisdom, &c.Charisma, &c.Dexterity, &c.Luck, &c.Defense,
		&c.ClassID, &c.ZodiacID, &c.Gold, &c.Gems, &c.HP, &c.MaxHP, &c.Essence, &c.Ore, &c.Fragment,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Load returns a character by ID, or nil when absent.
func (r *CharacterRepo) Load(ctx context.Context, id int64) (*CharacterRow, error) {
	c, err := scanCharacter(r.db.Pool.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// LoadAll returns every character, ID-ordered.
func (r *CharacterRepo) LoadAll(ctx context.Context) ([]*CharacterRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+characterColumns+` FROM characters ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*CharacterRow
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// Create inserts a new character and fills in its ID.
func (r *CharacterRepo) Create(ctx context.Context, c *CharacterRow) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO characters (name, level, exp, rebirth_count, paragon_level,
		     unspent_stat_points, strength, wisdom, charisma, dexterity, luck, defense,
		     class_id, zodiac_id, gold, gems, hp, max_hp, essence, ore, fragment)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		 RETURNING id`,
		c.Name, c.Level, c.Exp, c.RebirthCount, c.ParagonLevel,
		c.UnspentStatPoints, c.Strength, c.Wisdom, c.Charisma, c.Dexterity, c.Luck, c.Defense,
		c.ClassID, c.ZodiacID, c.Gold, c.Gems, c.HP, c.MaxHP, c.Essence, c.Ore, c.Fragment,
	).Scan(&c.ID)
}

// Save writes back a loaded character.
func (r *CharacterRepo) Save(ctx context.Context, c *CharacterRow) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE characters SET
		     level = $2, exp = $3, rebirth_count = $4, paragon_level = $5,
		     unspent_stat_points = $6, strength = $7, wisdom = $8, charisma = $9,
		     dexterity = $10, luck = $11, defense = $12, class_id = $13,
		     gold = $14, gems = $15, hp = $16, max_hp = $17,
		     essence = $18, ore = $19, fragment = $20, updated_at = now()
		 WHERE id = $1`,
		c.ID, c.Level, c.Exp, c.RebirthCount, c.ParagonLevel,
		c.UnspentStatPoints, c.Strength, c.Wisdom, c.Charisma,
		c.Dexterity, c.Luck, c.Defense, c.ClassID,
		c.Gold, c.Gems, c.HP, c.MaxHP, c.Essence, c.Ore, c.Fragment,
	)
	return err
}
