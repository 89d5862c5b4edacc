package data

import (
	"fmt"
	"os"

	"github.com/questling/server/internal/component"
	"gopkg.in/yaml.v3"
)

// QuestDef is one entry of the daily quest pool. Each rollover picks three
// regular definitions plus the single bonus definition.
type QuestDef struct {
	ID         int32                 `yaml:"id"`
	Name       string                `yaml:"name"`
	Counter    component.CounterKind `yaml:"counter"`
	Target     int                   `yaml:"target"`
	ExpReward  int64                 `yaml:"exp_reward"`
	GoldReward int64                 `yaml:"gold_reward"`
	Bonus      bool                  `yaml:"bonus"`
}

// QuestPool holds the regular pool and the bonus meta-quest definition.
type QuestPool struct {
	byID    map[int32]*QuestDef
	regular []*QuestDef
	bonus   *QuestDef
}

// Get returns a QuestDef by ID, or nil if not found.
func (p *QuestPool) Get(id int32) *QuestDef {
	return p.byID[id]
}

// Regular returns the regular (non-bonus) pool.
func (p *QuestPool) Regular() []*QuestDef {
	return p.regular
}

// BonusDef returns the bonus meta-quest definition.
func (p *QuestPool) BonusDef() *QuestDef {
	return p.bonus
}

// Count returns the number of definitions loaded, bonus included.
func (p *QuestPool) Count() int {
	return len(p.byID)
}

type questFile struct {
	Quests []QuestDef `yaml:"quests"`
}

// LoadQuestPool loads the daily quest pool from YAML. The pool must contain
// at least three regular quests and exactly one bonus quest.
func LoadQuestPool(path string) (*QuestPool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("quest: read %s: %w", path, err)
	}

	var f questFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("quest: parse %s: %w", path, err)
	}

	p := &QuestPool{byID: make(map[int32]*QuestDef, len(f.Quests))}
	for i := range f.Quests {
		q := &f.Quests[i]
		if q.Target <= 0 && !q.Bonus {
			return nil, fmt.Errorf("quest %q: target %d must be positive", q.Name, q.Target)
		}
		if _, dup := p.byID[q.ID]; dup {
			return nil, fmt.Errorf("quest %q: duplicate id %d", q.Name, q.ID)
		}
		p.byID[q.ID] = q
		if q.Bonus {
			if p.bonus != nil {
				return nil, fmt.Errorf("quest %q: second bonus quest (already have %q)", q.Name, p.bonus.Name)
			}
			p.bonus = q
		} else {
			p.regular = append(p.regular, q)
		}
	}
	if len(p.regular) < 3 {
		return nil, fmt.Errorf("quest: pool has %d regular quests, need at least 3", len(p.regular))
	}
	if p.bonus == nil {
		return nil, fmt.Errorf("quest: pool has no bonus quest")
	}
	return p, nil
}
