package data

import (
	"fmt"
	"os"

	"github.com/questling/server/internal/component"
	"gopkg.in/yaml.v3"
)

// AchievementDef is one achievement definition. Every character gets one
// progress row per definition at creation.
type AchievementDef struct {
	ID         int32                 `yaml:"id"`
	Name       string                `yaml:"name"`
	Counter    component.CounterKind `yaml:"counter"`
	Target     int                   `yaml:"target"`
	ExpReward  int64                 `yaml:"exp_reward"`
	GoldReward int64                 `yaml:"gold_reward"`
	GemReward  int64                 `yaml:"gem_reward"`
}

// AchievementTable indexes definitions by ID and by tracked counter.
type AchievementTable struct {
	byID      map[int32]*AchievementDef
	byCounter map[component.CounterKind][]*AchievementDef
}

// Get returns an AchievementDef by ID, or nil if not found.
func (t *AchievementTable) Get(id int32) *AchievementDef {
	return t.byID[id]
}

// ForCounter returns all definitions tracking the given counter.
func (t *AchievementTable) ForCounter(kind component.CounterKind) []*AchievementDef {
	return t.byCounter[kind]
}

// All returns every definition.
func (t *AchievementTable) All() []*AchievementDef {
	out := make([]*AchievementDef, 0, len(t.byID))
	for _, d := range t.byID {
		out = append(out, d)
	}
	return out
}

// Count returns the number of definitions loaded.
func (t *AchievementTable) Count() int {
	return len(t.byID)
}

type achievementFile struct {
	Achievements []AchievementDef `yaml:"achievements"`
}

// LoadAchievementTable loads achievement definitions from YAML.
func LoadAchievementTable(path string) (*AchievementTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("achievement: read %s: %w", path, err)
	}

	var f achievementFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("achievement: parse %s: %w", path, err)
	}

	t := &AchievementTable{
		byID:      make(map[int32]*AchievementDef, len(f.Achievements)),
		byCounter: make(map[component.CounterKind][]*AchievementDef),
	}
	for i := range f.Achievements {
		d := &f.Achievements[i]
		if d.Target <= 0 {
			return nil, fmt.Errorf("achievement %q: target %d must be positive", d.Name, d.Target)
		}
		if _, dup := t.byID[d.ID]; dup {
			return nil, fmt.Errorf("achievement %q: duplicate id %d", d.Name, d.ID)
		}
		t.byID[d.ID] = d
		t.byCounter[d.Counter] = append(t.byCounter[d.Counter], d)
	}
	return t, nil
}
