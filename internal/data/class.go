package data

import (
	"fmt"
	"os"

	"github.com/questling/server/internal/component"
	"gopkg.in/yaml.v3"
)

// ClassTier separates starter classes (assignable at the class-unlock level
// and after rebirth) from evolved classes (reachable only via EvolveClass).
type ClassTier int

const (
	TierStarter ClassTier = iota
	TierEvolved
)

func (t ClassTier) String() string {
	if t == TierStarter {
		return "starter"
	}
	return "evolved"
}

// Class holds one class definition. Flat stat bonuses apply to every
// effective-stat resolution; evolve fields gate the starter → evolved
// transition.
type Class struct {
	ID   int32
	Name string
	Tier ClassTier

	Bonuses component.StatBlock

	// Evolution gate. Zero for starter classes.
	EvolvesFrom     int32
	EvolveStat      component.Stat
	EvolveThreshold int

	// Fraction of MaxHP restored on level-up.
	HPRestoreFrac float64
	StartHP       int
}

// ClassTable indexes classes by ID and keeps the starter list for rebirth.
type ClassTable struct {
	byID     map[int32]*Class
	starters []*Class
}

// Get returns a Class by ID, or nil if not found.
func (t *ClassTable) Get(id int32) *Class {
	return t.byID[id]
}

// Starters returns all starter-tier classes.
func (t *ClassTable) Starters() []*Class {
	return t.starters
}

// EvolutionsOf returns the evolved classes reachable from the given starter.
func (t *ClassTable) EvolutionsOf(starterID int32) []*Class {
	var out []*Class
	for _, c := range t.byID {
		if c.Tier == TierEvolved && c.EvolvesFrom == starterID {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the number of classes loaded.
func (t *ClassTable) Count() int {
	return len(t.byID)
}

// --- YAML loading ---

type classEntry struct {
	ID              int32          `yaml:"id"`
	Name            string         `yaml:"name"`
	Tier            string         `yaml:"tier"`
	Bonuses         map[string]int `yaml:"bonuses"`
	EvolvesFrom     int32          `yaml:"evolves_from"`
	EvolveStat      string         `yaml:"evolve_stat"`
	EvolveThreshold int            `yaml:"evolve_threshold"`
	HPRestoreFrac   float64        `yaml:"hp_restore_frac"`
	StartHP         int            `yaml:"start_hp"`
}

type classFile struct {
	Classes []classEntry `yaml:"classes"`
}

// LoadClassTable loads class definitions from YAML and validates evolution
// references. A dangling evolves_from or an unknown stat name fails the load.
func LoadClassTable(path string) (*ClassTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("class: read %s: %w", path, err)
	}

	var f classFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("class: parse %s: %w", path, err)
	}

	t := &ClassTable{byID: make(map[int32]*Class, len(f.Classes))}
	for _, e := range f.Classes {
		c := &Class{
			ID:              e.ID,
			Name:            e.Name,
			EvolvesFrom:     e.EvolvesFrom,
			EvolveThreshold: e.EvolveThreshold,
			HPRestoreFrac:   e.HPRestoreFrac,
			StartHP:         e.StartHP,
		}
		switch e.Tier {
		case "starter":
			c.Tier = TierStarter
		case "evolved":
			c.Tier = TierEvolved
		default:
			return nil, fmt.Errorf("class %q: unknown tier %q", e.Name, e.Tier)
		}
		for name, v := range e.Bonuses {
			s, err := component.ParseStat(name)
			if err != nil {
				return nil, fmt.Errorf("class %q: %w", e.Name, err)
			}
			c.Bonuses.Add(s, v)
		}
		if c.Tier == TierEvolved {
			s, err := component.ParseStat(e.EvolveStat)
			if err != nil {
				return nil, fmt.Errorf("class %q: %w", e.Name, err)
			}
			c.EvolveStat = s
		}
		if c.HPRestoreFrac <= 0 || c.HPRestoreFrac > 1 {
			return nil, fmt.Errorf("class %q: hp_restore_frac %v out of (0,1]", e.Name, c.HPRestoreFrac)
		}
		if _, dup := t.byID[c.ID]; dup {
			return nil, fmt.Errorf("class %q: duplicate id %d", e.Name, c.ID)
		}
		t.byID[c.ID] = c
		if c.Tier == TierStarter {
			t.starters = append(t.starters, c)
		}
	}

	// Cross-check evolution references.
	for _, c := range t.byID {
		if c.Tier != TierEvolved {
			continue
		}
		base := t.byID[c.EvolvesFrom]
		if base == nil {
			return nil, fmt.Errorf("class %q: evolves_from %d not found", c.Name, c.EvolvesFrom)
		}
		if base.Tier != TierStarter {
			return nil, fmt.Errorf("class %q: evolves_from %q is not a starter", c.Name, base.Name)
		}
	}
	if len(t.starters) == 0 {
		return nil, fmt.Errorf("class: no starter classes in %s", path)
	}
	return t, nil
}
