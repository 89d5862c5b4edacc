package data

import (
	"fmt"
	"os"

	"github.com/questling/server/internal/component"
	"gopkg.in/yaml.v3"
)

// Zodiac holds one zodiac sign. Each sign boosts exactly one stat by a flat
// +2; the sign is chosen at character creation and never changes.
type Zodiac struct {
	ID          int32          `yaml:"id"`
	Name        string         `yaml:"name"`
	BoostedStat component.Stat `yaml:"boosted_stat"`
}

// ZodiacBoost is the flat bonus a sign grants its boosted stat.
const ZodiacBoost = 2

// ZodiacTable indexes signs by ID.
type ZodiacTable struct {
	byID map[int32]*Zodiac
}

// Get returns a Zodiac by ID, or nil if not found.
func (t *ZodiacTable) Get(id int32) *Zodiac {
	return t.byID[id]
}

// Count returns the number of signs loaded.
func (t *ZodiacTable) Count() int {
	return len(t.byID)
}

type zodiacFile struct {
	Zodiacs []Zodiac `yaml:"zodiacs"`
}

// LoadZodiacTable loads zodiac definitions from YAML.
func LoadZodiacTable(path string) (*ZodiacTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("zodiac: read %s: %w", path, err)
	}

	var f zodiacFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("zodiac: parse %s: %w", path, err)
	}

	t := &ZodiacTable{byID: make(map[int32]*Zodiac, len(f.Zodiacs))}
	for i := range f.Zodiacs {
		z := &f.Zodiacs[i]
		if _, dup := t.byID[z.ID]; dup {
			return nil, fmt.Errorf("zodiac %q: duplicate id %d", z.Name, z.ID)
		}
		t.byID[z.ID] = z
	}
	return t, nil
}
