package data

import (
	"fmt"
	"os"
	"sort"

	"github.com/questling/server/internal/component"
	"gopkg.in/yaml.v3"
)

// ForgeRecipe is one tier of the forge cost table. Static, never mutated at
// runtime. The produced rarity always falls in [MinRarity, MaxRarity].
type ForgeRecipe struct {
	ID           int32            `yaml:"id"`
	Name         string           `yaml:"name"`
	Tier         int              `yaml:"tier"`
	EssenceCost  int              `yaml:"essence_cost"`
	OreCost      int              `yaml:"ore_cost"`
	FragmentCost int              `yaml:"fragment_cost"`
	GoldCost     int64            `yaml:"gold_cost"`
	MinRarity    component.Rarity `yaml:"min_rarity"`
	MaxRarity    component.Rarity `yaml:"max_rarity"`
}

// MaterialCost returns the cost for one material kind.
func (r *ForgeRecipe) MaterialCost(kind component.MaterialKind) int {
	switch kind {
	case component.MaterialEssence:
		return r.EssenceCost
	case component.MaterialOre:
		return r.OreCost
	case component.MaterialFragment:
		return r.FragmentCost
	}
	return 0
}

// RecipeTable indexes recipes by ID and keeps them tier-ordered.
type RecipeTable struct {
	byID   map[int32]*ForgeRecipe
	byTier []*ForgeRecipe
}

// Get returns a ForgeRecipe by ID, or nil if not found.
func (t *RecipeTable) Get(id int32) *ForgeRecipe {
	return t.byID[id]
}

// ByTier returns all recipes in ascending tier order.
func (t *RecipeTable) ByTier() []*ForgeRecipe {
	return t.byTier
}

// Count returns the number of recipes loaded.
func (t *RecipeTable) Count() int {
	return len(t.byID)
}

type recipeFile struct {
	Recipes []ForgeRecipe `yaml:"recipes"`
}

// LoadRecipeTable loads the forge cost table from YAML. Inverted rarity
// ranges and negative costs fail the load.
func LoadRecipeTable(path string) (*RecipeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recipe: read %s: %w", path, err)
	}

	var f recipeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("recipe: parse %s: %w", path, err)
	}

	t := &RecipeTable{byID: make(map[int32]*ForgeRecipe, len(f.Recipes))}
	for i := range f.Recipes {
		r := &f.Recipes[i]
		if r.MinRarity > r.MaxRarity {
			return nil, fmt.Errorf("recipe %q: min_rarity %s above max_rarity %s",
				r.Name, r.MinRarity, r.MaxRarity)
		}
		if r.EssenceCost < 0 || r.OreCost < 0 || r.FragmentCost < 0 || r.GoldCost < 0 {
			return nil, fmt.Errorf("recipe %q: negative cost", r.Name)
		}
		if r.Tier < 1 {
			return nil, fmt.Errorf("recipe %q: tier %d below 1", r.Name, r.Tier)
		}
		if _, dup := t.byID[r.ID]; dup {
			return nil, fmt.Errorf("recipe %q: duplicate id %d", r.Name, r.ID)
		}
		t.byID[r.ID] = r
		t.byTier = append(t.byTier, r)
	}
	sort.Slice(t.byTier, func(i, j int) bool { return t.byTier[i].Tier < t.byTier[j].Tier })
	return t, nil
}
