package component

import "fmt"

// Stat is one of the six character attributes. Closed set: catalogue files
// referencing unknown stat names are rejected at load time.
type Stat int

const (
	StatStrength Stat = iota
	StatWisdom
	StatCharisma
	StatDexterity
	StatLuck
	StatDefense

	StatCount = 6
)

var statNames = [StatCount]string{"strength", "wisdom", "charisma", "dexterity", "luck", "defense"}

// AllStats lists the six stats in canonical order.
var AllStats = [StatCount]Stat{StatStrength, StatWisdom, StatCharisma, StatDexterity, StatLuck, StatDefense}

func (s Stat) String() string {
	if s < 0 || int(s) >= StatCount {
		return fmt.Sprintf("stat#%d", int(s))
	}
	return statNames[s]
}

func ParseStat(name string) (Stat, error) {
	for i, n := range statNames {
		if n == name {
			return Stat(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stat %q", name)
}

func (s *Stat) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseStat(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// StatBlock holds one value per stat, indexed by Stat.
type StatBlock [StatCount]int

func (b StatBlock) Get(s Stat) int     { return b[s] }
func (b *StatBlock) Add(s Stat, v int) { b[s] += v }

// Total returns the sum of all six values.
func (b StatBlock) Total() int {
	t := 0
	for _, v := range b {
		t += v
	}
	return t
}
