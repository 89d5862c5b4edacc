package component

// Character stores all progression state for one player character.
// Pure data, zero methods; all mutations happen in engine system functions.
type Character struct {
	ID   int64
	Name string

	Level        int   // 1..MaxLevel
	Exp          int64 // monotonic within a life, reset only by rebirth
	RebirthCount int
	ParagonLevel int // meaningful only at the level cap

	UnspentStatPoints int
	BaseStats         StatBlock

	ClassID  int32 // 0 = no class yet (pre class-unlock level)
	ZodiacID int32 // immutable after creation

	Gold int64
	Gems int64

	HP    int
	MaxHP int

	// Dirty marks the character for the next persistence flush.
	Dirty bool
}
