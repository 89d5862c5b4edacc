package world

import (
	"github.com/questling/server/internal/component"
	"github.com/questling/server/internal/core/ident"
)

// Session bundles everything the engine mutates for one character: the
// character record, its inventory, the worn loadout, the active quest log and
// achievement progress. The host must serialize all mutating operations on a
// session; read-only queries may interleave with each other only.
type Session struct {
	Char         *component.Character
	Inv          *Inventory
	Loadout      *Loadout
	Quests       *component.QuestLog
	Achievements map[int32]*component.AchievementProgress
}

// NewSession wraps a loaded character snapshot in a fresh session.
func NewSession(char *component.Character) *Session {
	return &Session{
		Char:         char,
		Inv:          NewInventory(),
		Loadout:      &Loadout{},
		Quests:       &component.QuestLog{},
		Achievements: make(map[int32]*component.AchievementProgress, 16),
	}
}

// State is the in-memory registry of live sessions plus the item ID pool.
type State struct {
	sessions map[int64]*Session
	itemIDs  *ident.Pool
}

func NewState() *State {
	return &State{
		sessions: make(map[int64]*Session, 64),
		itemIDs:  ident.NewPool(),
	}
}

// ItemIDs returns the generational pool used for equipment item IDs.
func (s *State) ItemIDs() *ident.Pool {
	return s.itemIDs
}

// Get returns the session for a character ID, or nil.
func (s *State) Get(charID int64) *Session {
	return s.sessions[charID]
}

// Put registers a session.
func (s *State) Put(sess *Session) {
	s.sessions[sess.Char.ID] = sess
}

// Drop removes a session from the registry. The character record itself is
// never deleted here; that is the persistence layer's call.
func (s *State) Drop(charID int64) {
	delete(s.sessions, charID)
}

// Each visits every live session.
func (s *State) Each(fn func(*Session)) {
	for _, sess := range s.sessions {
		fn(sess)
	}
}

// Count returns the number of live sessions.
func (s *State) Count() int {
	return len(s.sessions)
}
