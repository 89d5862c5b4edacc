package engine

import "errors"

// ErrInvariant marks corrupted in-memory state: a loadout pointing at an item
// the character does not own, an Equipped flag out of sync with the loadout.
// These indicate a caller bug and abort the operation loudly; they are never
// recovered into a boolean no-op.
var ErrInvariant = errors.New("invariant violation")

// ErrConfiguration marks a reference to a class, recipe or definition that is
// not in the static catalogue. Catalogues are validated once at load, so this
// should not occur at runtime.
var ErrConfiguration = errors.New("configuration missing")
