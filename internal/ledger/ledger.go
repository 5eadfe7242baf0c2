// Package ledger records the world facts that must survive scene reloads and
// encounter restarts: defeated and disabled hostiles, opened barriers,
// collected items, read markers and solved puzzles.
//
// The ledger lives for the whole process. It is mutated only from the game
// loop goroutine and therefore carries no locks.
package ledger

import (
	"sort"

	"go.uber.org/zap"
)

// Category selects one of the independent fact sets.
type Category int

const (
	// EntityDestroyed marks an overworld hostile defeated in an encounter.
	EntityDestroyed Category = iota
	// EntityDisabled marks an overworld hostile the player fled from. It is
	// temporary and is removed again with Deregister.
	EntityDisabled
	// BarrierOpen marks an opened door.
	BarrierOpen
	// ItemCollected marks a unique pickup (key, barrel contents) as taken.
	ItemCollected
	// MarkerRead marks a sign as read.
	MarkerRead
	// PuzzleSolved marks a completed puzzle.
	PuzzleSolved

	numCategories
)

// String returns the category name used in logs.
func (c Category) String() string {
	switch c {
	case EntityDestroyed:
		return "entity_destroyed"
	case EntityDisabled:
		return "entity_disabled"
	case BarrierOpen:
		return "barrier_open"
	case ItemCollected:
		return "item_collected"
	case MarkerRead:
		return "marker_read"
	case PuzzleSolved:
		return "puzzle_solved"
	default:
		return "unknown"
	}
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}

// ID is a stable, caller-assigned identifier of a world object.
// The zero value means "no object".
type ID string

// None is the empty identifier.
const None ID = ""

// Ledger is the process-wide store of world facts.
type Ledger struct {
	sets   [numCategories]map[ID]struct{}
	dials  [DialCount]Dial
	logger *zap.Logger
}

// New creates an empty ledger with every dial at its default position.
func New(logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Ledger{logger: logger}
	l.clear()
	return l
}

func (l *Ledger) clear() {
	for i := range l.sets {
		l.sets[i] = make(map[ID]struct{})
	}
	for i := range l.dials {
		l.dials[i] = DefaultDial
	}
}

// Register records id under cat. Registering an existing fact is a no-op.
// Returns true if the fact was newly added.
func (l *Ledger) Register(cat Category, id ID) bool {
	set, ok := l.set(cat)
	if !ok {
		return false
	}
	if _, exists := set[id]; exists {
		return false
	}
	set[id] = struct{}{}
	l.logger.Debug("ledger register",
		zap.Stringer("category", cat),
		zap.String("id", string(id)),
	)
	return true
}

// Contains reports whether id is recorded under cat.
func (l *Ledger) Contains(cat Category, id ID) bool {
	set, ok := l.set(cat)
	if !ok {
		return false
	}
	_, exists := set[id]
	return exists
}

// Deregister removes id from cat. Only EntityDisabled facts can be removed;
// for every other category this is a no-op. Returns true if a fact was removed.
func (l *Ledger) Deregister(cat Category, id ID) bool {
	if cat != EntityDisabled {
		return false
	}
	set := l.sets[cat]
	if _, exists := set[id]; !exists {
		return false
	}
	delete(set, id)
	l.logger.Debug("ledger deregister",
		zap.Stringer("category", cat),
		zap.String("id", string(id)),
	)
	return true
}

// ResetAll clears every category and returns all dials to DefaultDial.
func (l *Ledger) ResetAll() {
	l.clear()
	l.logger.Info("ledger reset")
}

// Len returns the number of facts recorded under cat.
func (l *Ledger) Len(cat Category) int {
	set, ok := l.set(cat)
	if !ok {
		return 0
	}
	return len(set)
}

// IDs returns the identifiers recorded under cat in sorted order.
func (l *Ledger) IDs(cat Category) []ID {
	set, ok := l.set(cat)
	if !ok {
		return nil
	}
	ids := make([]ID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (l *Ledger) set(cat Category) (map[ID]struct{}, bool) {
	if cat < 0 || cat >= numCategories {
		return nil, false
	}
	return l.sets[cat], true
}
