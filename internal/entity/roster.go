package entity

import (
	"github.com/samdwyer/timelock/internal/combat"
	"github.com/samdwyer/timelock/internal/gamedata"
)

// Roster is the ordered set of hostile slots in one encounter.
// Slots are addressed by index, never by name.
type Roster struct {
	slots []*Hostile
}

// NewRoster builds a roster from slot definitions. A nil definition leaves
// that slot inert.
func NewRoster(defs []*gamedata.HostileDef) *Roster {
	r := &Roster{slots: make([]*Hostile, len(defs))}
	for i, def := range defs {
		if def == nil {
			r.slots[i] = NewInertHostile(i)
			continue
		}
		r.slots[i] = NewHostile(def, i)
	}
	return r
}

// Len returns the number of slots, living or inert.
func (r *Roster) Len() int {
	return len(r.slots)
}

// Slot returns the hostile in slot i, or nil if out of range.
func (r *Roster) Slot(i int) *Hostile {
	if i < 0 || i >= len(r.slots) {
		return nil
	}
	return r.slots[i]
}

// Slots returns every slot in order.
func (r *Roster) Slots() []*Hostile {
	return r.slots
}

// Living returns the initialized hostiles in slot order.
func (r *Roster) Living() []*Hostile {
	var living []*Hostile
	for _, h := range r.slots {
		if h.Initialized() {
			living = append(living, h)
		}
	}
	return living
}

// LivingCount returns the number of initialized hostiles.
func (r *Roster) LivingCount() int {
	count := 0
	for _, h := range r.slots {
		if h.Initialized() {
			count++
		}
	}
	return count
}

// Targets returns the living hostiles as combatants.
func (r *Roster) Targets() []combat.Combatant {
	living := r.Living()
	targets := make([]combat.Combatant, len(living))
	for i, h := range living {
		targets[i] = h
	}
	return targets
}

// Spawn fills the first inert slot with a fresh hostile from def.
// Returns the slot index, or false if every slot is occupied.
func (r *Roster) Spawn(def *gamedata.HostileDef) (int, bool) {
	for i, h := range r.slots {
		if !h.Initialized() {
			h.Init(def)
			return i, true
		}
	}
	return 0, false
}
