package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/timelock/internal/combat"
	"github.com/samdwyer/timelock/internal/gamedata"
)

// Hostile is one encounter slot. An initialized hostile is alive and
// targetable; an uninitialized one is inert and skipped by every iteration.
type Hostile struct {
	Def     *gamedata.HostileDef // nil while the slot has never been filled
	Name    string
	Kind    string // Type tag for the hostile action table
	Symbol  rune
	Slot    int
	HP      int
	MaxHP   int
	Attack  int
	Defense int

	initialized bool
}

// NewHostile creates an initialized hostile from a definition.
func NewHostile(def *gamedata.HostileDef, slot int) *Hostile {
	h := &Hostile{Slot: slot}
	h.Init(def)
	return h
}

// NewInertHostile creates an empty slot.
func NewInertHostile(slot int) *Hostile {
	return &Hostile{Slot: slot, Symbol: ' '}
}

// Init (re)initializes the slot with fresh stats from def.
func (h *Hostile) Init(def *gamedata.HostileDef) {
	h.Def = def
	h.Name = def.Name
	h.Kind = def.Kind
	h.Symbol = def.GlyphRune()
	h.HP = def.HP
	h.MaxHP = def.HP
	h.Attack = def.Attack
	h.Defense = def.Defense
	h.initialized = true
}

// Initialized reports whether the slot holds a living hostile.
func (h *Hostile) Initialized() bool {
	return h.initialized
}

// Color returns the tcell color for this hostile.
func (h *Hostile) Color() tcell.Color {
	if h.Def != nil {
		return h.Def.TCellColor()
	}
	return tcell.ColorGray
}

// ID returns the hostile's type identifier.
func (h *Hostile) ID() string {
	if h.Def != nil {
		return h.Def.ID
	}
	return ""
}

// =============================================================================
// Combatant interface implementation
// =============================================================================

// GetName returns the hostile's name.
func (h *Hostile) GetName() string { return h.Name }

// GetKind returns the action table type tag.
func (h *Hostile) GetKind() string { return h.Kind }

// GetSlot returns the roster slot index.
func (h *Hostile) GetSlot() int { return h.Slot }

// IsAlive is the same as Initialized.
func (h *Hostile) IsAlive() bool { return h.initialized }

// GetHP returns current HP.
func (h *Hostile) GetHP() int { return h.HP }

// GetMaxHP returns maximum HP.
func (h *Hostile) GetMaxHP() int { return h.MaxHP }

// GetAttack returns attack stat.
func (h *Hostile) GetAttack() int { return h.Attack }

// GetDefense returns defense stat.
func (h *Hostile) GetDefense() int { return h.Defense }

// TakeDamage subtracts amount from HP without clamping the amount: a negative
// amount heals, up to MaxHP. At zero HP or below the hostile becomes inert.
// Returns amount unchanged, or 0 for an inert slot.
func (h *Hostile) TakeDamage(amount int) int {
	if !h.initialized {
		return 0
	}
	h.HP -= amount
	if h.HP > h.MaxHP {
		h.HP = h.MaxHP
	}
	if h.HP <= 0 {
		h.HP = 0
		h.initialized = false
	}
	return amount
}

// Heal restores HP and returns actual amount healed.
func (h *Hostile) Heal(amount int) int {
	if amount <= 0 || !h.initialized {
		return 0
	}
	actual := amount
	if h.HP+actual > h.MaxHP {
		actual = h.MaxHP - h.HP
	}
	h.HP += actual
	return actual
}

// Ensure Hostile implements combat.Hostile
var _ combat.Hostile = (*Hostile)(nil)
