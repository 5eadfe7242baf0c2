// Package combat provides the turn-based combat rules for Timelock.
package combat

// PlayerSlot is the slot reported by the player combatant.
const PlayerSlot = -1

// Combatant is the interface for any entity that can participate in combat.
// Both the player and hostiles implement this interface.
type Combatant interface {
	// Identity
	GetName() string
	GetSlot() int
	IsAlive() bool

	// Stats
	GetHP() int
	GetMaxHP() int
	GetAttack() int
	GetDefense() int // Total defense, including any temporary bonus

	// Mutations
	TakeDamage(amount int) int // Returns the damage applied
	Heal(amount int) int       // Returns actual amount healed
}

// Caster is a combatant with special points and a temporary defense pool.
type Caster interface {
	Combatant

	GetSP() int
	GetMaxSP() int
	SpendSP(amount int) bool  // Returns false if insufficient SP
	RestoreSP(amount int) int // Returns actual amount restored
	AddTemporaryDefense(amount int)
}

// Hostile is a combatant driven by the hostile action table.
type Hostile interface {
	Combatant
	GetKind() string
}

// EffectKind classifies a single observable change produced by an action.
type EffectKind int

const (
	EffectDamage EffectKind = iota
	EffectHeal
	EffectMiss
	EffectGuard
	EffectSPSpent
	EffectSPRestored
	EffectSpawn
)

// String returns the effect kind name.
func (k EffectKind) String() string {
	switch k {
	case EffectDamage:
		return "damage"
	case EffectHeal:
		return "heal"
	case EffectMiss:
		return "miss"
	case EffectGuard:
		return "guard"
	case EffectSPSpent:
		return "sp_spent"
	case EffectSPRestored:
		return "sp_restored"
	case EffectSpawn:
		return "spawn"
	default:
		return "unknown"
	}
}

// Effect is one change to one combatant. Amount is signed for damage: a
// negative damage amount healed the target.
type Effect struct {
	Kind   EffectKind
	Source string
	Target string
	Slot   int // Slot of the affected combatant, PlayerSlot for the player
	Amount int
}

// EffectResult contains the outcome of resolving an action.
type EffectResult struct {
	Success bool
	Effects []Effect
	Message string // Human-readable description
}

// Damage sums the damage effects in the result.
func (r EffectResult) Damage() int {
	total := 0
	for _, e := range r.Effects {
		if e.Kind == EffectDamage {
			total += e.Amount
		}
	}
	return total
}
