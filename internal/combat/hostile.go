package combat

import "fmt"

// HostileAction is the single action a hostile takes on its turn.
type HostileAction int

const (
	HostileAttack HostileAction = iota
	HostileMiss
	HostileLifesteal
	HostileSpawn
)

// String returns the action name.
func (a HostileAction) String() string {
	switch a {
	case HostileAttack:
		return "Attack"
	case HostileMiss:
		return "Miss"
	case HostileLifesteal:
		return "Lifesteal"
	case HostileSpawn:
		return "Spawn"
	default:
		return "Unknown"
	}
}

// Hostile kinds consulted by the action table.
const (
	KindLurker = "Lurker"
	KindInsect = "Insect"
	KindBat    = "Bat"
)

// Source supplies uniform draws in [0, 1).
// *math/rand.Rand satisfies Source.
type Source interface {
	Float64() float64
}

// SpawnFunc brings one inert slot back as a fresh Insect. It reports the
// slot it filled, or false when every slot is occupied.
type SpawnFunc func() (slot int, ok bool)

// actionRule is one row of the hostile action table.
type actionRule struct {
	kinds     []string
	threshold float64
	action    HostileAction
}

// actionTable is evaluated top to bottom; the first matching row wins.
var actionTable = []actionRule{
	{kinds: []string{KindLurker}, threshold: 0.05, action: HostileMiss},
	{kinds: []string{KindInsect, KindBat}, threshold: 0.03, action: HostileMiss},
	{kinds: []string{KindBat}, threshold: 0.10, action: HostileLifesteal},
	{kinds: []string{KindInsect}, threshold: 0.10, action: HostileSpawn},
}

func (r actionRule) appliesTo(kind string) bool {
	for _, k := range r.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// HostileOutcome is what one hostile did on its turn.
type HostileOutcome struct {
	Action  HostileAction // The action actually performed, after any degradation
	Effects []Effect
	Message string
}

// HostileResolver chooses and executes hostile actions.
type HostileResolver struct {
	rng Source
}

// NewHostileResolver creates a resolver drawing from rng.
func NewHostileResolver(rng Source) *HostileResolver {
	return &HostileResolver{rng: rng}
}

// Choose picks an action for a hostile of the given kind. Each table row
// whose kind matches takes its own independent draw; rows for other kinds
// consume nothing.
func (r *HostileResolver) Choose(kind string) HostileAction {
	for _, rule := range actionTable {
		if !rule.appliesTo(kind) {
			continue
		}
		if r.rng.Float64() <= rule.threshold {
			return rule.action
		}
	}
	return HostileAttack
}

// Execute commits a chosen action. Spawn with no inert slot, or with a nil
// spawn func, is performed as an Attack.
func (r *HostileResolver) Execute(action HostileAction, actor Hostile, player Combatant, spawn SpawnFunc) HostileOutcome {
	switch action {
	case HostileMiss:
		return HostileOutcome{
			Action: HostileMiss,
			Effects: []Effect{{
				Kind:   EffectMiss,
				Source: actor.GetName(),
				Target: player.GetName(),
				Slot:   player.GetSlot(),
			}},
			Message: actor.GetName() + " misses!",
		}
	case HostileLifesteal:
		damage := HostileDamage(actor, player)
		dealt := player.TakeDamage(damage)
		healed := actor.Heal(damage)
		return HostileOutcome{
			Action: HostileLifesteal,
			Effects: []Effect{
				{Kind: EffectDamage, Source: actor.GetName(), Target: player.GetName(), Slot: player.GetSlot(), Amount: dealt},
				{Kind: EffectHeal, Source: actor.GetName(), Target: actor.GetName(), Slot: actor.GetSlot(), Amount: healed},
			},
			Message: fmt.Sprintf("%s drains %d health!", actor.GetName(), dealt),
		}
	case HostileSpawn:
		if spawn != nil {
			if slot, ok := spawn(); ok {
				return HostileOutcome{
					Action: HostileSpawn,
					Effects: []Effect{{
						Kind:   EffectSpawn,
						Source: actor.GetName(),
						Target: KindInsect,
						Slot:   slot,
					}},
					Message: actor.GetName() + " calls another " + KindInsect + "!",
				}
			}
		}
		return r.attack(actor, player)
	default:
		return r.attack(actor, player)
	}
}

func (r *HostileResolver) attack(actor Hostile, player Combatant) HostileOutcome {
	dealt := player.TakeDamage(HostileDamage(actor, player))
	return HostileOutcome{
		Action: HostileAttack,
		Effects: []Effect{{
			Kind:   EffectDamage,
			Source: actor.GetName(),
			Target: player.GetName(),
			Slot:   player.GetSlot(),
			Amount: dealt,
		}},
		Message: fmt.Sprintf("%s attacks for %d!", actor.GetName(), dealt),
	}
}

// HostileDamage is the hostile's attack minus the player's total defense,
// floored at zero.
func HostileDamage(actor, player Combatant) int {
	return max(actor.GetAttack()-player.GetDefense(), 0)
}
