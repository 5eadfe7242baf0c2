package combat

import (
	"github.com/samdwyer/timelock/internal/gamedata"
)

// ActionResolver calculates and applies player action effects.
type ActionResolver struct{}

// NewActionResolver creates a new action resolver.
func NewActionResolver() *ActionResolver {
	return &ActionResolver{}
}

// CanUse checks if a caster can pay for an action.
func (r *ActionResolver) CanUse(action *gamedata.ActionDef, user Caster) bool {
	if action == nil {
		return false
	}
	return user.GetSP() >= action.SPCost
}

// Resolve applies an action from the user to the given targets.
// Self-targeted actions ignore targets. A failed result mutates nothing.
func (r *ActionResolver) Resolve(action *gamedata.ActionDef, user Caster, targets []Combatant) EffectResult {
	if action == nil {
		return EffectResult{Success: false, Message: "Invalid action"}
	}

	if !r.CanUse(action, user) {
		return EffectResult{
			Success: false,
			Message: user.GetName() + " doesn't have enough SP!",
		}
	}

	if action.NeedsTarget() && len(targets) == 0 {
		return EffectResult{Success: false, Message: action.Name + " needs a target"}
	}

	var effects []Effect
	if action.SPCost > 0 {
		user.SpendSP(action.SPCost)
		effects = append(effects, Effect{
			Kind:   EffectSPSpent,
			Source: user.GetName(),
			Target: user.GetName(),
			Slot:   user.GetSlot(),
			Amount: action.SPCost,
		})
	}

	switch action.Effect {
	case gamedata.EffectStrike:
		effects = append(effects, r.resolveStrike(user, targets[0]))
	case gamedata.EffectSweep:
		effects = append(effects, r.resolveSweep(action, user, targets)...)
	case gamedata.EffectGuard:
		effects = append(effects, r.resolveGuard(action, user)...)
	case gamedata.EffectMend:
		effects = append(effects, r.resolveMend(action, user))
	default:
		return EffectResult{Success: false, Message: "Unknown action effect type"}
	}

	return EffectResult{
		Success: true,
		Effects: effects,
		Message: user.GetName() + " uses " + action.Name + "!",
	}
}

// resolveStrike deals attack minus defense to one target. The result is not
// clamped, so a target with more defense than the attacker's attack gains health.
func (r *ActionResolver) resolveStrike(user Caster, target Combatant) Effect {
	damage := user.GetAttack() - target.GetDefense()
	return Effect{
		Kind:   EffectDamage,
		Source: user.GetName(),
		Target: target.GetName(),
		Slot:   target.GetSlot(),
		Amount: target.TakeDamage(damage),
	}
}

// resolveSweep hits every target with the same divided base, each target
// subtracting only its own defense.
func (r *ActionResolver) resolveSweep(action *gamedata.ActionDef, user Caster, targets []Combatant) []Effect {
	base := CeilDiv(user.GetAttack(), action.Divisor)
	effects := make([]Effect, 0, len(targets))
	for _, target := range targets {
		effects = append(effects, Effect{
			Kind:   EffectDamage,
			Source: user.GetName(),
			Target: target.GetName(),
			Slot:   target.GetSlot(),
			Amount: target.TakeDamage(base - target.GetDefense()),
		})
	}
	return effects
}

// resolveGuard stacks temporary defense and restores SP.
func (r *ActionResolver) resolveGuard(action *gamedata.ActionDef, user Caster) []Effect {
	user.AddTemporaryDefense(action.Power)
	effects := []Effect{{
		Kind:   EffectGuard,
		Source: user.GetName(),
		Target: user.GetName(),
		Slot:   user.GetSlot(),
		Amount: action.Power,
	}}
	if action.SPRestore > 0 {
		effects = append(effects, Effect{
			Kind:   EffectSPRestored,
			Source: user.GetName(),
			Target: user.GetName(),
			Slot:   user.GetSlot(),
			Amount: user.RestoreSP(action.SPRestore),
		})
	}
	return effects
}

// resolveMend heals the user, clamped to max health.
func (r *ActionResolver) resolveMend(action *gamedata.ActionDef, user Caster) Effect {
	return Effect{
		Kind:   EffectHeal,
		Source: user.GetName(),
		Target: user.GetName(),
		Slot:   user.GetSlot(),
		Amount: user.Heal(action.Power),
	}
}

// CeilDiv divides rounding toward positive infinity. A divisor below one is
// treated as one.
func CeilDiv(n, d int) int {
	if d < 1 {
		return n
	}
	q := n / d
	if n%d != 0 && (n > 0) == (d > 0) {
		q++
	}
	return q
}
