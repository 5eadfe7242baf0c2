// Package entity provides the player and hostile combatants.
package entity

import (
	"github.com/samdwyer/timelock/internal/combat"
	"github.com/samdwyer/timelock/internal/gamedata"
)

// Player is the single player-controlled combatant. It also carries the
// overworld position, since the same avatar walks the scenes.
type Player struct {
	Name   string
	Symbol rune // Display symbol ('@' in explore mode)
	X, Y   int  // Position in the current scene

	// Combat stats
	HP, MaxHP   int
	SP, MaxSP   int
	Attack      int
	Defense     int
	TempDefense int // Added to Defense, reset at the start of every player turn
}

// NewPlayer creates a player from its definition.
func NewPlayer(def *gamedata.PlayerDef) *Player {
	p := &Player{Symbol: '@'}
	p.Reset(def)
	return p
}

// Reset restores every stat to the definition's base values.
func (p *Player) Reset(def *gamedata.PlayerDef) {
	if def == nil {
		return
	}
	p.Name = def.Name
	p.HP = def.HP
	p.MaxHP = def.HP
	p.SP = def.SP
	p.MaxSP = def.SP
	p.Attack = def.Attack
	p.Defense = def.Defense
	p.TempDefense = 0
}

// Move updates the player position by the given delta.
func (p *Player) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// SetPosition places the player.
func (p *Player) SetPosition(x, y int) {
	p.X = x
	p.Y = y
}

// Position returns the current x, y coordinates.
func (p *Player) Position() (int, int) {
	return p.X, p.Y
}

// =============================================================================
// Combatant interface implementation
// =============================================================================

// GetName returns the player's name.
func (p *Player) GetName() string { return p.Name }

// GetSlot returns combat.PlayerSlot.
func (p *Player) GetSlot() int { return combat.PlayerSlot }

// IsAlive returns true if the player has HP remaining.
func (p *Player) IsAlive() bool { return p.HP > 0 }

// GetHP returns current HP.
func (p *Player) GetHP() int { return p.HP }

// GetMaxHP returns maximum HP.
func (p *Player) GetMaxHP() int { return p.MaxHP }

// GetSP returns current SP.
func (p *Player) GetSP() int { return p.SP }

// GetMaxSP returns maximum SP.
func (p *Player) GetMaxSP() int { return p.MaxSP }

// GetAttack returns attack stat.
func (p *Player) GetAttack() int { return p.Attack }

// GetDefense returns base plus temporary defense.
func (p *Player) GetDefense() int { return p.Defense + p.TempDefense }

// TakeDamage reduces HP and returns actual damage taken.
func (p *Player) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > p.HP {
		actual = p.HP
	}
	p.HP -= actual
	return actual
}

// Heal restores HP and returns actual amount healed.
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if p.HP+actual > p.MaxHP {
		actual = p.MaxHP - p.HP
	}
	p.HP += actual
	return actual
}

// SpendSP reduces SP and returns false if insufficient.
func (p *Player) SpendSP(amount int) bool {
	if p.SP < amount {
		return false
	}
	p.SP -= amount
	return true
}

// RestoreSP restores SP and returns actual amount restored.
func (p *Player) RestoreSP(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if p.SP+actual > p.MaxSP {
		actual = p.MaxSP - p.SP
	}
	p.SP += actual
	return actual
}

// AddTemporaryDefense stacks a defense bonus. There is no cap.
func (p *Player) AddTemporaryDefense(amount int) {
	p.TempDefense += amount
}

// ResetTemporaryDefense drops any defense bonus.
func (p *Player) ResetTemporaryDefense() {
	p.TempDefense = 0
}

// Ensure Player implements combat.Caster
var _ combat.Caster = (*Player)(nil)
