package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/timelock/internal/combat"
	"github.com/samdwyer/timelock/internal/gamedata"
)

var (
	lurkerDef = &gamedata.HostileDef{ID: "lurker", Name: "Lurker", Kind: "Lurker", Glyph: "l", HP: 10, Attack: 3}
	insectDef = &gamedata.HostileDef{ID: "insect", Name: "Insect", Kind: "Insect", Glyph: "i", HP: 5, Attack: 3}
	playerDef = &gamedata.PlayerDef{Name: "Player", HP: 100, SP: 25, Attack: 5}
)

func TestPlayerDefenseIncludesTemporary(t *testing.T) {
	p := NewPlayer(playerDef)
	p.Defense = 1

	p.AddTemporaryDefense(2)
	p.AddTemporaryDefense(2)
	assert.Equal(t, 5, p.GetDefense())

	p.ResetTemporaryDefense()
	assert.Equal(t, 1, p.GetDefense())
}

func TestPlayerDamageClampsAtZero(t *testing.T) {
	p := NewPlayer(playerDef)

	assert.Equal(t, 0, p.TakeDamage(-4), "negative damage is ignored for the player")
	assert.Equal(t, 100, p.HP)

	assert.Equal(t, 100, p.TakeDamage(250))
	assert.Equal(t, 0, p.HP)
	assert.False(t, p.IsAlive())
}

func TestPlayerSP(t *testing.T) {
	p := NewPlayer(playerDef)

	assert.False(t, p.SpendSP(26))
	assert.Equal(t, 25, p.SP)
	assert.True(t, p.SpendSP(10))
	assert.Equal(t, 15, p.SP)
	assert.Equal(t, 10, p.RestoreSP(50))
	assert.Equal(t, 25, p.SP)
}

func TestPlayerReset(t *testing.T) {
	p := NewPlayer(playerDef)
	p.HP = 3
	p.SP = 0
	p.TempDefense = 8

	p.Reset(playerDef)

	assert.Equal(t, 100, p.HP)
	assert.Equal(t, 25, p.SP)
	assert.Equal(t, 0, p.TempDefense)
	assert.Equal(t, combat.PlayerSlot, p.GetSlot())
}

func TestHostileNegativeDamageHeals(t *testing.T) {
	h := NewHostile(lurkerDef, 0)
	h.HP = 6

	assert.Equal(t, -2, h.TakeDamage(-2))
	assert.Equal(t, 8, h.HP)

	h.TakeDamage(-50)
	assert.Equal(t, 10, h.HP, "healing through negative damage stops at max")
}

func TestHostileBecomesInertAtZero(t *testing.T) {
	h := NewHostile(lurkerDef, 1)

	h.TakeDamage(12)

	assert.False(t, h.Initialized())
	assert.Equal(t, 0, h.HP)
	assert.Equal(t, 0, h.TakeDamage(5), "inert slots ignore damage")
	assert.Equal(t, 0, h.Heal(5))
}

func TestRosterLiving(t *testing.T) {
	r := NewRoster([]*gamedata.HostileDef{nil, lurkerDef, nil})

	require.Equal(t, 3, r.Len())
	assert.Equal(t, 1, r.LivingCount())
	living := r.Living()
	require.Len(t, living, 1)
	assert.Equal(t, 1, living[0].Slot)
	assert.Len(t, r.Targets(), 1)
	assert.Nil(t, r.Slot(3))
}

func TestRosterSpawnFillsFirstInertSlot(t *testing.T) {
	r := NewRoster([]*gamedata.HostileDef{lurkerDef, nil, lurkerDef})
	r.Slot(0).TakeDamage(100)

	slot, ok := r.Spawn(insectDef)
	require.True(t, ok)
	assert.Equal(t, 0, slot)
	assert.Equal(t, "Insect", r.Slot(0).Kind)
	assert.Equal(t, 5, r.Slot(0).HP)

	slot, ok = r.Spawn(insectDef)
	require.True(t, ok)
	assert.Equal(t, 1, slot)

	_, ok = r.Spawn(insectDef)
	assert.False(t, ok, "a full roster has nowhere to spawn")
	assert.Equal(t, 3, r.LivingCount())
}
