package ui

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/timelock/internal/battle"
	"github.com/samdwyer/timelock/internal/combat"
	"github.com/samdwyer/timelock/internal/entity"
	"github.com/samdwyer/timelock/internal/gamedata"
	"github.com/samdwyer/timelock/internal/ledger"
	"github.com/samdwyer/timelock/internal/puzzle"
	"github.com/samdwyer/timelock/internal/world"
)

func newTestScreen(t *testing.T) *Screen {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	s, err := NewScreenFrom(sim)
	require.NoError(t, err)
	sim.SetSize(100, 30)
	t.Cleanup(s.Close)
	return s
}

func rowText(s *Screen, y, width int) string {
	out := make([]rune, width)
	for x := range out {
		out[x] = s.Content(x, y)
	}
	return string(out)
}

func TestRenderScenePlacesPlayerAndObjects(t *testing.T) {
	reg := gamedata.MustLoadRegistry()
	def, ok := reg.Scene("Level 1")
	require.True(t, ok)

	scene := world.NewScene(context.Background(), def)
	scene.Resync(context.Background(), ledger.New(nil))
	player := entity.NewPlayer(&reg.Player)
	player.SetPosition(scene.Start())

	screen := newTestScreen(t)
	NewRenderer(screen, reg).RenderScene(scene, player, world.NewInventory([]string{"Sword"}), "hello")

	assert.Equal(t, '@', screen.Content(player.X, player.Y))

	lurker, ok := scene.Object("Level 1/lurker")
	require.True(t, ok)
	assert.Equal(t, 'l', screen.Content(lurker.X, lurker.Y))

	sign, ok := scene.Object("Level 1/welcome")
	require.True(t, ok)
	assert.Equal(t, '?', screen.Content(sign.X, sign.Y))

	assert.Contains(t, rowText(screen, scene.Dungeon.Height, 80), "Items: Sword")
	assert.Contains(t, rowText(screen, scene.Dungeon.Height+1, 80), "hello")
}

func TestRenderClock(t *testing.T) {
	p, err := puzzle.NewClockPuzzle("clocks", ledger.None,
		[]ledger.Dial{{Hour: 1}, {Hour: 2}, {Hour: 3}, {Hour: 4}}, ledger.New(nil), nil)
	require.NoError(t, err)
	p.Adjust(1, puzzle.HourUp)

	screen := newTestScreen(t)
	NewRenderer(screen, nil).RenderClock(p, 1, "")

	row := rowText(screen, 2, 60)
	assert.Contains(t, row, "[12:00]")
	assert.Contains(t, row, "[01:00]")
}

func TestBattleLogPresenter(t *testing.T) {
	log := NewBattleLog()

	log.MenuChanged(battle.MainMenu{Selected: battle.OptionDefend})
	assert.Equal(t, battle.MainMenu{Selected: battle.OptionDefend}, log.Menu)

	log.Highlight(1, true)
	assert.True(t, log.Highlighted(1))
	log.Highlight(1, false)
	assert.False(t, log.Highlighted(1))

	log.ShowEffect(combat.Effect{Kind: combat.EffectDamage, Target: "Lurker", Amount: 5})
	log.ShowEffect(combat.Effect{Kind: combat.EffectDamage, Target: "Lurker", Amount: -2})
	log.ShowEffect(combat.Effect{Kind: combat.EffectSPSpent, Target: "Player", Amount: 3})
	log.Feedback(battle.FeedbackFailure, "Player doesn't have enough SP!")
	log.Feedback(battle.FeedbackInfo, "")

	lines := log.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "Lurker takes 5 damage.", lines[0].Text)
	assert.Equal(t, "Lurker shrugs it off and recovers 2 HP.", lines[1].Text)
	assert.True(t, lines[2].Failure)

	log.Highlight(0, true)
	log.EncounterEnded(battle.OutcomeWin)
	assert.Equal(t, battle.OutcomeWin, log.Outcome)
	assert.False(t, log.Highlighted(0))

	// The next encounter's first menu starts a clean log.
	log.MenuChanged(battle.MainMenu{Selected: battle.OptionAttack})
	assert.Empty(t, log.Lines())
	assert.Equal(t, battle.OutcomeNone, log.Outcome)
}

func TestBattleLogKeepsRecentLines(t *testing.T) {
	log := NewBattleLog()
	for i := 0; i < maxLogLines+3; i++ {
		log.Feedback(battle.FeedbackInfo, string(rune('a'+i)))
	}
	lines := log.Lines()
	require.Len(t, lines, maxLogLines)
	assert.Equal(t, "d", lines[0].Text)
}

func TestLeadHostile(t *testing.T) {
	r := NewRenderer(nil, gamedata.MustLoadRegistry())

	assert.Equal(t, "lurker", r.leadHostile("Lurker").ID)
	assert.Equal(t, "insect", r.leadHostile("Swarm").ID)
	assert.Equal(t, "big_lurker", r.leadHostile("no-such-encounter").ID, "unknown types draw as the default encounter")
}
