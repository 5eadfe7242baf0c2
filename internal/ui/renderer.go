package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/timelock/internal/battle"
	"github.com/samdwyer/timelock/internal/entity"
	"github.com/samdwyer/timelock/internal/gamedata"
	"github.com/samdwyer/timelock/internal/puzzle"
	"github.com/samdwyer/timelock/internal/world"
)

var (
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleFailure  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleSelected = tcell.StyleDefault.Reverse(true)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen   *Screen
	registry *gamedata.Registry
}

// NewRenderer creates a new renderer for the given screen. The registry
// supplies hostile glyphs and colors.
func NewRenderer(screen *Screen, registry *gamedata.Registry) *Renderer {
	return &Renderer{screen: screen, registry: registry}
}

// =============================================================================
// Explore
// =============================================================================

// RenderScene draws the scene, its objects, the player and a status line.
func (r *Renderer) RenderScene(scene *world.Scene, player *entity.Player, inv *world.Inventory, message string) {
	r.screen.Clear()

	d := scene.Dungeon
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			tile := d.GetTile(x, y)
			r.screen.SetContent(x, y, tile.Rune(), r.getTileStyle(tile))
		}
	}

	for _, o := range scene.Objects {
		if !o.Visible() {
			continue
		}
		glyph, style := r.objectGlyph(o)
		r.screen.SetContent(o.X, o.Y, glyph, style)
	}

	r.screen.SetContent(player.X, player.Y, player.Symbol, stylePlayer)

	status := fmt.Sprintf("%s  HP %d/%d  SP %d/%d  Items: %s",
		scene.Name, player.HP, player.MaxHP, player.SP, player.MaxSP, inv.String())
	r.screen.DrawText(0, d.Height, styleText, status)
	r.screen.DrawText(0, d.Height+1, styleText, message)

	r.screen.Show()
}

// getTileStyle returns the appropriate style for a tile type.
func (r *Renderer) getTileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault
	}
}

func (r *Renderer) objectGlyph(o *world.Object) (rune, tcell.Style) {
	if o.Kind() != gamedata.ObjectHostile {
		style := styleText
		switch o.Kind() {
		case gamedata.ObjectDoor, gamedata.ObjectStairs:
			style = tcell.StyleDefault.Foreground(tcell.ColorOlive)
		case gamedata.ObjectKey:
			style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
		case gamedata.ObjectClockPuzzle, gamedata.ObjectButtonPuzzle:
			if o.Solved {
				style = styleDim
			} else {
				style = tcell.StyleDefault.Foreground(tcell.ColorAqua)
			}
		case gamedata.ObjectSign:
			if o.Read {
				style = styleDim
			}
		}
		return o.Glyph(), style
	}

	def := r.leadHostile(o.Def.Encounter)
	if def == nil {
		return o.Glyph(), styleText
	}
	if o.Disabled {
		return def.GlyphRune(), styleDim
	}
	return def.GlyphRune(), tcell.StyleDefault.Foreground(def.TCellColor())
}

// leadHostile returns the hostile that represents an encounter on the map:
// the middle slot when filled, else the first filled slot. Unknown
// encounter types are drawn as the default encounter.
func (r *Renderer) leadHostile(encounter string) *gamedata.HostileDef {
	if r.registry == nil {
		return nil
	}
	def, ok := r.registry.Encounters.Lookup(encounter)
	if !ok {
		def = r.registry.Encounters.Default()
	}
	if def == nil || len(def.Slots) == 0 {
		return nil
	}
	if mid := def.Slots[len(def.Slots)/2]; mid != "" {
		return r.registry.Hostiles.GetByID(mid)
	}
	for _, id := range def.Slots {
		if id != "" {
			return r.registry.Hostiles.GetByID(id)
		}
	}
	return nil
}

// =============================================================================
// Battle
// =============================================================================

const slotWidth = 24

// RenderBattle draws the roster, the player's stats, the menu and the log.
func (r *Renderer) RenderBattle(c *battle.Controller, log *BattleLog) {
	r.screen.Clear()

	r.screen.DrawText(1, 0, styleTitle, "Encounter: "+c.EncounterType())

	if roster := c.Roster(); roster != nil {
		for i, h := range roster.Slots() {
			x := 2 + i*slotWidth
			if !h.Initialized() {
				r.screen.DrawText(x, 2, styleDim, "   ---")
				continue
			}
			style := tcell.StyleDefault.Foreground(h.Color())
			if log.Highlighted(h.Slot) {
				style = style.Reverse(true)
			}
			r.screen.SetContent(x, 2, h.Symbol, style)
			r.screen.DrawText(x+2, 2, style, h.Name)
			r.screen.DrawText(x+2, 3, styleText, fmt.Sprintf("HP %d/%d", h.HP, h.MaxHP))
		}
	}

	s := log.Stats
	stats := fmt.Sprintf("%s  HP %d/%d  SP %d/%d  ATK %d  DEF %d", s.Name, s.HP, s.MaxHP, s.SP, s.MaxSP, s.Attack, s.Defense)
	if s.TempDefense > 0 {
		stats += fmt.Sprintf(" (+%d)", s.TempDefense)
	}
	r.screen.DrawText(1, 6, stylePlayer, stats)

	r.drawMenu(c, log, 8)

	for i, line := range log.Lines() {
		style := styleText
		if line.Failure {
			style = styleFailure
		}
		r.screen.DrawText(1, 14+i, style, line.Text)
	}

	if !c.IsPlayerTurnActive() && log.Outcome == battle.OutcomeNone {
		r.screen.DrawText(1, 21, styleDim, "...")
	}

	r.screen.Show()
}

func (r *Renderer) drawMenu(c *battle.Controller, log *BattleLog, top int) {
	open := battle.Option(-1)
	selected := -1
	current := battle.OptionAttack

	switch m := log.Menu.(type) {
	case battle.MainMenu:
		current = m.Selected
	case battle.Submenu:
		current, open, selected = m.Option, m.Option, m.Selected
	case battle.Targeting:
		r.screen.DrawText(1, top, styleText, "Choose a target: arrows to move, Enter to strike.")
		return
	}

	for i, opt := range battle.Options() {
		style := styleText
		if opt == current {
			style = styleSelected
		}
		r.screen.DrawText(2, top+i, style, opt.String())
	}

	if open < 0 {
		return
	}
	for i, entry := range c.Engine().Entries(open) {
		label := entry.Label
		if entry.Action != nil && entry.Action.SPCost > 0 {
			label += fmt.Sprintf(" (%d SP)", entry.Action.SPCost)
		}
		style := styleText
		if i == selected {
			style = styleSelected
		}
		r.screen.DrawText(12, top+i, style, label)
	}
}

// =============================================================================
// Puzzles
// =============================================================================

// RenderClock draws the four clocks with the selected one highlighted.
func (r *Renderer) RenderClock(p *puzzle.ClockPuzzle, cursor int, message string) {
	r.screen.Clear()
	r.screen.DrawText(1, 0, styleTitle, "The Clocks")

	if p != nil {
		for i := 0; i < 4; i++ {
			c := p.Clock(i)
			style := styleText
			if i == cursor {
				style = styleSelected
			}
			r.screen.DrawText(2+i*10, 2, style, fmt.Sprintf("[%02d:%02d]", c.Hour(), c.Minute()))
		}
		if p.Solved() {
			r.screen.DrawText(2, 4, styleDim, "The clocks tick in unison.")
		}
	}

	r.screen.DrawText(1, 6, styleDim, "Left/Right: choose clock  Up/Down: hour  [ ]: minutes  Esc: leave")
	r.screen.DrawText(1, 8, styleText, message)
	r.screen.Show()
}

// RenderSequence draws the button row, lighting button lit.
func (r *Renderer) RenderSequence(p *puzzle.SequencePuzzle, lit int, message string) {
	r.screen.Clear()
	r.screen.DrawText(1, 0, styleTitle, "The Plates")

	if p != nil {
		for i := 0; i < p.Buttons(); i++ {
			style := styleText
			if i == lit {
				style = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
			}
			r.screen.DrawText(2+i*5, 2, style, fmt.Sprintf("[%d]", i+1))
		}
		progress := strings.Repeat("*", p.Progress()) + strings.Repeat(".", len(p.Sequence())-p.Progress())
		r.screen.DrawText(2, 4, styleText, fmt.Sprintf("Phase %d/3  %s", p.Phase(), progress))
		if p.State() == puzzle.SequenceShowing {
			r.screen.DrawText(2, 5, styleDim, "Watch...")
		}
	}

	r.screen.DrawText(1, 7, styleDim, "1-9: press a plate  Esc: leave")
	r.screen.DrawText(1, 9, styleText, message)
	r.screen.Show()
}

// RenderGameOver draws the game over screen.
func (r *Renderer) RenderGameOver(message string) {
	r.screen.Clear()
	w, h := r.screen.Size()
	title := "GAME OVER"
	r.screen.DrawText(max((w-len(title))/2, 0), h/2-1, styleFailure, title)
	r.screen.DrawText(max((w-len(message))/2, 0), h/2+1, styleText, message)
	r.screen.Show()
}
