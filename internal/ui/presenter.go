package ui

import (
	"fmt"

	"github.com/samdwyer/timelock/internal/battle"
	"github.com/samdwyer/timelock/internal/combat"
)

// maxLogLines is how many battle messages stay on screen.
const maxLogLines = 6

// LogLine is one battle message.
type LogLine struct {
	Text    string
	Failure bool
}

// BattleLog collects what the battle presents so the renderer can draw it
// each frame.
type BattleLog struct {
	Stats       battle.Snapshot
	Menu        battle.MenuState
	Outcome     battle.Outcome
	highlighted map[int]bool
	lines       []LogLine
}

// NewBattleLog creates an empty battle log.
func NewBattleLog() *BattleLog {
	return &BattleLog{highlighted: make(map[int]bool)}
}

var _ battle.Presenter = (*BattleLog)(nil)

// ShowStats records the latest player snapshot.
func (l *BattleLog) ShowStats(s battle.Snapshot) {
	l.Stats = s
}

// ShowEffect logs one effect as a sentence.
func (l *BattleLog) ShowEffect(e combat.Effect) {
	var text string
	switch e.Kind {
	case combat.EffectDamage:
		if e.Amount < 0 {
			text = fmt.Sprintf("%s shrugs it off and recovers %d HP.", e.Target, -e.Amount)
		} else {
			text = fmt.Sprintf("%s takes %d damage.", e.Target, e.Amount)
		}
	case combat.EffectHeal:
		text = fmt.Sprintf("%s recovers %d HP.", e.Target, e.Amount)
	case combat.EffectMiss:
		text = fmt.Sprintf("%s misses.", e.Source)
	case combat.EffectGuard:
		text = fmt.Sprintf("%s braces (+%d defense).", e.Target, e.Amount)
	case combat.EffectSPRestored:
		text = fmt.Sprintf("%s recovers %d SP.", e.Target, e.Amount)
	case combat.EffectSpawn:
		text = fmt.Sprintf("%s calls another %s.", e.Source, e.Target)
	default:
		return
	}
	l.add(LogLine{Text: text})
}

// Highlight marks or unmarks a roster slot.
func (l *BattleLog) Highlight(slot int, on bool) {
	if on {
		l.highlighted[slot] = true
		return
	}
	delete(l.highlighted, slot)
}

// Highlighted reports whether slot is marked.
func (l *BattleLog) Highlighted(slot int) bool {
	return l.highlighted[slot]
}

// Feedback logs a message.
func (l *BattleLog) Feedback(kind battle.FeedbackKind, message string) {
	if message == "" {
		return
	}
	l.add(LogLine{Text: message, Failure: kind == battle.FeedbackFailure})
}

// MenuChanged records the menu state. The first menu of an encounter clears
// the previous encounter's log.
func (l *BattleLog) MenuChanged(s battle.MenuState) {
	if l.Outcome != battle.OutcomeNone {
		l.reset()
	}
	l.Menu = s
}

// EncounterEnded records the outcome.
func (l *BattleLog) EncounterEnded(o battle.Outcome) {
	l.Outcome = o
	clear(l.highlighted)
	switch o {
	case battle.OutcomeWin:
		l.add(LogLine{Text: "Victory!"})
	case battle.OutcomeLose:
		l.add(LogLine{Text: "You have been defeated.", Failure: true})
	case battle.OutcomeFled:
		l.add(LogLine{Text: "You ran away."})
	}
}

// Lines returns the visible messages, oldest first.
func (l *BattleLog) Lines() []LogLine {
	return l.lines
}

func (l *BattleLog) add(line LogLine) {
	l.lines = append(l.lines, line)
	if len(l.lines) > maxLogLines {
		l.lines = l.lines[len(l.lines)-maxLogLines:]
	}
}

func (l *BattleLog) reset() {
	l.Outcome = battle.OutcomeNone
	l.lines = nil
	clear(l.highlighted)
}
