package battle

import (
	"github.com/samdwyer/timelock/internal/combat"
	"github.com/samdwyer/timelock/internal/entity"
)

// Snapshot is a read-only copy of the player's stats for display.
type Snapshot struct {
	Name        string
	HP, MaxHP   int
	SP, MaxSP   int
	Attack      int
	Defense     int // Total, including TempDefense
	TempDefense int
}

// SnapshotOf copies the player's current stats.
func SnapshotOf(p *entity.Player) Snapshot {
	return Snapshot{
		Name:        p.Name,
		HP:          p.HP,
		MaxHP:       p.MaxHP,
		SP:          p.SP,
		MaxSP:       p.MaxSP,
		Attack:      p.Attack,
		Defense:     p.GetDefense(),
		TempDefense: p.TempDefense,
	}
}

// FeedbackKind classifies a message for the player.
type FeedbackKind int

const (
	FeedbackInfo FeedbackKind = iota
	FeedbackFailure
)

// Presenter receives everything the battle shows. Calls are synchronous and
// happen on the goroutine that drives the controller.
type Presenter interface {
	ShowStats(Snapshot)
	ShowEffect(combat.Effect)
	Highlight(slot int, on bool)
	Feedback(kind FeedbackKind, message string)
	MenuChanged(MenuState)
	EncounterEnded(Outcome)
}

// NopPresenter discards everything.
type NopPresenter struct{}

func (NopPresenter) ShowStats(Snapshot) {}
func (NopPresenter) ShowEffect(combat.Effect) {}
func (NopPresenter) Highlight(int, bool) {}
func (NopPresenter) Feedback(FeedbackKind, string) {}
func (NopPresenter) MenuChanged(MenuState) {}
func (NopPresenter) EncounterEnded(Outcome) {}

var _ Presenter = NopPresenter{}
