package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/timelock/internal/battle"
	"github.com/samdwyer/timelock/internal/ledger"
	"github.com/samdwyer/timelock/internal/telemetry"
	"github.com/samdwyer/timelock/internal/world"
)

// =============================================================================
// Encounter bridge
// =============================================================================

// startEncounter hands input to the battle controller for o's encounter.
func (s *Session) startEncounter(ctx context.Context, o *world.Object) {
	if err := s.battle.StartEncounter(ctx, o.Def.Encounter, o.ID); err != nil {
		s.logger.Warn("starting encounter",
			zap.String("object", string(o.ID)),
			zap.String("encounter", o.Def.Encounter),
			zap.Error(err),
		)
		return
	}
	s.trigger = o.ID
	s.state = StateBattle
	s.message = ""
}

// BattleInput delivers one input to the active encounter.
func (s *Session) BattleInput(in battle.Input) battle.Result {
	if s.state != StateBattle {
		return battle.Result{Kind: battle.ResultIgnored}
	}
	return s.battle.SubmitInput(in)
}

// onEncounterExit runs when the controller hands control back. The
// controller has already written the outcome to the ledger.
func (s *Session) onEncounterExit(outcome battle.Outcome) {
	_, span := telemetry.Tracer("game").Start(s.ctx, "game.encounter_exit")
	span.SetAttributes(
		attribute.String("outcome", outcome.String()),
		attribute.String("trigger", string(s.trigger)),
	)
	defer span.End()

	trigger := s.trigger
	s.trigger = ledger.None

	switch outcome {
	case battle.OutcomeLose:
		s.state = StateGameOver
		s.message = "You have fallen. Press Enter to start again."
		return
	case battle.OutcomeFled:
		s.scheduleReenable(trigger)
		s.message = "You got away."
	case battle.OutcomeWin:
		s.message = "The way is clear."
	}

	s.state = StateExplore
	s.scene.Resync(s.ctx, s.ledger)
}

// scheduleReenable lifts a flee-disable once the disable duration passes.
func (s *Session) scheduleReenable(id ledger.ID) {
	if id == ledger.None {
		return
	}
	s.scheduler.After(s.cfg.DisableDuration, func() {
		if !s.ledger.Deregister(ledger.EntityDisabled, id) {
			return
		}
		s.logger.Debug("hostile re-enabled", zap.String("object", string(id)))
		s.scene.Resync(s.ctx, s.ledger)
	})
}
