package world

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/timelock/internal/ledger"
)

func interactFixture(t *testing.T) (*Scene, *Interactor, *Inventory, *ledger.Ledger) {
	t.Helper()
	led := ledger.New(nil)
	inv := NewInventory([]string{ItemSword})
	s := NewScene(context.Background(), testScene())
	s.Resync(context.Background(), led)
	return s, NewInteractor(led, inv, nil), inv, led
}

func mustObject(t *testing.T, s *Scene, id ledger.ID) *Object {
	t.Helper()
	o, ok := s.Object(id)
	require.True(t, ok, "object %s", id)
	return o
}

func TestLockedDoorConsumesKey(t *testing.T) {
	s, in, inv, led := interactFixture(t)
	door := mustObject(t, s, "Test/door")

	got := in.Interact(door)
	assert.Equal(t, InteractLocked, got.Kind)
	assert.False(t, led.Contains(ledger.BarrierOpen, door.ID))

	got = in.Interact(mustObject(t, s, "Test/key"))
	assert.Equal(t, InteractCollected, got.Kind)
	assert.Equal(t, 1, inv.Count(ItemKey))
	assert.True(t, led.Contains(ledger.ItemCollected, "Test/key"))

	got = in.Interact(door)
	assert.Equal(t, InteractOpened, got.Kind)
	assert.Equal(t, 0, inv.Count(ItemKey))
	assert.True(t, door.Open)
	assert.True(t, led.Contains(ledger.BarrierOpen, door.ID))
	assert.True(t, s.Passable(door.X, door.Y))

	assert.Equal(t, InteractNone, in.Interact(door).Kind)
}

func TestEventDoorIgnoresKeys(t *testing.T) {
	s, in, inv, led := interactFixture(t)
	inv.Add(ItemKey)

	got := in.Interact(mustObject(t, s, "Test/seal"))
	assert.Equal(t, InteractSealed, got.Kind)
	assert.Equal(t, 1, inv.Count(ItemKey))
	assert.Zero(t, led.Len(ledger.BarrierOpen))
}

func TestBarrelEmptiesOnce(t *testing.T) {
	ctx := context.Background()
	s, in, inv, led := interactFixture(t)
	barrel := mustObject(t, s, "Test/barrel/4")

	got := in.Interact(barrel)
	assert.Equal(t, InteractCollected, got.Kind)
	assert.Equal(t, "Potion", got.Item)
	assert.Equal(t, 1, inv.Count("Potion"))

	assert.Equal(t, InteractEmpty, in.Interact(barrel).Kind)
	assert.Equal(t, 1, inv.Count("Potion"))

	// A reloaded scene keeps the barrel empty.
	again := NewScene(ctx, testScene())
	again.Resync(ctx, led)
	reloaded := mustObject(t, again, "Test/barrel/4")
	assert.True(t, reloaded.Emptied)
	assert.Equal(t, InteractEmpty, in.Interact(reloaded).Kind)
}

func TestSignRegistersMarker(t *testing.T) {
	s, in, _, led := interactFixture(t)

	got := in.Interact(mustObject(t, s, "Test/sign"))
	assert.Equal(t, InteractRead, got.Kind)
	assert.Equal(t, "hello", got.Message)
	assert.True(t, led.Contains(ledger.MarkerRead, "Test/sign"))
}

func TestHostileInteraction(t *testing.T) {
	s, in, _, led := interactFixture(t)
	lurker := mustObject(t, s, "Test/lurker")

	got := in.Interact(lurker)
	assert.Equal(t, InteractEncounter, got.Kind)
	assert.Same(t, lurker, got.Object)

	led.Register(ledger.EntityDisabled, lurker.ID)
	s.Resync(context.Background(), led)
	assert.Equal(t, InteractNone, in.Interact(lurker).Kind)

	led.Register(ledger.EntityDestroyed, lurker.ID)
	s.Resync(context.Background(), led)
	assert.Equal(t, InteractNone, in.Interact(lurker).Kind)
}

func TestPuzzleAndStairsInteractions(t *testing.T) {
	s, in, _, led := interactFixture(t)

	assert.Equal(t, InteractPuzzle, in.Interact(mustObject(t, s, "Test/clocks")).Kind)
	got := in.Interact(mustObject(t, s, "Test/down"))
	assert.Equal(t, InteractStairs, got.Kind)
	assert.Equal(t, "Other", got.Object.Def.Target)
	assert.Zero(t, led.Len(ledger.PuzzleSolved))
	assert.Equal(t, InteractNone, in.Interact(nil).Kind)
}

func TestInteractionKindString(t *testing.T) {
	assert.Equal(t, "locked", InteractLocked.String())
	assert.Equal(t, "stairs", InteractStairs.String())
	assert.Equal(t, "unknown", InteractionKind(99).String())
}
