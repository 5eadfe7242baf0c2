package world

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/timelock/internal/gamedata"
	"github.com/samdwyer/timelock/internal/ledger"
)

func testScene() *gamedata.SceneDef {
	return &gamedata.SceneDef{
		Name: "Test",
		Seed: 42,
		Objects: []gamedata.ObjectDef{
			{Name: "lurker", Kind: gamedata.ObjectHostile, Room: 1, Encounter: "Lurker"},
			{Name: "key", Kind: gamedata.ObjectKey, Room: 1},
			{Name: "door", Kind: gamedata.ObjectDoor, Room: 2, Locked: true},
			{Name: "seal", Kind: gamedata.ObjectDoor, Room: 2, Event: true},
			{Kind: gamedata.ObjectBarrel, Room: 0, Contents: "Potion"},
			{Name: "sign", Kind: gamedata.ObjectSign, Room: 0, Message: "hello"},
			{Name: "clocks", Kind: gamedata.ObjectClockPuzzle, Room: 3, Opens: "seal"},
			{Name: "down", Kind: gamedata.ObjectStairs, Room: -1, Target: "Other"},
		},
	}
}

func TestObjectIDs(t *testing.T) {
	s := NewScene(context.Background(), testScene())

	assert.Equal(t, ledger.ID("Test/lurker"), s.Objects[0].ID)
	assert.Equal(t, ledger.ID("Test/barrel/4"), s.Objects[4].ID)

	o, ok := s.Object("Test/door")
	require.True(t, ok)
	assert.Equal(t, gamedata.ObjectDoor, o.Kind())

	door, ok := s.Linked(s.Objects[6])
	require.True(t, ok)
	assert.Equal(t, ledger.ID("Test/seal"), door.ID)

	_, ok = s.Linked(s.Objects[0])
	assert.False(t, ok)
}

func TestSceneGenerationIsDeterministic(t *testing.T) {
	a := NewScene(context.Background(), testScene())
	b := NewScene(context.Background(), testScene())

	require.Equal(t, len(a.Objects), len(b.Objects))
	for i := range a.Objects {
		assert.Equal(t, a.Objects[i].X, b.Objects[i].X, "object %d x", i)
		assert.Equal(t, a.Objects[i].Y, b.Objects[i].Y, "object %d y", i)
	}
	ax, ay := a.Start()
	bx, by := b.Start()
	assert.Equal(t, [2]int{ax, ay}, [2]int{bx, by})
}

func TestObjectsOccupyDistinctFloorTiles(t *testing.T) {
	s := NewScene(context.Background(), testScene())
	sx, sy := s.Start()

	seen := map[[2]int]ledger.ID{}
	for _, o := range s.Objects {
		p := [2]int{o.X, o.Y}
		assert.True(t, s.Dungeon.IsPassable(o.X, o.Y), "%s on a wall", o.ID)
		assert.NotEqual(t, [2]int{sx, sy}, p, "%s on the start tile", o.ID)
		if other, dup := seen[p]; dup {
			t.Errorf("%s and %s share tile %v", o.ID, other, p)
		}
		seen[p] = o.ID
	}
}

func TestResyncMirrorsLedger(t *testing.T) {
	ctx := context.Background()
	led := ledger.New(nil)
	s := NewScene(ctx, testScene())

	led.Register(ledger.EntityDestroyed, "Test/lurker")
	led.Register(ledger.ItemCollected, "Test/key")
	led.Register(ledger.ItemCollected, "Test/barrel/4")
	led.Register(ledger.BarrierOpen, "Test/seal")
	led.Register(ledger.MarkerRead, "Test/sign")
	led.Register(ledger.PuzzleSolved, "Test/clocks")
	s.Resync(ctx, led)

	obj := func(id ledger.ID) *Object {
		o, ok := s.Object(id)
		require.True(t, ok, id)
		return o
	}
	assert.True(t, obj("Test/lurker").Gone)
	assert.True(t, obj("Test/key").Gone)
	assert.True(t, obj("Test/barrel/4").Emptied)
	assert.True(t, obj("Test/seal").Open)
	assert.False(t, obj("Test/door").Open)
	assert.True(t, obj("Test/sign").Read)
	assert.True(t, obj("Test/clocks").Solved)

	lurker := obj("Test/lurker")
	assert.Nil(t, s.ObjectAt(lurker.X, lurker.Y), "destroyed hostiles are not drawn")
	assert.True(t, s.Passable(lurker.X, lurker.Y))

	led.ResetAll()
	s.Resync(ctx, led)
	assert.False(t, lurker.Gone)
	assert.False(t, s.Passable(lurker.X, lurker.Y))
}

func TestDisabledHostileIsPassableUntilDeregistered(t *testing.T) {
	ctx := context.Background()
	led := ledger.New(nil)
	s := NewScene(ctx, testScene())
	lurker, _ := s.Object("Test/lurker")

	led.Register(ledger.EntityDisabled, lurker.ID)
	s.Resync(ctx, led)
	assert.True(t, lurker.Disabled)
	assert.True(t, s.Passable(lurker.X, lurker.Y))

	led.Deregister(ledger.EntityDisabled, lurker.ID)
	s.Resync(ctx, led)
	assert.False(t, lurker.Disabled)
	assert.False(t, s.Passable(lurker.X, lurker.Y))
}

func TestArrivalNextToReturnStairs(t *testing.T) {
	s := NewScene(context.Background(), testScene())
	stairs, _ := s.Object("Test/down")

	x, y := s.Arrival("Other")
	dist := abs(x-stairs.X) + abs(y-stairs.Y)
	assert.Equal(t, 1, dist)
	assert.True(t, s.Passable(x, y))

	sx, sy := s.Start()
	x, y = s.Arrival("Nowhere")
	assert.Equal(t, [2]int{sx, sy}, [2]int{x, y})
}

func TestShippedScenesGenerate(t *testing.T) {
	defs, err := gamedata.LoadScenes()
	require.NoError(t, err)
	require.NotEmpty(t, defs)

	for i := range defs {
		s := NewScene(context.Background(), &defs[i])
		assert.NotEmpty(t, s.Dungeon.Rooms, defs[i].Name)
		assert.Len(t, s.Objects, len(defs[i].Objects), defs[i].Name)
		for _, o := range s.Objects {
			if o.Def.Opens != "" {
				_, ok := s.Linked(o)
				assert.True(t, ok, "%s opens unknown object %q", o.ID, o.Def.Opens)
			}
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
