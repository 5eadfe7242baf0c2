package world

import (
	"context"
	"math/rand"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/timelock/internal/gamedata"
	"github.com/samdwyer/timelock/internal/ledger"
	"github.com/samdwyer/timelock/internal/telemetry"
)

// Scene is one generated level with its placed objects. The same definition
// always generates the same layout and placements.
type Scene struct {
	Name    string
	Dungeon *Dungeon
	Objects []*Object

	byID   map[ledger.ID]*Object
	startX int
	startY int
}

// ObjectID returns the ledger identifier of the object def at index i of
// scene: "scene/name", or "scene/kind/i" for unnamed objects.
func ObjectID(scene string, i int, def gamedata.ObjectDef) ledger.ID {
	if def.Name != "" {
		return ledger.ID(scene + "/" + def.Name)
	}
	return ledger.ID(scene + "/" + string(def.Kind) + "/" + strconv.Itoa(i))
}

// NewScene generates def's layout from its seed and places its objects.
func NewScene(ctx context.Context, def *gamedata.SceneDef) *Scene {
	ctx, span := telemetry.Tracer("world").Start(ctx, "scene.generate")
	defer span.End()

	width, height := def.Width, def.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	d := NewDungeon(width, height, rand.New(rand.NewSource(def.Seed)))
	d.Generate(ctx)

	s := &Scene{
		Name:    def.Name,
		Dungeon: d,
		byID:    make(map[ledger.ID]*Object, len(def.Objects)),
	}
	s.startX, s.startY = s.pickStart()

	for i, od := range def.Objects {
		o := &Object{ID: ObjectID(def.Name, i, od), Def: od}
		o.X, o.Y = s.place(od)
		s.Objects = append(s.Objects, o)
		s.byID[o.ID] = o
	}

	span.SetAttributes(
		attribute.String("scene.name", def.Name),
		attribute.Int64("scene.seed", def.Seed),
		attribute.Int("scene.rooms", len(d.Rooms)),
		attribute.Int("scene.objects", len(s.Objects)),
	)
	return s
}

// pickStart returns the center of the first room, or of the map.
func (s *Scene) pickStart() (int, int) {
	if len(s.Dungeon.Rooms) == 0 {
		return s.Dungeon.Width / 2, s.Dungeon.Height / 2
	}
	return s.Dungeon.Rooms[0].Center()
}

// place picks a free tile inside od's room, never on the room's edge ring.
func (s *Scene) place(od gamedata.ObjectDef) (int, int) {
	rooms := len(s.Dungeon.Rooms)
	if rooms == 0 {
		return s.startX, s.startY
	}
	i := ((od.Room % rooms) + rooms) % rooms
	r := s.Dungeon.Rooms[i]
	inner := Room{X: r.X + 1, Y: r.Y + 1, Width: r.Width - 2, Height: r.Height - 2}
	return s.Dungeon.RandomPointInRoom(i, func(x, y int) bool {
		return inner.Contains(x, y) && s.free(x, y)
	})
}

// free reports whether no object and not the start point occupies (x, y).
func (s *Scene) free(x, y int) bool {
	if x == s.startX && y == s.startY {
		return false
	}
	return s.ObjectAt(x, y) == nil
}

// Start returns where the player enters the scene fresh.
func (s *Scene) Start() (int, int) {
	return s.startX, s.startY
}

// Arrival returns where the player appears when coming from scene from: next
// to the stairs leading back there, or the start point.
func (s *Scene) Arrival(from string) (int, int) {
	for _, o := range s.Objects {
		if o.Kind() != gamedata.ObjectStairs || o.Def.Target != from {
			continue
		}
		for _, dir := range [][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}} {
			x, y := o.X+dir[0], o.Y+dir[1]
			if s.Passable(x, y) && s.ObjectAt(x, y) == nil {
				return x, y
			}
		}
	}
	return s.Start()
}

// Object returns the object with the given identifier.
func (s *Scene) Object(id ledger.ID) (*Object, bool) {
	o, ok := s.byID[id]
	return o, ok
}

// Linked returns the object a puzzle's Opens field names.
func (s *Scene) Linked(o *Object) (*Object, bool) {
	if o.Def.Opens == "" {
		return nil, false
	}
	return s.Object(ledger.ID(s.Name + "/" + o.Def.Opens))
}

// ObjectAt returns the visible object at (x, y), or nil.
func (s *Scene) ObjectAt(x, y int) *Object {
	for _, o := range s.Objects {
		if o.Visible() && o.X == x && o.Y == y {
			return o
		}
	}
	return nil
}

// Passable reports whether the player may stand on (x, y).
func (s *Scene) Passable(x, y int) bool {
	if !s.Dungeon.IsPassable(x, y) {
		return false
	}
	if o := s.ObjectAt(x, y); o != nil && o.Blocks() {
		return false
	}
	return true
}

// Resync rewrites every object's flags from led. It runs on every scene load
// and whenever control returns from an encounter.
func (s *Scene) Resync(ctx context.Context, led *ledger.Ledger) {
	_, span := telemetry.Tracer("world").Start(ctx, "scene.resync")
	defer span.End()

	gone, disabled := 0, 0
	for _, o := range s.Objects {
		o.sync(led)
		if o.Gone {
			gone++
		}
		if o.Disabled {
			disabled++
		}
	}

	span.SetAttributes(
		attribute.String("scene.name", s.Name),
		attribute.Int("scene.objects_gone", gone),
		attribute.Int("scene.objects_disabled", disabled),
	)
}
