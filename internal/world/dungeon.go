package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/timelock/internal/telemetry"
)

const (
	// Default scene dimensions
	DefaultWidth  = 80
	DefaultHeight = 22

	// Partition parameters
	minRoomSize = 6  // Smallest room edge
	maxRoomSize = 14 // Largest room edge
	minLeafSize = 10 // A partition is not split below this edge length
)

// Dungeon is the tile map of one scene. Generation is fully determined by
// the rng it is given.
type Dungeon struct {
	Width  int
	Height int
	Tiles  [][]Tile
	Rooms  []Room
	rng    *rand.Rand
}

// NewDungeon creates a dungeon filled with walls that draws from rng.
func NewDungeon(width, height int, rng *rand.Rand) *Dungeon {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}
	return &Dungeon{
		Width:  width,
		Height: height,
		Tiles:  tiles,
		rng:    rng,
	}
}

// Generate partitions the map, carves one room per leaf and joins sibling
// partitions with corridors.
func (d *Dungeon) Generate(ctx context.Context) {
	_, span := telemetry.Tracer("world").Start(ctx, "dungeon.generate")
	defer span.End()

	start := time.Now()

	root := &partition{Room: Room{X: 1, Y: 1, Width: d.Width - 2, Height: d.Height - 2}}
	d.split(root)
	d.furnish(root)
	d.join(root)

	span.SetAttributes(
		attribute.Int("dungeon.width", d.Width),
		attribute.Int("dungeon.height", d.Height),
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int64("dungeon.generation_ms", time.Since(start).Milliseconds()),
	)
}

// IsPassable reports whether the tile at (x, y) can be walked on.
func (d *Dungeon) IsPassable(x, y int) bool {
	return d.GetTile(x, y).IsPassable()
}

// GetTile returns the tile at (x, y); everything off the map is wall.
func (d *Dungeon) GetTile(x, y int) Tile {
	if !d.inBounds(x, y) {
		return TileWall
	}
	return d.Tiles[y][x]
}

// RoomIndexAt returns the index of the room containing (x, y), or -1.
func (d *Dungeon) RoomIndexAt(x, y int) int {
	for i, room := range d.Rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}

// RandomPointInRoom returns a random floor point in room i for which free
// reports true. It falls back to the first such point, then the room center.
func (d *Dungeon) RandomPointInRoom(i int, free func(x, y int) bool) (int, int) {
	if i < 0 || i >= len(d.Rooms) {
		return -1, -1
	}
	room := d.Rooms[i]
	for attempt := 0; attempt < 100; attempt++ {
		x := room.X + d.rng.Intn(room.Width)
		y := room.Y + d.rng.Intn(room.Height)
		if d.IsPassable(x, y) && (free == nil || free(x, y)) {
			return x, y
		}
	}
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			if d.IsPassable(x, y) && (free == nil || free(x, y)) {
				return x, y
			}
		}
	}
	return room.Center()
}

func (d *Dungeon) inBounds(x, y int) bool {
	return x >= 0 && x < d.Width && y >= 0 && y < d.Height
}

// interior reports whether (x, y) lies inside the outer wall ring.
func (d *Dungeon) interior(x, y int) bool {
	return x > 0 && x < d.Width-1 && y > 0 && y < d.Height-1
}

// =============================================================================
// Partitioning
// =============================================================================

// partition is a node of the space partition tree. Leaves own a room.
type partition struct {
	Room
	children [2]*partition
	room     *Room
}

func (p *partition) leaf() bool {
	return p.children[0] == nil
}

// split divides p along its longer axis until both edges are below 2*minLeafSize.
func (d *Dungeon) split(p *partition) {
	canCut := func(edge int) bool { return edge >= 2*minLeafSize }

	var vertical bool
	switch {
	case p.Width > p.Height && canCut(p.Width):
		vertical = true
	case canCut(p.Height):
		vertical = false
	case canCut(p.Width):
		vertical = true
	default:
		return
	}

	edge := p.Height
	if vertical {
		edge = p.Width
	}
	at := minLeafSize + d.rng.Intn(edge-2*minLeafSize+1)

	a, b := p.Room, p.Room
	if vertical {
		a.Width = at
		b.X += at
		b.Width -= at
	} else {
		a.Height = at
		b.Y += at
		b.Height -= at
	}
	p.children = [2]*partition{{Room: a}, {Room: b}}
	d.split(p.children[0])
	d.split(p.children[1])
}

// furnish carves a randomly sized room inside every leaf.
func (d *Dungeon) furnish(p *partition) {
	if p == nil {
		return
	}
	if !p.leaf() {
		d.furnish(p.children[0])
		d.furnish(p.children[1])
		return
	}

	w := d.roomEdge(p.Width)
	h := d.roomEdge(p.Height)
	if w < minRoomSize || h < minRoomSize {
		return
	}
	room := Room{
		X:      p.X + 1 + d.rng.Intn(p.Width-w-1),
		Y:      p.Y + 1 + d.rng.Intn(p.Height-h-1),
		Width:  w,
		Height: h,
	}
	p.room = &room
	d.Rooms = append(d.Rooms, room)
	d.fill(room.X, room.Y, room.X+room.Width-1, room.Y+room.Height-1)
}

// roomEdge picks a room edge that leaves a wall on both sides of span.
func (d *Dungeon) roomEdge(span int) int {
	limit := min(maxRoomSize, span-2)
	if limit < minRoomSize {
		return limit
	}
	return minRoomSize + d.rng.Intn(limit-minRoomSize+1)
}

// join connects the two halves of every inner node through one room of each.
func (d *Dungeon) join(p *partition) {
	if p == nil || p.leaf() {
		return
	}
	d.join(p.children[0])
	d.join(p.children[1])

	a, b := p.children[0].anyRoom(), p.children[1].anyRoom()
	if a == nil || b == nil {
		return
	}
	x1, y1 := a.Center()
	x2, y2 := b.Center()
	if d.rng.Intn(2) == 0 {
		d.fill(x1, y1, x2, y1)
		d.fill(x2, y1, x2, y2)
	} else {
		d.fill(x1, y1, x1, y2)
		d.fill(x1, y2, x2, y2)
	}
}

func (p *partition) anyRoom() *Room {
	if p == nil {
		return nil
	}
	if p.room != nil {
		return p.room
	}
	if r := p.children[0].anyRoom(); r != nil {
		return r
	}
	return p.children[1].anyRoom()
}

// fill turns the rectangle spanned by two corners into floor.
func (d *Dungeon) fill(x1, y1, x2, y2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if d.interior(x, y) {
				d.Tiles[y][x] = TileFloor
			}
		}
	}
}
