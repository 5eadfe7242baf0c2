// Package world provides seeded scene generation, placed world objects and
// their re-synchronization against the world-state ledger.
package world

// Tile is a single map cell.
type Tile rune

const (
	// TileWall is impassable.
	TileWall Tile = '#'
	// TileFloor is walkable.
	TileFloor Tile = '.'
)

// IsPassable reports whether the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor
}

// Rune returns the display character.
func (t Tile) Rune() rune {
	return rune(t)
}
