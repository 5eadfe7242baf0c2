package world

// Room is a rectangular area of floor.
type Room struct {
	X, Y          int // Top-left corner
	Width, Height int
}

// Center returns the center of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains reports whether (x, y) is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
