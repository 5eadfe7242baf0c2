package combat

// Selector holds a snapshot of selectable targets and a cursor that wraps
// in both directions. The snapshot does not change while selecting.
type Selector[T any] struct {
	targets []T
	cursor  int
	active  bool
}

// Begin snapshots targets and puts the cursor on the first one.
// Precondition: len(targets) > 0. An empty list is a programming error.
func (s *Selector[T]) Begin(targets []T) T {
	if len(targets) == 0 {
		panic("combat: targeting begun with no living targets")
	}
	s.targets = append(s.targets[:0], targets...)
	s.cursor = 0
	s.active = true
	return s.targets[0]
}

// Active reports whether a selection is in progress.
func (s *Selector[T]) Active() bool {
	return s.active
}

// Next moves the cursor forward and returns the previous and new targets.
func (s *Selector[T]) Next() (prev, cur T) {
	return s.move(1)
}

// Prev moves the cursor backward and returns the previous and new targets.
func (s *Selector[T]) Prev() (prev, cur T) {
	return s.move(-1)
}

func (s *Selector[T]) move(delta int) (T, T) {
	prev := s.targets[s.cursor]
	n := len(s.targets)
	s.cursor = ((s.cursor+delta)%n + n) % n
	return prev, s.targets[s.cursor]
}

// Current returns the target under the cursor.
func (s *Selector[T]) Current() T {
	return s.targets[s.cursor]
}

// Cursor returns the cursor index.
func (s *Selector[T]) Cursor() int {
	return s.cursor
}

// Len returns the number of snapshotted targets.
func (s *Selector[T]) Len() int {
	return len(s.targets)
}

// End finishes the selection and returns the chosen target.
func (s *Selector[T]) End() T {
	chosen := s.targets[s.cursor]
	var zero T
	for i := range s.targets {
		s.targets[i] = zero
	}
	s.targets = s.targets[:0]
	s.cursor = 0
	s.active = false
	return chosen
}
