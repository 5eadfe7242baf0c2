package combat

import (
	"testing"

	"pgregory.net/rapid"
)

func TestSelectorWraps(t *testing.T) {
	var s Selector[string]
	first := s.Begin([]string{"a", "b", "c"})

	if first != "a" || s.Cursor() != 0 {
		t.Fatalf("Begin() = %q at %d, want a at 0", first, s.Cursor())
	}

	prev, cur := s.Prev()
	if prev != "a" || cur != "c" || s.Cursor() != 2 {
		t.Errorf("Prev() from 0 = (%q, %q) at %d, want (a, c) at 2", prev, cur, s.Cursor())
	}

	prev, cur = s.Next()
	if prev != "c" || cur != "a" || s.Cursor() != 0 {
		t.Errorf("Next() from 2 = (%q, %q) at %d, want (c, a) at 0", prev, cur, s.Cursor())
	}
}

func TestSelectorSnapshot(t *testing.T) {
	targets := []int{1, 2, 3}
	var s Selector[int]
	s.Begin(targets)

	targets[0] = 99
	if s.Current() != 1 {
		t.Errorf("Current() = %d, want 1 after caller mutated its slice", s.Current())
	}
}

func TestSelectorEnd(t *testing.T) {
	var s Selector[string]
	s.Begin([]string{"a", "b"})
	s.Next()

	if !s.Active() {
		t.Error("Active() should be true during selection")
	}
	if chosen := s.End(); chosen != "b" {
		t.Errorf("End() = %q, want b", chosen)
	}
	if s.Active() || s.Len() != 0 {
		t.Errorf("after End(): Active=%v Len=%d", s.Active(), s.Len())
	}
}

func TestSelectorBeginEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Begin(nil) should panic")
		}
	}()
	var s Selector[int]
	s.Begin(nil)
}

func TestSelectorCursorStaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 3).Draw(t, "n")
		moves := rapid.SliceOf(rapid.Bool()).Draw(t, "moves")

		targets := make([]int, n)
		for i := range targets {
			targets[i] = i
		}
		var s Selector[int]
		s.Begin(targets)

		want := 0
		for _, forward := range moves {
			if forward {
				s.Next()
				want = (want + 1) % n
			} else {
				s.Prev()
				want = (want + n - 1) % n
			}
			if s.Cursor() != want {
				t.Fatalf("cursor = %d, want %d", s.Cursor(), want)
			}
			if s.Current() != targets[want] {
				t.Fatalf("Current() = %d, want %d", s.Current(), targets[want])
			}
		}
	})
}
