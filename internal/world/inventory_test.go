package world

import "testing"

func TestInventory(t *testing.T) {
	inv := NewInventory([]string{ItemSword})
	if got := inv.String(); got != "Sword" {
		t.Errorf("String() = %q, want %q", got, "Sword")
	}

	inv.Add(ItemKey)
	inv.Add(ItemKey)
	inv.Add("")
	if got := inv.String(); got != "Sword, Key x2" {
		t.Errorf("String() = %q, want %q", got, "Sword, Key x2")
	}
	if !inv.Has(ItemKey) || inv.Count(ItemKey) != 2 {
		t.Errorf("Count(Key) = %d, want 2", inv.Count(ItemKey))
	}

	if !inv.Remove(ItemKey) || !inv.Remove(ItemKey) {
		t.Fatal("Remove(Key) = false, want true")
	}
	if inv.Remove(ItemKey) {
		t.Error("Remove(Key) on empty = true, want false")
	}
	if got := len(inv.Items()); got != 1 {
		t.Errorf("len(Items()) = %d, want 1", got)
	}

	inv.Add("Potion")
	inv.Reset([]string{ItemSword})
	if got := inv.String(); got != "Sword" {
		t.Errorf("after Reset String() = %q, want %q", got, "Sword")
	}
}
