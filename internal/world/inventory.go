package world

import (
	"strconv"
	"strings"
)

// Well-known items.
const (
	ItemSword = "Sword"
	ItemKey   = "Key"
)

// Stack is one inventory line.
type Stack struct {
	Item  string
	Count int
}

// Inventory counts carried items, listing them in the order first picked up.
type Inventory struct {
	counts map[string]int
	order  []string
}

// NewInventory creates an inventory holding starting.
func NewInventory(starting []string) *Inventory {
	inv := &Inventory{}
	inv.Reset(starting)
	return inv
}

// Reset empties the inventory and adds starting.
func (inv *Inventory) Reset(starting []string) {
	inv.counts = make(map[string]int)
	inv.order = inv.order[:0]
	for _, item := range starting {
		inv.Add(item)
	}
}

// Add puts one item in the inventory. Empty names are ignored.
func (inv *Inventory) Add(item string) {
	if item == "" {
		return
	}
	if inv.counts[item] == 0 {
		inv.order = append(inv.order, item)
	}
	inv.counts[item]++
}

// Remove takes one item out. Returns false if none is carried.
func (inv *Inventory) Remove(item string) bool {
	if inv.counts[item] == 0 {
		return false
	}
	inv.counts[item]--
	if inv.counts[item] == 0 {
		delete(inv.counts, item)
		for i, name := range inv.order {
			if name == item {
				inv.order = append(inv.order[:i], inv.order[i+1:]...)
				break
			}
		}
	}
	return true
}

// Count returns how many of item are carried.
func (inv *Inventory) Count(item string) int {
	return inv.counts[item]
}

// Has reports whether at least one item is carried.
func (inv *Inventory) Has(item string) bool {
	return inv.counts[item] > 0
}

// Items returns the carried stacks in pickup order.
func (inv *Inventory) Items() []Stack {
	out := make([]Stack, 0, len(inv.order))
	for _, item := range inv.order {
		out = append(out, Stack{Item: item, Count: inv.counts[item]})
	}
	return out
}

// String formats the inventory as "Sword, Key x2".
func (inv *Inventory) String() string {
	parts := make([]string, 0, len(inv.order))
	for _, s := range inv.Items() {
		if s.Count > 1 {
			parts = append(parts, s.Item+" x"+strconv.Itoa(s.Count))
		} else {
			parts = append(parts, s.Item)
		}
	}
	return strings.Join(parts, ", ")
}
