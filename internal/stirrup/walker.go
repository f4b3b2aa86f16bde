package stirrup

import (
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
)

// Direction selects the girder end a Walker starts from
type Direction int

const (
	FromStart Direction = iota // start of girder toward midspan
	FromEnd                    // end of girder toward midspan
)

func (d Direction) String() string {
	if d == FromEnd {
		return "end"
	}
	return "start"
}

// Item describes the part of one zone visited by a Walker
type Item struct {
	Index   int     // position in Layout.Zones
	Start   float64 // station of the left boundary (mm from girder start)
	End     float64 // station of the right boundary
	TestLoc float64 // station just inside the zone on the walking end side
	Reach   float64 // distance from the walking end to the far boundary
}

// strategy lays out the items visited for one walking direction
type strategy func(l Layout, girderLength float64) []Item

var strategies = map[Direction]strategy{
	FromStart: forwardItems,
	FromEnd:   reverseItems,
}

// Walker visits the zones of a layout from one end toward midspan.
// The zones are referenced by index so callers may modify them in place
// while walking.
type Walker struct {
	items []Item
	pos   int
}

// NewWalker builds a walker over the layout's primary zones
func NewWalker(l Layout, girderLength float64, dir Direction) *Walker {
	return &Walker{items: strategies[dir](l, girderLength)}
}

func (w *Walker) First() { w.pos = 0 }

func (w *Walker) Next() { w.pos++ }

func (w *Walker) Done() bool { return w.pos >= len(w.items) }

func (w *Walker) Item() Item { return w.items[w.pos] }

func (w *Walker) Len() int { return len(w.items) }

// forwardItems walks from the girder start and stops at midspan
func forwardItems(l Layout, girderLength float64) []Item {
	mid := girderLength / 2
	var items []Item
	var start float64
	for i, z := range l.Zones {
		if i > 0 && start >= mid-lrfd.SpacingTol {
			break
		}
		end := start + z.Length
		if i == len(l.Zones)-1 || z.Length <= 0 || end > mid {
			end = mid
		}
		items = append(items, Item{
			Index:   i,
			Start:   start,
			End:     end,
			TestLoc: start + lrfd.SpacingTol,
			Reach:   end,
		})
		if z.Length <= 0 {
			break
		}
		start = end
	}
	return items
}

// reverseItems walks from the girder end toward midspan. Symmetric layouts
// are mirrored; asymmetric layouts describe the whole girder from the start.
func reverseItems(l Layout, girderLength float64) []Item {
	if l.Symmetric {
		fwd := forwardItems(l, girderLength)
		items := make([]Item, len(fwd))
		for i, it := range fwd {
			items[i] = Item{
				Index:   it.Index,
				Start:   girderLength - it.End,
				End:     girderLength - it.Start,
				TestLoc: girderLength - it.Start - lrfd.SpacingTol,
				Reach:   it.Reach,
			}
		}
		return items
	}

	mid := girderLength / 2
	var all []Item
	var start float64
	for i, z := range l.Zones {
		end := start + z.Length
		last := i == len(l.Zones)-1 || z.Length <= 0
		if last || end > girderLength {
			end = girderLength
		}
		if end > mid+lrfd.SpacingTol {
			s := max(start, mid)
			all = append(all, Item{
				Index:   i,
				Start:   s,
				End:     end,
				TestLoc: end - lrfd.SpacingTol,
				Reach:   girderLength - s,
			})
		}
		if last {
			break
		}
		start = end
	}

	items := make([]Item, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		items = append(items, all[i])
	}
	return items
}
