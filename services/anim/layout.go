package anim

// Layout is the physical LED-index-to-geometry table of the ornament.
// The tables are data about the build, not logic: animations that care
// about shape (fire height bands, inside-out pulse) consume them as
// given.
type Layout struct {
	// Count is the number of addressable LEDs.
	Count int
	// Bands groups pixel indices into height bands of the shape, bottom
	// first. The fire model drives one heat cell per band.
	Bands [][]int
	// Inner is the innermost pixel group; the inside-out pulse drives it
	// against everything else.
	Inner []int
}

// Outer returns every pixel index not in the inner group.
func (l Layout) Outer() []int {
	inner := make(map[int]bool, len(l.Inner))
	for _, i := range l.Inner {
		inner[i] = true
	}
	out := make([]int, 0, l.Count)
	for i := 0; i < l.Count; i++ {
		if !inner[i] {
			out = append(out, i)
		}
	}
	return out
}

// DefaultLayout describes the production pendant: a ring of twelve
// WS2812s (index 0 at the bottom, clockwise) around a single center LED
// (index 12). The eight height bands follow the ring silhouette with the
// center LED sitting at mid-height.
func DefaultLayout() Layout {
	return Layout{
		Count: 13,
		Bands: [][]int{
			{0},
			{1, 11},
			{2, 10},
			{3, 9},
			{12},
			{4, 8},
			{5, 7},
			{6},
		},
		Inner: []int{12},
	}
}
