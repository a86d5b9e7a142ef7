package t2048

import "time"

// compactor slides one line toward index 0, merging equal pairs, and emits a
// render tile for every value left in the line.
type compactor struct {
	pool    *tilePool
	timings Timings
	now     time.Time
}

// compact is a LineFunc. It walks a virtual wall from index 0: each step finds
// the next two non-empty cells past the wall and either merges them onto the
// wall or slides the first one there. The wall then advances by one.
func (c *compactor) compact(line []int, geo LineGeometry) bool {
	moved := false
	n := len(line)

	for wall := 0; ; wall++ {
		first := wall
		for first < n && line[first] == 0 {
			first++
		}
		if first == n {
			return moved
		}

		second := first + 1
		for second < n && line[second] == 0 {
			second++
		}

		x, y := geo.At(wall)
		steps := first - wall

		if second < n && line[first] == line[second] {
			value := line[first]
			merged := value * 2

			bottom := c.pool.alloc(x, y, value)
			if steps > 0 {
				line[first] = 0
				bottom.animateSlideVanish(c.now, steps*geo.DX, steps*geo.DY, c.timings)
			} else {
				bottom.animateVanish(c.now, c.timings)
			}

			top := c.pool.alloc(x, y, merged)
			far := second - wall
			top.animateSlideMerge(c.now, far*geo.DX, far*geo.DY, line[second], c.timings)

			line[wall] = merged
			line[second] = 0
			moved = true
			continue
		}

		// Lone tile or no match: slide the first tile to the wall.
		tile := c.pool.alloc(x, y, line[first])
		if steps > 0 {
			line[wall] = line[first]
			line[first] = 0
			tile.animateSlide(c.now, steps*geo.DX, steps*geo.DY, c.timings)
			moved = true
		}
		if second == n {
			return moved
		}
	}
}
