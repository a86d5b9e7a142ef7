package t2048

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// AnimationKind is the animation a render tile is currently playing.
type AnimationKind int

const (
	AnimNone        AnimationKind = iota
	AnimPulse                     // Spawn pop: scale grows from half size with overshoot
	AnimSlide                     // Travel from the translation offset back to rest
	AnimSlideMerge                // Slide, showing the overlay value until halfway
	AnimSlideVanish               // Slide, then hide on arrival
	AnimVanish                    // Hide when the duration elapses
)

// String returns the animation name.
func (k AnimationKind) String() string {
	switch k {
	case AnimNone:
		return "none"
	case AnimPulse:
		return "pulse"
	case AnimSlide:
		return "slide"
	case AnimSlideMerge:
		return "slide-and-merge"
	case AnimSlideVanish:
		return "slide-and-vanish"
	case AnimVanish:
		return "vanish"
	default:
		return "unknown"
	}
}

// Timings holds animation durations.
type Timings struct {
	SlideStep time.Duration // Per cell travelled
	Pulse     time.Duration
	Vanish    time.Duration
}

// DefaultTimings matches the default configuration.
func DefaultTimings() Timings {
	return Timings{
		SlideStep: 100 * time.Millisecond,
		Pulse:     300 * time.Millisecond,
		Vanish:    300 * time.Millisecond,
	}
}

func (t Timings) slide(dx, dy int) time.Duration {
	return t.SlideStep * time.Duration(max(core.Abs(dx), core.Abs(dy)))
}

// Tile is one render entity: a value drawn at a grid position, optionally
// displaced and scaled by an in-flight animation.
type Tile struct {
	X, Y    int
	Value   int
	Overlay int // Shown instead of Value while non-zero

	Anim     AnimationKind
	Start    time.Time
	Duration time.Duration

	// Where the tile came from, in cells relative to (X, Y).
	TranslateX, TranslateY int
	// Fraction of the translate vector still to travel; 0 at rest.
	Translation float64
	Scale       float64
	Visible     bool
}

// DisplayValue returns the number the tile currently shows.
func (t *Tile) DisplayValue() int {
	if t.Overlay != 0 {
		return t.Overlay
	}
	return t.Value
}

// Offset returns the current displacement from (X, Y) in cells.
func (t *Tile) Offset() (dx, dy float64) {
	return t.Translation * float64(t.TranslateX), t.Translation * float64(t.TranslateY)
}

// Animating reports whether the tile still has an animation to play.
func (t *Tile) Animating() bool {
	return t.Anim != AnimNone
}

func (t *Tile) reset(x, y, value int) {
	*t = Tile{X: x, Y: y, Value: value, Scale: 1, Visible: true}
}

// finish jumps any running animation to its end state.
func (t *Tile) finish() {
	if t.Anim == AnimNone {
		return
	}
	t.advance(1)
	t.Anim = AnimNone
}

func (t *Tile) begin(kind AnimationKind, now time.Time, d time.Duration) {
	t.finish()
	t.Anim = kind
	t.Start = now
	t.Duration = d
}

func (t *Tile) animateSlide(now time.Time, dx, dy int, tm Timings) {
	t.begin(AnimSlide, now, tm.slide(dx, dy))
	t.TranslateX, t.TranslateY = dx, dy
	t.Translation = 1
}

func (t *Tile) animateSlideMerge(now time.Time, dx, dy, overlay int, tm Timings) {
	t.begin(AnimSlideMerge, now, tm.slide(dx, dy))
	t.TranslateX, t.TranslateY = dx, dy
	t.Translation = 1
	t.Overlay = overlay
}

func (t *Tile) animateSlideVanish(now time.Time, dx, dy int, tm Timings) {
	t.begin(AnimSlideVanish, now, tm.slide(dx, dy))
	t.TranslateX, t.TranslateY = dx, dy
	t.Translation = 1
	t.Visible = true
}

func (t *Tile) animateVanish(now time.Time, tm Timings) {
	t.begin(AnimVanish, now, tm.Vanish)
	t.Visible = true
}

func (t *Tile) animatePulse(now time.Time, tm Timings) {
	t.begin(AnimPulse, now, tm.Pulse)
	t.Scale = 0 // hidden until the first frame advances it
}

// advance applies the visual state for progress p in [0, 1].
func (t *Tile) advance(p float64) {
	switch t.Anim {
	case AnimPulse:
		t.Scale = 0.5 + easeInOutBack(p)*0.5
	case AnimSlide:
		t.Translation = 1 - easeOutBack(p)
	case AnimSlideMerge:
		t.Translation = 1 - easeOutBack(p)
		if p >= 0.5 {
			t.Overlay = 0
		}
	case AnimSlideVanish:
		t.Translation = 1 - easeOutBack(p)
		if p == 1 {
			t.Visible = false
		}
	case AnimVanish:
		t.Visible = p != 1
	}
}

// Update advances the animation to now. It reports whether the animation is
// still running afterwards; once complete the tile is left at rest with
// Anim == AnimNone and further calls are no-ops.
func (t *Tile) Update(now time.Time) bool {
	if !t.Animating() {
		return false
	}

	p := 1.0
	if t.Duration > 0 {
		p = core.ClampF(float64(now.Sub(t.Start))/float64(t.Duration), 0, 1)
	}
	t.advance(p)

	if p == 1 {
		t.Anim = AnimNone
	}
	return t.Animating()
}

// tilePool is a fixed arena of render tiles reused across moves.
// Every move resets the cursor to 0 and allocates from the front.
type tilePool struct {
	tiles []Tile
	next  int
}

func newTilePool(capacity int) *tilePool {
	return &tilePool{tiles: make([]Tile, capacity)}
}

func (p *tilePool) reset() {
	p.next = 0
}

// alloc hands out the next slot. Running past capacity means the move engine
// emitted more tiles than the grid can hold, which is a bug.
func (p *tilePool) alloc(x, y, value int) *Tile {
	if p.next >= len(p.tiles) {
		panic(fmt.Sprintf("t2048: render tile pool exhausted (capacity %d)", len(p.tiles)))
	}
	t := &p.tiles[p.next]
	p.next++
	t.reset(x, y, value)
	return t
}

// live returns the tiles allocated since the last reset.
func (p *tilePool) live() []Tile {
	return p.tiles[:p.next]
}
