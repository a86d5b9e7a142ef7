package t2048

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
)

// TileStyle holds the three colors a tile is drawn with.
type TileStyle struct {
	Fill   core.Color
	Stroke core.Color
	Text   core.Color
}

// Palette resolves tile values to styles.
type Palette struct {
	tiles    map[int]TileStyle
	overflow TileStyle
}

// Lab lightness above which tile text is drawn dark.
const lightTextThreshold = 0.65

// How far the stroke is blended toward black.
const strokeShade = 0.3

var strokeTarget = colorful.Color{R: 0, G: 0, B: 0}

// NewPalette derives stroke and text colors for every configured fill.
func NewPalette(cfg config.T2048Palette) (*Palette, error) {
	overflow, err := styleFor(cfg.Overflow)
	if err != nil {
		return nil, fmt.Errorf("palette overflow: %w", err)
	}

	p := &Palette{
		tiles:    make(map[int]TileStyle, len(cfg.Tiles)),
		overflow: overflow,
	}
	for value, hex := range cfg.Tiles {
		style, err := styleFor(hex)
		if err != nil {
			return nil, fmt.Errorf("palette tile %d: %w", value, err)
		}
		p.tiles[value] = style
	}
	return p, nil
}

func styleFor(hex string) (TileStyle, error) {
	fill, err := colorful.Hex(hex)
	if err != nil {
		return TileStyle{}, err
	}

	text := core.ColorWhite
	if l, _, _ := fill.Lab(); l > lightTextThreshold {
		text = core.ColorBlack
	}

	return TileStyle{
		Fill:   core.Color(fill.Hex()),
		Stroke: core.Color(fill.BlendLab(strokeTarget, strokeShade).Clamped().Hex()),
		Text:   text,
	}, nil
}

// Style returns the style for value, or the overflow style for values
// outside the palette.
func (p *Palette) Style(value int) TileStyle {
	if s, ok := p.tiles[value]; ok {
		return s
	}
	return p.overflow
}
