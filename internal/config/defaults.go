package config

import (
	_ "embed"
	"maps"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

var defaultPalette = map[int]string{
	2:     "#c5e7e2",
	4:     "#a1cda8",
	8:     "#627264",
	16:    "#c5e7e2",
	32:    "#ad9baa",
	64:    "#8be8cb",
	128:   "#7ea2aa",
	256:   "#888da7",
	512:   "#9c7a97",
	1024:  "#da5552",
	2048:  "#df7373",
	4096:  "#a9e190",
	8192:  "#a5aa52",
	16384: "#c589e8",
}

// DefaultT2048Config returns the built-in 2048 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Grid: T2048Grid{Size: 4},
		Animation: T2048Animation{
			SlideStepMS: 100,
			PulseMS:     300,
			VanishMS:    300,
		},
		Palette: T2048Palette{
			Overflow: "#963d5a",
			Tiles:    maps.Clone(defaultPalette),
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultT2048YAML
}
