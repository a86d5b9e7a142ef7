package core

// Color is a "#rrggbb" hex string. The zero value means the terminal default.
type Color string

// Colors used by the HUD and board chrome.
const (
	ColorDefault Color = ""
	ColorBlack   Color = "#000000"
	ColorWhite   Color = "#ffffff"
	ColorGray    Color = "#8a8a8a"
	ColorDim     Color = "#4e4e4e"
	ColorRed     Color = "#d75f5f"
	ColorGreen   Color = "#87d787"
)
