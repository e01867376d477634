package core

// Theme colours used by game chrome. Cells carry arbitrary "#rrggbb"
// strings so games can paint palette colours directly; these are the
// fixed colours for text and frames.
const (
	ColorDefault = ""
	ColorText    = "#e5e7eb"
	ColorDim     = "#6b7280"
	ColorAccent  = "#a78bfa"
	ColorGood    = "#4ade80"
	ColorBad     = "#f87171"
	ColorWarn    = "#facc15"
)
