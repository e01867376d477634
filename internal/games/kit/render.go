package kit

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/chroma-arcade/internal/color"
	"github.com/vovakirdan/chroma-arcade/internal/core"
	"github.com/vovakirdan/chroma-arcade/internal/engine"
)

// HUDHeight is the number of rows DrawHUD uses.
const HUDHeight = 3

// Line is one line of overlay text.
type Line struct {
	Text string
	Fg   string
}

// DrawHUD draws the title/score line, the countdown bar and a separator.
func DrawHUD(dst *core.Screen, title string, snap engine.Snapshot) {
	hud := fmt.Sprintf(" %s  Score: %d  Streak: %d  Best: %d", title, snap.Score, snap.Streak, snap.BestStreak)
	if snap.RoundNo > 0 {
		hud += fmt.Sprintf("  Round: %d", snap.RoundNo)
	}
	dst.DrawTextColor(0, 0, hud, core.ColorText)

	if snap.Phase != engine.PhaseIdle {
		drawTimer(dst, 1, snap.Remaining, snap.Duration)
	}

	for x := range dst.Width() {
		dst.SetCell(x, 2, core.Cell{Rune: '─', Fg: core.ColorDim})
	}
}

func drawTimer(dst *core.Screen, y int, remaining, total time.Duration) {
	label := fmt.Sprintf(" %4.1fs ", remaining.Seconds())
	width := dst.Width() - utf8.RuneCountInString(label) - 2
	if width < 4 || total <= 0 {
		dst.DrawTextColor(0, y, label, core.ColorText)
		return
	}

	frac := float64(remaining) / float64(total)
	filled := int(frac*float64(width) + 0.5)

	fg := core.ColorGood
	switch {
	case frac <= 0.25:
		fg = core.ColorBad
	case frac <= 0.5:
		fg = core.ColorWarn
	}

	dst.DrawTextColor(1, y, strings.Repeat("█", filled), fg)
	dst.DrawTextColor(1+filled, y, strings.Repeat("░", width-filled), core.ColorDim)
	dst.DrawTextColor(1+width, y, label, fg)
}

// DrawHelp writes a dim key hint on the bottom row.
func DrawHelp(dst *core.Screen, text string) {
	dst.DrawTextColor(1, dst.Height()-1, text, core.ColorDim)
}

// DrawOverlay draws a framed box with centred lines in the middle of the screen.
func DrawOverlay(dst *core.Screen, lines ...Line) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(l.Text))
	}
	boxW := maxLen + 6
	boxH := len(lines) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box, core.ColorAccent)
	for i, l := range lines {
		x := box.X + (boxW-utf8.RuneCountInString(l.Text))/2
		fg := l.Fg
		if fg == "" {
			fg = core.ColorText
		}
		dst.DrawTextColor(x, box.Y+2+i, l.Text, fg)
	}
}

// DrawIntro shows the title card before the first round.
func DrawIntro(dst *core.Screen, title string, rules ...string) {
	lines := []Line{{Text: title, Fg: core.ColorAccent}, {}}
	for _, r := range rules {
		lines = append(lines, Line{Text: r})
	}
	lines = append(lines, Line{}, Line{Text: "Press Enter to start", Fg: core.ColorGood})
	DrawOverlay(dst, lines...)
}

// DrawPaused shows the pause card.
func DrawPaused(dst *core.Screen) {
	DrawOverlay(dst, Line{Text: "Paused", Fg: core.ColorWarn}, Line{Text: "Press P to continue"})
}

// TooSmall reports whether the screen cannot hold a w x h layout, drawing
// a notice if so.
func TooSmall(dst *core.Screen, w, h int) bool {
	if dst.Width() >= w && dst.Height() >= h {
		return false
	}
	dst.DrawTextCenteredColor(dst.Height()/2, "Window too small", core.ColorWarn)
	dst.DrawTextCenteredColor(dst.Height()/2+1, fmt.Sprintf("need %dx%d", w, h), core.ColorDim)
	return true
}

// Outcome returns the result headline for a finished round.
func Outcome(snap engine.Snapshot, win string) Line {
	if snap.Success {
		return Line{Text: win, Fg: core.ColorGood}
	}
	if snap.Remaining == 0 {
		return Line{Text: "Time's up!", Fg: core.ColorBad}
	}
	return Line{Text: "Not quite!", Fg: core.ColorBad}
}

// TextOn returns a readable text colour for a label drawn on bg.
func TextOn(bg color.RGB) string {
	lum := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if lum > 150 {
		return "#111827"
	}
	return "#f9fafb"
}
