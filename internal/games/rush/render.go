package rush

import (
	"fmt"

	"github.com/vovakirdan/chroma-arcade/internal/core"
	"github.com/vovakirdan/chroma-arcade/internal/engine"
	"github.com/vovakirdan/chroma-arcade/internal/games/kit"
)

const (
	minWidth  = 40
	minHeight = 18
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		msg := "configuration error"
		if g.err != nil {
			msg = g.err.Error()
		}
		dst.DrawTextCenteredColor(dst.Height()/2, msg, core.ColorBad)
		return
	}
	if kit.TooSmall(dst, minWidth, minHeight) {
		return
	}

	snap := g.session.Snapshot()
	kit.DrawHUD(dst, g.Title(), snap)

	if snap.Phase == engine.PhaseIdle {
		kit.DrawIntro(dst, g.Title(),
			"A target colour is shown above the grid",
			"Move to a matching tile and press Enter",
			"Every hit scores a point; a miss costs time",
		)
		kit.DrawHelp(dst, "Enter start  Q quit")
		return
	}

	g.renderTarget(dst, snap)
	g.renderBoard(dst, snap)

	if snap.Phase == engine.PhaseResult {
		head := kit.Outcome(snap, "Hit! +1")
		kit.DrawOverlay(dst, head, kit.Line{Text: fmt.Sprintf("Streak %d  Best %d", snap.Streak, snap.BestStreak)})
		kit.DrawHelp(dst, "R next round  N new game  Q quit")
	} else {
		kit.DrawHelp(dst, "←↑↓→ move  Enter pick  R skip  P pause")
	}

	if g.session.Paused() {
		kit.DrawPaused(dst)
	}
}

func (g *Game) renderTarget(dst *core.Screen, snap engine.Snapshot) {
	y := kit.HUDHeight
	if snap.Target == nil {
		return
	}
	dst.DrawTextColor(2, y, "Find:", core.ColorText)
	dst.Swatch(core.NewRect(8, y, 4, 1), snap.Target.Hex())
	dst.DrawTextColor(13, y, snap.Target.Name, core.ColorAccent)

	misses := fmt.Sprintf("Misses: %d", snap.Misses)
	fg := core.ColorDim
	if snap.Misses > 0 {
		fg = core.ColorBad
	}
	dst.DrawTextColor(dst.Width()-len(misses)-2, y, misses, fg)
}

func (g *Game) renderBoard(dst *core.Screen, snap engine.Snapshot) {
	top := kit.HUDHeight + 2
	area := core.NewRect(2, top, dst.Width()-4, dst.Height()-top-2)
	cells := core.Grid(area, g.cols, g.rows, 1)
	cursor := g.Cursor()

	for i, it := range snap.Items {
		if i >= len(cells) {
			break
		}
		cell := cells[i]
		dst.Swatch(cell, it.Color.Hex())

		// In the result phase every target tile is outlined.
		switch {
		case snap.Phase == engine.PhaseActive && i == cursor:
			dst.DrawBox(cell, kit.TextOn(it.Color.RGB))
		case snap.Phase == engine.PhaseResult && snap.Target != nil && it.Color.Name == snap.Target.Name:
			dst.DrawBox(cell, kit.TextOn(it.Color.RGB))
		}
	}
}
