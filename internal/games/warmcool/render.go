package warmcool

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/chroma-arcade/internal/color"
	"github.com/vovakirdan/chroma-arcade/internal/core"
	"github.com/vovakirdan/chroma-arcade/internal/engine"
	"github.com/vovakirdan/chroma-arcade/internal/games/kit"
	"github.com/vovakirdan/chroma-arcade/internal/round"
)

const (
	minWidth  = 48
	minHeight = 20
	panelRows = 5
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
			"Sort each chip: warm or cool?",
			"Arrows move, 1/Z = warm, 2/X = cool, 0 = clear",
			"The round ends when every chip is placed",
		)
		kit.DrawHelp(dst, "Enter start  Q quit")
		return
	}

	g.renderBoard(dst, snap)

	if snap.Phase == engine.PhaseResult {
		g.renderResult(dst, snap)
		kit.DrawHelp(dst, "R next round  N new game  Q quit")
	} else {
		g.renderBuckets(dst, snap)
		kit.DrawHelp(dst, "←↑↓→ select  1/Z warm  2/X cool  0 clear  R skip  P pause")
	}

	if g.session.Paused() {
		kit.DrawPaused(dst)
	}
}

func (g *Game) boardArea(dst *core.Screen) core.Rect {
	top := kit.HUDHeight + 1
	return core.NewRect(2, top, dst.Width()-4, dst.Height()-top-panelRows-2)
}

func (g *Game) renderBoard(dst *core.Screen, snap engine.Snapshot) {
	n := len(snap.Items)
	cols := columns(n)
	rows := (n + cols - 1) / cols
	cells := core.Grid(g.boardArea(dst), cols, rows, 2)

	wrong := make(map[round.ItemID]bool, len(snap.Mistakes))
	for _, id := range snap.Mistakes {
		wrong[id] = true
	}

	for i, it := range snap.Items {
		if i >= len(cells) {
			break
		}
		cell := cells[i]
		selected := i == g.cursor && snap.Phase == engine.PhaseActive

		frame := core.ColorDim
		if selected {
			frame = core.ColorAccent
		}
		dst.DrawBox(cell, frame)
		dst.Swatch(cell.Inset(1), it.Color.Hex())

		label := placementLabel(snap.Placements[it.ID])
		fg := kit.TextOn(it.Color.RGB)
		if snap.Phase == engine.PhaseResult {
			label = it.Color.Name
			if wrong[it.ID] {
				label = "✗ " + label
			} else {
				label = "✓ " + label
			}
		}
		drawLabel(dst, cell.Inset(1), label, fg, it.Color.Hex())
	}
}

func placementLabel(b color.Bucket) string {
	switch b {
	case color.BucketWarm:
		return "WARM"
	case color.BucketCool:
		return "COOL"
	default:
		return "?"
	}
}

// drawLabel centres text on the bottom row of r, keeping the swatch background.
func drawLabel(dst *core.Screen, r core.Rect, text, fg, bg string) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	runes := []rune(text)
	if len(runes) > r.W {
		runes = runes[:r.W]
	}
	x := r.X + (r.W-len(runes))/2
	y := r.Bottom() - 1
	for i, ch := range runes {
		dst.SetCell(x+i, y, core.Cell{Rune: ch, Fg: fg, Bg: bg})
	}
}

func (g *Game) renderBuckets(dst *core.Screen, snap engine.Snapshot) {
	warm, cool := 0, 0
	for _, b := range snap.Placements {
		switch b {
		case color.BucketWarm:
			warm++
		case color.BucketCool:
			cool++
		}
	}

	y := dst.Height() - panelRows - 1
	dst.DrawTextColor(2, y, fmt.Sprintf("Warm: %d", warm), "#fb923c")
	dst.DrawTextColor(16, y, fmt.Sprintf("Cool: %d", cool), "#60a5fa")
	dst.DrawTextColor(30, y, fmt.Sprintf("Placed %d/%d", len(snap.Placements), len(snap.Items)), core.ColorDim)
}

// renderResult shows the outcome and why each chip belongs where it does.
func (g *Game) renderResult(dst *core.Screen, snap engine.Snapshot) {
	y := dst.Height() - panelRows - 1

	headline := kit.Outcome(snap, fmt.Sprintf("All sorted! +%d", len(snap.Items)))
	dst.DrawTextColor(2, y, headline.Text, headline.Fg)

	if names := snap.MistakeNames(); len(names) > 0 {
		dst.DrawTextColor(2, y+1, "Misplaced: "+strings.Join(names, ", "), core.ColorBad)
	}

	var warm, cool []string
	for _, it := range snap.Items {
		b, err := g.table.Classify(it.Color.Name)
		if err != nil {
			continue
		}
		if b == color.BucketWarm {
			warm = append(warm, it.Color.Name)
		} else {
			cool = append(cool, it.Color.Name)
		}
	}
	dst.DrawTextColor(2, y+2, "Warm: "+strings.Join(warm, ", "), "#fb923c")
	dst.DrawTextColor(2, y+3, "Cool: "+strings.Join(cool, ", "), "#60a5fa")
}
