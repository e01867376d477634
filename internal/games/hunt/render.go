package hunt

import (
	"github.com/vovakirdan/chroma-arcade/internal/core"
	"github.com/vovakirdan/chroma-arcade/internal/engine"
	"github.com/vovakirdan/chroma-arcade/internal/games/kit"
)

const (
	minWidth  = 40
	minHeight = 16
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

	if snap.Phase == engine.PhaseIdle || g.scene == nil {
		kit.DrawIntro(dst, g.Title(),
			"Find the target colour in the camera view",
			"Arrows steer the viewfinder, Enter reads now",
			"Hold it steady until the reading locks on",
		)
		kit.DrawHelp(dst, "Enter start  Q quit")
		return
	}

	g.renderReadout(dst, snap)
	g.renderScene(dst)

	if snap.Phase == engine.PhaseResult {
		kit.DrawOverlay(dst, kit.Outcome(snap, "Found it! +1"))
		kit.DrawHelp(dst, "R next round  N new game  Q quit")
	} else {
		kit.DrawHelp(dst, "←↑↓→ steer  Enter read  R skip  P pause")
	}

	if g.session.Paused() {
		kit.DrawPaused(dst)
	}
}

func (g *Game) renderReadout(dst *core.Screen, snap engine.Snapshot) {
	y := kit.HUDHeight
	if snap.Target != nil {
		dst.DrawTextColor(2, y, "Find:", core.ColorText)
		dst.Swatch(core.NewRect(8, y, 4, 1), snap.Target.Hex())
		dst.DrawTextColor(13, y, snap.Target.Name, core.ColorAccent)
	}

	x := dst.Width() / 2
	dst.DrawTextColor(x, y, "Seeing:", core.ColorText)
	if snap.Reading == nil {
		dst.DrawTextColor(x+8, y, "-", core.ColorDim)
		return
	}
	fg := core.ColorBad
	if snap.Target != nil && snap.Reading.Name == snap.Target.Name {
		fg = core.ColorGood
	}
	dst.Swatch(core.NewRect(x+8, y, 4, 1), snap.Reading.Hex())
	dst.DrawTextColor(x+13, y, snap.Reading.Name, fg)
}

// renderScene scales the scene onto the board, one patch colour per cell,
// and draws the viewfinder crosshair.
func (g *Game) renderScene(dst *core.Screen) {
	top := kit.HUDHeight + 2
	area := core.NewRect(2, top, dst.Width()-4, dst.Height()-top-2)
	if area.W <= 0 || area.H <= 0 {
		return
	}

	b := g.scene.Bounds()
	size := g.scene.PatchSize()
	for y := 0; y < area.H; y++ {
		py := y * b.Dy() / area.H
		for x := 0; x < area.W; x++ {
			px := x * b.Dx() / area.W
			c := g.scene.Patch(px/size, py/size)
			dst.SetCell(area.X+x, area.Y+y, core.Cell{Rune: ' ', Bg: c.Hex()})
		}
	}

	vx, vy := g.scene.Viewfinder()
	cx := area.X + vx*area.W/b.Dx()
	cy := area.Y + vy*area.H/b.Dy()
	under := g.scene.Patch(g.scene.ViewfinderPatch())
	fg := kit.TextOn(under.RGB)

	marks := []struct {
		x, y int
		r    rune
	}{
		{cx, cy, '┼'}, {cx - 1, cy, '─'}, {cx + 1, cy, '─'}, {cx, cy - 1, '│'}, {cx, cy + 1, '│'},
	}
	for _, m := range marks {
		if !area.Contains(m.x, m.y) {
			continue
		}
		c := dst.GetCell(m.x, m.y)
		c.Rune, c.Fg = m.r, fg
		dst.SetCell(m.x, m.y, c)
	}
}
