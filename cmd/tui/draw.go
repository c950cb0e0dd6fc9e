package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/zucenko/stealth/model"
)

const (
	gridLeft = 2
	gridTop  = 4
	barWidth = 20
)

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleFloor  = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed).Bold(true)
	styleGuard  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleExit   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorGreen).Bold(true)
)

// cellAt is the screen column and row of grid position p; each cell is two
// columns wide so the grid looks square.
func cellAt(p model.Position) (int, int) {
	return gridLeft + p.X*2, gridTop + p.Y
}

func (g *Game) draw() {
	g.screen.Clear()
	s := g.game.Snapshot()

	g.text(gridLeft, 0, "Stealth Mission", styleTitle)
	g.text(gridLeft, 1, fmt.Sprintf("Score: %d", s.Score), styleText)
	g.text(gridLeft, 2, fmt.Sprintf("Time: %s %ds", progressBar(s.TimeFraction(), barWidth), s.TimeRemaining), styleText)

	for y := 0; y < s.GridSize; y++ {
		for x := 0; x < s.GridSize; x++ {
			cx, cy := cellAt(model.Position{X: x, Y: y})
			g.screen.SetContent(cx, cy, '·', nil, styleFloor)
		}
	}
	ex, ey := cellAt(s.Objective)
	g.screen.SetContent(ex, ey, 'E', nil, styleExit)
	for _, a := range s.Agents {
		ax, ay := cellAt(a.Pos)
		g.screen.SetContent(ax, ay, 'X', nil, styleGuard)
	}
	px, py := cellAt(s.Player)
	g.screen.SetContent(px, py, '@', nil, stylePlayer)

	line := gridTop + s.GridSize + 1
	if g.result != nil {
		g.text(gridLeft, line, g.result.Message, styleTitle)
		g.text(gridLeft, line+1, fmt.Sprintf("Final Score: %d", g.result.Score), styleText)
		if g.result.Won {
			g.text(gridLeft, line+2, fmt.Sprintf("Time Bonus: +%d points", g.result.TimeBonus), styleText)
		}
		line += 4
	}
	label := "Start Mission"
	if s.State == model.SS_PLAYING {
		label = "Restart Mission"
	}
	g.text(gridLeft, line, fmt.Sprintf("[Enter] %s  [WASD/arrows] move  [q] quit", label), styleText)

	g.screen.Show()
}

func (g *Game) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func progressBar(fraction float64, width int) string {
	filled := int(fraction*float64(width) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
