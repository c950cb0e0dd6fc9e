package main

import (
	"flag"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/zucenko/stealth/model"
	"github.com/zucenko/stealth/sim"
	"golang.org/x/image/font"
)

const (
	size         = 50
	hudHeight    = 70
	footerHeight = 110
	margin       = 10
	frameTime    = time.Second / 60
)

type Game struct {
	sim         *sim.Game
	clock       *sim.FrameClock
	Tweens      map[*gween.Tween]Action
	strokes     map[*Stroke]struct{}
	bannerAlpha float32
	player      *Token
	guards      []*Token
	exit        *Token
	result      *model.Result
	disc        *ebiten.Image
	bar, fill   *Nine
	panel       *Nine
	button      *Nine
	big, small  font.Face
	width       int
	height      int
}

func NewGame(cfg sim.Config, seed int64) (*Game, error) {
	clock := sim.NewFrameClock(cfg.TickInterval())
	g := &Game{
		sim:     sim.NewGame(cfg, clock, sim.NewRand(seed)),
		clock:   clock,
		Tweens:  make(map[*gween.Tween]Action),
		strokes: map[*Stroke]struct{}{},
		width:   cfg.GridSize * size,
		height:  hudHeight + cfg.GridSize*size + footerHeight,
	}
	var err error
	if g.disc, err = ebiten.NewImageFromImage(roundImage(size), ebiten.FilterLinear); err != nil {
		return nil, err
	}
	if g.bar, err = NewNine(COLOR_PANEL, .25); err != nil {
		return nil, err
	}
	if g.fill, err = NewNine(COLOR_TIMER, .25); err != nil {
		return nil, err
	}
	if g.panel, err = NewNine(COLOR_PANEL, .3); err != nil {
		return nil, err
	}
	if g.button, err = NewNine(COLOR_EXIT, .3); err != nil {
		return nil, err
	}
	if g.big, err = loadFace(26); err != nil {
		return nil, err
	}
	if g.small, err = loadFace(16); err != nil {
		return nil, err
	}

	s := g.sim.Snapshot()
	g.player = NewToken(s.Player, COLOR_PLAYER)
	g.exit = NewToken(s.Objective, COLOR_EXIT)
	g.sim.OnResult(func(r model.Result) {
		g.result = &r
		g.fadeInBanner()
	})
	return g, nil
}

func (g *Game) start() {
	g.result = nil
	s := g.sim.StartSession()
	g.Tweens = make(map[*gween.Tween]Action)
	g.player.active = nil
	g.player.Jump(s.Player)
	g.guards = g.guards[:0]
	for _, a := range s.Agents {
		g.guards = append(g.guards, NewToken(a.Pos, COLOR_GUARD))
	}
}

// buttonBounds is where the start button sits in the footer.
func (g *Game) buttonBounds() (x, y, w, h int) {
	w, h = 200, 40
	return (g.width - w) / 2, g.height - h - margin, w, h
}

func (g *Game) tap(x, y int) {
	bx, by, bw, bh := g.buttonBounds()
	if x >= bx && x < bx+bw && y >= by && y < by+bh {
		g.start()
	}
}

// syncTokens moves every token toward where the snapshot has it.
func (g *Game) syncTokens(s model.Session) {
	g.slide(g.player, s.Player)
	for i, a := range s.Agents {
		if i < len(g.guards) {
			g.slide(g.guards[i], a.Pos)
		}
	}
}

func (g *Game) update(screen *ebiten.Image) error {
	g.readInput()
	g.clock.Advance(frameTime)
	g.syncTokens(g.sim.Snapshot())
	g.updateTweens(float32(frameTime.Seconds()))

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	g.draw(screen)
	return nil
}

func (g *Game) draw(screen *ebiten.Image) {
	s := g.sim.Snapshot()
	_ = screen.Fill(color.RGBA{R: 24, G: 24, B: 30, A: 255})

	text.Draw(screen, "Stealth Mission", g.big, margin, 30, COLOR_PLAYER.NRGBA(1))
	score := fmt.Sprintf("Score: %d", s.Score)
	text.Draw(screen, score, g.small, g.width-margin-font.MeasureString(g.small, score).Ceil(), 28, color.White)

	barWidth := float64(g.width - 2*margin - 50)
	g.bar.SetBounds(margin, 44, barWidth, 16)
	g.bar.Draw(screen)
	if f := s.TimeFractionAt(g.clock.Progress()); f > 0 {
		g.fill.SetBounds(margin, 44, barWidth*f, 16)
		g.fill.Draw(screen)
	}
	text.Draw(screen, fmt.Sprintf("%ds", s.TimeRemaining), g.small, g.width-margin-40, 58, color.White)

	for y := 0; y < s.GridSize; y++ {
		for x := 0; x < s.GridSize; x++ {
			px, py := cellPixel(model.Position{X: x, Y: y})
			ebitenutil.DrawRect(screen, float64(px)+1, float64(py)+1, size-2, size-2, COLOR_FLOOR.NRGBA(1))
		}
	}
	ebitenutil.DrawRect(screen, float64(g.exit.X)+4, float64(g.exit.Y)+4, size-8, size-8, g.exit.Color.NRGBA(1))
	if s.State != model.SS_IDLE {
		for _, t := range g.guards {
			g.drawToken(screen, t)
		}
	}
	g.drawToken(screen, g.player)

	footer := hudHeight + s.GridSize*size
	if g.result != nil {
		g.drawResult(screen, footer)
	}

	bx, by, bw, bh := g.buttonBounds()
	g.button.SetBounds(float64(bx), float64(by), float64(bw), float64(bh))
	g.button.Draw(screen)
	label := "Start Mission"
	if s.State == model.SS_PLAYING {
		label = "Restart Mission"
	}
	lw := font.MeasureString(g.small, label).Ceil()
	text.Draw(screen, label, g.small, bx+(bw-lw)/2, by+26, color.White)
}

func (g *Game) drawToken(screen *ebiten.Image, t *Token) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(.8, .8)
	op.GeoM.Translate(float64(t.X)+size*.1, float64(t.Y)+size*.1)
	op.ColorM.Scale(t.Color.r, t.Color.g, t.Color.b, 1)
	screen.DrawImage(g.disc, op)
}

func (g *Game) drawResult(screen *ebiten.Image, top int) {
	g.panel.alpha = float64(g.bannerAlpha)
	g.panel.SetBounds(margin, float64(top+4), float64(g.width-2*margin), 56)
	g.panel.Draw(screen)

	line := fmt.Sprintf("%s  Final Score: %d", g.result.Message, g.result.Score)
	text.Draw(screen, line, g.small, 2*margin, top+26, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: uint8(255 * g.bannerAlpha)})
	if g.result.Won {
		bonus := fmt.Sprintf("Time Bonus: +%d points", g.result.TimeBonus)
		text.Draw(screen, bonus, g.small, 2*margin, top+48, COLOR_EXIT.NRGBA(g.bannerAlpha))
	}
}

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for guard moves")
	flag.Parse()

	cfg := Load()
	g, err := NewGame(cfg, *seed)
	if err != nil {
		log.WithError(err).Fatal("failed to set up game")
	}
	log.WithField("grid", cfg.GridSize).Info("stealth mission ready")
	if err := ebiten.Run(g.update, g.width, g.height, 1, "Stealth Mission"); err != nil {
		log.Fatal(err)
	}
}
