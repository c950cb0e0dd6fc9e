package main

import (
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/zucenko/stealth/model"
)

// StrokeSource represents a input device to provide strokes.
type StrokeSource interface {
	Position() (int, int)
	IsJustReleased() bool
}

type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

type TouchStrokeSource struct {
	ID int
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsJustReleased() bool {
	return inpututil.IsTouchJustReleased(t.ID)
}

// Stroke follows one drag from press to release.
type Stroke struct {
	source             StrokeSource
	initX, initY       int
	currentX, currentY int
	released           bool
	swiped             bool
}

func NewStroke(source StrokeSource) *Stroke {
	cx, cy := source.Position()
	return &Stroke{
		source:   source,
		initX:    cx,
		initY:    cy,
		currentX: cx,
		currentY: cy,
	}
}

func (s *Stroke) Update() {
	if s.released {
		return
	}
	if s.source.IsJustReleased() {
		s.released = true
		return
	}
	s.currentX, s.currentY = s.source.Position()
}

func (s *Stroke) IsReleased() bool {
	return s.released
}

func (s *Stroke) Start() (int, int) {
	return s.initX, s.initY
}

func (s *Stroke) PositionDiff() (int, int) {
	return s.currentX - s.initX, s.currentY - s.initY
}

// swipeDirection turns a drag into a move once it covers half a cell. The
// longer axis wins.
func swipeDirection(dx, dy int) (model.Direction, bool) {
	adx, ady := dx, dy
	if adx < 0 {
		adx = -adx
	}
	if ady < 0 {
		ady = -ady
	}
	if adx < size/2 && ady < size/2 {
		return 0, false
	}
	if adx > ady {
		if dx > 0 {
			return model.DIR_RIGHT, true
		}
		return model.DIR_LEFT, true
	}
	if dy > 0 {
		return model.DIR_DOWN, true
	}
	return model.DIR_UP, true
}

var moveKeys = map[ebiten.Key]model.Direction{
	ebiten.KeyUp:    model.DIR_UP,
	ebiten.KeyW:     model.DIR_UP,
	ebiten.KeyDown:  model.DIR_DOWN,
	ebiten.KeyS:     model.DIR_DOWN,
	ebiten.KeyLeft:  model.DIR_LEFT,
	ebiten.KeyA:     model.DIR_LEFT,
	ebiten.KeyRight: model.DIR_RIGHT,
	ebiten.KeyD:     model.DIR_RIGHT,
}

// updateStroke moves the player once per stroke; a stroke that never
// becomes a swipe is a tap.
func (g *Game) updateStroke(stroke *Stroke) {
	stroke.Update()
	if !stroke.swiped {
		if d, ok := swipeDirection(stroke.PositionDiff()); ok {
			stroke.swiped = true
			g.sim.MovePlayer(d)
		}
	}
	if stroke.IsReleased() && !stroke.swiped {
		g.tap(stroke.Start())
	}
}

func (g *Game) readInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.start()
	}
	for k, d := range moveKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.sim.MovePlayer(d)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.strokes[NewStroke(&MouseStrokeSource{})] = struct{}{}
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		g.strokes[NewStroke(&TouchStrokeSource{id})] = struct{}{}
	}
	for s := range g.strokes {
		g.updateStroke(s)
		if s.IsReleased() {
			delete(g.strokes, s)
		}
	}
}
