package main

import (
	"image/color"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/zucenko/stealth/model"
)

const slideSeconds = 0.15

func HexToF32(u uint32) GameColor {
	b := float64(0xff&u) / 255
	g := float64(0xff&(u>>8)) / 255
	r := float64(0xff&(u>>16)) / 255
	return GameColor{r, g, b}
}

type GameColor struct {
	r float64
	g float64
	b float64
}

// NRGBA is the color at alpha a in [0,1].
func (c GameColor) NRGBA(a float32) color.NRGBA {
	return color.NRGBA{R: uint8(c.r * 255), G: uint8(c.g * 255), B: uint8(c.b * 255), A: uint8(a * 255)}
}

var (
	COLOR_FLOOR  = HexToF32(0x2b2b33)
	COLOR_PLAYER = HexToF32(0xef4444)
	COLOR_GUARD  = HexToF32(0xeab308)
	COLOR_EXIT   = HexToF32(0x10b981)
	COLOR_TIMER  = HexToF32(0xef4444)
	COLOR_PANEL  = HexToF32(0x111118)
)

// Token is a piece on the board. Pos is the cell it belongs to in the
// simulation; X and Y are where it is drawn while it glides there.
type Token struct {
	Pos    model.Position
	X, Y   float32
	Color  GameColor
	active []*gween.Tween
}

func cellPixel(p model.Position) (float32, float32) {
	return float32(p.X * size), float32(p.Y*size + hudHeight)
}

func NewToken(p model.Position, c GameColor) *Token {
	x, y := cellPixel(p)
	return &Token{Pos: p, X: x, Y: y, Color: c}
}

// MoveTo retargets the token and returns the tweens that carry it there,
// or nothing when it already sits on p.
func (t *Token) MoveTo(p model.Position) map[*gween.Tween]Action {
	if t.Pos == p {
		return nil
	}
	t.Pos = p
	tx, ty := cellPixel(p)
	tweens := make(map[*gween.Tween]Action, 2)
	if tx != t.X {
		tweens[gween.New(t.X, tx, slideSeconds, ease.OutQuad)] = Action{onChange: func(v float32) { t.X = v }}
	}
	if ty != t.Y {
		tweens[gween.New(t.Y, ty, slideSeconds, ease.OutQuad)] = Action{onChange: func(v float32) { t.Y = v }}
	}
	return tweens
}

// Jump places the token without animation.
func (t *Token) Jump(p model.Position) {
	t.Pos = p
	t.X, t.Y = cellPixel(p)
}
