package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
)

const ninePatchSize = 64

// Nine draws a rounded panel of any size from one round source image: the
// corners keep their scale, edges stretch along one axis, the center along
// both.
type Nine struct {
	image               *ebiten.Image
	alpha               float64
	color               GameColor
	Scale               float64
	cuts                [4]int
	x, y, width, height float64
}

func NewNine(c GameColor, scale float64) (*Nine, error) {
	src, err := ebiten.NewImageFromImage(roundImage(ninePatchSize), ebiten.FilterLinear)
	if err != nil {
		return nil, err
	}
	half := ninePatchSize / 2
	return &Nine{
		image: src,
		alpha: 1,
		color: c,
		Scale: scale,
		cuts:  [4]int{0, half, half + 1, ninePatchSize},
	}, nil
}

// roundImage is a white disc on transparent ground.
func roundImage(d int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, d, d))
	r := float64(d) / 2
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			dx := float64(x) + .5 - r
			dy := float64(y) + .5 - r
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func (n *Nine) SetBounds(x, y, width, height float64) {
	n.x, n.y, n.width, n.height = x, y, width, height
}

// spans returns the target offsets and scales of the three slices along one
// axis of the given length.
func (n *Nine) spans(length float64) (offsets [3]float64, scales [3]float64) {
	head := n.Scale * float64(n.cuts[1]-n.cuts[0])
	tail := n.Scale * float64(n.cuts[3]-n.cuts[2])
	inner := length - head - tail
	if inner < 0 {
		inner = 0
	}
	offsets = [3]float64{0, head, head + inner}
	scales = [3]float64{n.Scale, inner / float64(n.cuts[2]-n.cuts[1]), n.Scale}
	return
}

func (n *Nine) Draw(screen *ebiten.Image) {
	xOff, xScale := n.spans(n.width)
	yOff, yScale := n.spans(n.height)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			src := image.Rect(n.cuts[col], n.cuts[row], n.cuts[col+1], n.cuts[row+1])
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(xScale[col], yScale[row])
			op.GeoM.Translate(n.x+xOff[col], n.y+yOff[row])
			op.ColorM.Scale(n.color.r, n.color.g, n.color.b, n.alpha)
			screen.DrawImage(n.image.SubImage(src).(*ebiten.Image), op)
		}
	}
}
