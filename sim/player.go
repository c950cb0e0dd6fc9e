package sim

import "github.com/zucenko/stealth/model"

// MovePlayer takes a unit step. A step off the grid leaves p where it is.
func MovePlayer(p model.Position, d model.Direction, n int) model.Position {
	dx, dy := d.Delta()
	return p.Add(dx, dy).Clamp(n)
}
