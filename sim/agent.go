package sim

import (
	"math/rand"

	"github.com/zucenko/stealth/model"
)

// RandSource is satisfied by *rand.Rand.
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// StepAgent moves one guard a single cell. With probability chase it closes
// in on target along the axis of larger distance (ties go to y), otherwise
// it takes a random cardinal step. The result is clamped to the grid.
func StepAgent(a model.Agent, target model.Position, n int, chase float64, rng RandSource) model.Agent {
	pos := a.Pos
	if rng.Float64() < chase {
		dx := target.X - pos.X
		dy := target.Y - pos.Y
		if abs(dx) > abs(dy) {
			pos.X += sign(dx)
		} else {
			pos.Y += sign(dy)
		}
	} else {
		switch rng.Intn(4) {
		case 0:
			pos.X++
		case 1:
			pos.X--
		case 2:
			pos.Y++
		case 3:
			pos.Y--
		}
	}
	a.Pos = pos.Clamp(n)
	return a
}

// StepAll moves every guard against the same target. Guards do not see each
// other, so the order of the slice does not change the outcome.
func StepAll(agents []model.Agent, target model.Position, n int, chase float64, rng RandSource) []model.Agent {
	next := make([]model.Agent, len(agents))
	for i, a := range agents {
		next[i] = StepAgent(a, target, n, chase, rng)
	}
	return next
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
