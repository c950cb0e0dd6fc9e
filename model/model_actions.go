package model

func (d Direction) Valid() bool {
	return d >= DIR_RIGHT && d <= DIR_UP
}

// Delta is the unit step of d; unknown directions do not move.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DIR_RIGHT:
		return 1, 0
	case DIR_DOWN:
		return 0, 1
	case DIR_LEFT:
		return -1, 0
	case DIR_UP:
		return 0, -1
	}
	return 0, 0
}

func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Clamp keeps p inside an n*n grid.
func (p Position) Clamp(n int) Position {
	return Position{X: clamp(p.X, 0, n-1), Y: clamp(p.Y, 0, n-1)}
}

func (p Position) InGrid(n int) bool {
	return p.X >= 0 && p.X < n && p.Y >= 0 && p.Y < n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s SessionState) Terminal() bool {
	return s == SS_WON || s == SS_LOST
}

// Clone returns a copy that shares no memory with s.
func (s Session) Clone() Session {
	agents := make([]Agent, len(s.Agents))
	copy(agents, s.Agents)
	s.Agents = agents
	return s
}

func (s Session) AgentAt(p Position) bool {
	for _, a := range s.Agents {
		if a.Pos == p {
			return true
		}
	}
	return false
}

// TimeFraction is the share of the countdown left, for progress bars.
func (s Session) TimeFraction() float64 {
	if s.InitialTime <= 0 {
		return 0
	}
	return float64(s.TimeRemaining) / float64(s.InitialTime)
}

// TimeFractionAt is TimeFraction with progress of the running tick already
// spent, so a bar drains between ticks instead of stepping.
func (s Session) TimeFractionAt(progress float64) float64 {
	if s.InitialTime <= 0 || s.State != SS_PLAYING {
		return s.TimeFraction()
	}
	left := float64(s.TimeRemaining) - progress
	if left < 0 {
		left = 0
	}
	return left / float64(s.InitialTime)
}
