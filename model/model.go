package model

import "fmt"

type Position struct {
	X, Y int
}

// Direction follows the path order of a cell: right, down, left, up.
type Direction int

const (
	DIR_RIGHT Direction = iota
	DIR_DOWN
	DIR_LEFT
	DIR_UP
)

type SessionState int

const (
	SS_IDLE SessionState = iota
	SS_PLAYING
	SS_WON
	SS_LOST
)

const (
	MSG_COMPLETE = "Mission Complete!"
	MSG_CAUGHT   = "Caught by guards!"
	MSG_TIMEOUT  = "Time's up!"
)

type Agent struct {
	Id  int
	Pos Position
}

// Session is one immutable view of a play-through. Transitions build a new
// value; Agents is never shared between two sessions.
type Session struct {
	State         SessionState
	Score         int
	TimeRemaining int
	InitialTime   int
	GridSize      int
	Tick          int
	Player        Position
	Agents        []Agent
	Objective     Position
}

type Result struct {
	Message   string
	Won       bool
	Score     int
	TimeBonus int
}

func (s SessionState) Name() string {
	switch s {
	case SS_IDLE:
		return "IDLE"
	case SS_PLAYING:
		return "PLAYING"
	case SS_WON:
		return "WON"
	case SS_LOST:
		return "LOST"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

func (d Direction) Name() string {
	switch d {
	case DIR_RIGHT:
		return "right"
	case DIR_DOWN:
		return "down"
	case DIR_LEFT:
		return "left"
	case DIR_UP:
		return "up"
	default:
		return fmt.Sprintf("n/a:%d", d)
	}
}
