package model

type ServerMessage struct {
	Snapshots []Session
	Results   []Result
}

// ClientMessage carries one input. Move is the Direction plus one so that
// the zero value means no move.
type ClientMessage struct {
	Start bool
	Move  int
}

func MoveMessage(d Direction) ClientMessage {
	return ClientMessage{Move: int(d) + 1}
}

func (cm ClientMessage) Direction() (Direction, bool) {
	if cm.Move == 0 {
		return 0, false
	}
	d := Direction(cm.Move - 1)
	return d, d.Valid()
}
