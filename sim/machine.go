package sim

import "github.com/zucenko/stealth/model"

// Machine holds the rules of one scenario. Every transition takes a session
// and returns the next one without touching its argument; a non-nil result
// means the session just reached won or lost.
type Machine struct {
	cfg Config
	rng RandSource
}

func NewMachine(cfg Config, rng RandSource) *Machine {
	return &Machine{cfg: cfg, rng: rng}
}

// Idle is the session shown before the first start. Guards are not placed.
func (m *Machine) Idle() model.Session {
	return model.Session{
		State:         model.SS_IDLE,
		TimeRemaining: m.cfg.InitialTime,
		InitialTime:   m.cfg.InitialTime,
		GridSize:      m.cfg.GridSize,
		Player:        m.cfg.PlayerStart,
		Objective:     m.cfg.Objective,
	}
}

func (m *Machine) Start() model.Session {
	s := m.Idle()
	s.State = model.SS_PLAYING
	s.Agents = make([]model.Agent, len(m.cfg.Agents))
	for i, p := range m.cfg.Agents {
		s.Agents[i] = model.Agent{Id: i, Pos: p}
	}
	return s
}

func (m *Machine) Move(s model.Session, d model.Direction) (model.Session, *model.Result) {
	if s.State != model.SS_PLAYING || !d.Valid() {
		return s, nil
	}
	next := s.Clone()
	next.Player = MovePlayer(s.Player, d, s.GridSize)
	return m.Check(next)
}

// Tick runs one clock period: countdown, guards, collisions, then timeout.
// Guards chase the player position from before the tick.
func (m *Machine) Tick(s model.Session) (model.Session, *model.Result) {
	if s.State != model.SS_PLAYING {
		return s, nil
	}
	next := s.Clone()
	next.Tick++
	if next.TimeRemaining > 0 {
		next.TimeRemaining--
	}
	next.Agents = StepAll(s.Agents, s.Player, s.GridSize, m.cfg.ChaseChance, m.rng)

	next, res := m.Check(next)
	if res != nil {
		return next, res
	}
	if next.TimeRemaining == 0 {
		next.State = model.SS_LOST
		return next, &model.Result{Message: model.MSG_TIMEOUT, Score: next.Score}
	}
	return next, nil
}
