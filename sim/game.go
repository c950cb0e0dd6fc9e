package sim

import (
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/stealth/model"
)

// Game owns the current session and feeds it clock ticks and player input.
// It is not safe for concurrent use: the host calls every method, and
// dispatches every clock tick, from one goroutine.
type Game struct {
	machine  *Machine
	clock    Clock
	session  model.Session
	rounds   int
	onResult []func(model.Result)
	onChange []func(model.Session)
	logger   *log.Entry
}

func NewGame(cfg Config, clock Clock, rng RandSource) *Game {
	m := NewMachine(cfg, rng)
	g := &Game{
		machine: m,
		clock:   clock,
		session: m.Idle(),
		logger:  log.WithField("game", "stealth"),
	}
	clock.OnTick(g.Tick)
	return g
}

// OnResult registers fn for the single result of every session.
func (g *Game) OnResult(fn func(model.Result)) {
	g.onResult = append(g.onResult, fn)
}

// OnChange registers fn for every new snapshot.
func (g *Game) OnChange(fn func(model.Session)) {
	g.onChange = append(g.onChange, fn)
}

func (g *Game) SetLogger(l *log.Entry) {
	g.logger = l
}

// StartSession discards whatever runs and begins a fresh session. It is
// accepted in every state.
func (g *Game) StartSession() model.Session {
	g.clock.Stop()
	g.rounds++
	g.logger = g.logger.WithField("round", g.rounds)
	g.logger.Info("mission start")
	g.apply(g.machine.Start(), nil, true)
	g.clock.Start()
	return g.Snapshot()
}

func (g *Game) MovePlayer(d model.Direction) model.Session {
	next, res := g.machine.Move(g.session, d)
	g.apply(next, res, false)
	return g.Snapshot()
}

// Tick is the clock callback; it is exported so hosts without a clock can
// drive the game directly.
func (g *Game) Tick() {
	next, res := g.machine.Tick(g.session)
	g.apply(next, res, false)
}

func (g *Game) Snapshot() model.Session {
	return g.session.Clone()
}

// Close stops the clock for good.
func (g *Game) Close() {
	g.clock.Stop()
}

func (g *Game) apply(next model.Session, res *model.Result, force bool) {
	changed := force || next.State != g.session.State || next.Tick != g.session.Tick ||
		next.Player != g.session.Player || next.Score != g.session.Score ||
		len(next.Agents) != len(g.session.Agents)
	g.session = next
	if next.State.Terminal() {
		g.clock.Stop()
	}
	if res != nil {
		g.logger.WithFields(log.Fields{
			"state": next.State.Name(),
			"score": res.Score,
			"tick":  next.Tick,
		}).Info(res.Message)
	}
	if changed {
		snap := g.Snapshot()
		for _, fn := range g.onChange {
			fn(snap)
		}
	}
	if res != nil {
		for _, fn := range g.onResult {
			fn(*res)
		}
	}
}
