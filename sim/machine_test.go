package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/stealth/model"
)

// quietConfig parks a single guard in the top-right corner where a
// random walk pinned to the right edge never reaches the player.
func quietConfig() Config {
	c := DefaultConfig()
	c.ChaseChance = 0
	c.Agents = []model.Position{{X: 9, Y: 0}}
	return c
}

func TestStartResetsSession(t *testing.T) {
	m := NewMachine(DefaultConfig(), alwaysChase())
	s := m.Start()

	assert.Equal(t, model.SS_PLAYING, s.State)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 30, s.TimeRemaining)
	assert.Equal(t, model.Position{X: 0, Y: 0}, s.Player)
	assert.Equal(t, model.Position{X: 9, Y: 9}, s.Objective)
	require.Len(t, s.Agents, 3)
	assert.Equal(t, model.Agent{Id: 0, Pos: model.Position{X: 5, Y: 5}}, s.Agents[0])
	assert.Equal(t, model.Agent{Id: 1, Pos: model.Position{X: 3, Y: 3}}, s.Agents[1])
	assert.Equal(t, model.Agent{Id: 2, Pos: model.Position{X: 6, Y: 6}}, s.Agents[2])
}

func TestIdleAcceptsNoInput(t *testing.T) {
	m := NewMachine(DefaultConfig(), alwaysChase())
	idle := m.Idle()

	moved, res := m.Move(idle, model.DIR_RIGHT)
	assert.Nil(t, res)
	assert.Equal(t, idle, moved)

	ticked, res := m.Tick(idle)
	assert.Nil(t, res)
	assert.Equal(t, idle, ticked)
}

func TestMoveIsClampedAtEdge(t *testing.T) {
	m := NewMachine(quietConfig(), neverChase{0})
	s := m.Start()

	next, res := m.Move(s, model.DIR_UP)
	assert.Nil(t, res)
	assert.Equal(t, model.Position{X: 0, Y: 0}, next.Player)

	next, _ = m.Move(next, model.DIR_LEFT)
	assert.Equal(t, model.Position{X: 0, Y: 0}, next.Player)

	next, _ = m.Move(next, model.DIR_DOWN)
	assert.Equal(t, model.Position{X: 0, Y: 1}, next.Player)
}

func TestTimeoutLoss(t *testing.T) {
	m := NewMachine(quietConfig(), neverChase{0})
	s := m.Start()

	var res *model.Result
	for i := 0; i < 29; i++ {
		s, res = m.Tick(s)
		require.Nil(t, res, "tick %d", i)
	}
	assert.Equal(t, model.SS_PLAYING, s.State)
	assert.Equal(t, 1, s.TimeRemaining)

	s, res = m.Tick(s)
	require.NotNil(t, res)
	assert.Equal(t, model.SS_LOST, s.State)
	assert.Equal(t, 0, s.TimeRemaining)
	assert.Equal(t, model.Result{Message: model.MSG_TIMEOUT, Score: 0}, *res)
}

func TestSuccessfulMission(t *testing.T) {
	m := NewMachine(quietConfig(), neverChase{0})
	s := m.Start()
	s.Player = model.Position{X: 8, Y: 9}
	s.TimeRemaining = 5

	s, res := m.Move(s, model.DIR_RIGHT)
	require.NotNil(t, res)
	assert.Equal(t, model.SS_WON, s.State)
	assert.Equal(t, 150, s.Score)
	assert.Equal(t, model.Result{Message: model.MSG_COMPLETE, Won: true, Score: 150, TimeBonus: 50}, *res)
}

func TestScoreFormulaKeepsPriorScore(t *testing.T) {
	m := NewMachine(quietConfig(), neverChase{0})
	s := m.Start()
	s.Player = model.Position{X: 9, Y: 8}
	s.Score = 20
	s.TimeRemaining = 7

	s, res := m.Move(s, model.DIR_DOWN)
	require.NotNil(t, res)
	assert.Equal(t, 20+7*10+100, s.Score)
}

func TestCaptureOnPlayerMove(t *testing.T) {
	m := NewMachine(DefaultConfig(), alwaysChase())
	s := m.Start()
	s.Player = model.Position{X: 4, Y: 5}
	s.Score = 3

	s, res := m.Move(s, model.DIR_RIGHT)
	require.NotNil(t, res)
	assert.Equal(t, model.SS_LOST, s.State)
	assert.Equal(t, model.Result{Message: model.MSG_CAUGHT, Score: 3}, *res)
}

func TestCaptureTakesPrecedenceOverObjective(t *testing.T) {
	c := DefaultConfig()
	c.Agents = []model.Position{{X: 9, Y: 8}}
	m := NewMachine(c, alwaysChase())
	s := m.Start()
	s.Player = s.Objective

	s, res := m.Tick(s)
	require.NotNil(t, res)
	assert.Equal(t, model.SS_LOST, s.State)
	assert.Equal(t, model.MSG_CAUGHT, res.Message)
	assert.Equal(t, 0, s.Score)
}

func TestGuardsChasePlayerFromBeforeTick(t *testing.T) {
	c := DefaultConfig()
	c.Agents = []model.Position{{X: 5, Y: 2}}
	m := NewMachine(c, alwaysChase())
	s := m.Start()
	s.Player = model.Position{X: 5, Y: 0}

	next, res := m.Tick(s)
	assert.Nil(t, res)
	assert.Equal(t, model.Position{X: 5, Y: 1}, next.Agents[0].Pos)
	assert.Equal(t, model.Position{X: 5, Y: 2}, s.Agents[0].Pos)
	assert.Equal(t, 29, next.TimeRemaining)
	assert.Equal(t, 1, next.Tick)
}

func TestTerminalSessionIsFrozen(t *testing.T) {
	m := NewMachine(DefaultConfig(), alwaysChase())
	s := m.Start()
	s.Player = model.Position{X: 5, Y: 4}
	lost, res := m.Move(s, model.DIR_DOWN)
	require.NotNil(t, res)

	for _, d := range []model.Direction{model.DIR_UP, model.DIR_LEFT, model.DIR_DOWN, model.DIR_RIGHT} {
		next, res := m.Move(lost, d)
		assert.Nil(t, res)
		assert.Equal(t, lost, next)
	}
	next, res := m.Tick(lost)
	assert.Nil(t, res)
	assert.Equal(t, lost, next)
}

func TestZeroInitialTimeLosesOnFirstTick(t *testing.T) {
	c := quietConfig()
	c.InitialTime = 0
	m := NewMachine(c, neverChase{0})

	s, res := m.Tick(m.Start())
	require.NotNil(t, res)
	assert.Equal(t, model.MSG_TIMEOUT, res.Message)
	assert.Equal(t, model.SS_LOST, s.State)
}
