package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/stealth/model"
)

func newTestGame(cfg Config, rng RandSource) (*Game, *ManualClock, *[]model.Result) {
	clock := &ManualClock{}
	g := NewGame(cfg, clock, rng)
	results := &[]model.Result{}
	g.OnResult(func(r model.Result) { *results = append(*results, r) })
	return g, clock, results
}

func TestGameStartsIdle(t *testing.T) {
	g, clock, _ := newTestGame(DefaultConfig(), alwaysChase())

	s := g.Snapshot()
	assert.Equal(t, model.SS_IDLE, s.State)
	assert.Empty(t, s.Agents)
	assert.False(t, clock.Step())

	g.MovePlayer(model.DIR_RIGHT)
	assert.Equal(t, model.Position{X: 0, Y: 0}, g.Snapshot().Player)
}

func TestStartSessionTwiceResets(t *testing.T) {
	g, clock, _ := newTestGame(quietConfig(), neverChase{0})

	g.StartSession()
	g.MovePlayer(model.DIR_RIGHT)
	g.MovePlayer(model.DIR_DOWN)
	clock.Advance(4)

	s := g.StartSession()
	assert.Equal(t, model.SS_PLAYING, s.State)
	assert.Equal(t, model.Position{X: 0, Y: 0}, s.Player)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 30, s.TimeRemaining)
	assert.Equal(t, 0, s.Tick)
	assert.True(t, clock.Running())

	again := g.StartSession()
	assert.Equal(t, s, again)
}

func TestTimeoutFiresResultOnceAndStopsClock(t *testing.T) {
	g, clock, results := newTestGame(quietConfig(), neverChase{0})
	g.StartSession()

	fired := clock.Advance(100)
	assert.Equal(t, 30, fired)
	assert.False(t, clock.Running())
	require.Len(t, *results, 1)
	assert.Equal(t, model.Result{Message: model.MSG_TIMEOUT, Score: 0}, (*results)[0])

	s := g.Snapshot()
	assert.Equal(t, model.SS_LOST, s.State)
	assert.Equal(t, 0, s.TimeRemaining)

	g.MovePlayer(model.DIR_DOWN)
	g.Tick()
	assert.Equal(t, s, g.Snapshot())
	assert.Len(t, *results, 1)
}

func TestWinReportsTimeBonus(t *testing.T) {
	c := quietConfig()
	c.PlayerStart = model.Position{X: 9, Y: 7}
	g, clock, results := newTestGame(c, neverChase{0})
	g.StartSession()
	clock.Advance(3)

	g.MovePlayer(model.DIR_DOWN)
	g.MovePlayer(model.DIR_DOWN)

	require.Len(t, *results, 1)
	assert.Equal(t, model.Result{Message: model.MSG_COMPLETE, Won: true, Score: 27*10 + 100, TimeBonus: 270}, (*results)[0])
	assert.False(t, clock.Running())
	assert.Equal(t, model.SS_WON, g.Snapshot().State)
}

func TestSnapshotIsACopy(t *testing.T) {
	g, _, _ := newTestGame(DefaultConfig(), alwaysChase())
	g.StartSession()

	s := g.Snapshot()
	s.Agents[0].Pos = model.Position{X: 0, Y: 0}
	assert.Equal(t, model.Position{X: 5, Y: 5}, g.Snapshot().Agents[0].Pos)
}

func TestOnChangeSkipsBlockedMoves(t *testing.T) {
	g, _, _ := newTestGame(quietConfig(), neverChase{0})
	changes := 0
	g.OnChange(func(model.Session) { changes++ })

	g.StartSession()
	assert.Equal(t, 1, changes)
	g.MovePlayer(model.DIR_UP)
	assert.Equal(t, 1, changes)
	g.MovePlayer(model.DIR_RIGHT)
	assert.Equal(t, 2, changes)
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	rng := NewRand(42)
	input := NewRand(99)
	g, clock, results := newTestGame(DefaultConfig(), rng)

	for round := 0; round < 20; round++ {
		g.StartSession()
		prev := g.Snapshot()
		for i := 0; i < 200; i++ {
			if input.Intn(3) == 0 {
				clock.Step()
			} else {
				g.MovePlayer(model.Direction(input.Intn(4)))
			}
			s := g.Snapshot()
			assert.True(t, s.Player.InGrid(s.GridSize))
			for _, a := range s.Agents {
				assert.True(t, a.Pos.InGrid(s.GridSize))
			}
			assert.LessOrEqual(t, s.TimeRemaining, prev.TimeRemaining)
			if prev.State != model.SS_PLAYING {
				assert.Equal(t, prev, s)
			}
			prev = s
		}
	}
	assert.LessOrEqual(t, len(*results), 20)
}
