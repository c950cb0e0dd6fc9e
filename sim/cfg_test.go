package sim

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/stealth/model"
)

func TestDefaultConfigIsReferenceScenario(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, 10, c.GridSize)
	assert.Equal(t, 300*time.Millisecond, c.TickInterval())
	assert.Equal(t, []model.Position{{X: 5, Y: 5}, {X: 3, Y: 3}, {X: 6, Y: 6}}, c.Agents)
	assert.Equal(t, model.Position{X: 9, Y: 9}, c.Objective)
}

func TestShippedMissionIsDefaultScenario(t *testing.T) {
	c, err := LoadConfig("../stealth.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestParseConfigOverridesDefaults(t *testing.T) {
	c, err := ParseConfig([]byte(`
tick_ms: 200
initial_time: 45
chase_chance: 0
agents:
  - {x: 1, y: 8}
`))
	require.NoError(t, err)
	assert.Equal(t, 200, c.TickMs)
	assert.Equal(t, 45, c.InitialTime)
	assert.Equal(t, 0.0, c.ChaseChance)
	assert.Equal(t, []model.Position{{X: 1, Y: 8}}, c.Agents)
	assert.Equal(t, DEFAULT_TIME_BONUS, c.TimeBonus)
}

func TestParseConfigScalesGuardsWithGrid(t *testing.T) {
	c, err := ParseConfig([]byte("grid_size: 12\n"))
	require.NoError(t, err)
	assert.Equal(t, model.Position{X: 11, Y: 11}, c.Objective)
	assert.Equal(t, []model.Position{{X: 6, Y: 6}, {X: 4, Y: 4}, {X: 8, Y: 8}}, c.Agents)
}

func TestParseConfigLayout(t *testing.T) {
	c, err := ParseConfig([]byte(`
layout: |
  .P...
  .....
  ..G..
  G....
  ....E
`))
	require.NoError(t, err)
	assert.Equal(t, 5, c.GridSize)
	assert.Equal(t, model.Position{X: 1, Y: 0}, c.PlayerStart)
	assert.Equal(t, model.Position{X: 4, Y: 4}, c.Objective)
	assert.Equal(t, []model.Position{{X: 2, Y: 2}, {X: 0, Y: 3}}, c.Agents)
}

func TestParseConfigRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"not square":     "layout: |\n  P..\n  ..E\n",
		"ragged":         "layout: |\n  P..\n  .G\n  ..E\n",
		"two players":    "layout: |\n  P.P\n  .G.\n  ..E\n",
		"unknown cell":   "layout: |\n  P#.\n  .G.\n  ..E\n",
		"size mismatch":  "grid_size: 8\nlayout: |\n  P..\n  .G.\n  ..E\n",
		"guard off grid": "agents:\n  - {x: 10, y: 0}\n",
		"chance":         "chase_chance: 1.5\n",
		"tiny grid":      "grid_size: 1\n",
		"tick":           "tick_ms: -5\n",
		"yaml":           "grid_size: [\n",
	}
	for name, raw := range cases {
		_, err := ParseConfig([]byte(raw))
		assert.Error(t, err, name)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stealth.yaml")
	require.NoError(t, os.WriteFile(path, []byte("initial_time: 12\n"), 0o644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12, c.InitialTime)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
