package sim

import (
	"fmt"
	"os"
	"time"

	"github.com/zucenko/stealth/model"
	"gopkg.in/yaml.v3"
)

const (
	DEFAULT_GRID_SIZE        = 10
	DEFAULT_TICK_MS          = 300
	DEFAULT_INITIAL_TIME     = 30
	DEFAULT_CHASE_CHANCE     = 0.7
	DEFAULT_TIME_BONUS       = 10
	DEFAULT_COMPLETION_BONUS = 100
)

type Config struct {
	GridSize        int
	TickMs          int
	InitialTime     int
	ChaseChance     float64
	TimeBonus       int
	CompletionBonus int
	PlayerStart     model.Position
	Objective       model.Position
	Agents          []model.Position
}

// fileConfig is the yaml shape; unset fields keep the defaults of the grid.
type fileConfig struct {
	GridSize        int              `yaml:"grid_size"`
	TickMs          int              `yaml:"tick_ms"`
	InitialTime     *int             `yaml:"initial_time"`
	ChaseChance     *float64         `yaml:"chase_chance"`
	TimeBonus       *int             `yaml:"time_bonus"`
	CompletionBonus *int             `yaml:"completion_bonus"`
	PlayerStart     *model.Position  `yaml:"player_start"`
	Objective       *model.Position  `yaml:"objective"`
	Agents          []model.Position `yaml:"agents"`
	Layout          string           `yaml:"layout"`
}

func DefaultConfig() Config {
	return NewConfig(DEFAULT_GRID_SIZE)
}

// NewConfig is the reference scenario scaled to an n*n grid: start top-left,
// exit bottom-right, three guards around the middle.
func NewConfig(n int) Config {
	return Config{
		GridSize:        n,
		TickMs:          DEFAULT_TICK_MS,
		InitialTime:     DEFAULT_INITIAL_TIME,
		ChaseChance:     DEFAULT_CHASE_CHANCE,
		TimeBonus:       DEFAULT_TIME_BONUS,
		CompletionBonus: DEFAULT_COMPLETION_BONUS,
		PlayerStart:     model.Position{X: 0, Y: 0},
		Objective:       model.Position{X: n - 1, Y: n - 1},
		Agents: []model.Position{
			{X: n / 2, Y: n / 2},
			{X: n / 3, Y: n / 3},
			{X: n * 2 / 3, Y: n * 2 / 3},
		},
	}
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

func (c Config) Validate() error {
	if c.GridSize < 2 {
		return fmt.Errorf("grid_size %d: need at least 2", c.GridSize)
	}
	if c.TickMs <= 0 {
		return fmt.Errorf("tick_ms %d: must be positive", c.TickMs)
	}
	if c.InitialTime < 0 {
		return fmt.Errorf("initial_time %d: must not be negative", c.InitialTime)
	}
	if c.ChaseChance < 0 || c.ChaseChance > 1 {
		return fmt.Errorf("chase_chance %v: must be within [0,1]", c.ChaseChance)
	}
	if c.TimeBonus < 0 || c.CompletionBonus < 0 {
		return fmt.Errorf("bonuses must not be negative")
	}
	if !c.PlayerStart.InGrid(c.GridSize) {
		return fmt.Errorf("player_start %v off grid", c.PlayerStart)
	}
	if !c.Objective.InGrid(c.GridSize) {
		return fmt.Errorf("objective %v off grid", c.Objective)
	}
	if len(c.Agents) == 0 {
		return fmt.Errorf("no agents")
	}
	for i, a := range c.Agents {
		if !a.InGrid(c.GridSize) {
			return fmt.Errorf("agent %d at %v off grid", i, a)
		}
	}
	return nil
}

func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	c, err := ParseConfig(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func ParseConfig(raw []byte) (Config, error) {
	var f fileConfig
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Config{}, err
	}

	n := f.GridSize
	var l *Layout
	if f.Layout != "" {
		parsed, err := ParseLayout(f.Layout)
		if err != nil {
			return Config{}, fmt.Errorf("layout: %w", err)
		}
		if n != 0 && n != parsed.GridSize {
			return Config{}, fmt.Errorf("layout is %dx%d but grid_size is %d", parsed.GridSize, parsed.GridSize, n)
		}
		l = &parsed
		n = parsed.GridSize
	}
	if n == 0 {
		n = DEFAULT_GRID_SIZE
	}

	c := NewConfig(n)
	if f.TickMs != 0 {
		c.TickMs = f.TickMs
	}
	if f.InitialTime != nil {
		c.InitialTime = *f.InitialTime
	}
	if f.ChaseChance != nil {
		c.ChaseChance = *f.ChaseChance
	}
	if f.TimeBonus != nil {
		c.TimeBonus = *f.TimeBonus
	}
	if f.CompletionBonus != nil {
		c.CompletionBonus = *f.CompletionBonus
	}
	if f.PlayerStart != nil {
		c.PlayerStart = *f.PlayerStart
	}
	if f.Objective != nil {
		c.Objective = *f.Objective
	}
	if len(f.Agents) > 0 {
		c.Agents = f.Agents
	}
	if l != nil {
		l.apply(&c)
	}
	return c, c.Validate()
}
