package sim

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/zucenko/stealth/model"
)

// Layout is a square map drawn in text:
//
//	P...
//	.G..
//	..G.
//	...E
//
// '.' floor, 'P' player start, 'E' exit, 'G' guard.
type Layout struct {
	GridSize  int
	Player    *model.Position
	Objective *model.Position
	Agents    []model.Position
}

func ParseLayout(s string) (Layout, error) {
	var l Layout
	scanner := bufio.NewScanner(strings.NewReader(s))
	scanner.Split(bufio.ScanLines)
	row := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if row == 0 {
			l.GridSize = len(line)
		} else if len(line) != l.GridSize {
			return l, fmt.Errorf("row %d has %d cells, want %d", row, len(line), l.GridSize)
		}
		for col, char := range line {
			p := model.Position{X: col, Y: row}
			switch char {
			case '.':
			case 'P':
				if l.Player != nil {
					return l, fmt.Errorf("second player start at %d:%d", row, col)
				}
				l.Player = &p
			case 'E':
				if l.Objective != nil {
					return l, fmt.Errorf("second exit at %d:%d", row, col)
				}
				l.Objective = &p
			case 'G':
				l.Agents = append(l.Agents, p)
			default:
				return l, fmt.Errorf("unexpected %q at %d:%d", char, row, col)
			}
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return l, err
	}
	if row == 0 {
		return l, fmt.Errorf("empty layout")
	}
	if row != l.GridSize {
		return l, fmt.Errorf("layout has %d rows of %d cells, must be square", row, l.GridSize)
	}
	return l, nil
}

func (l Layout) apply(c *Config) {
	if l.Player != nil {
		c.PlayerStart = *l.Player
	}
	if l.Objective != nil {
		c.Objective = *l.Objective
	}
	if len(l.Agents) > 0 {
		c.Agents = l.Agents
	}
}
