// Package qlearn implements tabular Q-learning on a grid world with walls,
// a goal, and three tiers of health-draining traps.
//
// The environment is immutable after construction. Training mutates a
// ValueTable owned by one Trainer; replays and rollouts read snapshots.
package qlearn

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/lixenwraith/agentlab/parameter"
	"github.com/lixenwraith/agentlab/vmath"
)

var (
	ErrEmptyLayout  = errors.New("qlearn: layout has no cells")
	ErrRaggedLayout = errors.New("qlearn: layout rows differ in length")
	ErrStartCount   = errors.New("qlearn: layout needs exactly one start")
	ErrGoalCount    = errors.New("qlearn: layout needs exactly one goal")
)

// Cell is the content of one grid tile
type Cell uint8

const (
	CellEmpty Cell = iota
	CellStart
	CellGoal
	CellWall
	CellTrap1
	CellTrap2
	CellTrap3
)

// cellRunes maps cells to their layout/map glyph
var cellRunes = [...]rune{
	CellEmpty: '.',
	CellStart: 'S',
	CellGoal:  'G',
	CellWall:  '#',
	CellTrap1: '1',
	CellTrap2: '2',
	CellTrap3: '3',
}

// Rune returns the layout glyph of the cell
func (c Cell) Rune() rune {
	if int(c) < len(cellRunes) {
		return cellRunes[c]
	}
	return '?'
}

func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellStart:
		return "start"
	case CellGoal:
		return "goal"
	case CellWall:
		return "wall"
	case CellTrap1:
		return "trap1"
	case CellTrap2:
		return "trap2"
	case CellTrap3:
		return "trap3"
	default:
		return fmt.Sprintf("cell(%d)", uint8(c))
	}
}

// TrapTier returns 1-3 for trap cells, 0 otherwise
func (c Cell) TrapTier() int {
	switch c {
	case CellTrap1:
		return 1
	case CellTrap2:
		return 2
	case CellTrap3:
		return 3
	default:
		return 0
	}
}

// State is a grid coordinate, X grows right and Y grows down
type State struct {
	X, Y int
}

// Action is one of four unit moves
type Action uint8

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
)

// ActionCount is the size of the action space
const ActionCount = 4

// Actions lists every action in tie-break order
var Actions = [ActionCount]Action{ActionUp, ActionDown, ActionLeft, ActionRight}

func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// ParseAction is the inverse of Action.String
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("qlearn: unknown action %q", s)
}

// delta returns the unit move of the action
func (a Action) delta() (dx, dy int) {
	switch a {
	case ActionUp:
		return 0, -1
	case ActionDown:
		return 0, 1
	case ActionLeft:
		return -1, 0
	case ActionRight:
		return 1, 0
	}
	return 0, 0
}

// --- Reward and Damage Model ---

// Reward returns the immediate reward for arriving in a cell
func Reward(c Cell) float64 {
	switch c {
	case CellGoal:
		return parameter.QLRewardGoal
	case CellWall:
		return parameter.QLRewardWall
	case CellTrap1:
		return parameter.QLRewardTrap1
	case CellTrap2:
		return parameter.QLRewardTrap2
	case CellTrap3:
		return parameter.QLRewardTrap3
	default:
		return parameter.QLRewardStep
	}
}

// Damage returns the health lost by standing on a cell after a move
func Damage(c Cell) int {
	switch c {
	case CellTrap1:
		return parameter.QLDamageTrap1
	case CellTrap2:
		return parameter.QLDamageTrap2
	case CellTrap3:
		return parameter.QLDamageTrap3
	default:
		return 0
	}
}

// IsTerminal reports whether an episode ends in this cell with this health
func IsTerminal(c Cell, health int) bool {
	return c == CellGoal || health <= 0
}

// --- Environment ---

// Environment is an immutable grid world with one start and one goal
type Environment struct {
	width, height int
	cells         []Cell
	start, goal   State
}

// GenerateConfig controls random map generation
type GenerateConfig struct {
	Size int
	// GoalMin is the lowest coordinate of the goal region [GoalMin, Size)²
	GoalMin int
	// Scatter attempts per tile kind, landing on an occupied cell wastes the attempt
	Walls, Trap1, Trap2, Trap3 int
}

// DefaultGenerateConfig returns the 10x10 demo map settings
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Size:    parameter.QLMapSize,
		GoalMin: parameter.QLGoalMin,
		Walls:   parameter.QLWallCount,
		Trap1:   parameter.QLTrap1Count,
		Trap2:   parameter.QLTrap2Count,
		Trap3:   parameter.QLTrap3Count,
	}
}

// BuildEnvironment generates the default demo map
func BuildEnvironment(rng *rand.Rand) *Environment {
	return GenerateEnvironment(DefaultGenerateConfig(), rng)
}

// GenerateEnvironment places start at (0,0), goal in the far corner region, then scatters
// walls and traps onto empty cells. Collisions are skipped, not retried.
func GenerateEnvironment(cfg GenerateConfig, rng *rand.Rand) *Environment {
	size := max(cfg.Size, 2)
	goalMin := vmath.ClampInt(cfg.GoalMin, 1, size-1)

	env := &Environment{
		width:  size,
		height: size,
		cells:  make([]Cell, size*size),
		start:  State{0, 0},
		goal: State{
			X: goalMin + rng.IntN(size-goalMin),
			Y: goalMin + rng.IntN(size-goalMin),
		},
	}
	env.set(env.start, CellStart)
	env.set(env.goal, CellGoal)

	scatter := []struct {
		cell  Cell
		count int
	}{
		{CellWall, cfg.Walls},
		{CellTrap1, cfg.Trap1},
		{CellTrap2, cfg.Trap2},
		{CellTrap3, cfg.Trap3},
	}
	for _, sc := range scatter {
		for i := 0; i < sc.count; i++ {
			s := State{X: rng.IntN(size), Y: rng.IntN(size)}
			if env.Cell(s) == CellEmpty {
				env.set(s, sc.cell)
			}
		}
	}

	return env
}

// NewEnvironment builds a grid from text rows using the glyphs . S G # 1 2 3
func NewEnvironment(rows []string) (*Environment, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyLayout
	}

	width := len([]rune(rows[0]))
	env := &Environment{
		width:  width,
		height: len(rows),
		cells:  make([]Cell, width*len(rows)),
	}

	starts, goals := 0, 0
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedLayout, y, len(runes), width)
		}
		for x, r := range runes {
			c, ok := cellFromRune(r)
			if !ok {
				return nil, fmt.Errorf("qlearn: unknown glyph %q at (%d,%d)", r, x, y)
			}
			s := State{X: x, Y: y}
			env.set(s, c)
			switch c {
			case CellStart:
				starts++
				env.start = s
			case CellGoal:
				goals++
				env.goal = s
			}
		}
	}

	if starts != 1 {
		return nil, fmt.Errorf("%w: found %d", ErrStartCount, starts)
	}
	if goals != 1 {
		return nil, fmt.Errorf("%w: found %d", ErrGoalCount, goals)
	}
	return env, nil
}

func cellFromRune(r rune) (Cell, bool) {
	for c, glyph := range cellRunes {
		if glyph == r {
			return Cell(c), true
		}
	}
	return CellEmpty, false
}

func (e *Environment) Width() int   { return e.width }
func (e *Environment) Height() int  { return e.height }
func (e *Environment) Start() State { return e.start }
func (e *Environment) Goal() State  { return e.goal }

// InBounds reports whether s lies on the grid
func (e *Environment) InBounds(s State) bool {
	return s.X >= 0 && s.X < e.width && s.Y >= 0 && s.Y < e.height
}

// Cell returns the tile at s, out-of-bounds reads as a wall
func (e *Environment) Cell(s State) Cell {
	if !e.InBounds(s) {
		return CellWall
	}
	return e.cells[s.Y*e.width+s.X]
}

func (e *Environment) set(s State, c Cell) {
	e.cells[s.Y*e.width+s.X] = c
}

// Count returns how many tiles hold c
func (e *Environment) Count(c Cell) int {
	n := 0
	for _, cell := range e.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Step applies a unit move clamped to the grid. A move into a wall is reverted
// and reported. Damage is read from the cell the agent ends on.
func (e *Environment) Step(s State, a Action) (next State, damage int, wallHit bool) {
	dx, dy := a.delta()
	next = State{
		X: vmath.ClampInt(s.X+dx, 0, e.width-1),
		Y: vmath.ClampInt(s.Y+dy, 0, e.height-1),
	}

	if e.Cell(next) == CellWall {
		next = s
		wallHit = true
	}

	return next, Damage(e.Cell(next)), wallHit
}

// String renders the map one row per line
func (e *Environment) String() string {
	var sb strings.Builder
	sb.Grow((e.width*2 + 1) * e.height)
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(e.Cell(State{X: x, Y: y}).Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
