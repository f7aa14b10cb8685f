// Package snake is the grid world the controllers are evolved for, together
// with the driver that plays every agent of a population to termination and
// advances the generation.
package snake

import (
	"fmt"
	"slices"

	"github.com/baldhumanity/snakeai-go/neuroevo"
)

// NumInputs and NumActions fix the controller's input and output widths.
const (
	NumInputs  = 8
	NumActions = 4
)

// Direction is an action chosen by a controller. Its value is the index of
// the controller output that selects it.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{"up", "down", "left", "right"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Point is a cell on the board; X grows rightwards, Y downwards.
type Point struct {
	X, Y int
}

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

var velocities = [...]Point{
	Up:    {0, -1},
	Down:  {0, 1},
	Left:  {-1, 0},
	Right: {1, 0},
}

// Cause records why a game ended.
type Cause int

const (
	Alive Cause = iota
	HitSelf
	HitWall
	Starved
	BoardFull // No free cell left for the next fruit
)

var causeNames = [...]string{"alive", "hit self", "hit wall", "starved", "board full"}

func (c Cause) String() string {
	if c < 0 || int(c) >= len(causeNames) {
		return fmt.Sprintf("Cause(%d)", int(c))
	}
	return causeNames[c]
}

// Result is the outcome of a finished game.
type Result struct {
	Score    int // Fruit eaten
	Lifetime int // Frames survived
	Cause    Cause
}

// Game is one snake on its own board.
type Game struct {
	config     Config
	rng        neuroevo.Rand
	body       []Point // Head first; the tail cell repeats right after eating
	velocity   Point
	fruit      Point
	noFruit    bool
	score      int
	frames     int
	framesLeft int
	cause      Cause
}

// NewGame starts a game: the snake lies horizontally left of the centre,
// heading right, and the first fruit is placed with rng.
func NewGame(config Config, rng neuroevo.Rand) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		config:     config,
		rng:        rng,
		body:       make([]Point, config.InitialLength),
		velocity:   velocities[Right],
		framesLeft: config.StarvationFrames,
	}
	for i := range g.body {
		g.body[i] = Point{config.Cols/2 - i, config.Rows / 2}
	}
	g.placeFruit()
	return g, nil
}

// Head returns the head cell.
func (g *Game) Head() Point { return g.body[0] }

// Body returns a copy of the snake's cells, head first.
func (g *Game) Body() []Point { return slices.Clone(g.body) }

// Fruit returns the fruit cell.
func (g *Game) Fruit() Point { return g.fruit }

// Config returns the game rules.
func (g *Game) Config() Config { return g.config }

func (g *Game) Score() int      { return g.score }
func (g *Game) Lifetime() int   { return g.frames }
func (g *Game) FramesLeft() int { return g.framesLeft }
func (g *Game) Over() bool      { return g.cause != Alive }
func (g *Game) Cause() Cause    { return g.cause }

// Result returns the game's outcome so far.
func (g *Game) Result() Result {
	return Result{Score: g.score, Lifetime: g.frames, Cause: g.cause}
}

// Inputs returns the controller's sensor vector: head x and y, fruit x and y,
// then 1 or 0 for a body segment directly above, below, left and right of the head.
func (g *Game) Inputs() []float64 {
	head := g.body[0]
	inputs := []float64{
		float64(head.X), float64(head.Y),
		float64(g.fruit.X), float64(g.fruit.Y),
		0, 0, 0, 0,
	}
	for i, d := range []Direction{Up, Down, Left, Right} {
		if g.inBody(head.add(velocities[d])) {
			inputs[4+i] = 1
		}
	}
	return inputs
}

// Turn changes the heading unless d would reverse the snake onto itself.
// Unknown directions keep the current heading.
func (g *Game) Turn(d Direction) {
	if d < 0 || int(d) >= len(velocities) {
		return
	}
	v := velocities[d]
	if g.velocity == (Point{-v.X, -v.Y}) {
		return
	}
	g.velocity = v
}

// Step advances the game by one frame with the given action. It does nothing
// once the game is over.
func (g *Game) Step(d Direction) {
	if g.Over() {
		return
	}
	g.frames++
	g.framesLeft--
	g.Turn(d)
	g.move()
	g.eat()
	g.checkEnd()
}

// move shifts the snake one cell along its heading.
func (g *Game) move() {
	next := make([]Point, 0, len(g.body))
	next = append(next, g.body[0].add(g.velocity))
	g.body = append(next, g.body[:len(g.body)-1]...)
}

// eat grows the snake when its head reaches the fruit.
func (g *Game) eat() {
	if g.body[0] != g.fruit {
		return
	}
	g.body = append(g.body, g.body[len(g.body)-1])
	g.score++
	g.framesLeft += g.config.FruitFrames
	g.placeFruit()
}

func (g *Game) checkEnd() {
	head := g.body[0]
	switch {
	case g.inBody(head):
		g.cause = HitSelf
	case head.X < 0 || head.X >= g.config.Cols || head.Y < 0 || head.Y >= g.config.Rows:
		g.cause = HitWall
	case g.framesLeft <= 0:
		g.cause = Starved
	case g.noFruit:
		g.cause = BoardFull
	}
}

// inBody reports whether p is occupied by a segment behind the head.
func (g *Game) inBody(p Point) bool {
	return slices.Contains(g.body[1:], p)
}

// placeFruit draws random cells until it finds one the snake does not occupy.
func (g *Game) placeFruit() {
	occupied := make(map[Point]struct{}, len(g.body))
	for _, p := range g.body {
		occupied[p] = struct{}{}
	}
	if len(occupied) >= g.config.Cols*g.config.Rows {
		g.noFruit = true
		return
	}
	for {
		p := Point{g.rng.Intn(g.config.Cols), g.rng.Intn(g.config.Rows)}
		if _, taken := occupied[p]; !taken {
			g.fruit = p
			return
		}
	}
}
