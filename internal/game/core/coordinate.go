package core

import (
	"fmt"
	"strings"
)

// BoardSize is the number of rows and columns on the board
const BoardSize = 8

// GoalRow is the row the red piece is trying to reach
const GoalRow = BoardSize - 1

// Coordinate represents a position on the game board
type Coordinate struct {
	R, C int
}

// NewCoordinate creates a new coordinate with the given row and column
func NewCoordinate(r, c int) Coordinate {
	return Coordinate{R: r, C: c}
}

// FromIndex creates a coordinate from a board array index using row-major ordering
func FromIndex(idx int) Coordinate {
	return Coordinate{
		R: idx / BoardSize,
		C: idx % BoardSize,
	}
}

// IsValid checks if the coordinate lies on the 8x8 board
func (c Coordinate) IsValid() bool {
	return c.R >= 0 && c.R < BoardSize && c.C >= 0 && c.C < BoardSize
}

// ToIndex converts the coordinate to a board array index using row-major ordering
func (c Coordinate) ToIndex() int {
	return c.R*BoardSize + c.C
}

// Translate returns the coordinate one step away in the given direction.
// No bounds checking is done; callers validate with IsValid.
func (c Coordinate) Translate(d Direction) Coordinate {
	dr, dc := d.Delta()
	return Coordinate{R: c.R + dr, C: c.C + dc}
}

// Less orders coordinates row first, then column
func (c Coordinate) Less(other Coordinate) bool {
	if c.R != other.R {
		return c.R < other.R
	}
	return c.C < other.C
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("%d-%d", c.R, c.C)
}

// Direction represents one of the eight compass directions on the board
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	UpLeft
	UpRight
	DownLeft
	DownRight
)

// directionVectors provides (row, column) offsets for each direction
var directionVectors = [...][2]int{
	Up:        {-1, 0},
	Down:      {1, 0},
	Left:      {0, -1},
	Right:     {0, 1},
	UpLeft:    {-1, -1},
	UpRight:   {-1, 1},
	DownLeft:  {1, -1},
	DownRight: {1, 1},
}

var directionNames = [...]string{
	Up:        "Up",
	Down:      "Down",
	Left:      "Left",
	Right:     "Right",
	UpLeft:    "UpLeft",
	UpRight:   "UpRight",
	DownLeft:  "DownLeft",
	DownRight: "DownRight",
}

// AllDirections lists every direction in declaration order
var AllDirections = []Direction{Up, Down, Left, Right, UpLeft, UpRight, DownLeft, DownRight}

// RedDirections are the directions the red piece may move in. It can never move upward.
var RedDirections = []Direction{Down, DownLeft, DownRight, Left, Right}

// IsValid reports whether d is one of the eight known directions
func (d Direction) IsValid() bool {
	return d >= Up && d <= DownRight
}

// Delta returns the (row, column) offset of the direction
func (d Direction) Delta() (int, int) {
	if !d.IsValid() {
		return 0, 0
	}
	v := directionVectors[d]
	return v[0], v[1]
}

func (d Direction) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts the camel-case name ("DownLeft") or the
// upper-snake-case form used in solution output ("DOWN_LEFT").
func ParseDirection(s string) (Direction, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	for _, d := range AllDirections {
		if strings.ToLower(directionNames[d]) == key {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}
