package rendering

import (
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/FreckersSearch/internal/game/core"
)

// ANSI color codes used when rendering for a terminal
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGray   = "\033[90m"
)

const (
	missingSymbol = " "
	pathSymbols   = "123456789"
)

// RenderBoard returns a grid view of the board with row and column headers.
// Cells missing from the board are left blank.
func RenderBoard(board *core.Board, ansi bool) string {
	return render(board, nil, ansi)
}

// RenderPath is RenderBoard with each landing cell of the solution marked by
// its move number. Moves past the ninth are marked "+".
func RenderPath(board *core.Board, actions []core.MoveAction, ansi bool) string {
	marks := make(map[core.Coordinate]string, len(actions))
	for i, action := range actions {
		mark := "+"
		if i < len(pathSymbols) {
			mark = pathSymbols[i : i+1]
		}
		marks[action.Destination()] = mark
	}
	return render(board, marks, ansi)
}

func render(board *core.Board, marks map[core.Coordinate]string, ansi bool) string {
	var sb strings.Builder
	// header, eight rows and a legend; ANSI codes roughly triple a cell
	sb.Grow((core.BoardSize*14 + 6) * (core.BoardSize + 2))

	sb.WriteString("   ")
	for c := 0; c < core.BoardSize; c++ {
		sb.WriteString(" ")
		sb.WriteString(strconv.Itoa(c))
	}
	sb.WriteString("\n")

	for r := 0; r < core.BoardSize; r++ {
		sb.WriteString(" ")
		sb.WriteString(strconv.Itoa(r))
		sb.WriteString(" ")
		for c := 0; c < core.BoardSize; c++ {
			coord := core.NewCoordinate(r, c)
			sb.WriteString(" ")
			if mark, ok := marks[coord]; ok {
				writeColored(&sb, mark, ColorYellow, ansi)
				continue
			}
			writeCell(&sb, board, coord, ansi)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString("R=red B=blue *=lily pad .=empty")
	if marks != nil {
		sb.WriteString(" 1-9=move landing")
	}
	sb.WriteString("\n")
	return sb.String()
}

func writeCell(sb *strings.Builder, board *core.Board, coord core.Coordinate, ansi bool) {
	state, ok := board.Get(coord)
	if !ok {
		sb.WriteString(missingSymbol)
		return
	}
	switch state {
	case core.Red:
		writeColored(sb, state.Symbol(), ColorRed, ansi)
	case core.Blue:
		writeColored(sb, state.Symbol(), ColorBlue, ansi)
	case core.LilyPad:
		writeColored(sb, state.Symbol(), ColorGreen, ansi)
	default:
		writeColored(sb, state.Symbol(), ColorGray, ansi)
	}
}

func writeColored(sb *strings.Builder, symbol, color string, ansi bool) {
	if !ansi {
		sb.WriteString(symbol)
		return
	}
	sb.WriteString(color)
	sb.WriteString(symbol)
	sb.WriteString(ColorReset)
}

// DirectionName returns the upper-snake-case name used in solution output,
// e.g. DOWN_LEFT
func DirectionName(d core.Direction) string {
	name := d.String()
	var sb strings.Builder
	sb.Grow(len(name) + 1)
	for i, ch := range name {
		if i > 0 && ch >= 'A' && ch <= 'Z' {
			sb.WriteByte('_')
		}
		sb.WriteRune(ch)
	}
	return strings.ToUpper(sb.String())
}

// FormatAction renders one action as "MOVE r-c [DIR,DIR]"
func FormatAction(action core.MoveAction) string {
	var sb strings.Builder
	sb.WriteString("MOVE ")
	sb.WriteString(action.Origin.String())
	sb.WriteString(" [")
	for i, d := range action.Move.Directions {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(DirectionName(d))
	}
	sb.WriteString("]")
	return sb.String()
}

// FormatSolution renders each action on its own line
func FormatSolution(actions []core.MoveAction) string {
	lines := make([]string, len(actions))
	for i, action := range actions {
		lines[i] = FormatAction(action)
	}
	return strings.Join(lines, "\n")
}
