// Package boardio reads and writes boards in the comma-separated text form:
// eight lines of eight cells, top row first.
//
//	r or R  red piece
//	b or B  blue piece
//	*       lily pad
//	-       no cell at this coordinate
//	blank   empty cell
package boardio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mitchelldurbincs/FreckersSearch/internal/game/core"
)

var (
	ErrMalformedBoard = errors.New("malformed board")
	ErrUnknownCell    = errors.New("unknown cell symbol")
	ErrMultipleRed    = errors.New("more than one red piece")
)

const missingCell = "-"

// ParseCSV reads a board. Blank lines and lines starting with '#' are skipped.
func ParseCSV(r io.Reader) (*core.Board, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = core.BoardSize
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	board := core.NewBoard()
	row := 0
	reds := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedBoard, err)
		}
		if row >= core.BoardSize {
			return nil, fmt.Errorf("%w: more than %d rows", ErrMalformedBoard, core.BoardSize)
		}

		for col, field := range record {
			symbol := strings.TrimSpace(field)
			if symbol == missingCell {
				continue
			}
			state, err := parseCell(symbol)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %w", ErrMalformedBoard, row, col, err)
			}
			if state == core.Red {
				reds++
				if reds > 1 {
					return nil, fmt.Errorf("%w: row %d column %d: %w", ErrMalformedBoard, row, col, ErrMultipleRed)
				}
			}
			board.Set(core.NewCoordinate(row, col), state)
		}
		row++
	}

	if row != core.BoardSize {
		return nil, fmt.Errorf("%w: got %d rows, want %d", ErrMalformedBoard, row, core.BoardSize)
	}
	return board, nil
}

// ParseString is ParseCSV over an in-memory string
func ParseString(s string) (*core.Board, error) {
	return ParseCSV(strings.NewReader(s))
}

func parseCell(symbol string) (core.CellState, error) {
	switch symbol {
	case "":
		return core.Empty, nil
	case "r", "R":
		return core.Red, nil
	case "b", "B":
		return core.Blue, nil
	case "*":
		return core.LilyPad, nil
	default:
		return core.Empty, fmt.Errorf("%w %q", ErrUnknownCell, symbol)
	}
}

// FormatCSV writes the board in the form ParseCSV reads
func FormatCSV(board *core.Board) string {
	var sb strings.Builder
	for r := 0; r < core.BoardSize; r++ {
		for c := 0; c < core.BoardSize; c++ {
			if c > 0 {
				sb.WriteByte(',')
			}
			state, ok := board.Get(core.NewCoordinate(r, c))
			switch {
			case !ok:
				sb.WriteString(missingCell)
			case state == core.Red:
				sb.WriteString("r")
			case state == core.Blue:
				sb.WriteString("b")
			case state == core.LilyPad:
				sb.WriteString("*")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
