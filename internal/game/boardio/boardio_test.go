package boardio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/FreckersSearch/internal/game/core"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/mapgen"
	"github.com/mitchelldurbincs/FreckersSearch/internal/testutil"
)

const sampleCSV = `*,,,,,r,,*
,*,*,*,*,*,*,b
,,*,b,,b,*,
,,,*,b,*,,
,,*,,*,b,*,
,*,,,,*,b,*
*,,*,,,,*,
,*,,*,,,*,
`

func TestParseCSV_SampleGame(t *testing.T) {
	board, err := ParseString(sampleCSV)

	require.NoError(t, err)
	assert.Equal(t, testutil.SampleGame(), board)
	assert.Equal(t, core.BoardSize*core.BoardSize, board.Len())
}

func TestParseCSV_Symbols(t *testing.T) {
	text := strings.Repeat(",,,,,,,\n", 6) +
		"R, B , *,-, ,,,\n" +
		"r,b,*,,,,,\n"
	// second red on the last row
	_, err := ParseString(text)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMultipleRed)

	text = strings.Repeat(",,,,,,,\n", 6) +
		"R, B , *,-, ,,,\n" +
		",b,*,,,,,\n"
	board, err := ParseString(text)
	require.NoError(t, err)

	state, ok := board.Get(core.NewCoordinate(6, 0))
	assert.True(t, ok)
	assert.Equal(t, core.Red, state)
	assert.True(t, board.Is(core.NewCoordinate(6, 1), core.Blue))
	assert.True(t, board.Is(core.NewCoordinate(6, 2), core.LilyPad))
	assert.True(t, board.Is(core.NewCoordinate(6, 4), core.Empty))

	_, ok = board.Get(core.NewCoordinate(6, 3))
	assert.False(t, ok, "'-' leaves the cell off the board")
	assert.Equal(t, core.BoardSize*core.BoardSize-1, board.Len())
}

func TestParseCSV_SkipsCommentsAndBlankLines(t *testing.T) {
	text := "# two steps down\n\n" +
		strings.Repeat(",,,,,,,\n", 5) +
		"r,,,,,,,\n" +
		"\n" +
		"*,,,,,,,\n" +
		"*,,,,,,,\n"

	board, err := ParseString(text)

	require.NoError(t, err)
	assert.Equal(t, testutil.TwoStepCorner(), board)
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind error
	}{
		{
			name: "TooFewRows",
			text: strings.Repeat(",,,,,,,\n", 7),
			kind: ErrMalformedBoard,
		},
		{
			name: "TooManyRows",
			text: strings.Repeat(",,,,,,,\n", 9),
			kind: ErrMalformedBoard,
		},
		{
			name: "ShortRow",
			text: strings.Repeat(",,,,,,,\n", 7) + ",,,\n",
			kind: ErrMalformedBoard,
		},
		{
			name: "UnknownSymbol",
			text: "x,,,,,,,\n" + strings.Repeat(",,,,,,,\n", 7),
			kind: ErrUnknownCell,
		},
		{
			name: "Empty",
			text: "",
			kind: ErrMalformedBoard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := ParseString(tt.text)

			require.Error(t, err)
			assert.Nil(t, board)
			assert.ErrorIs(t, err, ErrMalformedBoard)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestFormatCSV_RoundTrip(t *testing.T) {
	assert.Equal(t, sampleCSV, FormatCSV(testutil.SampleGame()))

	for seed := int64(0); seed < 10; seed++ {
		config := mapgen.DefaultMapConfig()
		config.Sparse = seed%2 == 0
		board := mapgen.NewGenerator(config, testutil.NewTestRNG(seed)).GenerateMap()

		parsed, err := ParseString(FormatCSV(board))

		require.NoError(t, err, "seed %d", seed)
		assert.Equal(t, board, parsed, "seed %d", seed)
	}
}
