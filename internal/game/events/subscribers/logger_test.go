package subscribers_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/FreckersSearch/internal/game/core"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/events"
	"github.com/mitchelldurbincs/FreckersSearch/internal/game/events/subscribers"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(raw), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestLoggerSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("test-logger", zerolog.New(&buf), zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeSearchStarted))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, line map[string]interface{})
	}{
		{
			name:  "SearchStarted",
			event: events.NewSearchStartedEvent("abc", core.Coordinate{R: 5, C: 0}, 2),
			check: func(t *testing.T, line map[string]interface{}) {
				assert.Equal(t, "5-0", line["start"])
				assert.Equal(t, float64(2), line["goal_count"])
			},
		},
		{
			name:  "NodeExpanded",
			event: events.NewNodeExpandedEvent("abc", core.Coordinate{R: 6, C: 0}, 1, 2, 1),
			check: func(t *testing.T, line map[string]interface{}) {
				assert.Equal(t, "6-0", line["coordinate"])
				assert.Equal(t, float64(1), line["g"])
				assert.Equal(t, float64(2), line["f"])
			},
		},
		{
			name:  "SearchSucceeded",
			event: events.NewSearchSucceededEvent("abc", core.Coordinate{R: 7, C: 0}, 2, 3, time.Millisecond),
			check: func(t *testing.T, line map[string]interface{}) {
				assert.Equal(t, "7-0", line["goal"])
				assert.Equal(t, float64(2), line["moves"])
			},
		},
		{
			name:  "SearchExhausted",
			event: events.NewSearchExhaustedEvent("abc", "unreachable", 1, time.Millisecond),
			check: func(t *testing.T, line map[string]interface{}) {
				assert.Equal(t, "unreachable", line["reason"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logSub := subscribers.NewLoggerSubscriber("event-logger", zerolog.New(&buf), zerolog.InfoLevel)

			logSub.HandleEvent(tc.event)

			lines := decodeLines(t, &buf)
			require.Len(t, lines, 1)
			assert.Equal(t, tc.event.Type(), lines[0]["event_type"])
			assert.Equal(t, "abc", lines[0]["search_id"])
			assert.Equal(t, "info", lines[0]["level"])
			tc.check(t, lines[0])
		})
	}
}

func TestLoggerSubscriberFilterAndDevMode(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("filtered", zerolog.New(&buf), zerolog.DebugLevel)
	logSub.SetEventFilter([]string{events.TypeSearchSucceeded})
	logSub.SetDevMode(true)

	assert.False(t, logSub.InterestedIn(events.TypeNodeExpanded))
	assert.True(t, logSub.InterestedIn(events.TypeSearchSucceeded))

	bus := events.NewEventBus()
	bus.Subscribe(logSub)
	bus.Publish(events.NewNodeExpandedEvent("x", core.Coordinate{R: 0, C: 0}, 0, 7, 0))
	bus.Publish(events.NewSearchSucceededEvent("x", core.Coordinate{R: 7, C: 2}, 1, 1, time.Millisecond))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "debug", lines[0]["level"])
	data, ok := lines[0]["event_data"].(map[string]interface{})
	require.True(t, ok, "dev mode should attach the raw event")
	assert.Equal(t, events.TypeSearchSucceeded, data["type"])

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeNodeExpanded))
}
