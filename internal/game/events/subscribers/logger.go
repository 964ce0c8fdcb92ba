package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/FreckersSearch/internal/game/events"
)

// LoggerSubscriber logs search events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables logging of the full event payload
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent writes one log line per event
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.logLevel).
		Str("event_type", event.Type()).
		Str("search_id", event.SearchID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.SearchStartedEvent:
		logEvent.
			Str("start", e.Start.String()).
			Int("goal_count", e.GoalCount)

	case *events.NodeExpandedEvent:
		logEvent.
			Str("coordinate", e.Coordinate.String()).
			Int("g", e.G).
			Int("f", e.F).
			Int("move_count", e.MoveCount)

	case *events.SearchSucceededEvent:
		logEvent.
			Str("goal", e.Goal.String()).
			Int("moves", e.Moves).
			Int("expanded", e.Expanded).
			Dur("duration", e.Duration)

	case *events.SearchExhaustedEvent:
		logEvent.
			Str("reason", e.Reason).
			Int("expanded", e.Expanded).
			Dur("duration", e.Duration)

	case *events.SearchAbortedEvent:
		logEvent.
			Str("reason", e.Reason).
			Int("expanded", e.Expanded).
			Dur("duration", e.Duration)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Search event")
}
