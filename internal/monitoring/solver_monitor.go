package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/FreckersSearch/internal/game/events"
)

// SolverMonitor tracks search outcomes from the event bus and the process
// goroutine count, and logs a summary on an interval
type SolverMonitor struct {
	mu            sync.RWMutex
	metrics       SolverMetrics
	checkInterval time.Duration
	stopChan      chan struct{}
	stopOnce      sync.Once
	logger        zerolog.Logger
}

// SolverMetrics contains search and goroutine statistics
type SolverMetrics struct {
	Started            int `json:"started"`
	Succeeded          int `json:"succeeded"`
	Exhausted          int `json:"exhausted"`
	Aborted            int `json:"aborted"`
	InFlight           int `json:"in_flight"`
	TotalExpanded      int `json:"total_expanded"`
	PeakExpanded       int `json:"peak_expanded"`
	Goroutines         int `json:"goroutines"`
	GoroutineBaseline  int `json:"goroutine_baseline"`
	GoroutinePeak      int `json:"goroutine_peak"`
	LongestSearchMicro int `json:"longest_search_us"`
}

// NewSolverMonitor creates a monitor that logs every checkInterval
func NewSolverMonitor(checkInterval time.Duration) *SolverMonitor {
	baseline := runtime.NumGoroutine()
	return &SolverMonitor{
		metrics: SolverMetrics{
			Goroutines:        baseline,
			GoroutineBaseline: baseline,
			GoroutinePeak:     baseline,
		},
		checkInterval: checkInterval,
		stopChan:      make(chan struct{}),
		logger:        log.With().Str("component", "solver_monitor").Logger(),
	}
}

func (sm *SolverMonitor) ID() string {
	return "solver_monitor"
}

func (sm *SolverMonitor) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeSearchStarted, events.TypeSearchSucceeded, events.TypeSearchExhausted, events.TypeSearchAborted:
		return true
	}
	return false
}

// HandleEvent folds a search lifecycle event into the counters
func (sm *SolverMonitor) HandleEvent(event events.Event) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	switch e := event.(type) {
	case *events.SearchStartedEvent:
		sm.metrics.Started++
		sm.metrics.InFlight++
	case *events.SearchSucceededEvent:
		sm.metrics.Succeeded++
		sm.finishLocked(e.Expanded, e.Duration)
	case *events.SearchExhaustedEvent:
		sm.metrics.Exhausted++
		sm.finishLocked(e.Expanded, e.Duration)
	case *events.SearchAbortedEvent:
		sm.metrics.Aborted++
		sm.finishLocked(e.Expanded, e.Duration)
	}
}

func (sm *SolverMonitor) finishLocked(expanded int, d time.Duration) {
	if sm.metrics.InFlight > 0 {
		sm.metrics.InFlight--
	}
	sm.metrics.TotalExpanded += expanded
	if expanded > sm.metrics.PeakExpanded {
		sm.metrics.PeakExpanded = expanded
	}
	if us := int(d.Microseconds()); us > sm.metrics.LongestSearchMicro {
		sm.metrics.LongestSearchMicro = us
	}
}

// Start begins the periodic summary. A non-positive interval disables the
// summary; events are still counted.
func (sm *SolverMonitor) Start() {
	if sm.checkInterval <= 0 {
		sm.logger.Info().Msg("Solver metrics logging disabled")
		return
	}
	go sm.monitor()
	sm.logger.Info().
		Int("goroutine_baseline", sm.metrics.GoroutineBaseline).
		Dur("interval", sm.checkInterval).
		Msg("Started solver monitoring")
}

// Stop stops the monitor. Safe to call more than once.
func (sm *SolverMonitor) Stop() {
	sm.stopOnce.Do(func() { close(sm.stopChan) })
}

func (sm *SolverMonitor) monitor() {
	ticker := time.NewTicker(sm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sm.check()
		case <-sm.stopChan:
			return
		}
	}
}

// check samples the goroutine count and logs the current metrics
func (sm *SolverMonitor) check() {
	current := runtime.NumGoroutine()

	sm.mu.Lock()
	sm.metrics.Goroutines = current
	if current > sm.metrics.GoroutinePeak {
		sm.metrics.GoroutinePeak = current
	}
	m := sm.metrics
	sm.mu.Unlock()

	sm.logger.Info().
		Int("started", m.Started).
		Int("succeeded", m.Succeeded).
		Int("exhausted", m.Exhausted).
		Int("aborted", m.Aborted).
		Int("in_flight", m.InFlight).
		Int("total_expanded", m.TotalExpanded).
		Int("goroutines", m.Goroutines).
		Int("goroutine_peak", m.GoroutinePeak).
		Msg("Solver metrics")
}

// GetMetrics returns a snapshot of the current metrics
func (sm *SolverMonitor) GetMetrics() SolverMetrics {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.metrics
}
