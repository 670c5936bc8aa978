package risk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/config"
	apperrors "github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/errors"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/logging"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// AlertHandler is invoked once per newly raised (non-duplicate) alert.
type AlertHandler func(models.RiskAlert)

// MonitoringStatus describes the monitor's current state.
type MonitoringStatus struct {
	Running        bool
	Interval       time.Duration
	LastAssessment time.Time
}

// Monitor owns the continuous risk-monitoring loop: a cached latest
// assessment, a repeating tick schedule, and alert subscribers. One
// Monitor instance per portfolio; no process-wide state.
type Monitor struct {
	assessor *Assessor
	cfg      config.MonitorConfig
	log      zerolog.Logger
	book     *alertBook

	// Injectable time sources for simulated-clock tests.
	now       func() time.Time
	newTicker func(d time.Duration) (<-chan time.Time, func())

	mu          sync.Mutex
	running     bool
	interval    time.Duration
	cancelLoop  context.CancelFunc
	stopTicker  func()
	loopDone    chan struct{}
	cached      *models.RiskAssessment
	cachedAt    time.Time
	assessing   bool
	assessDone  chan struct{}
	subscribers map[int]AlertHandler
	nextSubID   int
	tick        int64
}

// NewMonitor creates a monitor around the given assessor.
func NewMonitor(assessor *Assessor, cfg config.MonitorConfig, logger zerolog.Logger) *Monitor {
	m := &Monitor{
		assessor:    assessor,
		cfg:         cfg,
		log:         logger,
		book:        newAlertBook(cfg.AlertDedupWindow),
		now:         time.Now,
		subscribers: make(map[int]AlertHandler),
	}
	m.newTicker = func(d time.Duration) (<-chan time.Time, func()) {
		t := time.NewTicker(d)
		return t.C, t.Stop
	}
	// The assessor shares the monitor's clock so cached timestamps and
	// dedup windows agree under a simulated clock.
	assessor.now = func() time.Time { return m.now() }
	return m
}

// Start runs one immediate assessment, then schedules a repeating tick
// at the given interval. Starting an already-running monitor is a no-op
// with a warning.
func (m *Monitor) Start(ctx context.Context, intervalMinutes int) error {
	if intervalMinutes <= 0 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "monitoring interval %d minutes", intervalMinutes)
	}

	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		m.log.Warn().Err(apperrors.ErrMonitorRunning).Msg("Ignoring start request")
		return nil
	}
	interval := time.Duration(intervalMinutes) * time.Minute
	loopCtx, cancel := context.WithCancel(context.Background())
	tickCh, stopTicker := m.newTicker(interval)
	m.running = true
	m.interval = interval
	m.cancelLoop = cancel
	m.stopTicker = stopTicker
	m.loopDone = make(chan struct{})
	done := m.loopDone
	m.mu.Unlock()

	// Populate the cache before the first scheduled tick fires.
	if _, err := m.PerformAssessment(ctx); err != nil {
		m.raiseMonitoringAlert(err)
	}

	go func() {
		defer close(done)
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-tickCh:
				m.runTick()
			}
		}
	}()

	m.log.Info().Dur("interval", interval).Msg("Risk monitoring started")
	return nil
}

// Stop cancels future ticks. An in-flight tick is allowed to finish so
// the cache is never left half-written.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		m.log.Warn().Err(apperrors.ErrMonitorStopped).Msg("Ignoring stop request")
		return
	}
	m.stopTicker()
	m.cancelLoop()
	done := m.loopDone
	m.mu.Unlock()

	<-done

	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
	m.log.Info().Msg("Risk monitoring stopped")
}

// Status reports whether the monitor is running and when it last
// assessed.
func (m *Monitor) Status() MonitoringStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MonitoringStatus{
		Running:        m.running,
		Interval:       m.interval,
		LastAssessment: m.cachedAt,
	}
}

// runTick executes one scheduled assessment. Any failure, including a
// panic, becomes a single high-severity monitoring alert; the schedule
// itself survives.
func (m *Monitor) runTick() {
	m.mu.Lock()
	m.tick++
	tick := m.tick
	m.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			m.raiseMonitoringAlert(apperrors.NewMonitorError(tick, fmt.Sprintf("assessment panic: %v", r), nil))
		}
	}()

	// Ticks run against a background context: stopping the monitor
	// drains the in-flight tick instead of aborting it.
	if _, err := m.PerformAssessment(context.Background()); err != nil {
		m.raiseMonitoringAlert(apperrors.NewMonitorError(tick, "assessment failed", err))
	}
}

// PerformAssessment runs a full portfolio assessment and caches the
// result. A call that overlaps an in-flight assessment waits for it and
// reuses its result instead of racing a second computation.
func (m *Monitor) PerformAssessment(ctx context.Context) (*models.RiskAssessment, error) {
	m.mu.Lock()
	if m.assessing {
		wait := m.assessDone
		m.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		m.mu.Lock()
		cached := m.cached
		m.mu.Unlock()
		if cached == nil {
			return nil, apperrors.Wrap(apperrors.ErrMarketDataUnavailable, "concurrent assessment failed")
		}
		return cached, nil
	}
	m.assessing = true
	m.assessDone = make(chan struct{})
	m.mu.Unlock()

	assessment, err := m.assessor.assess(ctx, m.book)

	m.mu.Lock()
	m.assessing = false
	close(m.assessDone)
	if err == nil {
		m.cached = assessment
		m.cachedAt = m.now()
	}
	subs := m.snapshotSubscribers()
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	for _, alert := range assessment.Alerts {
		for _, fn := range subs {
			fn(alert)
		}
	}
	return assessment, nil
}

// CurrentMetrics returns the cached assessment while it is younger than
// the configured TTL, otherwise triggers a fresh assessment.
func (m *Monitor) CurrentMetrics(ctx context.Context) (*models.RiskAssessment, error) {
	m.mu.Lock()
	cached := m.cached
	fresh := cached != nil && m.now().Sub(m.cachedAt) < m.cfg.CacheTTL
	m.mu.Unlock()

	if fresh {
		return cached, nil
	}
	return m.PerformAssessment(ctx)
}

// Refresh invalidates the cache and forces a recomputation.
func (m *Monitor) Refresh(ctx context.Context) (*models.RiskAssessment, error) {
	m.mu.Lock()
	m.cachedAt = time.Time{}
	m.mu.Unlock()
	return m.PerformAssessment(ctx)
}

// Subscribe registers a listener for newly raised alerts and returns an
// unsubscribe function.
func (m *Monitor) Subscribe(fn AlertHandler) func() {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

func (m *Monitor) snapshotSubscribers() []AlertHandler {
	subs := make([]AlertHandler, 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

// ActiveAlerts returns the alerts raised within the dedup window.
func (m *Monitor) ActiveAlerts() []models.RiskAlert {
	return m.book.activeAlerts(m.now())
}

// raiseMonitoringAlert converts a tick failure into a single
// high-severity monitoring alert.
func (m *Monitor) raiseMonitoringAlert(err error) {
	alert := models.RiskAlert{
		Category:  models.AlertMonitoring,
		Severity:  models.SeverityHigh,
		Message:   fmt.Sprintf("monitoring error: %v", err),
		Timestamp: m.now(),
	}
	if !m.book.raise(alert) {
		return
	}
	logging.LogAlert(m.log, alert)

	m.mu.Lock()
	subs := m.snapshotSubscribers()
	m.mu.Unlock()
	for _, fn := range subs {
		fn(alert)
	}
}

// DashboardData assembles the aggregate view for presentation consumers.
func (m *Monitor) DashboardData(ctx context.Context) (*models.RiskDashboardData, error) {
	assessment, err := m.CurrentMetrics(ctx)
	if err != nil {
		return nil, err
	}

	exposurePct := 0.0
	if assessment.PortfolioValue > 0 {
		exposurePct = assessment.OptionsValue / assessment.PortfolioValue * 100
	}

	return &models.RiskDashboardData{
		RiskScore:       assessment.Score,
		RiskLevel:       assessment.Level,
		PortfolioGreeks: assessment.Greeks,
		RiskMetrics: models.RiskMetrics{
			ValueAtRisk: assessment.VaR,
		},
		Alerts:             m.ActiveAlerts(),
		Concentration:      assessment.Concentration,
		Margin:             assessment.Margin,
		StressResults:      assessment.StressResults,
		PortfolioValue:     assessment.PortfolioValue,
		OptionsExposurePct: exposurePct,
		LastUpdated:        assessment.Timestamp,
	}, nil
}
