package risk

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/config"
	apperrors "github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/errors"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/options"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/pricing"
)

// fakeData serves canned market conditions.
type fakeData struct {
	mu         sync.Mutex
	conditions map[string]models.MarketConditions
	err        error
}

func (f *fakeData) Quote(ctx context.Context, symbol string) (*models.MarketData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	mc := f.conditions[symbol]
	return &models.MarketData{Symbol: symbol, Price: mc.Price, Timestamp: mc.Timestamp}, nil
}

func (f *fakeData) Conditions(ctx context.Context, symbol string) (*models.MarketConditions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	mc, ok := f.conditions[symbol]
	if !ok {
		return nil, context.Canceled
	}
	return &mc, nil
}

func (f *fakeData) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

// fakeAccount serves a canned account snapshot and counts calls.
type fakeAccount struct {
	mu        sync.Mutex
	account   models.AccountInfo
	positions []models.OptionsPosition
	err       error
	calls     int
	gate      chan struct{} // when non-nil, Account blocks until closed
}

func (f *fakeAccount) Account(ctx context.Context) (*models.AccountInfo, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	err := f.err
	account := f.account
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (f *fakeAccount) Positions(ctx context.Context) ([]models.OptionsPosition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.positions, nil
}

func (f *fakeAccount) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeAccount) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

// testClock is a manually advanced clock shared with the monitor.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type monitorFixture struct {
	monitor *Monitor
	account *fakeAccount
	data    *fakeData
	clock   *testClock
	ticks   chan time.Time
}

func newMonitorFixture(t *testing.T) *monitorFixture {
	t.Helper()
	cfg := config.Default()

	clock := &testClock{now: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)}
	data := &fakeData{conditions: map[string]models.MarketConditions{
		"AAPL": {Price: 150, ImpliedVol: 0.25, RiskFreeRate: 0.05, Trend: models.TrendNeutral},
	}}

	expiry := clock.Now().AddDate(0, 2, 0)
	contract, err := models.NewOptionContract("AAPL", 150, expiry, models.Call)
	if err != nil {
		t.Fatalf("NewOptionContract: %v", err)
	}
	leg, err := models.NewStrategyLeg(contract, models.SellToOpen, 1, 5)
	if err != nil {
		t.Fatalf("NewStrategyLeg: %v", err)
	}
	account := &fakeAccount{
		account: models.AccountInfo{BuyingPower: 50000, Cash: 60000, PortfolioValue: 100000},
		positions: []models.OptionsPosition{
			{Underlying: "AAPL", Legs: []models.StrategyLeg{leg}},
		},
	}

	engine := pricing.NewEngine(pricing.ConservativeDefaults(), zerolog.Nop())
	assessor := NewAssessor(cfg.Risk, engine, options.NewFlatMarginModel(0.20), data, account, nil, zerolog.Nop())
	monitor := NewMonitor(assessor, cfg.Monitor, zerolog.Nop())

	ticks := make(chan time.Time, 1)
	monitor.now = clock.Now
	monitor.newTicker = func(d time.Duration) (<-chan time.Time, func()) {
		return ticks, func() {}
	}

	return &monitorFixture{monitor: monitor, account: account, data: data, clock: clock, ticks: ticks}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestMonitorStartRunsImmediateAssessment(t *testing.T) {
	f := newMonitorFixture(t)
	defer f.monitor.Stop()

	if err := f.monitor.Start(context.Background(), 5); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if got := f.account.callCount(); got != 1 {
		t.Errorf("account calls after start = %d, want 1 immediate assessment", got)
	}
	status := f.monitor.Status()
	if !status.Running {
		t.Error("Status().Running = false after Start")
	}
	if status.Interval != 5*time.Minute {
		t.Errorf("Interval = %v, want 5m", status.Interval)
	}
	if !status.LastAssessment.Equal(f.clock.Now()) {
		t.Errorf("LastAssessment = %v, want %v", status.LastAssessment, f.clock.Now())
	}
}

func TestMonitorTickTriggersReassessment(t *testing.T) {
	f := newMonitorFixture(t)
	defer f.monitor.Stop()

	if err := f.monitor.Start(context.Background(), 5); err != nil {
		t.Fatalf("Start: %v", err)
	}

	f.clock.Advance(5 * time.Minute)
	f.ticks <- f.clock.Now()

	waitFor(t, func() bool { return f.account.callCount() == 2 },
		"tick did not trigger a reassessment")
}

func TestMonitorStartInvalidInterval(t *testing.T) {
	f := newMonitorFixture(t)
	err := f.monitor.Start(context.Background(), 0)
	if err == nil {
		t.Error("Start accepted a zero interval")
	}
	if !errors.Is(err, apperrors.ErrConfigInvalid) {
		t.Errorf("Start error = %v, want ErrConfigInvalid in chain", err)
	}
}

func TestAssessmentAccountFailureTagged(t *testing.T) {
	f := newMonitorFixture(t)
	f.account.setErr(errors.New("session expired"))

	_, err := f.monitor.PerformAssessment(context.Background())
	if err == nil {
		t.Fatal("expected error when the account provider fails")
	}
	if !errors.Is(err, apperrors.ErrAccountUnavailable) {
		t.Errorf("assessment error = %v, want ErrAccountUnavailable in chain", err)
	}
}

func TestMonitorStartTwiceIsNoOp(t *testing.T) {
	f := newMonitorFixture(t)
	defer f.monitor.Stop()

	if err := f.monitor.Start(context.Background(), 5); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := f.monitor.Start(context.Background(), 5); err != nil {
		t.Errorf("second Start returned %v, want nil no-op", err)
	}
	if got := f.account.callCount(); got != 1 {
		t.Errorf("account calls = %d, want 1 (second start must not reassess)", got)
	}
}

func TestMonitorStopPreventsFurtherTicks(t *testing.T) {
	f := newMonitorFixture(t)

	if err := f.monitor.Start(context.Background(), 5); err != nil {
		t.Fatalf("Start: %v", err)
	}
	f.monitor.Stop()

	if f.monitor.Status().Running {
		t.Error("Status().Running = true after Stop")
	}

	// The loop has exited; a queued tick must go unserviced.
	f.ticks <- f.clock.Now()
	time.Sleep(50 * time.Millisecond)
	if got := f.account.callCount(); got != 1 {
		t.Errorf("account calls after stop = %d, want 1", got)
	}

	// Stopping again is a warning, not a panic.
	f.monitor.Stop()
}

func TestMonitorTickErrorRaisesMonitoringAlert(t *testing.T) {
	f := newMonitorFixture(t)
	defer f.monitor.Stop()

	var mu sync.Mutex
	var received []models.RiskAlert
	f.monitor.Subscribe(func(a models.RiskAlert) {
		mu.Lock()
		received = append(received, a)
		mu.Unlock()
	})

	if err := f.monitor.Start(context.Background(), 5); err != nil {
		t.Fatalf("Start: %v", err)
	}

	f.account.setErr(context.DeadlineExceeded)
	f.clock.Advance(5 * time.Minute)
	f.ticks <- f.clock.Now()

	waitFor(t, func() bool {
		for _, a := range f.monitor.ActiveAlerts() {
			if a.Category == models.AlertMonitoring && a.Severity == models.SeverityHigh {
				return true
			}
		}
		return false
	}, "tick failure did not raise a high-severity monitoring alert")

	mu.Lock()
	notified := len(received) > 0
	mu.Unlock()
	if !notified {
		t.Error("subscriber was not notified of the monitoring alert")
	}

	// A second failing tick inside the dedup window stays silent.
	f.clock.Advance(time.Minute)
	f.ticks <- f.clock.Now()
	waitFor(t, func() bool { return f.account.callCount() == 3 }, "second tick never ran")

	count := 0
	for _, a := range f.monitor.ActiveAlerts() {
		if a.Category == models.AlertMonitoring {
			count++
		}
	}
	if count != 1 {
		t.Errorf("monitoring alerts active = %d, want 1 (deduplicated)", count)
	}
}

func TestMonitorCacheTTL(t *testing.T) {
	f := newMonitorFixture(t)
	ctx := context.Background()

	first, err := f.monitor.CurrentMetrics(ctx)
	if err != nil {
		t.Fatalf("CurrentMetrics: %v", err)
	}
	if got := f.account.callCount(); got != 1 {
		t.Fatalf("account calls = %d, want 1", got)
	}

	// Within the TTL the cached assessment is reused.
	f.clock.Advance(2 * time.Minute)
	second, err := f.monitor.CurrentMetrics(ctx)
	if err != nil {
		t.Fatalf("CurrentMetrics: %v", err)
	}
	if second != first {
		t.Error("cached assessment not reused within the TTL")
	}
	if got := f.account.callCount(); got != 1 {
		t.Errorf("account calls = %d, want still 1", got)
	}

	// Past the TTL a fresh assessment runs.
	f.clock.Advance(4 * time.Minute)
	third, err := f.monitor.CurrentMetrics(ctx)
	if err != nil {
		t.Fatalf("CurrentMetrics: %v", err)
	}
	if third == first {
		t.Error("stale assessment served past the TTL")
	}
	if got := f.account.callCount(); got != 2 {
		t.Errorf("account calls = %d, want 2", got)
	}
}

func TestMonitorRefreshBypassesCache(t *testing.T) {
	f := newMonitorFixture(t)
	ctx := context.Background()

	if _, err := f.monitor.CurrentMetrics(ctx); err != nil {
		t.Fatalf("CurrentMetrics: %v", err)
	}
	if _, err := f.monitor.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := f.account.callCount(); got != 2 {
		t.Errorf("account calls = %d, want 2 (refresh must recompute)", got)
	}
}

func TestMonitorInFlightAssessmentShared(t *testing.T) {
	f := newMonitorFixture(t)
	ctx := context.Background()

	gate := make(chan struct{})
	f.account.mu.Lock()
	f.account.gate = gate
	f.account.mu.Unlock()

	type result struct {
		assessment *models.RiskAssessment
		err        error
	}
	results := make(chan result, 2)
	run := func() {
		a, err := f.monitor.PerformAssessment(ctx)
		results <- result{a, err}
	}

	go run()
	waitFor(t, func() bool { return f.account.callCount() == 1 }, "first assessment never started")
	go run()

	// Give the second caller time to park on the in-flight guard, then
	// release the gate.
	time.Sleep(20 * time.Millisecond)
	f.account.mu.Lock()
	f.account.gate = nil
	f.account.mu.Unlock()
	close(gate)

	r1 := <-results
	r2 := <-results
	if r1.err != nil || r2.err != nil {
		t.Fatalf("assessment errors: %v / %v", r1.err, r2.err)
	}
	if r1.assessment != r2.assessment {
		t.Error("overlapping callers got different assessments")
	}
	if got := f.account.callCount(); got != 1 {
		t.Errorf("account calls = %d, want 1 shared assessment", got)
	}
}

func TestMonitorDegradesToDefaultsOnDataFailure(t *testing.T) {
	f := newMonitorFixture(t)
	f.data.setErr(context.DeadlineExceeded)

	assessment, err := f.monitor.PerformAssessment(context.Background())
	if err != nil {
		t.Fatalf("PerformAssessment with failing market data: %v", err)
	}
	if assessment.PortfolioValue != 100000 {
		t.Errorf("PortfolioValue = %v, want 100000", assessment.PortfolioValue)
	}
	if assessment.Score < 0 || assessment.Score > 100 {
		t.Errorf("Score = %v, want in [0,100]", assessment.Score)
	}
}

func TestMonitorDashboardData(t *testing.T) {
	f := newMonitorFixture(t)

	data, err := f.monitor.DashboardData(context.Background())
	if err != nil {
		t.Fatalf("DashboardData: %v", err)
	}
	if data.PortfolioValue != 100000 {
		t.Errorf("PortfolioValue = %v, want 100000", data.PortfolioValue)
	}
	if data.RiskLevel == "" {
		t.Error("RiskLevel not set")
	}
	if data.LastUpdated.IsZero() {
		t.Error("LastUpdated not set")
	}
}
