// Package risk implements the portfolio risk assessor and its continuous
// monitoring loop.
package risk

import (
	"sync"
	"time"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// alertBook deduplicates alerts per (symbol, category) within a rolling
// window and tracks the currently active set.
type alertBook struct {
	window time.Duration

	mu     sync.Mutex
	seen   map[alertKey]time.Time
	active []models.RiskAlert
}

type alertKey struct {
	symbol   models.Underlying
	category models.AlertCategory
}

func newAlertBook(window time.Duration) *alertBook {
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &alertBook{
		window: window,
		seen:   make(map[alertKey]time.Time),
	}
}

// raise records the alert unless an identical (symbol, category) alert
// was raised within the dedup window. Returns true when the alert is new.
func (b *alertBook) raise(alert models.RiskAlert) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := alertKey{symbol: alert.Symbol, category: alert.Category}
	if last, ok := b.seen[key]; ok && alert.Timestamp.Sub(last) < b.window {
		return false
	}
	b.seen[key] = alert.Timestamp
	b.active = append(b.active, alert)
	return true
}

// activeAlerts returns alerts raised within the window, pruning expired
// entries.
func (b *alertBook) activeAlerts(now time.Time) []models.RiskAlert {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.active[:0]
	for _, a := range b.active {
		if now.Sub(a.Timestamp) < b.window {
			kept = append(kept, a)
		}
	}
	b.active = kept
	return append([]models.RiskAlert(nil), kept...)
}
