// Package store provides persistence for risk assessment history.
package store

import (
	"context"
	"time"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// Store journals risk assessments and alerts for later review. The
// engine treats persistence as optional: a nil Store disables it.
type Store interface {
	SaveAssessment(ctx context.Context, assessment *models.RiskAssessment) error
	SaveAlert(ctx context.Context, alert models.RiskAlert) error
	GetAssessments(ctx context.Context, from, to time.Time) ([]AssessmentRecord, error)
	GetRecentAlerts(ctx context.Context, limit int) ([]models.RiskAlert, error)
	Close() error
}

// AssessmentRecord is the journaled summary of one assessment.
type AssessmentRecord struct {
	Timestamp         time.Time
	Score             float64
	Level             models.RiskLevel
	Greeks            models.Greeks
	ValueAtRisk       float64
	PortfolioValue    float64
	OptionsValue      float64
	MarginUtilization float64
	AlertCount        int
}
