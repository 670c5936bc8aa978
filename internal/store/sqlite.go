package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/errors"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite-backed journal at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrDatabaseError, "opening %s: %v", dbPath, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, apperrors.Wrapf(apperrors.ErrDatabaseError, "initializing schema: %v", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS assessments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		score REAL NOT NULL,
		level TEXT NOT NULL,
		delta REAL NOT NULL,
		gamma REAL NOT NULL,
		theta REAL NOT NULL,
		vega REAL NOT NULL,
		rho REAL NOT NULL,
		value_at_risk REAL NOT NULL,
		portfolio_value REAL NOT NULL,
		options_value REAL NOT NULL,
		margin_utilization REAL NOT NULL,
		alert_count INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_assessments_timestamp ON assessments(timestamp);

	CREATE TABLE IF NOT EXISTS alerts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT NOT NULL,
		symbol TEXT NOT NULL,
		severity TEXT NOT NULL,
		message TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_alerts_timestamp ON alerts(timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveAssessment implements Store.
func (s *SQLiteStore) SaveAssessment(ctx context.Context, a *models.RiskAssessment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assessments (
			timestamp, score, level, delta, gamma, theta, vega, rho,
			value_at_risk, portfolio_value, options_value, margin_utilization, alert_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Timestamp, a.Score, string(a.Level),
		a.Greeks.Delta, a.Greeks.Gamma, a.Greeks.Theta, a.Greeks.Vega, a.Greeks.Rho,
		a.VaR, a.PortfolioValue, a.OptionsValue, a.Margin.Utilization, len(a.Alerts))
	if err != nil {
		return fmt.Errorf("saving assessment: %w", err)
	}
	return nil
}

// SaveAlert implements Store.
func (s *SQLiteStore) SaveAlert(ctx context.Context, alert models.RiskAlert) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (category, symbol, severity, message, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		string(alert.Category), string(alert.Symbol), string(alert.Severity), alert.Message, alert.Timestamp)
	if err != nil {
		return fmt.Errorf("saving alert: %w", err)
	}
	return nil
}

// GetAssessments implements Store.
func (s *SQLiteStore) GetAssessments(ctx context.Context, from, to time.Time) ([]AssessmentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, score, level, delta, gamma, theta, vega, rho,
		       value_at_risk, portfolio_value, options_value, margin_utilization, alert_count
		FROM assessments
		WHERE timestamp >= ? AND timestamp <= ?
		ORDER BY timestamp ASC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying assessments: %w", err)
	}
	defer rows.Close()

	var records []AssessmentRecord
	for rows.Next() {
		var r AssessmentRecord
		var level string
		if err := rows.Scan(&r.Timestamp, &r.Score, &level,
			&r.Greeks.Delta, &r.Greeks.Gamma, &r.Greeks.Theta, &r.Greeks.Vega, &r.Greeks.Rho,
			&r.ValueAtRisk, &r.PortfolioValue, &r.OptionsValue, &r.MarginUtilization, &r.AlertCount); err != nil {
			return nil, fmt.Errorf("scanning assessment: %w", err)
		}
		r.Level = models.RiskLevel(level)
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetRecentAlerts implements Store.
func (s *SQLiteStore) GetRecentAlerts(ctx context.Context, limit int) ([]models.RiskAlert, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, symbol, severity, message, timestamp
		FROM alerts
		ORDER BY timestamp DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.RiskAlert
	for rows.Next() {
		var a models.RiskAlert
		var category, symbol, severity string
		if err := rows.Scan(&category, &symbol, &severity, &a.Message, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}
		a.Category = models.AlertCategory(category)
		a.Symbol = models.Underlying(symbol)
		a.Severity = models.AlertSeverity(severity)
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
