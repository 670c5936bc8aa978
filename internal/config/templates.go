package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Options Trader Configuration

[risk]
# Hard limit on a single position's risk as percentage of portfolio
max_position_risk_percent = 10.0
# Soft limit that raises a warning instead of rejecting
warn_position_risk_percent = 5.0
# Hard limit on exposure to a single underlying as percentage of portfolio
max_concentration_percent = 40.0
# Soft limit for concentration warnings
warn_concentration_percent = 25.0
# Hard limit on margin utilization, as a fraction
max_margin_utilization = 0.90
# Soft limit for margin warnings
warn_margin_utilization = 0.70
# Risk score above which a HIGH severity alert is raised
high_score_threshold = 80.0
# Risk score above which a MEDIUM severity alert is raised
medium_score_threshold = 60.0
# Risk score blend weights
leverage_weight = 0.40
concentration_weight = 0.30
var_weight = 0.30
# Flat margin estimate for naked short options, fraction of notional
naked_short_margin_rate = 0.20
# Underlying price shifts applied during stress testing
stress_shifts = [-0.20, -0.10, 0.10, 0.20]

[monitor]
# Minutes between automatic risk assessments
interval_minutes = 5
# How long a cached assessment stays fresh (e.g. "5m", "30s")
cache_ttl = "5m"
# Window within which duplicate alerts are suppressed
alert_dedup_window = "5m"

[market_data]
# Market data provider: "paper" or "kite"
provider = "paper"
# Defaults substituted when live data is unavailable
default_implied_vol = 0.25
default_risk_free_rate = 0.05
default_dividend_yield = 0.0

[logging]
# Log level: trace, debug, info, warn, error
level = "info"
console = true
file = true
`

const credentialsTemplate = `# Options Trader Credentials
# Keep this file secure. Do not commit to version control.

[kite]
api_key = ""
access_token = ""
`

// WriteTemplates writes commented starter config and credentials files to
// the given directory. Existing files are left untouched.
func WriteTemplates(configDir string) ([]string, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	var written []string

	configPath := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
			return written, fmt.Errorf("writing config template: %w", err)
		}
		written = append(written, configPath)
	}

	credsPath := filepath.Join(configDir, "credentials.toml")
	if _, err := os.Stat(credsPath); os.IsNotExist(err) {
		// Restricted permissions for the credentials file.
		if err := os.WriteFile(credsPath, []byte(credentialsTemplate), 0600); err != nil {
			return written, fmt.Errorf("writing credentials template: %w", err)
		}
		written = append(written, credsPath)
	}

	return written, nil
}
