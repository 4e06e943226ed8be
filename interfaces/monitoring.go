package interfaces

import "time"

type MonitoringStatus string

const (
	StatusOK    MonitoringStatus = "ok"
	StatusWarn  MonitoringStatus = "warn"
	StatusError MonitoringStatus = "error"
)

// MonitoringEntry is one audit record
type MonitoringEntry struct {
	RunID      string           `json:"runId"`
	Provider   string           `json:"provider"`
	Operation  string           `json:"operation"`
	DurationMs int64            `json:"durationMs"`
	Status     MonitoringStatus `json:"status"`
	Meta       map[string]any   `json:"meta,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
}

// AlertState is the debounce bookkeeping of the staleness checker
type AlertState struct {
	FailureCount    int        `json:"failureCount"`
	LastAlertSentAt *time.Time `json:"lastAlertSentAt,omitempty"`
	FirstSeen       time.Time  `json:"firstSeen"`
	LastCheckedAt   time.Time  `json:"lastCheckedAt"`

	LastAlertResult       *AlertResult `json:"lastAlertResult,omitempty"`
	LastRemediationAt     *time.Time   `json:"lastRemediationAt,omitempty"`
	LastRemediationResult string       `json:"lastRemediationResult,omitempty"`
}
