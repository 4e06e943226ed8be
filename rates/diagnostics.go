package rates

import (
	"fmt"
	"strings"
)

const defaultRecentErrors = 5

// Diagnostics collects what happened during a run for the no-data alert
// and the monitoring entry.
type Diagnostics struct {
	SupportedCount int                 `json:"supportedCount"`
	DroppedIDs     []string            `json:"droppedIds"`
	InvalidIDs     []string            `json:"invalidIds,omitempty"`
	RecoveredIDs   []string            `json:"recoveredIds,omitempty"`
	MissingSymbols []string            `json:"missingSymbols,omitempty"`
	TriedIDs       map[string][]string `json:"triedIds,omitempty"`
	RecentErrors   []string            `json:"recentErrors"`

	limit int
}

func newDiagnostics(limit int) *Diagnostics {
	if limit <= 0 {
		limit = defaultRecentErrors
	}
	return &Diagnostics{
		DroppedIDs:   make([]string, 0),
		TriedIDs:     make(map[string][]string),
		RecentErrors: make([]string, 0, limit),
		limit:        limit,
	}
}

// AddError records err under source, only the newest errors are kept
func (d *Diagnostics) AddError(source string, err error) {
	if err == nil {
		return
	}
	d.addMessage(fmt.Sprintf("%s: %v", source, err))
}

// AddMessages records provider side errors that did not fail the call
func (d *Diagnostics) AddMessages(messages []string) {
	for _, m := range messages {
		d.addMessage(m)
	}
}

func (d *Diagnostics) addMessage(msg string) {
	d.RecentErrors = append(d.RecentErrors, msg)
	if over := len(d.RecentErrors) - d.limit; over > 0 {
		d.RecentErrors = append(d.RecentErrors[:0], d.RecentErrors[over:]...)
	}
}

// Summary renders the diagnostics on one line for alerts
func (d *Diagnostics) Summary() string {
	return fmt.Sprintf("supportedCount=%d droppedIds=[%s] recentErrors=[%s]",
		d.SupportedCount,
		strings.Join(d.DroppedIDs, ", "),
		strings.Join(d.RecentErrors, "; "),
	)
}
