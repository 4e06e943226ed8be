package interfaces

import "context"

// Alert failure reasons
const (
	AlertReasonDisabled     = "disabled"
	AlertReasonMissingCreds = "missing-creds"
	AlertReasonFailed       = "failed"
)

// AlertResult reports whether an alert was delivered
type AlertResult struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

//go:generate mockgen -destination=mocks/alerts.go . IAlertSender

// IAlertSender delivers operator alerts. It never returns an error, failures
// are reported through AlertResult.
type IAlertSender interface {
	SendAlert(ctx context.Context, text string) AlertResult
}
