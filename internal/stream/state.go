package stream

import "time"

type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusReconnecting Status = "reconnecting"
)

const (
	msgParseFailed  = "Error processing real-time updates"
	msgFatal        = "Failed to connect to real-time updates. Please refresh the page."
	msgUnauthorized = "Session expired. Please log in again."
)

// State is the observable condition of the stream connection.
type State struct {
	Status         Status    `json:"status"`
	Attempt        int       `json:"attempt"`
	MaxAttempts    int       `json:"max_attempts"`
	LastSnapshotAt time.Time `json:"last_snapshot_at,omitempty"`
	LastError      string    `json:"last_error,omitempty"`
	// Fatal is set once reconnection has given up. Only a new Start clears it.
	Fatal bool `json:"fatal"`
}
