package request

// IssueRequest is the request body for issuing a ban, mute or warning.
// A zero or omitted duration_seconds means the punishment is permanent.
type IssueRequest struct {
	TargetID        string `json:"target_id"`
	TargetName      string `json:"target_name,omitempty"`
	TargetIP        string `json:"target_ip,omitempty"`
	ExecutorID      string `json:"executor_id,omitempty"`
	ExecutorName    string `json:"executor_name,omitempty"`
	Reason          string `json:"reason"`
	DurationSeconds int64  `json:"duration_seconds,omitempty"`
	Silent          bool   `json:"silent,omitempty"`
}

// RevokeRequest is the request body for revoking a ban or mute
type RevokeRequest struct {
	ExecutorID   string `json:"executor_id,omitempty"`
	ExecutorName string `json:"executor_name,omitempty"`
	Note         string `json:"note,omitempty"`
}

// AdjustPointsRequest is the request body for adjusting a point balance
type AdjustPointsRequest struct {
	Delta int `json:"delta"`
}

// FreezeRequest is the request body for freezing a player
type FreezeRequest struct {
	ExecutorID   string `json:"executor_id,omitempty"`
	ExecutorName string `json:"executor_name,omitempty"`
	Reason       string `json:"reason"`
	Silent       bool   `json:"silent,omitempty"`
}
