package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Punishment:
		o.printPunishment(v)
	case []Punishment:
		o.printPunishments(v)
	case RevokeResult:
		o.printRevokeResult(v)
	case PointsResult:
		o.printPointsResult(v)
	case CountResult:
		o.printCountResult(v)
	case FreezeResult:
		o.printFreezeResult(v)
	case StatsResult:
		o.printStatsResult(v)
	case LookupResult:
		o.printLookupResult(v)
	case SessionResult:
		o.printSessionResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Punishment response type (matches API)
type Punishment struct {
	ID               int64      `json:"id"`
	Kind             string     `json:"kind"`
	TargetID         string     `json:"target_id"`
	TargetName       string     `json:"target_name,omitempty"`
	TargetIP         string     `json:"target_ip,omitempty"`
	ExecutorID       string     `json:"executor_id,omitempty"`
	ExecutorName     string     `json:"executor_name"`
	Reason           string     `json:"reason"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	Permanent        bool       `json:"permanent"`
	Active           bool       `json:"active"`
	Valid            bool       `json:"valid"`
	RemainingSeconds int64      `json:"remaining_seconds,omitempty"`
	Silent           bool       `json:"silent,omitempty"`
}

// RevokeResult response type
type RevokeResult struct {
	Revoked bool `json:"revoked"`
}

// PointsResult response type
type PointsResult struct {
	PlayerID string `json:"player_id"`
	Balance  int    `json:"balance"`
}

// CountResult response type
type CountResult struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

// FreezeResult response type
type FreezeResult struct {
	PlayerID     string    `json:"player_id"`
	ExecutorID   string    `json:"executor_id,omitempty"`
	ExecutorName string    `json:"executor_name"`
	Reason       string    `json:"reason"`
	FrozenAt     time.Time `json:"frozen_at"`
}

// StatsResult response type
type StatsResult struct {
	TotalBans      int `json:"total_bans"`
	ActiveBans     int `json:"active_bans"`
	TotalMutes     int `json:"total_mutes"`
	ActiveMutes    int `json:"active_mutes"`
	TotalWarnings  int `json:"total_warnings"`
	ActiveWarnings int `json:"active_warnings"`
}

// LookupResult response type
type LookupResult struct {
	PlayerID string `json:"player_id"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

// SessionResult response type
type SessionResult struct {
	PlayerID string `json:"player_id"`
	Online   bool   `json:"online"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPunishment(p Punishment) {
	fmt.Printf("Punishment #%d (%s)\n", p.ID, p.Kind)
	fmt.Printf("Target: %s", p.TargetID)
	if p.TargetName != "" {
		fmt.Printf(" (%s)", p.TargetName)
	}
	fmt.Println()
	if p.TargetIP != "" {
		fmt.Printf("Address: %s\n", p.TargetIP)
	}
	fmt.Printf("Executor: %s\n", p.ExecutorName)
	fmt.Printf("Reason: %s\n", p.Reason)
	fmt.Printf("Issued: %s\n", p.CreatedAt.Format(time.RFC3339))
	if p.Permanent {
		fmt.Println("Duration: permanent")
	} else if p.ExpiresAt != nil {
		fmt.Printf("Expires: %s\n", p.ExpiresAt.Format(time.RFC3339))
	}
	status := "inactive"
	if p.Valid {
		status = "active"
	} else if p.Active {
		status = "expired"
	}
	fmt.Printf("Status: %s\n", status)
}

func (o *Output) printPunishments(ps []Punishment) {
	if len(ps) == 0 {
		fmt.Println("No punishments")
		return
	}
	for i, p := range ps {
		if i > 0 {
			fmt.Println()
		}
		o.printPunishment(p)
	}
}

func (o *Output) printRevokeResult(r RevokeResult) {
	if r.Revoked {
		fmt.Println("Revoked")
	} else {
		fmt.Println("Nothing to revoke")
	}
}

func (o *Output) printPointsResult(p PointsResult) {
	fmt.Printf("Player: %s\n", p.PlayerID)
	fmt.Printf("Points: %d\n", p.Balance)
}

func (o *Output) printCountResult(c CountResult) {
	fmt.Printf("Player: %s\n", c.PlayerID)
	fmt.Printf("Count: %d\n", c.Count)
}

func (o *Output) printFreezeResult(f FreezeResult) {
	fmt.Printf("Player: %s\n", f.PlayerID)
	fmt.Printf("Frozen by: %s\n", f.ExecutorName)
	fmt.Printf("Reason: %s\n", f.Reason)
	fmt.Printf("Since: %s\n", f.FrozenAt.Format(time.RFC3339))
}

func (o *Output) printStatsResult(s StatsResult) {
	fmt.Printf("Bans: %d total, %d active\n", s.TotalBans, s.ActiveBans)
	fmt.Printf("Mutes: %d total, %d active\n", s.TotalMutes, s.ActiveMutes)
	fmt.Printf("Warnings: %d total, %d active\n", s.TotalWarnings, s.ActiveWarnings)
}

func (o *Output) printLookupResult(l LookupResult) {
	fmt.Printf("%s = %q\n", l.Key, l.Value)
}

func (o *Output) printSessionResult(s SessionResult) {
	state := "offline"
	if s.Online {
		state = "online"
	}
	fmt.Printf("Player %s is %s\n", s.PlayerID, state)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
