package analytics

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"neural-uplink/internal/storage"
)

// DailyStats holds the turn journal summary for one day
type DailyStats struct {
	Date             string                  `json:"date"`
	TotalTurns       int                     `json:"total_turns"`
	UniqueSessions   int                     `json:"unique_sessions"`
	FailedTurns      int                     `json:"failed_turns"`
	FailuresByKind   map[string]int          `json:"failures_by_kind"`
	TurnsByModel     map[string]int          `json:"turns_by_model"`
	PromptTokens     int                     `json:"prompt_tokens"`
	CompletionTokens int                     `json:"completion_tokens"`
	TotalTokens      int                     `json:"total_tokens"`
	AvgLatencyMS     int64                   `json:"avg_latency_ms"`
	SessionStats     map[string]SessionStats `json:"session_stats"`
}

// SessionStats holds per-session counters
type SessionStats struct {
	SessionID   string    `json:"session_id"`
	Turns       int       `json:"turns"`
	FailedTurns int       `json:"failed_turns"`
	TotalTokens int       `json:"total_tokens"`
	FirstTurn   time.Time `json:"first_turn"`
	LastTurn    time.Time `json:"last_turn"`
}

// AnalyzeDailyLogs aggregates the journal events that fall on targetDate
func AnalyzeDailyLogs(events []storage.Event, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	stats := &DailyStats{
		Date:           startOfDay.Format("2006-01-02"),
		FailuresByKind: make(map[string]int),
		TurnsByModel:   make(map[string]int),
		SessionStats:   make(map[string]SessionStats),
	}

	var latencyTotal int64
	var latencySamples int64

	for _, event := range events {
		if event.Timestamp.Before(startOfDay) || !event.Timestamp.Before(endOfDay) {
			continue
		}
		// records without a user message are not turns
		if event.UserMessage == "" {
			continue
		}

		stats.TotalTurns++
		stats.PromptTokens += event.PromptTokens
		stats.CompletionTokens += event.CompletionTokens
		stats.TotalTokens += event.TotalTokens

		if event.IsError {
			stats.FailedTurns++
			kind := event.FailureKind
			if kind == "" {
				kind = "unknown"
			}
			stats.FailuresByKind[kind]++
		} else {
			if event.Model != "" {
				stats.TurnsByModel[event.Model]++
			}
			if event.LatencyMS > 0 {
				latencyTotal += event.LatencyMS
				latencySamples++
			}
		}

		ss, exists := stats.SessionStats[event.SessionID]
		if !exists {
			ss = SessionStats{SessionID: event.SessionID, FirstTurn: event.Timestamp}
		}
		ss.Turns++
		ss.TotalTokens += event.TotalTokens
		if event.IsError {
			ss.FailedTurns++
		}
		if event.Timestamp.Before(ss.FirstTurn) {
			ss.FirstTurn = event.Timestamp
		}
		if event.Timestamp.After(ss.LastTurn) {
			ss.LastTurn = event.Timestamp
		}
		stats.SessionStats[event.SessionID] = ss
	}

	stats.UniqueSessions = len(stats.SessionStats)
	if latencySamples > 0 {
		stats.AvgLatencyMS = latencyTotal / latencySamples
	}
	return stats
}

// GenerateReportSummary renders a plain-text report
func (ds *DailyStats) GenerateReportSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Neural Uplink usage for %s:\n\n", ds.Date)
	b.WriteString("Activity:\n")
	fmt.Fprintf(&b, "- Turns: %d\n", ds.TotalTurns)
	fmt.Fprintf(&b, "- Sessions: %d\n", ds.UniqueSessions)
	fmt.Fprintf(&b, "- Failed turns: %d\n", ds.FailedTurns)
	fmt.Fprintf(&b, "- Tokens: %d (prompt %d, completion %d)\n", ds.TotalTokens, ds.PromptTokens, ds.CompletionTokens)
	if ds.AvgLatencyMS > 0 {
		fmt.Fprintf(&b, "- Average latency: %dms\n", ds.AvgLatencyMS)
	}
	b.WriteString("\n")

	if len(ds.FailuresByKind) > 0 {
		b.WriteString("Failures:\n")
		for _, k := range sortedKeys(ds.FailuresByKind) {
			fmt.Fprintf(&b, "- %s: %d\n", k, ds.FailuresByKind[k])
		}
		b.WriteString("\n")
	}

	if len(ds.TurnsByModel) > 0 {
		b.WriteString("Models:\n")
		for _, k := range sortedKeys(ds.TurnsByModel) {
			fmt.Fprintf(&b, "- %s: %d replies\n", k, ds.TurnsByModel[k])
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Sessions (%d):\n", len(ds.SessionStats))
	ids := make([]string, 0, len(ds.SessionStats))
	for id := range ds.SessionStats {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		ss := ds.SessionStats[id]
		fmt.Fprintf(&b, "- Session %s: %d turns", id, ss.Turns)
		if ss.FailedTurns > 0 {
			fmt.Fprintf(&b, ", %d failed", ss.FailedTurns)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// ToJSON serializes the stats for machine consumption
func (ds *DailyStats) ToJSON() (string, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
