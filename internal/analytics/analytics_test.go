package analytics

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"neural-uplink/internal/storage"
)

func TestAnalyzeDailyLogs(t *testing.T) {
	testDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	events := []storage.Event{
		{
			Timestamp:         testDate.Add(2 * time.Hour),
			SessionID:         "s-a",
			UserMessage:       "What is your stack?",
			AssistantResponse: "LLMs and RAG.",
			Model:             "gemini-2.5-flash",
			PromptTokens:      40,
			CompletionTokens:  5,
			TotalTokens:       45,
			LatencyMS:         300,
		},
		{
			Timestamp:         testDate.Add(3 * time.Hour),
			SessionID:         "s-a",
			UserMessage:       "Tell me more",
			AssistantResponse: "Error: Cognitive overload. Please try again later.",
			IsError:           true,
			FailureKind:       storage.FailureGenerationFailed,
		},
		{
			Timestamp:         testDate.Add(5 * time.Hour),
			SessionID:         "s-b",
			UserMessage:       "hello",
			AssistantResponse: "System Error: Neural Link Disconnected (Missing API Key). Please configure the environment.",
			IsError:           true,
			FailureKind:       storage.FailureConfigurationMissing,
		},
		{
			Timestamp:         testDate.Add(6 * time.Hour),
			SessionID:         "s-b",
			UserMessage:       "fine-tuning?",
			AssistantResponse: "LoRA, mostly.",
			Model:             "gemini-2.5-flash",
			TotalTokens:       55,
			LatencyMS:         500,
		},
		// next day, ignored
		{
			Timestamp:   testDate.AddDate(0, 0, 1),
			SessionID:   "s-c",
			UserMessage: "tomorrow",
			TotalTokens: 1000,
		},
		// not a turn
		{
			Timestamp:         testDate.Add(8 * time.Hour),
			SessionID:         "s-a",
			AssistantResponse: "[system]",
		},
	}

	stats := AnalyzeDailyLogs(events, testDate)

	if stats.Date != "2024-01-15" {
		t.Errorf("Expected date '2024-01-15', got '%s'", stats.Date)
	}
	if stats.TotalTurns != 4 {
		t.Errorf("Expected 4 turns, got %d", stats.TotalTurns)
	}
	if stats.UniqueSessions != 2 {
		t.Errorf("Expected 2 sessions, got %d", stats.UniqueSessions)
	}
	if stats.FailedTurns != 2 {
		t.Errorf("Expected 2 failed turns, got %d", stats.FailedTurns)
	}
	if stats.FailuresByKind[storage.FailureGenerationFailed] != 1 || stats.FailuresByKind[storage.FailureConfigurationMissing] != 1 {
		t.Errorf("Unexpected failures by kind: %v", stats.FailuresByKind)
	}
	if stats.TurnsByModel["gemini-2.5-flash"] != 2 {
		t.Errorf("Expected 2 replies from gemini-2.5-flash, got %d", stats.TurnsByModel["gemini-2.5-flash"])
	}
	if stats.TotalTokens != 100 {
		t.Errorf("Expected 100 tokens, got %d", stats.TotalTokens)
	}
	if stats.PromptTokens != 40 || stats.CompletionTokens != 5 {
		t.Errorf("Unexpected token split: prompt=%d completion=%d", stats.PromptTokens, stats.CompletionTokens)
	}
	if stats.AvgLatencyMS != 400 {
		t.Errorf("Expected average latency 400ms, got %d", stats.AvgLatencyMS)
	}

	a, exists := stats.SessionStats["s-a"]
	if !exists {
		t.Fatal("Expected stats for session s-a")
	}
	if a.Turns != 2 || a.FailedTurns != 1 {
		t.Errorf("Unexpected s-a stats: %+v", a)
	}
	if !a.FirstTurn.Equal(testDate.Add(2*time.Hour)) || !a.LastTurn.Equal(testDate.Add(3*time.Hour)) {
		t.Errorf("Unexpected s-a window: %v .. %v", a.FirstTurn, a.LastTurn)
	}
}

func TestAnalyzeDailyLogsEmptyData(t *testing.T) {
	testDate := time.Date(2024, 1, 15, 13, 45, 0, 0, time.UTC)

	stats := AnalyzeDailyLogs(nil, testDate)

	if stats.Date != "2024-01-15" {
		t.Errorf("Expected date '2024-01-15', got '%s'", stats.Date)
	}
	if stats.TotalTurns != 0 || stats.UniqueSessions != 0 || stats.FailedTurns != 0 {
		t.Errorf("Expected zero stats, got %+v", stats)
	}
	if stats.AvgLatencyMS != 0 {
		t.Errorf("Expected zero latency, got %d", stats.AvgLatencyMS)
	}
}

func TestGenerateReportSummary(t *testing.T) {
	stats := &DailyStats{
		Date:           "2024-01-15",
		TotalTurns:     5,
		UniqueSessions: 2,
		FailedTurns:    1,
		FailuresByKind: map[string]int{storage.FailureGenerationFailed: 1},
		TurnsByModel:   map[string]int{"gpt-4o-mini": 4},
		TotalTokens:    321,
		AvgLatencyMS:   250,
		SessionStats: map[string]SessionStats{
			"s-a": {SessionID: "s-a", Turns: 3, FailedTurns: 1},
			"s-b": {SessionID: "s-b", Turns: 2},
		},
	}

	summary := stats.GenerateReportSummary()

	expectedStrings := []string{
		"2024-01-15",
		"Turns: 5",
		"Sessions: 2",
		"Failed turns: 1",
		"Tokens: 321",
		"250ms",
		"generation_failed: 1",
		"gpt-4o-mini: 4 replies",
		"Session s-a: 3 turns, 1 failed",
		"Session s-b: 2 turns",
	}
	for _, expected := range expectedStrings {
		if !strings.Contains(summary, expected) {
			t.Errorf("Expected summary to contain '%s', but it didn't. Summary: %s", expected, summary)
		}
	}
	if strings.Index(summary, "s-a") > strings.Index(summary, "s-b") {
		t.Errorf("Expected sessions in sorted order. Summary: %s", summary)
	}
}

func TestToJSON(t *testing.T) {
	stats := AnalyzeDailyLogs([]storage.Event{{
		Timestamp:   time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		SessionID:   "s-a",
		UserMessage: "hi",
		Model:       "test-model",
	}}, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	jsonStr, err := stats.ToJSON()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var decoded DailyStats
	if err := json.Unmarshal([]byte(jsonStr), &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v: %s", err, jsonStr)
	}
	if decoded.Date != "2024-01-15" || decoded.TotalTurns != 1 {
		t.Errorf("Unexpected decoded stats: %+v", decoded)
	}
	if decoded.TurnsByModel["test-model"] != 1 {
		t.Errorf("Expected JSON to carry the model name, got: %s", jsonStr)
	}
}
