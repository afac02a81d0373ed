package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/vladimiradmaev/glucotrack/internal/database"
	"github.com/vladimiradmaev/glucotrack/internal/logger"
	"google.golang.org/api/option"
)

// Reminder is a suggested time-of-day and message pair.
type Reminder struct {
	Time    string `json:"time"`
	Message string `json:"message"`
}

// ReminderAI generates reminder suggestions from glucose history.
type ReminderAI interface {
	SuggestReminders(ctx context.Context, logs []database.GlucoseLog) ([]Reminder, error)
}

// maxReminderLogs caps how much history is submitted to the model.
const maxReminderLogs = 50

// reminderTimeout bounds the remote call; on expiry the caller gets the
// canned error reminder instead of a hung request.
const reminderTimeout = 30 * time.Second

const reminderCacheTTL = time.Hour

var notEnoughDataReminder = Reminder{
	Time:    "Info",
	Message: "Not enough data to generate reminders. Please add more glucose logs.",
}

var generationFailedReminder = Reminder{
	Time:    "Error",
	Message: "Could not generate reminders at this time. Please try again later.",
}

// ReminderService produces personalized glucose-check reminders. Failures
// never propagate to the caller; they degrade to a canned reminder.
type ReminderService struct {
	ai    ReminderAI
	cache *ReminderCache
}

// NewReminderService creates a reminder service. cache may be nil, which
// disables result caching.
func NewReminderService(ai ReminderAI, cache *ReminderCache) *ReminderService {
	return &ReminderService{ai: ai, cache: cache}
}

// SuggestReminders analyzes the user's glucose logs (most recent first) and
// returns reminder suggestions. With no logs it returns a single "Info"
// reminder without calling the model; on any remote failure it returns a
// single "Error" reminder.
func (s *ReminderService) SuggestReminders(ctx context.Context, userID string, logs []database.GlucoseLog) []Reminder {
	if len(logs) == 0 {
		return []Reminder{notEnoughDataReminder}
	}

	if cached, ok := s.cacheGet(ctx, userID); ok {
		return cached
	}

	if len(logs) > maxReminderLogs {
		logs = logs[:maxReminderLogs]
	}

	ctx, cancel := context.WithTimeout(ctx, reminderTimeout)
	defer cancel()

	reminders, err := s.ai.SuggestReminders(ctx, logs)
	if err != nil {
		logger.Error("Failed to generate reminders", "user_id", userID, "error", err)
		return []Reminder{generationFailedReminder}
	}

	s.cacheSet(ctx, userID, reminders)
	return reminders
}

// InvalidateCache drops cached reminders. Called after glucose history
// changes so suggestions don't lag behind the data.
func (s *ReminderService) InvalidateCache(ctx context.Context, userID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}

func (s *ReminderService) cacheGet(ctx context.Context, userID string) ([]Reminder, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(ctx, userID)
}

func (s *ReminderService) cacheSet(ctx context.Context, userID string, reminders []Reminder) {
	if s.cache == nil {
		return
	}
	s.cache.Set(ctx, userID, reminders)
}

// GeminiReminderAI generates reminders with the Gemini API.
type GeminiReminderAI struct {
	client *genai.Client
}

func NewGeminiReminderAI(apiKey string) (*GeminiReminderAI, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiReminderAI{client: client}, nil
}

func (g *GeminiReminderAI) SuggestReminders(ctx context.Context, logs []database.GlucoseLog) ([]Reminder, error) {
	model := g.client.GenerativeModel("gemini-1.5-flash")

	var sb strings.Builder
	for _, log := range logs {
		fmt.Fprintf(&sb, "- Timestamp: %s, Meal Type: %s, Glycemia: %.2f g/L, Dosage: %.1f units\n",
			log.Timestamp.UTC().Format(time.RFC3339), log.MealType, log.Glycemia, log.Dosage)
	}

	prompt := fmt.Sprintf(`You are an AI assistant specializing in diabetes management. Analyze the user's historical glucose logs and suggest personalized reminders for checking blood sugar levels. The reminders should be based on patterns in the user's glucose levels related to meal times, dosages, and glycemia levels. Suggest times to check glucose that will help them stabilize their glucose levels.

Glucose Logs:
%s
Based on this data, suggest personalized reminders including the time and reminder message.

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a valid JSON object
- Do not include any markdown formatting or explanatory text before or after the JSON
- The JSON must have this exact shape:
  {
    "reminders": [
      {"time": "HH:mm", "message": "Personalized reminder message"}
    ]
  }`, sb.String())

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part type")
	}

	jsonStr := extractJSON(string(text))
	if jsonStr == "" {
		return nil, fmt.Errorf("no valid JSON found in response")
	}

	var result struct {
		Reminders []Reminder `json:"reminders"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return result.Reminders, nil
}

// extractJSON attempts to extract a valid JSON object from the given string.
// It handles cases where the JSON is wrapped in code blocks or other text.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
