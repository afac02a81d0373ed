package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/glucotrack/internal/database"
)

type stubReminderAI struct {
	reminders []Reminder
	err       error
	gotLogs   []database.GlucoseLog
	calls     int
}

func (s *stubReminderAI) SuggestReminders(ctx context.Context, logs []database.GlucoseLog) ([]Reminder, error) {
	s.calls++
	s.gotLogs = logs
	return s.reminders, s.err
}

func makeLogs(n int) []database.GlucoseLog {
	logs := make([]database.GlucoseLog, n)
	now := time.Now()
	for i := range logs {
		logs[i] = database.GlucoseLog{
			ID:        fmt.Sprintf("log-%d", i),
			Timestamp: now.Add(-time.Duration(i) * time.Hour),
			MealType:  database.MealBreakfast,
			Glycemia:  1.1,
		}
	}
	return logs
}

func TestSuggestRemindersNoLogs(t *testing.T) {
	ai := &stubReminderAI{}
	svc := NewReminderService(ai, nil)

	reminders := svc.SuggestReminders(context.Background(), "user-1", nil)

	require.Len(t, reminders, 1)
	assert.Equal(t, "Info", reminders[0].Time)
	// The remote call is skipped entirely.
	assert.Zero(t, ai.calls)
}

func TestSuggestRemindersRemoteFailure(t *testing.T) {
	ai := &stubReminderAI{err: fmt.Errorf("model unavailable")}
	svc := NewReminderService(ai, nil)

	reminders := svc.SuggestReminders(context.Background(), "user-1", makeLogs(3))

	require.Len(t, reminders, 1)
	assert.Equal(t, "Error", reminders[0].Time)
}

func TestSuggestRemindersSuccess(t *testing.T) {
	want := []Reminder{
		{Time: "07:30", Message: "Check glucose before breakfast"},
		{Time: "21:00", Message: "Evening reading"},
	}
	ai := &stubReminderAI{reminders: want}
	svc := NewReminderService(ai, nil)

	got := svc.SuggestReminders(context.Background(), "user-1", makeLogs(3))
	assert.Equal(t, want, got)
}

func TestSuggestRemindersCapsHistory(t *testing.T) {
	ai := &stubReminderAI{reminders: []Reminder{{Time: "08:00", Message: "ok"}}}
	svc := NewReminderService(ai, nil)

	svc.SuggestReminders(context.Background(), "user-1", makeLogs(80))

	require.Len(t, ai.gotLogs, maxReminderLogs)
	// The most recent entries survive the cap.
	assert.Equal(t, "log-0", ai.gotLogs[0].ID)
	assert.Equal(t, "log-49", ai.gotLogs[len(ai.gotLogs)-1].ID)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON(`some text {"a":1} trailing`))
	assert.Empty(t, extractJSON("no json here"))
	assert.Empty(t, extractJSON("}{"))
}
