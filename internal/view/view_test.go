package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkc/taskquad/internal/domain"
)

func TestBoardPlain(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	b := domain.NewBoard()
	task := domain.NewTask("pay rent", domain.CategoryUrgent, now.AddDate(0, 0, 3), 1.5, now)
	task.ID = "0123456789abcdef"
	task.Completion = 20
	require.NoError(t, b.Add(task))
	b.Sort(now)

	var out bytes.Buffer
	New(&out, false).Board(b)
	s := out.String()

	assert.Contains(t, s, "Urgent and Important (1)")
	assert.Contains(t, s, "Not Urgent and Important (0)")
	assert.Contains(t, s, "(no tasks)")
	assert.Contains(t, s, Legend)

	var row string
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, "pay rent") {
			row = line
		}
	}
	require.NotEmpty(t, row)
	assert.Equal(t, []string{"1", "01234567", "pay", "rent", "2024-06-04", "20%", "1.5", "hrs", "High"}, strings.Fields(row))
	assert.NotContains(t, s, "\x1b[", "plain output has no escape codes")
}

func TestCompleted(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, false)

	r.Completed(nil)
	assert.Contains(t, out.String(), "(no completed tasks)")

	out.Reset()
	r.Completed([]*domain.Task{{Description: "legacy", Urgency: domain.UrgencyLow}})
	assert.Contains(t, out.String(), "legacy")
	assert.Contains(t, out.String(), "Low")
	assert.Contains(t, out.String(), "-")
}

func TestPicks(t *testing.T) {
	var out bytes.Buffer
	New(&out, false).Picks([]domain.DailyPick{
		{Category: domain.CategoryUrgent, Task: &domain.Task{Description: "taxes"}, Minutes: 20},
		{Category: domain.CategoryNotUrgent, Minutes: 10},
	})

	assert.Contains(t, out.String(), "20 minutes: taxes (Urgent and Important)")
	assert.Contains(t, out.String(), "10 minutes: "+NoTasks)
}

func TestHours(t *testing.T) {
	assert.Equal(t, "2 hrs", Hours(2))
	assert.Equal(t, "0.25 hrs", Hours(0.25))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
