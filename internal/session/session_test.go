package session

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkc/taskquad/internal/domain"
	"github.com/tkc/taskquad/internal/prompt"
)

type fakeSaver struct {
	saves int
	err   error
}

func (f *fakeSaver) Save(*domain.Board) error {
	f.saves++
	return f.err
}

type fixture struct {
	s      *Session
	saver  *fakeSaver
	out    *bytes.Buffer
	opened []string
}

var today = time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)

func newFixture(t *testing.T, input string) *fixture {
	t.Helper()
	f := &fixture{saver: &fakeSaver{}, out: &bytes.Buffer{}}
	clock := today
	f.s = New(domain.NewBoard(), f.saver, f.out,
		WithClock(func() time.Time {
			// 作成日時の順序を確定させるため1秒ずつ進める
			clock = clock.Add(time.Second)
			return clock
		}),
		WithPrompter(prompt.New(strings.NewReader(input), f.out)),
		WithOpener(func(url string) error {
			f.opened = append(f.opened, url)
			return nil
		}),
		WithCelebrationURL("https://example.com/party"),
	)
	return f
}

func (f *fixture) add(t *testing.T, c domain.Category, desc string, days int) *domain.Task {
	t.Helper()
	task, err := f.s.Add(c, domain.NewTaskInput{
		Description:    desc,
		DueDate:        today.AddDate(0, 0, days).Format(domain.DateLayout),
		HoursRemaining: 1,
	})
	require.NoError(t, err)
	return task
}

func TestAddSortsAndSaves(t *testing.T) {
	f := newFixture(t, "")

	low := f.add(t, domain.CategoryUrgent, "later", 40)
	crit := f.add(t, domain.CategoryUrgent, "tomorrow", 1)

	assert.Equal(t, 2, f.saver.saves)
	assert.Equal(t, []*domain.Task{crit, low}, f.s.Board().Tasks(domain.CategoryUrgent))
	assert.Equal(t, domain.UrgencyCritical, crit.Urgency)
	assert.Equal(t, domain.UrgencyLow, low.Urgency)
}

func TestAddInvalidInputDoesNotMutate(t *testing.T) {
	f := newFixture(t, "")

	_, err := f.s.Add(domain.CategoryUrgent, domain.NewTaskInput{Description: "x", DueDate: "soon"})
	var inErr *domain.InputError
	require.ErrorAs(t, err, &inErr)
	assert.True(t, Recoverable(err))
	assert.Equal(t, 0, f.s.Board().Len())
	assert.Equal(t, 0, f.saver.saves)
}

func TestRemoveByPosition(t *testing.T) {
	f := newFixture(t, "")
	f.add(t, domain.CategoryNotUrgent, "b", 10)
	a := f.add(t, domain.CategoryNotUrgent, "a", 3)

	removed, err := f.s.Remove(domain.CategoryNotUrgent, "1")
	require.NoError(t, err)
	assert.Equal(t, a, removed)
	assert.Len(t, f.s.Board().Tasks(domain.CategoryNotUrgent), 1)
	assert.Equal(t, 3, f.saver.saves)

	_, err = f.s.Remove(domain.CategoryUrgent, "1")
	assert.ErrorIs(t, err, domain.ErrEmptyCategory)
}

func TestUpdateCelebratesOnlyOnce(t *testing.T) {
	f := newFixture(t, "")
	first := f.add(t, domain.CategoryUrgent, "first", 1)
	second := f.add(t, domain.CategoryUrgent, "second", 1)

	res, err := f.s.Update(domain.CategoryUrgent, first.ID, domain.ProgressInput{Completion: 100})
	require.NoError(t, err)
	assert.True(t, res.FirstCompletion)

	res, err = f.s.Update(domain.CategoryUrgent, second.ID, domain.ProgressInput{Completion: 100})
	require.NoError(t, err)
	assert.False(t, res.FirstCompletion)

	assert.Equal(t, []string{"https://example.com/party"}, f.opened)
	assert.Len(t, f.s.Board().Completed, 2)
	assert.Empty(t, f.s.Board().Tasks(domain.CategoryUrgent))
}

func TestUpdateOpenerFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, "")
	task := f.add(t, domain.CategoryUrgent, "x", 1)
	f.s.open = func(string) error { return errors.New("no browser") }

	res, err := f.s.Update(domain.CategoryUrgent, task.ID, domain.ProgressInput{Completion: 100})
	require.NoError(t, err)
	assert.True(t, res.Completed)
}

func TestUpdateDoesNotCelebrateWhenSaveFails(t *testing.T) {
	f := newFixture(t, "")
	task := f.add(t, domain.CategoryUrgent, "x", 1)
	f.saver.err = errors.New("disk full")

	_, err := f.s.Update(domain.CategoryUrgent, task.ID, domain.ProgressInput{Completion: 100})
	assert.ErrorContains(t, err, "disk full")
	assert.Empty(t, f.opened)
}

func TestInfiniteHoursAreRejectedBeforeMutation(t *testing.T) {
	f := newFixture(t, "")
	task := f.add(t, domain.CategoryUrgent, "x", 1)
	saves := f.saver.saves

	_, err := f.s.Add(domain.CategoryUrgent, domain.NewTaskInput{Description: "y", DueDate: "2024-06-10", HoursRemaining: math.Inf(1)})
	assert.True(t, Recoverable(err))
	assert.Equal(t, 1, f.s.Board().Len())

	_, err = f.s.Update(domain.CategoryUrgent, task.ID, domain.ProgressInput{Completion: 100, HoursRemaining: math.Inf(1)})
	assert.True(t, Recoverable(err))
	assert.Equal(t, 0, task.Completion)
	assert.Empty(t, f.opened)
	assert.Equal(t, saves, f.saver.saves)
}

func TestRunRecoversFromInfiniteHours(t *testing.T) {
	f := newFixture(t, "2\n1\nx\n2030-01-01\ninf\n")

	require.NoError(t, f.s.Run())
	assert.Equal(t, 0, f.s.Board().Len())
	assert.Contains(t, f.out.String(), "must be at most 100000")
}

func TestUpdateRejectsOutOfRange(t *testing.T) {
	f := newFixture(t, "")
	task := f.add(t, domain.CategoryUrgent, "x", 1)
	saves := f.saver.saves

	_, err := f.s.Update(domain.CategoryUrgent, task.ID, domain.ProgressInput{Completion: 150})
	assert.True(t, Recoverable(err))
	assert.Equal(t, 0, task.Completion)
	assert.Equal(t, saves, f.saver.saves)
}

func TestSaveErrorIsReturned(t *testing.T) {
	f := newFixture(t, "")
	f.saver.err = errors.New("disk full")

	_, err := f.s.Add(domain.CategoryUrgent, domain.NewTaskInput{Description: "x", DueDate: "2024-06-10"})
	assert.ErrorContains(t, err, "disk full")
	assert.False(t, Recoverable(err))
}

func TestInteractiveAddTask(t *testing.T) {
	f := newFixture(t, "2\nwater plants\n2024-06-04\n0.5\n")

	require.NoError(t, f.s.AddTask())

	tasks := f.s.Board().Tasks(domain.CategoryNotUrgent)
	require.Len(t, tasks, 1)
	assert.Equal(t, "water plants", tasks[0].Description)
	assert.Equal(t, domain.UrgencyHigh, tasks[0].Urgency)
	assert.Equal(t, 0.5, tasks[0].HoursRemaining)
	assert.Contains(t, f.out.String(), "Task added to Not Urgent and Important: water plants (High)")
}

func TestInteractiveAddTaskRejectsBadHours(t *testing.T) {
	f := newFixture(t, "1\nx\n2024-06-04\nlots\n")

	err := f.s.AddTask()
	var inErr *domain.InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, "hours remaining", inErr.Field)
	assert.Equal(t, 0, f.s.Board().Len())
}

func TestInteractiveRemoveEmptyCategory(t *testing.T) {
	f := newFixture(t, "1\n")

	err := f.s.RemoveTask()
	assert.ErrorIs(t, err, domain.ErrEmptyCategory)
}

func TestInteractiveUpdateTask(t *testing.T) {
	f := newFixture(t, "1\n1\n100\n0\n")
	f.add(t, domain.CategoryUrgent, "ship it", 0)

	require.NoError(t, f.s.UpdateTask())

	assert.Empty(t, f.s.Board().Tasks(domain.CategoryUrgent))
	require.Len(t, f.s.Board().Completed, 1)
	assert.Contains(t, f.out.String(), "Task completed: ship it")
	assert.Len(t, f.opened, 1)
}

func TestRunMenu(t *testing.T) {
	input := strings.Join([]string{
		"2", "1", "call mom", "2024-06-02", "1", // add
		"3", "2", // remove from empty category
		"9",      // invalid choice
		"5",      // today
		"7",      // quit
	}, "\n") + "\n"
	f := newFixture(t, input)

	require.NoError(t, f.s.Run())

	out := f.out.String()
	assert.Contains(t, out, "Task added to Urgent and Important: call mom (Critical)")
	assert.Contains(t, out, "No Tasks: there are currently no tasks in this category.")
	assert.Contains(t, out, "invalid choice")
	assert.Contains(t, out, "20 minutes: call mom")
	assert.Contains(t, out, "Bye")
	// 追加時と終了時
	assert.Equal(t, 2, f.saver.saves)
}

func TestRunSavesOnEOF(t *testing.T) {
	f := newFixture(t, "")

	require.NoError(t, f.s.Run())
	assert.Equal(t, 1, f.saver.saves)
}
