package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/tkc/taskquad/internal/domain"
	"github.com/tkc/taskquad/internal/prompt"
)

var errNoPrompter = errors.New("interactive input is not available")

func (s *Session) chooseCategory(operation string) (domain.Category, error) {
	options := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		options[i] = string(c)
	}
	i, err := s.prompt.Choose(fmt.Sprintf("Select category for %s:", operation), options)
	if err != nil {
		return "", err
	}
	return domain.Categories[i], nil
}

func (s *Session) chooseTask(operation string, c domain.Category) (*domain.Task, error) {
	s.Refresh()
	tasks := s.board.Tasks(c)
	if len(tasks) == 0 {
		return nil, domain.ErrEmptyCategory
	}
	options := make([]string, len(tasks))
	for i, t := range tasks {
		options[i] = fmt.Sprintf("%s [%s, due %s]", t.Description, t.Urgency, t.DueDate.Format(domain.DateLayout))
	}
	i, err := s.prompt.Choose(fmt.Sprintf("Choose a task to %s from '%s':", operation, c), options)
	if err != nil {
		return nil, err
	}
	return tasks[i], nil
}

// AddTask は対話的にタスクを追加する
func (s *Session) AddTask() error {
	if s.prompt == nil {
		return errNoPrompter
	}
	c, err := s.chooseCategory("adding")
	if err != nil {
		return err
	}

	desc, err := s.prompt.Ask(fmt.Sprintf("Enter a task for '%s'", c))
	if err != nil {
		return err
	}
	due, err := s.prompt.Ask(fmt.Sprintf("Enter due date for '%s' (YYYY-MM-DD)", desc))
	if err != nil {
		return err
	}
	hours, err := s.prompt.AskFloat(fmt.Sprintf("Enter estimated hours remaining for '%s'", desc))
	if err != nil {
		return inputErr("hours remaining", err)
	}

	task, err := s.Add(c, domain.NewTaskInput{Description: desc, DueDate: due, HoursRemaining: hours})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "✓ Task added to %s: %s (%s)\n", c, task.Description, task.Urgency)
	return nil
}

// RemoveTask は対話的にタスクを削除する
func (s *Session) RemoveTask() error {
	if s.prompt == nil {
		return errNoPrompter
	}
	c, err := s.chooseCategory("removing")
	if err != nil {
		return err
	}
	task, err := s.chooseTask("remove", c)
	if err != nil {
		return err
	}
	if _, err := s.Remove(c, task.ID); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "✓ Task removed from %s: %s\n", c, task.Description)
	return nil
}

// UpdateTask は対話的に進捗を更新する
func (s *Session) UpdateTask() error {
	if s.prompt == nil {
		return errNoPrompter
	}
	c, err := s.chooseCategory("updating")
	if err != nil {
		return err
	}
	task, err := s.chooseTask("update", c)
	if err != nil {
		return err
	}

	completion, err := s.prompt.AskInt(fmt.Sprintf("Enter new completion percentage for '%s' (0-100)", task.Description))
	if err != nil {
		return inputErr("completion", err)
	}
	hours, err := s.prompt.AskFloat(fmt.Sprintf("Enter new estimated hours remaining for '%s'", task.Description))
	if err != nil {
		return inputErr("hours remaining", err)
	}

	res, err := s.Update(c, task.ID, domain.ProgressInput{Completion: completion, HoursRemaining: hours})
	if err != nil {
		return err
	}
	if res.Completed {
		fmt.Fprintf(s.out, "🎉 Task completed: %s\n", task.Description)
	} else {
		fmt.Fprintf(s.out, "✓ Task progress updated for %s: %s (%d%%)\n", c, task.Description, task.Completion)
	}
	return nil
}

// 対話メニューの項目
var menu = []string{
	"List tasks",
	"Add task",
	"Remove task",
	"Update task progress",
	"Select random tasks for today",
	"Show completed tasks",
	"Quit",
}

// Run はメニューを繰り返し表示する
// 終了時(Quit、空入力、入力の終端)にボードを保存する
func (s *Session) Run() error {
	if s.prompt == nil {
		return errNoPrompter
	}

	s.List()
	for {
		fmt.Fprintln(s.out)
		i, err := s.prompt.Choose("What would you like to do?", menu)
		if err != nil {
			if errors.Is(err, prompt.ErrCancelled) || errors.Is(err, io.EOF) {
				break
			}
			if Recoverable(err) {
				fmt.Fprintf(s.out, "⚠️  %v\n", err)
				continue
			}
			return err
		}
		if menu[i] == "Quit" {
			break
		}

		if err := s.dispatch(i); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if !Recoverable(err) {
				return err
			}
			s.report(err)
		}
	}

	if err := s.Save(); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "👋 Bye")
	return nil
}

func (s *Session) dispatch(i int) error {
	switch i {
	case 0:
		s.List()
	case 1:
		return s.AddTask()
	case 2:
		return s.RemoveTask()
	case 3:
		return s.UpdateTask()
	case 4:
		s.Today()
	case 5:
		s.ListCompleted()
	}
	return nil
}

func (s *Session) report(err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyCategory):
		fmt.Fprintln(s.out, "No Tasks: there are currently no tasks in this category.")
	case errors.Is(err, prompt.ErrCancelled):
		fmt.Fprintln(s.out, "Cancelled")
	default:
		fmt.Fprintf(s.out, "⚠️  %v\n", err)
	}
}

func inputErr(field string, err error) error {
	if errors.Is(err, io.EOF) {
		return err
	}
	return &domain.InputError{Field: field, Reason: err.Error()}
}
