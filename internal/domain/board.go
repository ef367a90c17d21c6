package domain

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrUnknownCategory = errors.New("unknown category")
	ErrEmptyCategory   = errors.New("there are currently no tasks in this category")
	ErrAmbiguousRef    = errors.New("task reference matches more than one task")
)

// Board はアクティブなタスクと完了済みタスクを保持する
type Board struct {
	Active              map[Category][]*Task
	Completed           []*Task
	FirstCompletionSeen bool // 初めてタスクを完了したかどうか
}

// NewBoard は空のBoardを作成する
func NewBoard() *Board {
	b := &Board{
		Active:    make(map[Category][]*Task, len(Categories)),
		Completed: []*Task{},
	}
	for _, c := range Categories {
		b.Active[c] = []*Task{}
	}
	return b
}

// Tasks はカテゴリのアクティブなタスクを返す
func (b *Board) Tasks(c Category) []*Task {
	return b.Active[c]
}

// Len はアクティブなタスク数を返す
func (b *Board) Len() int {
	n := 0
	for _, c := range Categories {
		n += len(b.Active[c])
	}
	return n
}

// Add はタスクを追加する
func (b *Board) Add(t *Task) error {
	if !t.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, t.Category)
	}
	b.Active[t.Category] = append(b.Active[t.Category], t)
	return nil
}

// Remove は指定IDのタスクを削除する
func (b *Board) Remove(c Category, id string) (*Task, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	i := b.indexOf(c, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	t := b.Active[c][i]
	b.Active[c] = append(b.Active[c][:i], b.Active[c][i+1:]...)
	return t, nil
}

// ProgressResult は進捗更新の結果
type ProgressResult struct {
	Task            *Task
	Completed       bool // 今回の更新で完了したか
	FirstCompletion bool // 初めての完了か
}

// UpdateProgress は進捗と残り時間を更新する
// 100%になったタスクは完了リストへ移動する
func (b *Board) UpdateProgress(c Category, id string, completion int, hours float64) (*ProgressResult, error) {
	if err := (ProgressInput{Completion: completion, HoursRemaining: hours}).Validate(); err != nil {
		return nil, err
	}
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	i := b.indexOf(c, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	t := b.Active[c][i]
	t.Completion = completion
	t.HoursRemaining = hours

	result := &ProgressResult{Task: t}
	if t.IsCompleted() {
		b.Active[c] = append(b.Active[c][:i], b.Active[c][i+1:]...)
		b.Completed = append(b.Completed, t)
		result.Completed = true
		if !b.FirstCompletionSeen {
			b.FirstCompletionSeen = true
			result.FirstCompletion = true
		}
	}
	return result, nil
}

// Sort は全カテゴリのタスクを並べ替える
func (b *Board) Sort(now time.Time) {
	for _, c := range Categories {
		Order(b.Active[c], now)
	}
	for _, t := range b.Completed {
		t.Urgency = Classify(t.DueDate, now)
	}
}

// Lookup はカテゴリ内のタスクを参照文字列から解決する
// 参照は表示順の番号(1始まり)、説明文の完全一致、IDの前方一致の順に解決する
func (b *Board) Lookup(c Category, ref string) (*Task, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	tasks := b.Active[c]
	if len(tasks) == 0 {
		return nil, ErrEmptyCategory
	}

	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(tasks) {
			return tasks[n-1], nil
		}
		return nil, fmt.Errorf("%w: #%d", ErrTaskNotFound, n)
	}

	for _, t := range tasks {
		if t.Description == ref {
			return t, nil
		}
	}

	if ref != "" {
		var match *Task
		for _, t := range tasks {
			if strings.HasPrefix(t.ID, ref) {
				if match != nil {
					return nil, fmt.Errorf("%w: %s", ErrAmbiguousRef, ref)
				}
				match = t
			}
		}
		if match != nil {
			return match, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
}

func (b *Board) indexOf(c Category, id string) int {
	for i, t := range b.Active[c] {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// 今日の作業時間配分（分）
const (
	UrgentMinutes    = 20
	NotUrgentMinutes = 10
)

// DailyPick は今日取り組むタスクの候補
type DailyPick struct {
	Category Category
	Task     *Task // 候補がなければnil
	Minutes  int
}

// PickForToday は各カテゴリからランダムに1件ずつ選ぶ
func (b *Board) PickForToday(r *rand.Rand) []DailyPick {
	picks := make([]DailyPick, 0, len(Categories))
	for _, c := range Categories {
		p := DailyPick{Category: c, Minutes: NotUrgentMinutes}
		if c == CategoryUrgent {
			p.Minutes = UrgentMinutes
		}
		if tasks := b.Active[c]; len(tasks) > 0 {
			p.Task = tasks[r.IntN(len(tasks))]
		}
		picks = append(picks, p)
	}
	return picks
}
