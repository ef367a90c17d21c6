// Package store はタスクの状態をJSONファイルに保存・読み込みする
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tkc/taskquad/internal/domain"
)

// ErrCorrupt は保存ファイルの内容が壊れていることを表す
var ErrCorrupt = errors.New("corrupt task file")

// record は保存ファイル上のタスク
type record struct {
	ID             string  `json:"id,omitempty"`
	Description    string  `json:"description"`
	Urgency        string  `json:"urgency,omitempty"` // 読み込み時は無視する
	DueDate        string  `json:"due_date"`
	Completion     int     `json:"completion"`
	HoursRemaining float64 `json:"hours_remaining"`
	Timestamp      string  `json:"timestamp"`
	Category       string  `json:"category,omitempty"`
}

// document は保存ファイル全体
type document struct {
	Tasks              map[string][]record `json:"tasks"`
	CompletedTasks     []record            `json:"completed_tasks"`
	FirstTaskCompleted bool                `json:"first_task_completed"`
}

// FileStore はJSONファイルに状態を保存する
type FileStore struct {
	Path string
}

// New は新しいFileStoreを作成する
func New(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load はファイルからBoardを読み込む
// ファイルが存在しない場合は空のBoardを返す
func (s *FileStore) Load() (*domain.Board, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewBoard(), nil
		}
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.Path, err)
	}

	board := domain.NewBoard()
	board.FirstCompletionSeen = doc.FirstTaskCompleted

	var finished []*domain.Task
	for name, recs := range doc.Tasks {
		c, err := domain.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		for i, r := range recs {
			t, err := r.toTask(c)
			if err != nil {
				return nil, fmt.Errorf("%w: %s task %d: %v", ErrCorrupt, name, i+1, err)
			}
			// 手で編集されたファイルでも完了済みは未完了リストに残さない
			if t.IsCompleted() {
				finished = append(finished, t)
				continue
			}
			board.Active[c] = append(board.Active[c], t)
		}
	}

	for i, r := range doc.CompletedTasks {
		var c domain.Category
		if r.Category != "" {
			if c, err = domain.ParseCategory(r.Category); err != nil {
				return nil, fmt.Errorf("%w: completed task %d: %v", ErrCorrupt, i+1, err)
			}
		}
		t, err := r.toTask(c)
		if err != nil {
			return nil, fmt.Errorf("%w: completed task %d: %v", ErrCorrupt, i+1, err)
		}
		board.Completed = append(board.Completed, t)
	}
	board.Completed = append(board.Completed, finished...)

	return board, nil
}

// Save はBoard全体をファイルに書き込む
func (s *FileStore) Save(board *domain.Board) error {
	doc := document{
		Tasks:              make(map[string][]record, len(domain.Categories)),
		CompletedTasks:     make([]record, 0, len(board.Completed)),
		FirstTaskCompleted: board.FirstCompletionSeen,
	}
	for _, c := range domain.Categories {
		recs := make([]record, 0, len(board.Active[c]))
		for _, t := range board.Active[c] {
			recs = append(recs, fromTask(t))
		}
		doc.Tasks[string(c)] = recs
	}
	for _, t := range board.Completed {
		doc.CompletedTasks = append(doc.CompletedTasks, fromTask(t))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	// 途中で失敗しても既存ファイルを壊さないよう一時ファイル経由で置き換える
	tmp, err := os.CreateTemp(dir, ".tasks-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("failed to replace task file: %w", err)
	}
	return nil
}

func (r record) toTask(c domain.Category) (*domain.Task, error) {
	due, err := domain.ParseDate(r.DueDate)
	if err != nil {
		return nil, fmt.Errorf("due_date %q: %w", r.DueDate, err)
	}
	created, err := domain.ParseTimestamp(r.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("timestamp %q: %w", r.Timestamp, err)
	}

	id := r.ID
	if id == "" {
		id = uuid.New().String()
	}

	// urgency は保存値を信用せず、並び替え時に再計算する
	return &domain.Task{
		ID:             id,
		Description:    r.Description,
		Category:       c,
		DueDate:        due,
		CreatedAt:      created,
		Completion:     r.Completion,
		HoursRemaining: r.HoursRemaining,
	}, nil
}

func fromTask(t *domain.Task) record {
	return record{
		ID:             t.ID,
		Description:    t.Description,
		DueDate:        t.DueDate.Format(domain.DateLayout),
		Completion:     t.Completion,
		HoursRemaining: t.HoursRemaining,
		Timestamp:      t.CreatedAt.Format(domain.TimestampLayout),
		Category:       string(t.Category),
	}
}
