package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// 日付フォーマット（保存ファイルと入力で共通）
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Category はタスクの優先度区分を表す
type Category string

const (
	CategoryUrgent    Category = "Urgent and Important"
	CategoryNotUrgent Category = "Not Urgent and Important"
)

// Categories は表示順のカテゴリ一覧
var Categories = []Category{CategoryUrgent, CategoryNotUrgent}

// Valid はカテゴリが既知かどうかを返す
func (c Category) Valid() bool {
	return c == CategoryUrgent || c == CategoryNotUrgent
}

// Short はCLIで使う短い名前を返す
func (c Category) Short() string {
	switch c {
	case CategoryUrgent:
		return "urgent"
	case CategoryNotUrgent:
		return "not-urgent"
	default:
		return string(c)
	}
}

// ParseCategory は正式名または短い名前からカテゴリを解決する
func ParseCategory(s string) (Category, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if v == strings.ToLower(string(c)) || v == c.Short() {
			return c, nil
		}
	}
	switch v {
	case "u", "1":
		return CategoryUrgent, nil
	case "n", "nu", "not_urgent", "noturgent", "2":
		return CategoryNotUrgent, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Task は1件のタスク
type Task struct {
	ID             string
	Description    string
	Category       Category
	DueDate        time.Time // 日付のみ意味を持つ
	CreatedAt      time.Time // 作成時に一度だけ設定
	Completion     int       // 0-100
	HoursRemaining float64
	Urgency        Urgency // 派生値。並び替えのたびに再計算される
}

// NewTask は新しいタスクを作成する
func NewTask(description string, category Category, due time.Time, hours float64, now time.Time) *Task {
	return &Task{
		ID:             uuid.New().String(),
		Description:    description,
		Category:       category,
		DueDate:        dateOf(due),
		CreatedAt:      now.Truncate(time.Second),
		HoursRemaining: hours,
		Urgency:        Classify(due, now),
	}
}

// IsCompleted は完了済みかどうかを返す
func (t *Task) IsCompleted() bool {
	return t.Completion >= 100
}

// ShortID は表示用の短いIDを返す
func (t *Task) ShortID() string {
	if len(t.ID) > 8 {
		return t.ID[:8]
	}
	return t.ID
}

// ParseDate は YYYY-MM-DD をローカル日付として解釈する
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
}

// ParseTimestamp は YYYY-MM-DD HH:MM:SS をローカル時刻として解釈する
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, strings.TrimSpace(s), time.Local)
}
