package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// InputError はユーザー入力の検証エラー
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewTaskInput はタスク追加時の入力
type NewTaskInput struct {
	Description    string  `validate:"required"`
	DueDate        string  `validate:"required,datetime=2006-01-02"`
	HoursRemaining float64 `validate:"gte=0,lte=100000"` // 上限でInfを弾く(NaNはgteで弾かれる)
}

// Validate は入力を検証する
func (in NewTaskInput) Validate() error {
	in.Description = strings.TrimSpace(in.Description)
	in.DueDate = strings.TrimSpace(in.DueDate)
	return toInputError(validate.Struct(in))
}

// Build は入力からタスクを作成する
func (in NewTaskInput) Build(c Category, now time.Time) (*Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	due, err := ParseDate(in.DueDate)
	if err != nil {
		return nil, &InputError{Field: "due date", Reason: "use YYYY-MM-DD"}
	}
	return NewTask(strings.TrimSpace(in.Description), c, due, in.HoursRemaining, now), nil
}

// ProgressInput は進捗更新時の入力
type ProgressInput struct {
	Completion     int     `validate:"gte=0,lte=100"`
	HoursRemaining float64 `validate:"gte=0,lte=100000"`
}

// Validate は入力を検証する
func (in ProgressInput) Validate() error {
	return toInputError(validate.Struct(in))
}

var fieldNames = map[string]string{
	"Description":    "description",
	"DueDate":        "due date",
	"HoursRemaining": "hours remaining",
	"Completion":     "completion",
}

var reasons = map[string]string{
	"required": "must not be empty",
	"datetime": "use YYYY-MM-DD",
	"gte":      "must be at least %s",
	"lte":      "must be at most %s",
}

func toInputError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	name, ok := fieldNames[fe.Field()]
	if !ok {
		name = fe.Field()
	}
	reason, ok := reasons[fe.Tag()]
	if !ok {
		reason = "failed " + fe.Tag()
	}
	if strings.Contains(reason, "%s") {
		reason = fmt.Sprintf(reason, fe.Param())
	}
	return &InputError{Field: name, Reason: reason}
}
