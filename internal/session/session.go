// Package session はボードに対する操作とその保存をまとめる
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/tkc/taskquad/internal/domain"
	"github.com/tkc/taskquad/internal/notify"
	"github.com/tkc/taskquad/internal/prompt"
	"github.com/tkc/taskquad/internal/view"
)

// Saver はボードを永続化する
type Saver interface {
	Save(board *domain.Board) error
}

// Session はボードを所有し、変更のたびに保存する
type Session struct {
	board          *domain.Board
	saver          Saver
	out            io.Writer
	view           *view.Renderer
	prompt         *prompt.Prompter
	open           notify.Opener
	celebrationURL string
	now            func() time.Time
	rng            *rand.Rand
	logger         *slog.Logger
}

// Option はSessionの設定を変更する
type Option func(*Session)

// WithClock は現在時刻の取得方法を差し替える
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithOpener はURLの開き方を差し替える
func WithOpener(open notify.Opener) Option {
	return func(s *Session) { s.open = open }
}

// WithCelebrationURL は初回完了時に開くURLを設定する
func WithCelebrationURL(url string) Option {
	return func(s *Session) { s.celebrationURL = url }
}

// WithRand は乱数源を差し替える
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithLogger はロガーを設定する
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithPrompter は対話入力を設定する
func WithPrompter(p *prompt.Prompter) Option {
	return func(s *Session) { s.prompt = p }
}

// WithColor は色付き表示を切り替える
func WithColor(color bool) Option {
	return func(s *Session) { s.view = view.New(s.out, color) }
}

// New は新しいSessionを作成する
func New(board *domain.Board, saver Saver, out io.Writer, opts ...Option) *Session {
	s := &Session{
		board:  board,
		saver:  saver,
		out:    out,
		view:   view.New(out, false),
		open:   notify.OpenURL,
		now:    time.Now,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Board は保持しているボードを返す
func (s *Session) Board() *domain.Board {
	return s.board
}

// Refresh は緊急度を再計算して並べ替える
func (s *Session) Refresh() {
	s.board.Sort(s.now())
}

// Save はボードを保存する
func (s *Session) Save() error {
	if err := s.saver.Save(s.board); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

// Add はタスクを追加して保存する
func (s *Session) Add(c domain.Category, in domain.NewTaskInput) (*domain.Task, error) {
	task, err := in.Build(c, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.board.Add(task); err != nil {
		return nil, err
	}
	s.logger.Debug("task added", "id", task.ID, "category", c, "due", task.DueDate.Format(domain.DateLayout))

	s.Refresh()
	return task, s.Save()
}

// Remove は参照で指定したタスクを削除して保存する
func (s *Session) Remove(c domain.Category, ref string) (*domain.Task, error) {
	s.Refresh()
	task, err := s.board.Lookup(c, ref)
	if err != nil {
		return nil, err
	}
	if _, err := s.board.Remove(c, task.ID); err != nil {
		return nil, err
	}
	s.logger.Debug("task removed", "id", task.ID, "category", c)

	s.Refresh()
	return task, s.Save()
}

// Update は進捗を更新して保存する
// 初めての完了時には一度だけ celebrationURL を開く
func (s *Session) Update(c domain.Category, ref string, in domain.ProgressInput) (*domain.ProgressResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.Refresh()
	task, err := s.board.Lookup(c, ref)
	if err != nil {
		return nil, err
	}

	res, err := s.board.UpdateProgress(c, task.ID, in.Completion, in.HoursRemaining)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("task progress updated", "id", task.ID, "completion", in.Completion, "completed", res.Completed)

	s.Refresh()
	if err := s.Save(); err != nil {
		return res, err
	}

	// 初回完了フラグが保存できた場合のみ開く
	if res.FirstCompletion {
		if err := notify.Celebrate(s.open, s.celebrationURL); err != nil {
			s.logger.Warn("celebration failed", "error", err)
		}
	}
	return res, nil
}

// PickForToday は今日の作業候補を返す
func (s *Session) PickForToday() []domain.DailyPick {
	return s.board.PickForToday(s.rng)
}

// List は並べ替えたボードを表示する
func (s *Session) List() {
	s.Refresh()
	s.view.Board(s.board)
}

// ListCompleted は完了済みタスクを表示する
func (s *Session) ListCompleted() {
	s.Refresh()
	s.view.Completed(s.board.Completed)
}

// Today は今日の作業候補を表示する
func (s *Session) Today() {
	s.view.Picks(s.PickForToday())
}

// Show はタスクの詳細を表示する
func (s *Session) Show(c domain.Category, ref string) error {
	s.Refresh()
	task, err := s.board.Lookup(c, ref)
	if err != nil {
		return err
	}
	s.view.Task(task)
	return nil
}

// Recoverable はユーザーに表示して操作を続けられるエラーかどうかを返す
func Recoverable(err error) bool {
	var inErr *domain.InputError
	return errors.As(err, &inErr) ||
		errors.Is(err, domain.ErrEmptyCategory) ||
		errors.Is(err, domain.ErrTaskNotFound) ||
		errors.Is(err, domain.ErrAmbiguousRef) ||
		errors.Is(err, domain.ErrUnknownCategory) ||
		errors.Is(err, prompt.ErrCancelled) ||
		errors.Is(err, prompt.ErrInvalidChoice)
}
