// Package prompt は対話的な入力を同期的に受け付ける
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrCancelled は選択が取り消されたことを表す
	ErrCancelled = errors.New("cancelled")
	// ErrInvalidChoice は選択肢にない入力を表す
	ErrInvalidChoice = errors.New("invalid choice")
)

// Prompter は1行ずつ入力を読み取る
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

// New は新しいPrompterを作成する
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

// Ask はラベルを表示して1行読み取る
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.w, "%s: ", label)
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskFloat は数値を読み取る
func (p *Prompter) AskFloat(label string) (float64, error) {
	s, err := p.Ask(label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

// AskInt は整数を読み取る
func (p *Prompter) AskInt(label string) (int, error) {
	s, err := p.Ask(label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return v, nil
}

// Choose は番号付きの選択肢を表示し、選ばれた添字を返す
// 空入力は ErrCancelled
func (p *Prompter) Choose(label string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, ErrCancelled
	}

	fmt.Fprintln(p.w, label)
	for i, opt := range options {
		fmt.Fprintf(p.w, "  %d) %s\n", i+1, opt)
	}

	s, err := p.Ask("Choice")
	if err != nil {
		return -1, err
	}
	if s == "" || strings.EqualFold(s, "q") {
		return -1, ErrCancelled
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(options) {
		return -1, fmt.Errorf("%w: %s", ErrInvalidChoice, s)
	}
	return n - 1, nil
}
