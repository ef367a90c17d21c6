// Package view はボードを端末向けに整形する
package view

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/tkc/taskquad/internal/domain"
)

// Legend は緊急度の凡例
const Legend = "Urgency: Critical = under 2 days, High = under a week, Medium = under 30 days, Low = 30 days or more"

// NoTasks は候補がないときの表示
const NoTasks = "No tasks available"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	urgencyStyles = map[domain.Urgency]lipgloss.Style{
		domain.UrgencyCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red
		domain.UrgencyHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true), // Orange
		domain.UrgencyMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")),            // Yellow
		domain.UrgencyLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("82")),             // Green
	}
)

// Renderer は出力先と色の有無を保持する
type Renderer struct {
	w     io.Writer
	color bool
}

// New は新しいRendererを作成する
func New(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Urgency は緊急度ラベルを返す
func (r *Renderer) Urgency(u domain.Urgency) string {
	s, ok := urgencyStyles[u]
	if !ok {
		return string(u)
	}
	return r.style(s, string(u))
}

// Board はカテゴリごとのタスク一覧を表示する
// 呼び出し前に Board.Sort を済ませておくこと
func (r *Renderer) Board(b *domain.Board) {
	for i, c := range domain.Categories {
		if i > 0 {
			fmt.Fprintln(r.w)
		}
		r.Category(c, b.Tasks(c))
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.style(mutedStyle, Legend))
}

// Category は1カテゴリ分のタスクを表示する
func (r *Renderer) Category(c domain.Category, tasks []*domain.Task) {
	fmt.Fprintln(r.w, r.style(headerStyle, fmt.Sprintf("%s (%d)", c, len(tasks))))
	if len(tasks) == 0 {
		fmt.Fprintln(r.w, "  "+r.style(mutedStyle, "(no tasks)"))
		return
	}

	// 色付きの列は幅計算がずれるので最後に置く
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  #\tID\tDESCRIPTION\tDUE\tDONE\tHOURS\tURGENCY")
	for i, t := range tasks {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%d%%\t%s\t%s\n",
			i+1,
			t.ShortID(),
			truncate(t.Description, 50),
			t.DueDate.Format(domain.DateLayout),
			t.Completion,
			Hours(t.HoursRemaining),
			r.Urgency(t.Urgency),
		)
	}
	tw.Flush()
}

// Completed は完了済みタスクを表示する
func (r *Renderer) Completed(tasks []*domain.Task) {
	fmt.Fprintln(r.w, r.style(headerStyle, fmt.Sprintf("Completed (%d)", len(tasks))))
	if len(tasks) == 0 {
		fmt.Fprintln(r.w, "  "+r.style(mutedStyle, "(no completed tasks)"))
		return
	}

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  DESCRIPTION\tCATEGORY\tURGENCY")
	for _, t := range tasks {
		category := string(t.Category)
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", truncate(t.Description, 50), category, r.Urgency(t.Urgency))
	}
	tw.Flush()
}

// Picks は今日の作業候補を表示する
func (r *Renderer) Picks(picks []domain.DailyPick) {
	fmt.Fprintln(r.w, r.style(headerStyle, "Tasks for Today"))
	for _, p := range picks {
		name := NoTasks
		if p.Task != nil {
			name = p.Task.Description
		}
		fmt.Fprintf(r.w, "  %d minutes: %s (%s)\n", p.Minutes, name, p.Category)
	}
}

// Task はタスクの詳細を表示する
func (r *Renderer) Task(t *domain.Task) {
	fmt.Fprintf(r.w, "Task: %s\n", t.Description)
	fmt.Fprintf(r.w, "ID:         %s\n", t.ID)
	fmt.Fprintf(r.w, "Category:   %s\n", t.Category)
	fmt.Fprintf(r.w, "Urgency:    %s\n", r.Urgency(t.Urgency))
	fmt.Fprintf(r.w, "Due:        %s\n", t.DueDate.Format(domain.DateLayout))
	fmt.Fprintf(r.w, "Completion: %d%%\n", t.Completion)
	fmt.Fprintf(r.w, "Remaining:  %s\n", Hours(t.HoursRemaining))
	fmt.Fprintf(r.w, "Created:    %s\n", t.CreatedAt.Format(domain.TimestampLayout))
}

// Hours は残り時間を表示用に整形する
func Hours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + " hrs"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
