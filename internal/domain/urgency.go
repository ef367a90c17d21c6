package domain

import "time"

// Urgency は期限から導出される緊急度
type Urgency string

const (
	UrgencyCritical Urgency = "Critical"
	UrgencyHigh     Urgency = "High"
	UrgencyMedium   Urgency = "Medium"
	UrgencyLow      Urgency = "Low"
)

// Urgencies は緊急度の高い順
var Urgencies = []Urgency{UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow}

// Rank は並び替え用の順位を返す（小さいほど緊急）
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 1
	case UrgencyHigh:
		return 2
	case UrgencyMedium:
		return 3
	case UrgencyLow:
		return 4
	default:
		return 5
	}
}

// Classify は期限と今日の日付から緊急度を返す
// 残り日数: <2 Critical, <7 High, <30 Medium, それ以外 Low
func Classify(due, today time.Time) Urgency {
	days := DaysBetween(today, due)
	switch {
	case days < 2:
		return UrgencyCritical
	case days < 7:
		return UrgencyHigh
	case days < 30:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// DaysBetween は from から to までの暦日数を返す（時刻は無視）
func DaysBetween(from, to time.Time) int {
	f := dateOf(from)
	t := dateOf(to)
	// UTCに揃えてDSTの影響を避ける
	fu := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	tu := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(tu.Sub(fu).Hours() / 24)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
