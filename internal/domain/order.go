package domain

import (
	"slices"
	"time"
)

// Order はタスクの緊急度を再計算し、緊急度の高い順・作成日時の新しい順に並べ替える
func Order(tasks []*Task, now time.Time) {
	for _, t := range tasks {
		t.Urgency = Classify(t.DueDate, now)
	}

	slices.SortStableFunc(tasks, func(a, b *Task) int {
		if ra, rb := a.Urgency.Rank(), b.Urgency.Rank(); ra != rb {
			return ra - rb
		}
		// 新しいものが先
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
