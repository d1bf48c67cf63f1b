package board

import (
	"testing"
	"time"
)

func TestRecomputeAgeFloorsWholeDays(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		entered time.Time
		want    int
	}{
		{name: "ten days ago", entered: now.Add(-10 * 24 * time.Hour), want: 10},
		{name: "five and a half days floors to five", entered: now.Add(-132 * time.Hour), want: 5},
		{name: "just entered", entered: now, want: 0},
		{name: "under a day", entered: now.Add(-23 * time.Hour), want: 0},
		{name: "future timestamp clamps to zero", entered: now.Add(48 * time.Hour), want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stock := Stock{StageEnteredAt: tc.entered, DaysInStage: 99}
			got := RecomputeAge(stock, now)
			if got.DaysInStage != tc.want {
				t.Fatalf("DaysInStage = %d, want %d", got.DaysInStage, tc.want)
			}
			if !got.StageEnteredAt.Equal(tc.entered) {
				t.Fatalf("StageEnteredAt changed: %v -> %v", tc.entered, got.StageEnteredAt)
			}
		})
	}
}

func TestRecomputeAgeSelfHealsUnsetTimestamp(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	stock := Stock{DaysInStage: 42}

	got := RecomputeAge(stock, now)
	if !got.StageEnteredAt.Equal(now) {
		t.Fatalf("StageEnteredAt = %v, want self-healed to %v", got.StageEnteredAt, now)
	}
	if got.DaysInStage != 0 {
		t.Fatalf("DaysInStage = %d, want 0 after self-heal", got.DaysInStage)
	}
}
