package dateutil

import (
	"testing"
	"time"
)

func TestDaysUntil_TableTests(t *testing.T) {
	today := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		end   time.Time
		today time.Time
		want  int
	}{
		{
			name:  "three days ahead",
			end:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			today: today,
			want:  3,
		},
		{
			name:  "same day",
			end:   today,
			today: today,
			want:  0,
		},
		{
			name:  "five days past",
			end:   time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			today: today,
			want:  -5,
		},
		{
			name:  "time of day is ignored",
			end:   time.Date(2025, 1, 10, 23, 59, 0, 0, time.UTC),
			today: time.Date(2025, 1, 7, 18, 30, 0, 0, time.UTC),
			want:  3,
		},
		{
			name:  "end date in another month",
			end:   time.Date(2025, 2, 6, 0, 0, 0, 0, time.UTC),
			today: today,
			want:  30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysUntil(tt.end, tt.today)
			if got != tt.want {
				t.Errorf("DaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2025, 3, 15, 17, 45, 12, 999, time.UTC)
	got := Midnight(in)
	want := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Midnight() = %v, want %v", got, want)
	}
}
