package loader

import (
	"testing"
	"time"

	"RRGView/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func bar(t time.Time, o, h, l, c, v float64) model.OHLCV {
	return model.OHLCV{Time: t, Open: o, High: h, Low: l, Close: c, Volume: v}
}

func TestResample_Weekly(t *testing.T) {
	// Mon 2024-01-08 through Fri 2024-01-12, then Mon 2024-01-15.
	bars := []model.OHLCV{
		bar(day(2024, 1, 8), 10, 12, 9, 11, 100),
		bar(day(2024, 1, 9), 11, 15, 10, 14, 100),
		bar(day(2024, 1, 10), 14, 14, 8, 9, 100),
		bar(day(2024, 1, 11), 9, 11, 9, 10, 100),
		bar(day(2024, 1, 12), 10, 13, 10, 12, 100),
		bar(day(2024, 1, 15), 12, 12, 12, 12, 50),
	}
	out, err := Resample(bars, "weekly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 weekly bars, got %d", len(out))
	}

	w := out[0]
	if !w.Time.Equal(day(2024, 1, 8)) {
		t.Errorf("expected week labeled by its Monday, got %v", w.Time)
	}
	if w.Open != 10 || w.High != 15 || w.Low != 8 || w.Close != 12 || w.Volume != 500 {
		t.Errorf("bad weekly aggregate: %+v", w)
	}
	if !out[1].Time.Equal(day(2024, 1, 15)) {
		t.Errorf("expected second week labeled 2024-01-15, got %v", out[1].Time)
	}
}

func TestResample_WeeklyLabelAlignsAcrossSymbols(t *testing.T) {
	// One symbol traded Monday, the other only Wednesday; both bars must
	// land on the same weekly label.
	a, err := Resample([]model.OHLCV{bar(day(2024, 1, 8), 1, 1, 1, 1, 0)}, "weekly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Resample([]model.OHLCV{bar(day(2024, 1, 10), 2, 2, 2, 2, 0)}, "weekly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a[0].Time.Equal(b[0].Time) {
		t.Errorf("weekly labels differ: %v vs %v", a[0].Time, b[0].Time)
	}
}

func TestResample_Monthly(t *testing.T) {
	bars := []model.OHLCV{
		bar(day(2024, 1, 15), 10, 12, 9, 11, 10),
		bar(day(2024, 1, 31), 11, 16, 11, 15, 10),
		bar(day(2024, 2, 1), 15, 15, 13, 14, 10),
	}
	out, err := Resample(bars, "monthly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 monthly bars, got %d", len(out))
	}
	if !out[0].Time.Equal(day(2024, 1, 1)) || !out[1].Time.Equal(day(2024, 2, 1)) {
		t.Errorf("expected first-of-month labels, got %v and %v", out[0].Time, out[1].Time)
	}
	if out[0].High != 16 || out[0].Close != 15 {
		t.Errorf("bad monthly aggregate: %+v", out[0])
	}
}

func TestResample_Quarterly(t *testing.T) {
	bars := []model.OHLCV{
		bar(day(2024, 1, 10), 1, 1, 1, 1, 0),
		bar(day(2024, 3, 28), 2, 2, 2, 2, 0),
		bar(day(2024, 4, 2), 3, 3, 3, 3, 0),
	}
	out, err := Resample(bars, "quarterly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 quarterly bars, got %d", len(out))
	}
	if !out[0].Time.Equal(day(2024, 1, 1)) || !out[1].Time.Equal(day(2024, 4, 1)) {
		t.Errorf("expected quarter-start labels, got %v and %v", out[0].Time, out[1].Time)
	}
}

func TestResample_DailyPassthrough(t *testing.T) {
	bars := []model.OHLCV{
		bar(day(2024, 1, 8), 10, 12, 9, 11, 100),
		bar(day(2024, 1, 9), 11, 15, 10, 14, 100),
	}
	out, err := Resample(bars, "daily")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(bars) {
		t.Errorf("expected daily input unchanged, got %d bars", len(out))
	}
}

func TestResample_InvalidTimeframe(t *testing.T) {
	if _, err := Resample(nil, "hourly"); err == nil {
		t.Error("expected error for unsupported timeframe")
	}
}

func TestClampEndDate(t *testing.T) {
	tests := []struct {
		name      string
		timeframe string
		in, want  time.Time
	}{
		{"weekly midweek", "weekly", day(2024, 1, 10), day(2024, 1, 13)},
		{"weekly saturday", "weekly", day(2024, 1, 13), day(2024, 1, 13)},
		{"monthly", "monthly", day(2024, 2, 10), day(2024, 2, 29)},
		{"quarterly", "quarterly", day(2024, 2, 10), day(2024, 3, 31)},
		{"daily untouched", "daily", day(2024, 1, 10), day(2024, 1, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampEndDate(tt.in, tt.timeframe)
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
