package model

import (
	"testing"
	"time"
)

func TestQuadrantOf(t *testing.T) {
	tests := []struct {
		ratio, momentum float64
		want            Quadrant
	}{
		{101, 101, Leading},
		{101, 99, Weakening},
		{99, 99, Lagging},
		{99, 101, Improving},
		// Centerline values count as the stronger quadrant.
		{100, 100, Leading},
		{100, 99, Weakening},
		{99, 100, Improving},
	}
	for _, tt := range tests {
		got := QuadrantOf(Coordinate{RSRatio: tt.ratio, RSMomentum: tt.momentum})
		if got != tt.want {
			t.Errorf("(%v, %v): expected %s, got %s", tt.ratio, tt.momentum, tt.want, got)
		}
	}
}

func TestQuadrantString(t *testing.T) {
	names := map[Quadrant]string{
		Leading:   "Leading",
		Weakening: "Weakening",
		Lagging:   "Lagging",
		Improving: "Improving",
	}
	for q, want := range names {
		if q.String() != want {
			t.Errorf("expected %q, got %q", want, q.String())
		}
	}
	if Quadrant(99).String() != "Unknown" {
		t.Errorf("expected Unknown for out-of-range quadrant")
	}
}

func TestTailHead(t *testing.T) {
	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	tail := Tail{Symbol: "spy", Points: []Coordinate{
		{Date: d1, RSRatio: 99, RSMomentum: 99},
		{Date: d2, RSRatio: 101, RSMomentum: 101},
	}}
	if !tail.Head().Date.Equal(d2) {
		t.Errorf("head should be the last point, got %v", tail.Head().Date)
	}

	var empty Tail
	if head := empty.Head(); head.RSRatio != 0 {
		t.Errorf("empty tail should return a zero head, got %+v", head)
	}
}

func TestSeriesFromBars(t *testing.T) {
	d := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	bars := []OHLCV{
		{Time: d, Open: 10, High: 12, Low: 9, Close: 11},
		{Time: d.AddDate(0, 0, 1), Open: 11, High: 15, Low: 10, Close: 14},
	}
	s := SeriesFromBars("spy", bars)
	if s.Symbol != "spy" || s.Len() != 2 {
		t.Fatalf("bad series: %+v", s)
	}
	if s.Closes[0] != 11 || s.Closes[1] != 14 {
		t.Errorf("expected close prices, got %v", s.Closes)
	}
	if !s.Dates[0].Equal(d) {
		t.Errorf("expected bar time carried over, got %v", s.Dates[0])
	}
}
