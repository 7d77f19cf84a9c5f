package notifier

import (
	"strings"
	"testing"
	"time"

	"RRGView/internal/collector"
	"RRGView/internal/model"
)

func TestFormatRotationAlert(t *testing.T) {
	head := model.Coordinate{
		Date:       time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		RSRatio:    101.23,
		RSMomentum: 99.87,
	}
	msg := FormatRotationAlert("aapl", "Leading", "Weakening", head)

	for _, want := range []string{"AAPL", "Leading → <b>Weakening</b>", "101.23", "99.87", "2024-01-08"} {
		if !strings.Contains(msg, want) {
			t.Errorf("alert missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatStatusTable(t *testing.T) {
	res := &collector.Result{
		Benchmark: "spy",
		TakenAt:   time.Now(),
		Tails: []model.Tail{
			{Symbol: "qqq", Points: []model.Coordinate{{RSRatio: 102, RSMomentum: 101}}},
			{Symbol: "aapl", Points: []model.Coordinate{{RSRatio: 103, RSMomentum: 102}}},
			{Symbol: "iwm", Points: []model.Coordinate{{RSRatio: 97, RSMomentum: 98}}},
		},
		Warnings: []string{"xxx: boom"},
	}
	msg := FormatStatusTable(res)

	if !strings.Contains(msg, "RRG vs SPY") {
		t.Errorf("missing benchmark header:\n%s", msg)
	}
	if !strings.Contains(msg, "Leading") || !strings.Contains(msg, "Lagging") {
		t.Errorf("missing quadrant groups:\n%s", msg)
	}
	if strings.Contains(msg, "Improving") || strings.Contains(msg, "Weakening") {
		t.Errorf("empty quadrant groups should be omitted:\n%s", msg)
	}
	// Symbols sort alphabetically within a group.
	if strings.Index(msg, "AAPL") > strings.Index(msg, "QQQ") {
		t.Errorf("expected AAPL before QQQ:\n%s", msg)
	}
	if !strings.Contains(msg, "1 symbol(s) skipped") {
		t.Errorf("missing warning count:\n%s", msg)
	}
}

func TestFormatStatusTable_NoWarnings(t *testing.T) {
	res := &collector.Result{
		Benchmark: "spy",
		Tails: []model.Tail{
			{Symbol: "aapl", Points: []model.Coordinate{{RSRatio: 102, RSMomentum: 101}}},
		},
	}
	if msg := FormatStatusTable(res); strings.Contains(msg, "skipped") {
		t.Errorf("unexpected warning line:\n%s", msg)
	}
}
