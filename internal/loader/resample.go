package loader

import (
	"fmt"
	"time"

	"RRGView/internal/model"
)

// Resample aggregates daily bars into the requested timeframe using the
// usual OHLCV rules: first open, max high, min low, last close, summed
// volume. Bars are labeled with the canonical period start (ISO-week Monday,
// first of month, first of quarter) so resampled series from different
// symbols stay date-aligned. Input must be in chronological order.
func Resample(bars []model.OHLCV, timeframe string) ([]model.OHLCV, error) {
	if !ValidTimeframe(timeframe) {
		return nil, fmt.Errorf("invalid timeframe %q", timeframe)
	}
	if timeframe == "daily" || len(bars) == 0 {
		return bars, nil
	}

	var out []model.OHLCV
	var cur model.OHLCV
	var curKey int
	started := false

	for _, b := range bars {
		key := periodKey(b.Time, timeframe)
		if !started || key != curKey {
			if started {
				out = append(out, cur)
			}
			cur = b
			cur.Time = periodStart(b.Time, timeframe)
			curKey = key
			started = true
			continue
		}
		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Volume += b.Volume
	}
	if started {
		out = append(out, cur)
	}
	return out, nil
}

// ClampEndDate extends an end date to the last day of its period so the
// whole period containing the date is kept when slicing history.
func ClampEndDate(date time.Time, timeframe string) time.Time {
	switch timeframe {
	case "weekly":
		// extend to Saturday
		days := int(time.Saturday - date.Weekday())
		if days < 0 {
			days += 7
		}
		return date.AddDate(0, 0, days)
	case "monthly":
		return lastDayOfMonth(date)
	case "quarterly":
		q := (int(date.Month()) - 1) / 3
		endMonth := time.Month(q*3 + 3)
		return lastDayOfMonth(time.Date(date.Year(), endMonth, 1, 0, 0, 0, 0, date.Location()))
	}
	return date
}

func lastDayOfMonth(date time.Time) time.Time {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	return first.AddDate(0, 1, -1)
}

func periodKey(t time.Time, timeframe string) int {
	switch timeframe {
	case "weekly":
		y, w := t.ISOWeek()
		return y*100 + w
	case "monthly":
		return t.Year()*100 + int(t.Month())
	case "quarterly":
		return t.Year()*10 + (int(t.Month())-1)/3
	}
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

func periodStart(t time.Time, timeframe string) time.Time {
	switch timeframe {
	case "weekly":
		// back up to the ISO-week Monday
		days := (int(t.Weekday()) + 6) % 7
		d := t.AddDate(0, 0, -days)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	case "monthly":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case "quarterly":
		m := time.Month((int(t.Month())-1)/3*3 + 1)
		return time.Date(t.Year(), m, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
