package collector

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"RRGView/internal/loader"
	"RRGView/internal/model"
	"RRGView/internal/rrg"
)

// Collector orchestrates data loading, date alignment, and coordinate
// computation for a whole watchlist against one benchmark.
type Collector struct {
	Loader loader.Loader
	Params rrg.Params
}

// Result holds the computed tails for one run. Symbols that failed to load
// or lacked history are skipped and reported in Warnings; the run fails
// outright only when the benchmark itself is unusable or nothing remains.
type Result struct {
	Benchmark string
	TakenAt   time.Time
	Tails     []model.Tail
	Warnings  []string
}

// NewCollector creates a new Collector.
func NewCollector(l loader.Loader, params rrg.Params) *Collector {
	return &Collector{Loader: l, Params: params}
}

// Collect loads the benchmark and every watchlist symbol, aligns each symbol
// to the benchmark by date, and computes its RRG tail.
func (c *Collector) Collect(benchmark string, watchlist []string) (*Result, error) {
	if benchmark == "" {
		return nil, errors.New("benchmark symbol is required")
	}
	if len(watchlist) == 0 {
		return nil, errors.New("watchlist is empty")
	}

	bench, err := c.Loader.Load(benchmark)
	if err != nil {
		return nil, fmt.Errorf("load benchmark %s: %w", benchmark, err)
	}

	res := &Result{Benchmark: benchmark, TakenAt: time.Now()}
	for _, symbol := range watchlist {
		if symbol == benchmark {
			continue
		}
		target, err := c.Loader.Load(symbol)
		if err != nil {
			c.warn(res, "%s: %v", symbol, err)
			continue
		}

		alignedTarget, alignedBench := Align(target, bench)
		tail, err := rrg.Compute(alignedTarget, alignedBench, c.Params)
		if err != nil {
			c.warn(res, "%s: %v", symbol, err)
			continue
		}
		res.Tails = append(res.Tails, tail)
	}

	if len(res.Tails) == 0 {
		return nil, fmt.Errorf("no symbol produced a valid tail (%d warnings)", len(res.Warnings))
	}
	return res, nil
}

func (c *Collector) warn(res *Result, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Warn().Str("loader", c.Loader.Name()).Msg(msg)
	res.Warnings = append(res.Warnings, msg)
}

// Align intersects two series on date, preserving chronological order. The
// returned series have equal length; dates present in only one input are
// dropped.
func Align(target, benchmark model.PriceSeries) (model.PriceSeries, model.PriceSeries) {
	idx := make(map[int64]int, target.Len())
	for i, d := range target.Dates {
		idx[dayKey(d)] = i
	}

	t := model.PriceSeries{Symbol: target.Symbol}
	b := model.PriceSeries{Symbol: benchmark.Symbol}
	for j, d := range benchmark.Dates {
		i, ok := idx[dayKey(d)]
		if !ok {
			continue
		}
		t.Dates = append(t.Dates, target.Dates[i])
		t.Closes = append(t.Closes, target.Closes[i])
		b.Dates = append(b.Dates, benchmark.Dates[j])
		b.Closes = append(b.Closes, benchmark.Closes[j])
	}
	return t, b
}

func dayKey(t time.Time) int64 {
	y, m, d := t.UTC().Date()
	return int64(y)*10000 + int64(m)*100 + int64(d)
}
