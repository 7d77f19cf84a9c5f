package rrg

import (
	"errors"
	"fmt"
	"math"

	"RRGView/internal/calculator"
	"RRGView/internal/model"
)

// Computation failure kinds. All are detected eagerly; the engine returns
// either a complete tail or a single descriptive error, never partial output.
var (
	ErrLengthMismatch      = errors.New("target and benchmark series length mismatch")
	ErrInsufficientHistory = errors.New("insufficient history for smoothing window")
	ErrInvalidPrice        = errors.New("invalid price in series")
)

// Params configures the coordinate computation. The scale constant and the
// momentum lag follow published RRG convention but are deliberately
// configurable rather than hard-coded.
type Params struct {
	Window      int     // smoothing window for both normalizations
	MomentumLag int     // rate-of-change lag applied to RS-Ratio
	Scale       float64 // re-normalization scale constant
	TailCount   int     // trailing coordinates retained for plotting
}

// DefaultParams mirrors the common RRG convention: 14-period window,
// one-period momentum lag, 4-point tail.
func DefaultParams() Params {
	return Params{Window: 14, MomentumLag: 1, Scale: 1.0, TailCount: 4}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.Window <= 0 {
		p.Window = d.Window
	}
	if p.MomentumLag <= 0 {
		p.MomentumLag = d.MomentumLag
	}
	if p.Scale <= 0 {
		p.Scale = d.Scale
	}
	if p.TailCount <= 0 {
		p.TailCount = d.TailCount
	}
	return p
}

// minHistory is the number of aligned price points needed to emit at least
// one coordinate: window-1 warm-up for RS-Ratio, the momentum lag, and
// another window-1 warm-up for the RS-Momentum normalization.
func (p Params) minHistory() int {
	return 2*p.Window + p.MomentumLag - 1
}

// Compute derives the RRG tail for a target series measured against a
// benchmark. Both series must be date-aligned and of equal length; the
// engine is a pure function of its inputs and holds no state.
//
// RS-Ratio[t] = 100 + (ratio[t] - mean(ratio)) / stddev(ratio) * scale over
// the smoothing window. RS-Momentum applies the same re-normalization to the
// rate of change of RS-Ratio. Warm-up points are dropped, and both outputs
// are truncated to the trailing TailCount coordinates.
func Compute(target, benchmark model.PriceSeries, p Params) (model.Tail, error) {
	p = p.withDefaults()

	if target.Len() != benchmark.Len() {
		return model.Tail{}, fmt.Errorf("%w: target %d points, benchmark %d points",
			ErrLengthMismatch, target.Len(), benchmark.Len())
	}
	if target.Len() < p.minHistory() {
		return model.Tail{}, fmt.Errorf("%w: need %d aligned points, have %d",
			ErrInsufficientHistory, p.minHistory(), target.Len())
	}
	if err := checkPrices(target); err != nil {
		return model.Tail{}, err
	}
	if err := checkPrices(benchmark); err != nil {
		return model.Tail{}, err
	}

	ratio, err := calculator.Ratio(target.Closes, benchmark.Closes)
	if err != nil {
		return model.Tail{}, fmt.Errorf("%w: %v", ErrLengthMismatch, err)
	}

	// RS-Ratio, valid from index window-1 of the ratio series.
	rsr := normalize(ratio, p.Window, p.Scale)

	// Raw momentum: percentage rate of change of RS-Ratio over the lag.
	// Drop the RS-Ratio warm-up and the lag so only fully-valid values
	// enter the momentum normalization window.
	roc, err := calculator.RateOfChange(rsr, p.MomentumLag)
	if err != nil {
		return model.Tail{}, err
	}
	roc = roc[p.Window-1+p.MomentumLag:]

	// RS-Momentum: the same re-normalization applied to the raw momentum.
	rsm := normalize(roc, p.Window, p.Scale)
	rsm = rsm[p.Window-1:]

	// Align RS-Ratio to the RS-Momentum warm-up so both outputs share dates.
	rsr = rsr[len(rsr)-len(rsm):]
	dates := target.Dates[target.Len()-len(rsm):]

	points := make([]model.Coordinate, len(rsm))
	for i := range rsm {
		points[i] = model.Coordinate{Date: dates[i], RSRatio: rsr[i], RSMomentum: rsm[i]}
	}
	if len(points) > p.TailCount {
		points = points[len(points)-p.TailCount:]
	}
	return model.Tail{Symbol: target.Symbol, Points: points}, nil
}

// normalize re-centers a series at 100 using a rolling z-score:
// 100 + (v - mean) / stddev * scale. The input must be NaN-free; the first
// window-1 output positions are the warm-up and remain at the 100 centerline
// so no NaN can leak downstream. A zero-variance window clamps the value to
// the centerline rather than dividing by zero.
func normalize(values []float64, window int, scale float64) []float64 {
	means, _ := calculator.RollingMean(values, window)
	stds, _ := calculator.RollingStdDev(values, window)

	out := make([]float64, len(values))
	for i := range values {
		if i < window-1 || stds[i] == 0 || math.IsNaN(stds[i]) {
			out[i] = 100
			continue
		}
		out[i] = 100 + (values[i]-means[i])/stds[i]*scale
	}
	return out
}

func checkPrices(s model.PriceSeries) error {
	for i, v := range s.Closes {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s has price %v at index %d", ErrInvalidPrice, s.Symbol, v, i)
		}
	}
	return nil
}
