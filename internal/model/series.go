package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the closing prices of one symbol, ordered by trading date.
// It is immutable once loaded for a given run.
type PriceSeries struct {
	Symbol string
	Dates  []time.Time
	Closes []float64
}

// Len returns the number of price points.
func (s PriceSeries) Len() int { return len(s.Closes) }

// SeriesFromBars extracts a close-price series from candlestick bars.
func SeriesFromBars(symbol string, bars []OHLCV) PriceSeries {
	dates := make([]time.Time, len(bars))
	closes := make([]float64, len(bars))
	for i, b := range bars {
		dates[i] = b.Time
		closes[i] = b.Close
	}
	return PriceSeries{Symbol: symbol, Dates: dates, Closes: closes}
}
