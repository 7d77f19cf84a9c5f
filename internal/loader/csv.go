package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"RRGView/internal/model"
)

// dateFormats tried in order when no explicit format is configured.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02-01-2006",
	"01/02/2006",
}

// CSVLoader reads end-of-day bars from per-symbol CSV files in a data
// directory. Files are named <symbol>.csv (lowercased) with a header row
// containing at least Date and Close columns.
type CSVLoader struct {
	DataPath   string
	Timeframe  string
	EndDate    time.Time // zero value means latest available
	Period     int       // bars kept after resampling
	DateColumn string
	DateFormat string
}

// NewCSVLoader validates the timeframe and returns a CSV file loader.
func NewCSVLoader(dataPath, timeframe string, endDate time.Time, period int, dateColumn, dateFormat string) (*CSVLoader, error) {
	if !ValidTimeframe(timeframe) {
		return nil, fmt.Errorf("timeframe must be one of %s", strings.Join(Timeframes, ", "))
	}
	if dateColumn == "" {
		dateColumn = "Date"
	}
	if period <= 0 {
		period = 52
	}
	return &CSVLoader{
		DataPath:   dataPath,
		Timeframe:  timeframe,
		EndDate:    endDate,
		Period:     period,
		DateColumn: dateColumn,
		DateFormat: dateFormat,
	}, nil
}

func (l *CSVLoader) Name() string { return "csv" }

// Load reads, resamples, and trims the series for one symbol.
func (l *CSVLoader) Load(symbol string) (model.PriceSeries, error) {
	path := filepath.Join(l.DataPath, strings.ToLower(symbol)+".csv")
	bars, err := l.readBars(path)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("%s: %w", symbol, err)
	}

	if !l.EndDate.IsZero() {
		cutoff := ClampEndDate(l.EndDate, l.Timeframe)
		n := sort.Search(len(bars), func(i int) bool { return bars[i].Time.After(cutoff) })
		bars = bars[:n]
	}

	bars, err = Resample(bars, l.Timeframe)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("%s: %w", symbol, err)
	}
	if len(bars) > l.Period {
		bars = bars[len(bars)-l.Period:]
	}
	if len(bars) == 0 {
		return model.PriceSeries{}, fmt.Errorf("%s: no bars in range", symbol)
	}
	return model.SeriesFromBars(symbol, bars), nil
}

func (l *CSVLoader) readBars(path string) ([]model.OHLCV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := l.columnIndexes(header)
	if err != nil {
		return nil, err
	}

	var bars []model.OHLCV
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t, err := l.parseDate(rec[cols.date])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		c, err := strconv.ParseFloat(rec[cols.close], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse close: %w", line, err)
		}
		bar := model.OHLCV{Time: t, Open: c, High: c, Low: c, Close: c}
		if cols.open >= 0 {
			bar.Open, _ = strconv.ParseFloat(rec[cols.open], 64)
		}
		if cols.high >= 0 {
			bar.High, _ = strconv.ParseFloat(rec[cols.high], 64)
		}
		if cols.low >= 0 {
			bar.Low, _ = strconv.ParseFloat(rec[cols.low], 64)
		}
		if cols.volume >= 0 {
			bar.Volume, _ = strconv.ParseFloat(rec[cols.volume], 64)
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

type columnSet struct {
	date, open, high, low, close, volume int
}

func (l *CSVLoader) columnIndexes(header []string) (columnSet, error) {
	cols := columnSet{date: -1, open: -1, high: -1, low: -1, close: -1, volume: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case strings.ToLower(l.DateColumn):
			cols.date = i
		case "open":
			cols.open = i
		case "high":
			cols.high = i
		case "low":
			cols.low = i
		case "close":
			cols.close = i
		case "volume":
			cols.volume = i
		}
	}
	if cols.date < 0 {
		return cols, fmt.Errorf("date column %q not found in header", l.DateColumn)
	}
	if cols.close < 0 {
		return cols, fmt.Errorf("close column not found in header")
	}
	return cols, nil
}

func (l *CSVLoader) parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if l.DateFormat != "" {
		t, err := time.Parse(l.DateFormat, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
		}
		return t, nil
	}
	for _, f := range dateFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
