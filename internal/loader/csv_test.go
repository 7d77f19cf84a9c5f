package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestCSVLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "spy.csv", `Date,Open,High,Low,Close,Volume
2024-01-08,10,12,9,11,100
2024-01-09,11,15,10,14,100
2024-01-10,14,14,8,9,100
`)

	l, err := NewCSVLoader(dir, "daily", time.Time{}, 52, "Date", "")
	require.NoError(t, err)

	// Symbol lookup is case-insensitive via the lowercased file name.
	s, err := l.Load("SPY")
	require.NoError(t, err)
	assert.Equal(t, "SPY", s.Symbol)
	assert.Equal(t, []float64{11, 14, 9}, s.Closes)
	assert.Equal(t, day(2024, 1, 8), s.Dates[0])
}

func TestCSVLoader_OutOfOrderRowsSorted(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "aapl.csv", `Date,Close
2024-01-10,9
2024-01-08,11
2024-01-09,14
`)

	l, err := NewCSVLoader(dir, "daily", time.Time{}, 52, "Date", "")
	require.NoError(t, err)

	s, err := l.Load("aapl")
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 14, 9}, s.Closes)
}

func TestCSVLoader_EndDateFilter(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "spy.csv", `Date,Close
2024-01-08,11
2024-01-09,14
2024-01-16,20
`)

	// Midweek end date keeps the whole containing week but not the next.
	l, err := NewCSVLoader(dir, "weekly", day(2024, 1, 10), 52, "Date", "")
	require.NoError(t, err)

	s, err := l.Load("spy")
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 14.0, s.Closes[0])
}

func TestCSVLoader_PeriodTrim(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "spy.csv", `Date,Close
2024-01-08,1
2024-01-09,2
2024-01-10,3
2024-01-11,4
`)

	l, err := NewCSVLoader(dir, "daily", time.Time{}, 2, "Date", "")
	require.NoError(t, err)

	s, err := l.Load("spy")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, s.Closes)
}

func TestCSVLoader_CustomDateFormat(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "spy.csv", `Date,Close
08/01/2024,11
`)

	l, err := NewCSVLoader(dir, "daily", time.Time{}, 52, "Date", "02/01/2006")
	require.NoError(t, err)

	s, err := l.Load("spy")
	require.NoError(t, err)
	assert.Equal(t, day(2024, 1, 8), s.Dates[0])
}

func TestCSVLoader_MalformedRowMidFile(t *testing.T) {
	dir := t.TempDir()
	// Unterminated quote on the third data row; the rows after it must not
	// be silently dropped.
	writeCSV(t, dir, "aapl.csv", `Date,Close
2024-01-08,10
2024-01-09,11
"2024-01-10,12
2024-01-11,13
2024-01-12,14
`)

	l, err := NewCSVLoader(dir, "daily", time.Time{}, 52, "Date", "")
	require.NoError(t, err)

	_, err = l.Load("aapl")
	require.Error(t, err)
	assert.ErrorContains(t, err, "line 4")
}

func TestCSVLoader_WrongFieldCount(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "aapl.csv", `Date,Close
2024-01-08,10
2024-01-09
2024-01-10,12
`)

	l, err := NewCSVLoader(dir, "daily", time.Time{}, 52, "Date", "")
	require.NoError(t, err)

	_, err = l.Load("aapl")
	require.Error(t, err)
	assert.ErrorContains(t, err, "line 3")
}

func TestCSVLoader_MissingFile(t *testing.T) {
	l, err := NewCSVLoader(t.TempDir(), "daily", time.Time{}, 52, "Date", "")
	require.NoError(t, err)

	_, err = l.Load("nope")
	assert.Error(t, err)
}

func TestCSVLoader_MissingCloseColumn(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "spy.csv", `Date,Open
2024-01-08,11
`)

	l, err := NewCSVLoader(dir, "daily", time.Time{}, 52, "Date", "")
	require.NoError(t, err)

	_, err = l.Load("spy")
	assert.ErrorContains(t, err, "close column")
}

func TestCSVLoader_BadTimeframe(t *testing.T) {
	_, err := NewCSVLoader(t.TempDir(), "hourly", time.Time{}, 52, "Date", "")
	assert.Error(t, err)
}

func TestValidTimeframe(t *testing.T) {
	for _, tf := range Timeframes {
		assert.True(t, ValidTimeframe(tf), tf)
	}
	assert.False(t, ValidTimeframe("hourly"))
	assert.False(t, ValidTimeframe(""))
}
