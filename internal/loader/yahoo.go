package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"RRGView/internal/model"
)

// YahooLoader fetches daily bars from the Yahoo Finance public chart API and
// resamples them locally, for users without a directory of CSV data.
type YahooLoader struct {
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker

	Timeframe string
	EndDate   time.Time
	Period    int
}

// NewYahooLoader creates a Yahoo Finance loader with optional proxy support.
func NewYahooLoader(timeframe string, endDate time.Time, period int, proxyURL string) (*YahooLoader, error) {
	if !ValidTimeframe(timeframe) {
		return nil, fmt.Errorf("invalid timeframe %q", timeframe)
	}
	if period <= 0 {
		period = 52
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooLoader{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
		Timeframe: timeframe,
		EndDate:   endDate,
		Period:    period,
	}, nil
}

func (l *YahooLoader) Name() string { return "yahoo" }

func (l *YahooLoader) yahooSymbol(symbol string) string {
	if mapped, ok := l.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// Load fetches enough daily history to cover the configured period at the
// configured timeframe, then resamples and trims like the CSV loader.
func (l *YahooLoader) Load(symbol string) (model.PriceSeries, error) {
	bars, err := l.fetchChart(symbol, "1d", l.historyRange())
	if err != nil {
		return model.PriceSeries{}, err
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

// historyRange picks a Yahoo range string wide enough for the configured
// period at the configured timeframe.
func (l *YahooLoader) historyRange() string {
	days := l.Period
	switch l.Timeframe {
	case "weekly":
		days = l.Period * 7
	case "monthly":
		days = l.Period * 31
	case "quarterly":
		days = l.Period * 93
	}
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	case days <= 730:
		return "2y"
	case days <= 1825:
		return "5y"
	}
	return "10y"
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (l *YahooLoader) fetchChart(symbol, interval, rng string) ([]model.OHLCV, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=%s&range=%s",
		url.PathEscape(l.yahooSymbol(symbol)), interval, rng)

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned for %s", symbol)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		lo := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && lo == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		day := time.Unix(ts, 0).UTC()
		bars = append(bars, model.OHLCV{
			// normalize to UTC midnight so dates align across symbols
			Time:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Open:   o,
			High:   h,
			Low:    lo,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
