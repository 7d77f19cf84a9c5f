package loader

import (
	"fmt"

	"RRGView/internal/model"
)

// Loader fetches the historical close-price series for one symbol, already
// resampled to the configured timeframe and trimmed to the configured
// history length.
type Loader interface {
	Load(symbol string) (model.PriceSeries, error)
	Name() string
}

// Valid timeframe strings, in resolution order.
var Timeframes = []string{"daily", "weekly", "monthly", "quarterly"}

// ValidTimeframe reports whether tf is a supported timeframe.
func ValidTimeframe(tf string) bool {
	for _, t := range Timeframes {
		if t == tf {
			return true
		}
	}
	return false
}

// MockLoader returns controllable fixed data for development and testing.
type MockLoader struct {
	Series map[string]model.PriceSeries
	Errs   map[string]error
}

func (m *MockLoader) Name() string { return "mock" }

func (m *MockLoader) Load(symbol string) (model.PriceSeries, error) {
	if err, ok := m.Errs[symbol]; ok {
		return model.PriceSeries{}, err
	}
	s, ok := m.Series[symbol]
	if !ok {
		return model.PriceSeries{}, fmt.Errorf("mock: no data for %s", symbol)
	}
	return s, nil
}
