package session

import (
	"encoding/json"
	"os"
	"time"

	"RRGView/internal/model"
)

// LoadState reads the UI session state from a JSON file. Returns a zero
// state if the file doesn't exist.
func LoadState(filePath string) (*model.SessionState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.SessionState{ShowLabels: true}, nil
		}
		return nil, err
	}
	var state model.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes the UI session state to a JSON file.
func SaveState(filePath string, state *model.SessionState) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
