package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) Record(_ []Snapshot) error { return nil }
func (n *NoopRecorder) LatestQuadrants(_, _ string) (map[string]string, error) {
	return map[string]string{}, nil
}
func (n *NoopRecorder) History(_ string, _ int) ([]Snapshot, error) { return nil, nil }
func (n *NoopRecorder) Close() error                                { return nil }
