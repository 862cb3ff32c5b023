package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// RunRecord summarises one batch generation run.
type RunRecord struct {
	VersionedRecord
	ID            string `json:"id"`
	OutputRoot    string `json:"output_root"`
	StartedAtUTC  string `json:"started_at_utc"`
	FinishedAtUTC string `json:"finished_at_utc,omitempty"`
	Status        string `json:"status"`
	Fixtures      int    `json:"fixtures"`
	Error         string `json:"error,omitempty"`
}

// FixtureRecord describes one file written during a run.
type FixtureRecord struct {
	VersionedRecord
	RunID    string `json:"run_id"`
	Family   string `json:"family"`
	Format   string `json:"format"`
	Path     string `json:"path"`
	Neurons  int    `json:"neurons"`
	Synapses int    `json:"synapses"`
	Bytes    int    `json:"bytes"`
}
