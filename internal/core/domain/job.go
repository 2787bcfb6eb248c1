package domain

import "time"

// Job kinds persisted in the jobs table and announced on the crew channel.
const (
	JobKindBeam        = "beam"
	JobKindOffset      = "offset"
	JobKindCutback     = "cutback"
	JobKindCalibration = "calibration"
)

// Job is a saved calculation: the raw inputs and the derived outputs at the
// time it was run. Outputs are a snapshot — rerunning the inputs through the
// core must reproduce them bit for bit.
type Job struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	CrewID    string         `json:"crew_id,omitempty"`
	Location  string         `json:"location,omitempty"`
	Inputs    map[string]any `json:"inputs"`
	Outputs   map[string]any `json:"outputs"`
	CreatedAt time.Time      `json:"created_at"`
}

// JobStats summarizes the saved jobs table.
type JobStats struct {
	Total    int            `json:"total"`
	ByKind   map[string]int `json:"by_kind"`
	LastSave string         `json:"last_save,omitempty"`
}

// CrewUpdate is a calculation shared on the crew broadcast channel.
type CrewUpdate struct {
	CrewID      string         `json:"crew_id"`
	Kind        string         `json:"kind"`
	Location    string         `json:"location,omitempty"`
	Calculation map[string]any `json:"calculation"`
	SentAt      time.Time      `json:"sent_at"`
}

// Presence announces a crew coming online with the calculators it carries.
type Presence struct {
	CrewID       string   `json:"crew_id"`
	Status       string   `json:"status"`
	Capabilities []string `json:"capabilities"`
}
