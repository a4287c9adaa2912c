package probe

// Status classifies a node query outcome.
type Status int

const (
	StatusPending Status = iota
	StatusSuccess
	StatusError
	StatusTimeout
)

var statusNames = [...]string{"pending", "success", "error", "timeout"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// MarshalJSON encodes the status as its word, not its ordinal, so results
// stay readable in JSON output and across tool boundaries.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Result is the terminal outcome of probing one node. A result is created
// pending and settles exactly once into success, error, or timeout; it
// never reverts. Counts and DownloadURL are populated on success only; Err
// is populated on error and timeout.
type Result struct {
	NodeID         string `json:"node_id"`
	NodeName       string `json:"node_name"`
	Status         Status `json:"status"`
	NumSpecies     int    `json:"num_species"`
	NumStates      int    `json:"num_states"`
	NumTransitions int    `json:"num_transitions"`
	DownloadURL    string `json:"download_url,omitempty"`
	Err            string `json:"error,omitempty"`
}
