package monitor

import "time"

// Status is one health snapshot across the service's backing stores.
type Status struct {
	Postgres  bool      `json:"postgres"`
	Redis     bool      `json:"redis"`
	Buffer    bool      `json:"buffer"`
	Pending   int       `json:"pending"`
	CheckedAt time.Time `json:"checked_at"`
}

// Online reports whether both primary stores are reachable. The bolt buffer
// is the offline fallback, so its state does not gate online mode.
func (s Status) Online() bool {
	return s.Postgres && s.Redis
}
