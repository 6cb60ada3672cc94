package types

// Tables is everything one dashboard session shows.
type Tables struct {
	Alerts     []Alert          `json:"alerts"`
	Facilities []Facility       `json:"facilities"`
	Resources  []ResourceReport `json:"resources"`
	Updates    []SocialUpdate   `json:"updates"`
}

// Clone copies every slice so callers can't mutate a session's tables.
// Missing tables come back empty, never nil, so they encode as [].
func (t Tables) Clone() Tables {
	return Tables{
		Alerts:     cloneRows(t.Alerts),
		Facilities: cloneRows(t.Facilities),
		Resources:  cloneRows(t.Resources),
		Updates:    cloneRows(t.Updates),
	}
}

func cloneRows[T any](rows []T) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	return out
}

func (t Tables) Empty() bool {
	return len(t.Alerts) == 0 && len(t.Facilities) == 0 && len(t.Resources) == 0 && len(t.Updates) == 0
}

const (
	TableAlerts    = "alerts"
	TableResources = "resources"
	TableUpdates   = "updates"
)

// TableStatus reports how one generated table fared.
type TableStatus struct {
	Table   string `json:"table"`
	OK      bool   `json:"ok"`
	Count   int    `json:"count"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
}
