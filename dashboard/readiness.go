package dashboard

import (
	"fmt"

	"go-antna/sampledata"
)

type Readiness struct {
	Checked int     `json:"checked"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
	Tier    string  `json:"tier"`
	Color   string  `json:"color"`
}

// ScoreReadiness counts checked checklist items. Repeats count once and
// names outside the checklist are rejected.
func ScoreReadiness(checked []string) (Readiness, error) {
	items := sampledata.Checklist()
	known := make(map[string]bool, len(items))
	for _, it := range items {
		known[it] = true
	}

	seen := make(map[string]bool)
	for _, c := range checked {
		if !known[c] {
			return Readiness{}, fmt.Errorf("unknown checklist item %q", c)
		}
		seen[c] = true
	}

	r := Readiness{Checked: len(seen), Total: len(items)}
	r.Percent = float64(r.Checked) / float64(r.Total) * 100
	switch {
	case r.Percent > 70:
		r.Tier, r.Color = "good", "#00ff9d"
	case r.Percent > 40:
		r.Tier, r.Color = "fair", "#ffbe0b"
	default:
		r.Tier, r.Color = "low", "#ff006e"
	}
	return r, nil
}
