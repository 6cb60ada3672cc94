package types

import (
	"fmt"
	"strings"
)

type AlertType string

const (
	Sandstorm    AlertType = "Sandstorm"
	HeatWave     AlertType = "Heat Wave"
	FlashFlood   AlertType = "Flash Flood"
	DustStorm    AlertType = "Dust Storm"
	StrongWinds  AlertType = "Strong Winds"
	Thunderstorm AlertType = "Thunderstorm"
)

var alertTypes = []AlertType{Sandstorm, HeatWave, FlashFlood, DustStorm, StrongWinds, Thunderstorm}

func (t AlertType) IsValid() bool {
	for _, v := range alertTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ParseAlertType matches case-insensitively and ignores spacing, so
// "heatwave", "Heat Wave" and "HEAT WAVE" all resolve to HeatWave.
func ParseAlertType(s string) (AlertType, error) {
	key := squash(s)
	for _, v := range alertTypes {
		if squash(string(v)) == key {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown alert type %q", s)
}

type Severity string

const (
	Low    Severity = "Low"
	Medium Severity = "Medium"
	High   Severity = "High"
)

func (s Severity) IsValid() bool {
	switch s {
	case Low, Medium, High:
		return true
	}
	return false
}

func ParseSeverity(s string) (Severity, error) {
	for _, v := range []Severity{Low, Medium, High} {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown severity %q", s)
}

// Alert is a single active hazard warning shown on the alerts tab.
type Alert struct {
	Type        AlertType `json:"type"`
	Severity    Severity  `json:"severity"`
	Location    string    `json:"location"`
	Time        Timestamp `json:"time"`
	Description string    `json:"description"`
}

func squash(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
