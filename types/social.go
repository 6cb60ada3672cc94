package types

import (
	"fmt"
	"strings"
)

type SourceType string

const (
	Official   SourceType = "Official"
	Healthcare SourceType = "Healthcare"
	Emergency  SourceType = "Emergency"
	Media      SourceType = "Media"
	Citizen    SourceType = "Citizen"
)

var sourceTypes = []SourceType{Official, Healthcare, Emergency, Media, Citizen}

func SourceTypes() []SourceType {
	out := make([]SourceType, len(sourceTypes))
	copy(out, sourceTypes)
	return out
}

func (s SourceType) IsValid() bool {
	for _, v := range sourceTypes {
		if s == v {
			return true
		}
	}
	return false
}

func ParseSourceType(s string) (SourceType, error) {
	for _, v := range sourceTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown source type %q", s)
}

// SocialUpdate is a social-media style post about the situation.
type SocialUpdate struct {
	Timestamp  Timestamp  `json:"timestamp"`
	SourceType SourceType `json:"source_type"`
	Username   string     `json:"username"`
	Message    string     `json:"message"`
	Location   string     `json:"location"`
	Verified   bool       `json:"verified"`
	TrustScore float64    `json:"trust_score"`
	Engagement int        `json:"engagement"`
}

func (u SocialUpdate) Validate() error {
	if !u.SourceType.IsValid() {
		return fmt.Errorf("invalid source type %q", u.SourceType)
	}
	if strings.TrimSpace(u.Message) == "" {
		return fmt.Errorf("update from %q has an empty message", u.Username)
	}
	if u.TrustScore < 0 || u.TrustScore > 1 {
		return fmt.Errorf("trust score %v outside [0, 1]", u.TrustScore)
	}
	if u.Engagement < 0 {
		return fmt.Errorf("engagement must be non-negative, got %d", u.Engagement)
	}
	return nil
}
