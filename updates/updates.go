package updates

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go-antna/types"
)

var ErrTrustOutOfRange = errors.New("minimum trust must be within [0, 1]")

// FilterAndRank keeps updates with trust >= minTrust from an allowed
// source, newest first and then most trusted first. Ties keep input order.
func FilterAndRank(in []types.SocialUpdate, minTrust float64, allowed map[types.SourceType]bool) ([]types.SocialUpdate, error) {
	if math.IsNaN(minTrust) || minTrust < 0 || minTrust > 1 {
		return nil, fmt.Errorf("%w, got %v", ErrTrustOutOfRange, minTrust)
	}

	out := make([]types.SocialUpdate, 0, len(in))
	for _, u := range in {
		if u.TrustScore >= minTrust && allowed[u.SourceType] {
			out = append(out, u)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].Timestamp.Time, out[j].Timestamp.Time
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].TrustScore > out[j].TrustScore
	})
	return out, nil
}

func AllSources() map[types.SourceType]bool {
	allowed := make(map[types.SourceType]bool)
	for _, s := range types.SourceTypes() {
		allowed[s] = true
	}
	return allowed
}

// ParseSources builds an allowed set from query values. No values means
// every source.
func ParseSources(values []string) (map[types.SourceType]bool, error) {
	if len(values) == 0 {
		return AllSources(), nil
	}
	allowed := make(map[types.SourceType]bool)
	for _, v := range values {
		s, err := types.ParseSourceType(v)
		if err != nil {
			return nil, err
		}
		allowed[s] = true
	}
	return allowed, nil
}

type TrustClass string

const (
	TrustHigh   TrustClass = "trust-high"
	TrustMedium TrustClass = "trust-medium"
	TrustLow    TrustClass = "trust-low"
)

func ClassifyTrust(score float64) TrustClass {
	switch {
	case score >= 0.9:
		return TrustHigh
	case score >= 0.7:
		return TrustMedium
	default:
		return TrustLow
	}
}

func BadgeColor(source types.SourceType) string {
	switch source {
	case types.Official, types.Healthcare, types.Emergency:
		return "#00ff9d"
	case types.Media:
		return "#ffbe0b"
	default:
		return "#888888"
	}
}
