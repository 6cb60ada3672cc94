package dashboard

import (
	"go-antna/types"
	"go-antna/updates"
)

type AlertCard struct {
	types.Alert
	Icon string `json:"icon"`
}

func severityIcon(s types.Severity) string {
	switch s {
	case types.High:
		return "🔴"
	case types.Medium:
		return "🟡"
	case types.Low:
		return "🟢"
	default:
		return "⚪"
	}
}

func AlertCards(alerts []types.Alert) []AlertCard {
	cards := make([]AlertCard, 0, len(alerts))
	for _, a := range alerts {
		cards = append(cards, AlertCard{Alert: a, Icon: severityIcon(a.Severity)})
	}
	return cards
}

type CenterCard struct {
	types.Facility
	Resources        types.ResourceReport  `json:"resources"`
	OccupancyPercent float64               `json:"occupancy_percent"`
	Status           types.OccupancyStatus `json:"status"`
	MarkerColor      string                `json:"marker_color"`
}

// CenterCards joins each facility to its resource report. A facility
// without one fails the whole render with types.ErrResourceNotFound.
func CenterCards(facilities []types.Facility, resources []types.ResourceReport) ([]CenterCard, error) {
	cards := make([]CenterCard, 0, len(facilities))
	for _, f := range facilities {
		r, err := types.FindResource(resources, f.Name)
		if err != nil {
			return nil, err
		}
		cards = append(cards, CenterCard{
			Facility:         f,
			Resources:        r,
			OccupancyPercent: f.OccupancyPercent(),
			Status:           f.Status(),
			MarkerColor:      markerColor(f.Type),
		})
	}
	return cards, nil
}

func markerColor(t types.FacilityType) string {
	switch t {
	case types.Primary:
		return "red"
	case types.Secondary:
		return "blue"
	default:
		return "gray"
	}
}

type UpdateCard struct {
	types.SocialUpdate
	TrustClass   updates.TrustClass `json:"trust_class"`
	BadgeColor   string             `json:"badge_color"`
	VerifiedMark string             `json:"verified_mark"`
}

func UpdateCards(in []types.SocialUpdate) []UpdateCard {
	cards := make([]UpdateCard, 0, len(in))
	for _, u := range in {
		mark := ""
		if u.Verified {
			mark = "✓"
		}
		cards = append(cards, UpdateCard{
			SocialUpdate: u,
			TrustClass:   updates.ClassifyTrust(u.TrustScore),
			BadgeColor:   updates.BadgeColor(u.SourceType),
			VerifiedMark: mark,
		})
	}
	return cards
}
