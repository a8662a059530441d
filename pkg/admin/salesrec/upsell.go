package salesrec

import (
	"fmt"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
)

// UpsellRecommendations builds recommendations from upsell paths whose source
// content was already presented. Only paths carrying point-of-sale steps
// qualify; the objection type modulates how likely the upsell is to land.
func UpsellRecommendations(paths []*entity.UpsellPath, objection ObjectionType, clientName string) []dto.Recommendation {
	if clientName == "" {
		clientName = "the client"
	}

	var recommendations []dto.Recommendation
	for _, path := range paths {
		if len(path.PointOfSaleSteps) == 0 {
			continue
		}

		confidence := upsellConfidence(objection)
		pathId := path.Id

		recommendations = append(recommendations, dto.Recommendation{
			Strategy:      string(StrategyDifferentProduct),
			Confidence:    round2(confidence),
			TalkingPoints: upsellTalkingPoints(path, clientName),
			Source:        "upsell_path",
			UpsellPathId:  &pathId,
		})
	}
	return recommendations
}

func upsellConfidence(objection ObjectionType) float64 {
	switch objection {
	case ObjectionPositive:
		return 0.85
	case ObjectionPrice:
		return 0.45
	case ObjectionFeatureConcern:
		return 0.80
	default:
		return 0.70
	}
}

func upsellTalkingPoints(path *entity.UpsellPath, clientName string) []string {
	firstStep := path.PointOfSaleSteps[0]
	if len(firstStep.TalkingPoints) > 0 {
		return firstStep.TalkingPoints
	}
	if path.ValueFrameText != "" {
		return []string{path.ValueFrameText}
	}
	return []string{
		fmt.Sprintf("%s, let me tell you about %s. It solves the exact problem you will hit next.", clientName, path.UpsellTitle),
	}
}
