package salesrec

import (
	"fmt"
	"math"

	"offerstack-be/internal/dto"
)

// profileSignals are the context factors the confidence rules read.
type profileSignals struct {
	objection     ObjectionType
	urgency       int
	opportunity   int
	budgetConcern bool
	decisionMaker bool
	timePressure  bool
	objectionRuns int
	clientName    string
	companyName   string
}

func signalsFrom(profile dto.DiagnosticProfile) profileSignals {
	objection := ObjectionType(profile.ObjectionType)

	clientName := profile.ClientName
	if clientName == "" {
		clientName = "the client"
	}
	companyName := profile.CompanyName
	if companyName == "" {
		companyName = "their company"
	}

	return profileSignals{
		objection:     objection,
		urgency:       profile.UrgencyLevel,
		opportunity:   profile.OpportunityScore,
		budgetConcern: objection == ObjectionPrice || profile.BudgetSignal == "weak" || profile.BudgetSignal == "none",
		decisionMaker: profile.IsDecisionMaker == nil || *profile.IsDecisionMaker,
		timePressure:  profile.TimePressure || profile.UrgencyLevel >= 7,
		objectionRuns: len(profile.PastObjections),
		clientName:    clientName,
		companyName:   companyName,
	}
}

// BuildRecommendations scores every strategy mapped to the profile's
// objection. Results are unsorted; the caller merges with upsell-path
// recommendations before ranking.
func BuildRecommendations(profile dto.DiagnosticProfile) []dto.Recommendation {
	signals := signalsFrom(profile)

	var recommendations []dto.Recommendation
	for _, strategy := range StrategiesFor(signals.objection) {
		confidence, talkingPoints := scoreStrategy(strategy, signals)

		// High-opportunity deals get a boost, capped below certainty.
		if signals.opportunity >= 8 {
			confidence = math.Min(confidence+0.1, 0.95)
		}

		recommendations = append(recommendations, dto.Recommendation{
			Strategy:      string(strategy),
			Confidence:    round2(confidence),
			TalkingPoints: talkingPoints,
			Source:        "objection_strategy",
		})
	}
	return recommendations
}

func scoreStrategy(strategy Strategy, s profileSignals) (float64, []string) {
	switch strategy {
	case StrategyStackBonuses:
		confidence := 0.65
		if s.budgetConcern && s.opportunity >= 6 {
			confidence = 0.85
		}
		return confidence, []string{
			"Let me walk you through the full value of what you're getting...",
			"The bonuses alone cover most of the investment.",
		}

	case StrategyShowDecoy:
		confidence := 0.50
		if s.budgetConcern {
			confidence = 0.70
		}
		return confidence, []string{
			"We could do a lighter version, but honestly you'd be leaving results on the table...",
		}

	case StrategyShowAnchor:
		confidence := 0.45
		if s.budgetConcern {
			confidence = 0.65
		}
		return confidence, []string{
			fmt.Sprintf("Companies larger than %s pay 3-5x what we're discussing for similar outcomes...", s.companyName),
		}

	case StrategyPaymentPlan:
		confidence := 0.55
		if s.budgetConcern && s.timePressure {
			confidence = 0.75
		}
		return confidence, []string{
			"What if we split this into 3 payments? You start seeing results now without the full upfront investment.",
		}

	case StrategyLimitedTime:
		confidence := 0.50
		if s.timePressure {
			confidence = 0.80
		}
		return confidence, []string{
			"I can include the bonus if we get started this week. After that, I can't guarantee availability...",
		}

	case StrategyCaseStudy:
		confidence := 0.60
		if s.objection == ObjectionPastFailure {
			confidence = 0.85
		}
		return confidence, []string{
			"Let me share what happened with a client in a similar spot...",
		}

	case StrategyGuarantee:
		confidence := 0.55
		if s.objection == ObjectionPastFailure {
			confidence = 0.80
		}
		return confidence, []string{
			"If you don't see the result within 90 days, the guarantee kicks in. Fair enough?",
		}

	case StrategyTrialOffer:
		confidence := 0.50
		if s.objectionRuns >= 2 {
			confidence = 0.75
		}
		return confidence, []string{
			fmt.Sprintf("What if we did a 2-week pilot? You'd see real results for %s before making the full investment...", s.companyName),
		}

	case StrategyStakeholderCall:
		confidence := 0.40
		talkingPoint := "Would it help to loop in anyone else from your team to make sure we're all aligned?"
		if !s.decisionMaker {
			confidence = 0.90
			talkingPoint = "I'd love to answer any questions your team might have. Can we schedule a quick call with them this week?"
		}
		return confidence, []string{talkingPoint}

	case StrategyROICalculator:
		confidence := 0.60
		if s.objection == ObjectionDIY {
			confidence = 0.80
		}
		return confidence, []string{
			"Let's do the math together. How much time does your team spend on this each week?",
		}

	case StrategyDifferentProduct:
		confidence := 0.45
		if s.objection == ObjectionFeatureConcern {
			confidence = 0.85
		}
		return confidence, []string{
			"Let me suggest a different approach that might align better with what you're looking for...",
		}

	case StrategyScheduleFollowup:
		confidence := 0.40
		if s.objection == ObjectionTiming {
			confidence = 0.70
		}
		return confidence, []string{
			"When would be the right time to revisit this? Let's put something on the calendar so we don't lose momentum.",
		}

	case StrategyContinueScript:
		confidence := 0.30
		if s.objection == ObjectionPositive {
			confidence = 0.90
		}
		return confidence, []string{
			"Great! Let me show you the next piece...",
		}

	default:
		return 0.5, nil
	}
}

// RankTop sorts recommendations by confidence descending and keeps the top n.
func RankTop(recommendations []dto.Recommendation, n int) []dto.Recommendation {
	sorted := make([]dto.Recommendation, len(recommendations))
	copy(sorted, recommendations)

	// Insertion sort keeps equal-confidence entries in arrival order, so
	// objection strategies stay ahead of upsell paths on ties.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Confidence > sorted[j-1].Confidence; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
