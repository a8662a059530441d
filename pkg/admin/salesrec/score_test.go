package salesrec

import (
	"testing"

	"offerstack-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confidenceByStrategy(recs []dto.Recommendation) map[string]float64 {
	out := make(map[string]float64, len(recs))
	for _, r := range recs {
		out[r.Strategy] = r.Confidence
	}
	return out
}

func TestBuildRecommendationsPositive(t *testing.T) {
	recs := BuildRecommendations(dto.DiagnosticProfile{
		ObjectionType: string(ObjectionPositive),
		BudgetSignal:  "strong",
	})
	require.Len(t, recs, 3)

	byStrategy := confidenceByStrategy(recs)
	assert.Equal(t, 0.90, byStrategy[string(StrategyContinueScript)])
	assert.Equal(t, 0.65, byStrategy[string(StrategyStackBonuses)])
	assert.Equal(t, 0.50, byStrategy[string(StrategyLimitedTime)])

	for _, r := range recs {
		assert.Equal(t, "objection_strategy", r.Source)
		assert.NotEmpty(t, r.TalkingPoints)
		assert.Nil(t, r.UpsellPathId)
	}
}

func TestBuildRecommendationsBudgetSignals(t *testing.T) {
	// A price objection marks the deal budget-concerned, which lifts
	// bonus stacking and the decoy option.
	recs := BuildRecommendations(dto.DiagnosticProfile{
		ObjectionType:    string(ObjectionPrice),
		OpportunityScore: 6,
	})
	byStrategy := confidenceByStrategy(recs)

	assert.Equal(t, 0.85, byStrategy[string(StrategyStackBonuses)])
	assert.Equal(t, 0.70, byStrategy[string(StrategyShowDecoy)])
	assert.Equal(t, 0.55, byStrategy[string(StrategyPaymentPlan)])
}

func TestBuildRecommendationsPaymentPlanNeedsTimePressure(t *testing.T) {
	recs := BuildRecommendations(dto.DiagnosticProfile{
		ObjectionType: string(ObjectionPrice),
		TimePressure:  true,
	})
	byStrategy := confidenceByStrategy(recs)

	assert.Equal(t, 0.75, byStrategy[string(StrategyPaymentPlan)])
}

func TestBuildRecommendationsUrgencyImpliesTimePressure(t *testing.T) {
	recs := BuildRecommendations(dto.DiagnosticProfile{
		ObjectionType: string(ObjectionTiming),
		UrgencyLevel:  7,
	})
	byStrategy := confidenceByStrategy(recs)

	assert.Equal(t, 0.80, byStrategy[string(StrategyLimitedTime)])
}

func TestBuildRecommendationsOpportunityBoost(t *testing.T) {
	recs := BuildRecommendations(dto.DiagnosticProfile{
		ObjectionType:    string(ObjectionPositive),
		OpportunityScore: 8,
		BudgetSignal:     "strong",
	})
	byStrategy := confidenceByStrategy(recs)

	// Each score gains 0.1, capped at 0.95.
	assert.Equal(t, 0.95, byStrategy[string(StrategyContinueScript)])
	assert.Equal(t, 0.75, byStrategy[string(StrategyStackBonuses)])
	assert.Equal(t, 0.60, byStrategy[string(StrategyLimitedTime)])
}

func TestBuildRecommendationsStakeholderCall(t *testing.T) {
	boolPtr := func(v bool) *bool { return &v }

	profile := dto.DiagnosticProfile{
		ObjectionType:   string(ObjectionAuthority),
		IsDecisionMaker: boolPtr(false),
	}
	byStrategy := confidenceByStrategy(BuildRecommendations(profile))
	assert.Equal(t, 0.90, byStrategy[string(StrategyStakeholderCall)])

	profile.IsDecisionMaker = boolPtr(true)
	byStrategy = confidenceByStrategy(BuildRecommendations(profile))
	assert.Equal(t, 0.40, byStrategy[string(StrategyStakeholderCall)])

	// Profiles that omit the flag are scored as if the contact can decide.
	profile.IsDecisionMaker = nil
	byStrategy = confidenceByStrategy(BuildRecommendations(profile))
	assert.Equal(t, 0.40, byStrategy[string(StrategyStakeholderCall)])
}

func TestBuildRecommendationsPastFailure(t *testing.T) {
	recs := BuildRecommendations(dto.DiagnosticProfile{
		ObjectionType: string(ObjectionPastFailure),
	})
	byStrategy := confidenceByStrategy(recs)

	assert.Equal(t, 0.85, byStrategy[string(StrategyCaseStudy)])
	assert.Equal(t, 0.80, byStrategy[string(StrategyGuarantee)])
	assert.Equal(t, 0.50, byStrategy[string(StrategyTrialOffer)])
}

func TestBuildRecommendationsRepeatedObjectionsLiftTrial(t *testing.T) {
	recs := BuildRecommendations(dto.DiagnosticProfile{
		ObjectionType:  string(ObjectionPastFailure),
		PastObjections: []string{"price_objection", "timing_objection"},
	})
	byStrategy := confidenceByStrategy(recs)

	assert.Equal(t, 0.75, byStrategy[string(StrategyTrialOffer)])
}

func TestRankTop(t *testing.T) {
	recs := []dto.Recommendation{
		{Strategy: "a", Confidence: 0.50},
		{Strategy: "b", Confidence: 0.90},
		{Strategy: "c", Confidence: 0.70},
		{Strategy: "d", Confidence: 0.65},
	}

	ranked := RankTop(recs, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].Strategy)
	assert.Equal(t, "c", ranked[1].Strategy)
	assert.Equal(t, "d", ranked[2].Strategy)

	// The input slice is left untouched.
	assert.Equal(t, "a", recs[0].Strategy)
}

func TestRankTopTiesKeepArrivalOrder(t *testing.T) {
	recs := []dto.Recommendation{
		{Strategy: "first", Confidence: 0.70, Source: "objection_strategy"},
		{Strategy: "second", Confidence: 0.70, Source: "upsell_path"},
	}

	ranked := RankTop(recs, 2)
	assert.Equal(t, "first", ranked[0].Strategy)
	assert.Equal(t, "second", ranked[1].Strategy)
}

func TestRankTopNoLimit(t *testing.T) {
	recs := []dto.Recommendation{
		{Strategy: "a", Confidence: 0.50},
		{Strategy: "b", Confidence: 0.90},
	}

	assert.Len(t, RankTop(recs, 0), 2)
	assert.Len(t, RankTop(recs, 10), 2)
	assert.Empty(t, RankTop(nil, 3))
}
