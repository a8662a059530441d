package salesrec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrategiesFor(t *testing.T) {
	tests := []struct {
		objection ObjectionType
		want      []Strategy
	}{
		{ObjectionPositive, []Strategy{StrategyContinueScript, StrategyStackBonuses, StrategyLimitedTime}},
		{ObjectionPrice, []Strategy{StrategyStackBonuses, StrategyShowDecoy, StrategyPaymentPlan}},
		{ObjectionTiming, []Strategy{StrategyLimitedTime, StrategyStackBonuses, StrategyScheduleFollowup}},
		{ObjectionAuthority, []Strategy{StrategyStakeholderCall, StrategyROICalculator, StrategyCaseStudy}},
		{ObjectionFeatureConcern, []Strategy{StrategyDifferentProduct, StrategyStackBonuses, StrategyTrialOffer}},
		{ObjectionPastFailure, []Strategy{StrategyCaseStudy, StrategyGuarantee, StrategyTrialOffer}},
		{ObjectionDIY, []Strategy{StrategyROICalculator, StrategyCaseStudy, StrategyTrialOffer}},
		{ObjectionCompetitor, []Strategy{StrategyStackBonuses, StrategyShowAnchor, StrategyGuarantee}},
		{ObjectionNeutral, []Strategy{StrategyContinueScript, StrategyROICalculator, StrategyCaseStudy}},
		{ObjectionNonprofitConstrained, []Strategy{StrategyShowDecoy, StrategyPaymentPlan, StrategyROICalculator}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StrategiesFor(tt.objection), "objection %s", tt.objection)
	}
}

func TestStrategiesForUnknownObjection(t *testing.T) {
	assert.Equal(t, []Strategy{StrategyContinueScript}, StrategiesFor("made_up"))
	assert.Equal(t, []Strategy{StrategyContinueScript}, StrategiesFor(""))
}

func TestIsValidObjectionType(t *testing.T) {
	assert.True(t, IsValidObjectionType("positive"))
	assert.True(t, IsValidObjectionType("price_objection"))
	assert.True(t, IsValidObjectionType("budget_constrained_nonprofit"))
	assert.False(t, IsValidObjectionType("made_up"))
	assert.False(t, IsValidObjectionType(""))
}
