package salesrec

// ObjectionType classifies the client's last response in a sales conversation.
type ObjectionType string

// Strategy names a counter-move the closer can make.
type Strategy string

const (
	ObjectionPositive             ObjectionType = "positive"
	ObjectionPrice                ObjectionType = "price_objection"
	ObjectionTiming               ObjectionType = "timing_objection"
	ObjectionAuthority            ObjectionType = "authority_objection"
	ObjectionFeatureConcern       ObjectionType = "feature_concern"
	ObjectionPastFailure          ObjectionType = "past_failure"
	ObjectionDIY                  ObjectionType = "diy"
	ObjectionCompetitor           ObjectionType = "competitor"
	ObjectionNeutral              ObjectionType = "neutral"
	ObjectionNonprofitConstrained ObjectionType = "budget_constrained_nonprofit"

	StrategyStackBonuses     Strategy = "stack_bonuses"
	StrategyShowDecoy        Strategy = "show_decoy"
	StrategyShowAnchor       Strategy = "show_anchor"
	StrategyPaymentPlan      Strategy = "payment_plan"
	StrategyLimitedTime      Strategy = "limited_time"
	StrategyCaseStudy        Strategy = "case_study"
	StrategyGuarantee        Strategy = "guarantee"
	StrategyTrialOffer       Strategy = "trial_offer"
	StrategyStakeholderCall  Strategy = "stakeholder_call"
	StrategyROICalculator    Strategy = "roi_calculator"
	StrategyDifferentProduct Strategy = "different_product"
	StrategyScheduleFollowup Strategy = "schedule_followup"
	StrategyContinueScript   Strategy = "continue_script"
)

// objectionStrategyMap fixes which strategies answer which objection.
var objectionStrategyMap = map[ObjectionType][]Strategy{
	ObjectionPositive:             {StrategyContinueScript, StrategyStackBonuses, StrategyLimitedTime},
	ObjectionPrice:                {StrategyStackBonuses, StrategyShowDecoy, StrategyPaymentPlan},
	ObjectionTiming:               {StrategyLimitedTime, StrategyStackBonuses, StrategyScheduleFollowup},
	ObjectionAuthority:            {StrategyStakeholderCall, StrategyROICalculator, StrategyCaseStudy},
	ObjectionFeatureConcern:       {StrategyDifferentProduct, StrategyStackBonuses, StrategyTrialOffer},
	ObjectionPastFailure:          {StrategyCaseStudy, StrategyGuarantee, StrategyTrialOffer},
	ObjectionDIY:                  {StrategyROICalculator, StrategyCaseStudy, StrategyTrialOffer},
	ObjectionCompetitor:           {StrategyStackBonuses, StrategyShowAnchor, StrategyGuarantee},
	ObjectionNeutral:              {StrategyContinueScript, StrategyROICalculator, StrategyCaseStudy},
	ObjectionNonprofitConstrained: {StrategyShowDecoy, StrategyPaymentPlan, StrategyROICalculator},
}

// StrategiesFor returns the base strategy list for an objection. Unknown
// objections fall back to continuing the script.
func StrategiesFor(objection ObjectionType) []Strategy {
	if strategies, ok := objectionStrategyMap[objection]; ok {
		return strategies
	}
	return []Strategy{StrategyContinueScript}
}

// IsValidObjectionType reports whether the objection is one the scorer knows.
func IsValidObjectionType(v string) bool {
	_, ok := objectionStrategyMap[ObjectionType(v)]
	return ok
}
