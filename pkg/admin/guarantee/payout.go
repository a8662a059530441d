package guarantee

import (
	"math"

	"offerstack-be/internal/entity"
)

// PayoutAmount computes what a guarantee pays out against the purchase.
//
//	full    -> the purchase amount
//	partial -> purchase * value / 100
//	fixed   -> min(value, purchase); a guarantee never pays more than was paid
func PayoutAmount(amountType entity.PayoutAmountType, value *float64, purchase float64) float64 {
	switch amountType {
	case entity.PayoutAmountPartial:
		if value == nil {
			return 0
		}
		return purchase * (*value) / 100
	case entity.PayoutAmountFixed:
		if value == nil {
			return 0
		}
		return math.Min(*value, purchase)
	default:
		return purchase
	}
}

// RolloverCredit applies the bonus multiplier to a payout. Multipliers below 1
// are treated as 1 so a rollover never pays less than the cash option.
func RolloverCredit(payout, multiplier float64) float64 {
	if multiplier < 1 {
		multiplier = 1
	}
	return payout * multiplier
}

// ResolvedStatusFor maps a payout type to the instance's terminal status.
func ResolvedStatusFor(payoutType entity.PayoutType) entity.GuaranteeInstanceStatus {
	switch payoutType {
	case entity.PayoutTypeRefund:
		return entity.InstanceStatusRefundIssued
	case entity.PayoutTypeCredit:
		return entity.InstanceStatusCreditIssued
	case entity.PayoutTypeRolloverUpsell:
		return entity.InstanceStatusRolloverUpsellApplied
	case entity.PayoutTypeRolloverContinuity:
		return entity.InstanceStatusRolloverContinuityApplied
	default:
		return entity.InstanceStatusVoided
	}
}

// AllRequiredSatisfied reports whether every required milestone is met or
// waived. Optional milestones never block resolution.
func AllRequiredSatisfied(snapshot []entity.GuaranteeCondition, milestones []entity.GuaranteeMilestone) bool {
	byId := make(map[string]entity.MilestoneStatus, len(milestones))
	for _, m := range milestones {
		byId[m.ConditionId] = m.Status
	}
	for _, c := range snapshot {
		if !c.Required {
			continue
		}
		if !byId[c.Id].Satisfied() {
			return false
		}
	}
	return true
}

// PendingConditionLabels lists the labels of milestones still pending, in
// snapshot order.
func PendingConditionLabels(snapshot []entity.GuaranteeCondition, milestones []entity.GuaranteeMilestone) []string {
	byId := make(map[string]entity.MilestoneStatus, len(milestones))
	for _, m := range milestones {
		byId[m.ConditionId] = m.Status
	}
	var pending []string
	for _, c := range snapshot {
		if !byId[c.Id].IsTerminal() {
			pending = append(pending, c.Label)
		}
	}
	return pending
}

// CreditCyclesCovered is how many full billing cycles a rollover credit buys
// on a continuity plan.
func CreditCyclesCovered(credit, amountPerInterval float64) int {
	if amountPerInterval <= 0 {
		return 0
	}
	return int(math.Floor(credit / amountPerInterval))
}
