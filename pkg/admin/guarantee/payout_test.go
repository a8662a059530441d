package guarantee

import (
	"testing"

	"offerstack-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestPayoutAmount(t *testing.T) {
	tests := []struct {
		name       string
		amountType entity.PayoutAmountType
		value      *float64
		purchase   float64
		want       float64
	}{
		{
			name:       "full pays the purchase",
			amountType: entity.PayoutAmountFull,
			purchase:   490,
			want:       490,
		},
		{
			name:       "partial is a percentage of the purchase",
			amountType: entity.PayoutAmountPartial,
			value:      f64(50),
			purchase:   1000,
			want:       500,
		},
		{
			name:       "partial without a value pays nothing",
			amountType: entity.PayoutAmountPartial,
			purchase:   1000,
			want:       0,
		},
		{
			name:       "fixed pays the configured amount",
			amountType: entity.PayoutAmountFixed,
			value:      f64(200),
			purchase:   1000,
			want:       200,
		},
		{
			name:       "fixed is capped at the purchase",
			amountType: entity.PayoutAmountFixed,
			value:      f64(2000),
			purchase:   1000,
			want:       1000,
		},
		{
			name:       "fixed without a value pays nothing",
			amountType: entity.PayoutAmountFixed,
			purchase:   1000,
			want:       0,
		},
		{
			name:       "unknown type falls back to full",
			amountType: entity.PayoutAmountType("bogus"),
			purchase:   750,
			want:       750,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PayoutAmount(tt.amountType, tt.value, tt.purchase)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRolloverCredit(t *testing.T) {
	assert.Equal(t, 1500.0, RolloverCredit(1000, 1.5))
	assert.Equal(t, 1000.0, RolloverCredit(1000, 1))

	// Multipliers below 1 clamp so rollover never pays less than cash.
	assert.Equal(t, 1000.0, RolloverCredit(1000, 0.5))
	assert.Equal(t, 1000.0, RolloverCredit(1000, 0))
}

func TestResolvedStatusFor(t *testing.T) {
	tests := []struct {
		payoutType entity.PayoutType
		want       entity.GuaranteeInstanceStatus
	}{
		{entity.PayoutTypeRefund, entity.InstanceStatusRefundIssued},
		{entity.PayoutTypeCredit, entity.InstanceStatusCreditIssued},
		{entity.PayoutTypeRolloverUpsell, entity.InstanceStatusRolloverUpsellApplied},
		{entity.PayoutTypeRolloverContinuity, entity.InstanceStatusRolloverContinuityApplied},
		{entity.PayoutType("unknown"), entity.InstanceStatusVoided},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolvedStatusFor(tt.payoutType), "payout type %s", tt.payoutType)
	}
}

func TestAllRequiredSatisfied(t *testing.T) {
	snapshot := []entity.GuaranteeCondition{
		{Id: "attend-sessions", Label: "Attend sessions", Required: true},
		{Id: "implement-fixes", Label: "Implement fixes", Required: true},
		{Id: "share-testimonial", Label: "Share a testimonial", Required: false},
	}

	milestones := func(attend, implement, testimonial entity.MilestoneStatus) []entity.GuaranteeMilestone {
		return []entity.GuaranteeMilestone{
			{ConditionId: "attend-sessions", Status: attend},
			{ConditionId: "implement-fixes", Status: implement},
			{ConditionId: "share-testimonial", Status: testimonial},
		}
	}

	t.Run("all required met", func(t *testing.T) {
		ms := milestones(entity.MilestoneStatusMet, entity.MilestoneStatusMet, entity.MilestoneStatusPending)
		assert.True(t, AllRequiredSatisfied(snapshot, ms))
	})

	t.Run("waived counts as satisfied", func(t *testing.T) {
		ms := milestones(entity.MilestoneStatusMet, entity.MilestoneStatusWaived, entity.MilestoneStatusPending)
		assert.True(t, AllRequiredSatisfied(snapshot, ms))
	})

	t.Run("pending required blocks", func(t *testing.T) {
		ms := milestones(entity.MilestoneStatusMet, entity.MilestoneStatusPending, entity.MilestoneStatusMet)
		assert.False(t, AllRequiredSatisfied(snapshot, ms))
	})

	t.Run("not_met required blocks", func(t *testing.T) {
		ms := milestones(entity.MilestoneStatusMet, entity.MilestoneStatusNotMet, entity.MilestoneStatusMet)
		assert.False(t, AllRequiredSatisfied(snapshot, ms))
	})

	t.Run("optional milestones never block", func(t *testing.T) {
		ms := milestones(entity.MilestoneStatusMet, entity.MilestoneStatusMet, entity.MilestoneStatusNotMet)
		assert.True(t, AllRequiredSatisfied(snapshot, ms))
	})

	t.Run("missing milestone row blocks", func(t *testing.T) {
		ms := []entity.GuaranteeMilestone{
			{ConditionId: "attend-sessions", Status: entity.MilestoneStatusMet},
		}
		assert.False(t, AllRequiredSatisfied(snapshot, ms))
	})
}

func TestPendingConditionLabels(t *testing.T) {
	snapshot := []entity.GuaranteeCondition{
		{Id: "a", Label: "First"},
		{Id: "b", Label: "Second"},
		{Id: "c", Label: "Third"},
	}
	milestones := []entity.GuaranteeMilestone{
		{ConditionId: "a", Status: entity.MilestoneStatusMet},
		{ConditionId: "b", Status: entity.MilestoneStatusPending},
		{ConditionId: "c", Status: entity.MilestoneStatusPending},
	}

	// Waived and not_met are terminal, only pending rows are listed.
	assert.Equal(t, []string{"Second", "Third"}, PendingConditionLabels(snapshot, milestones))

	milestones[1].Status = entity.MilestoneStatusWaived
	assert.Equal(t, []string{"Third"}, PendingConditionLabels(snapshot, milestones))

	milestones[2].Status = entity.MilestoneStatusNotMet
	assert.Empty(t, PendingConditionLabels(snapshot, milestones))
}

func TestCreditCyclesCovered(t *testing.T) {
	assert.Equal(t, 3, CreditCyclesCovered(4500, 1500))
	assert.Equal(t, 2, CreditCyclesCovered(4499, 1500))
	assert.Equal(t, 0, CreditCyclesCovered(999, 1500))
	assert.Equal(t, 0, CreditCyclesCovered(1000, 0))
	assert.Equal(t, 0, CreditCyclesCovered(1000, -5))
}
