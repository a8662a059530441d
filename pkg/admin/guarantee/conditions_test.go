package guarantee

import (
	"testing"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionIDFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Attend all working sessions", "attend-all-working-sessions"},
		{"Implement the priority fixes!", "implement-the-priority-fixes"},
		{"  Hit $10,000 / month  ", "hit-10-000-month"},
		{"UPPER Case", "upper-case"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConditionIDFromLabel(tt.label), "label %q", tt.label)
	}
}

func TestBuildConditions(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		conditions, err := BuildConditions([]dto.GuaranteeConditionPayload{
			{Label: "Attend all working sessions"},
		})
		require.NoError(t, err)
		require.Len(t, conditions, 1)

		assert.Equal(t, "attend-all-working-sessions", conditions[0].Id)
		assert.Equal(t, entity.VerificationAdmin, conditions[0].VerificationMethod)
		assert.True(t, conditions[0].Required)
	})

	t.Run("keeps explicit settings", func(t *testing.T) {
		optional := false
		conditions, err := BuildConditions([]dto.GuaranteeConditionPayload{
			{
				Label:              "Submit weekly updates",
				Description:        "One short update per week.",
				VerificationMethod: string(entity.VerificationSelfReport),
				Required:           &optional,
			},
		})
		require.NoError(t, err)
		require.Len(t, conditions, 1)

		assert.Equal(t, entity.VerificationSelfReport, conditions[0].VerificationMethod)
		assert.False(t, conditions[0].Required)
		assert.Equal(t, "One short update per week.", conditions[0].Description)
	})

	t.Run("rejects empty labels", func(t *testing.T) {
		_, err := BuildConditions([]dto.GuaranteeConditionPayload{{Label: "   "}})
		assert.Error(t, err)
	})

	t.Run("rejects labels that slug to nothing", func(t *testing.T) {
		_, err := BuildConditions([]dto.GuaranteeConditionPayload{{Label: "!!!"}})
		assert.Error(t, err)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		_, err := BuildConditions([]dto.GuaranteeConditionPayload{
			{Label: "Attend sessions"},
			{Label: "Attend, sessions!"},
		})
		assert.Error(t, err)
	})
}

func TestValidateTemplateInput(t *testing.T) {
	base := func() dto.CreateGuaranteeTemplateRequest {
		return dto.CreateGuaranteeTemplateRequest{
			Name:              "90-Day Results Guarantee",
			DurationDays:      90,
			Conditions:        []dto.GuaranteeConditionPayload{{Label: "Attend sessions"}},
			DefaultPayoutType: string(entity.PayoutTypeRefund),
		}
	}

	t.Run("valid baseline", func(t *testing.T) {
		assert.NoError(t, ValidateTemplateInput(base()))
	})

	t.Run("blank name", func(t *testing.T) {
		req := base()
		req.Name = "  "
		assert.Error(t, ValidateTemplateInput(req))
	})

	t.Run("duration below one day", func(t *testing.T) {
		req := base()
		req.DurationDays = 0
		assert.Error(t, ValidateTemplateInput(req))
	})

	t.Run("conditional without conditions", func(t *testing.T) {
		req := base()
		req.Conditions = nil
		assert.Error(t, ValidateTemplateInput(req))
	})

	t.Run("unconditional without conditions is fine", func(t *testing.T) {
		req := base()
		req.GuaranteeType = string(entity.GuaranteeTypeUnconditional)
		req.Conditions = nil
		assert.NoError(t, ValidateTemplateInput(req))
	})

	t.Run("partial payout needs a percentage", func(t *testing.T) {
		req := base()
		req.PayoutAmountType = string(entity.PayoutAmountPartial)
		assert.Error(t, ValidateTemplateInput(req))

		req.PayoutAmountValue = f64(150)
		assert.Error(t, ValidateTemplateInput(req))

		req.PayoutAmountValue = f64(50)
		assert.NoError(t, ValidateTemplateInput(req))
	})

	t.Run("fixed payout needs a non-negative value", func(t *testing.T) {
		req := base()
		req.PayoutAmountType = string(entity.PayoutAmountFixed)
		assert.Error(t, ValidateTemplateInput(req))

		req.PayoutAmountValue = f64(-1)
		assert.Error(t, ValidateTemplateInput(req))

		req.PayoutAmountValue = f64(200)
		assert.NoError(t, ValidateTemplateInput(req))
	})

	t.Run("rollover_upsell needs eligible services", func(t *testing.T) {
		req := base()
		req.DefaultPayoutType = string(entity.PayoutTypeRolloverUpsell)
		assert.Error(t, ValidateTemplateInput(req))
	})

	t.Run("rollover_continuity needs a plan", func(t *testing.T) {
		req := base()
		req.DefaultPayoutType = string(entity.PayoutTypeRolloverContinuity)
		assert.Error(t, ValidateTemplateInput(req))
	})

	t.Run("multiplier below one", func(t *testing.T) {
		req := base()
		req.RolloverBonusMultiplier = f64(0.9)
		assert.Error(t, ValidateTemplateInput(req))

		req.RolloverBonusMultiplier = f64(1.5)
		assert.NoError(t, ValidateTemplateInput(req))
	})
}
