package guarantee

import (
	"fmt"
	"regexp"
	"strings"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// ConditionIDFromLabel derives a stable condition id from its label: lowercase,
// runs of non-alphanumeric characters collapse to a single dash, no leading or
// trailing dash. The same label always yields the same id, so snapshots taken
// at instance creation keep lining up with the template.
func ConditionIDFromLabel(label string) string {
	id := strings.ToLower(label)
	id = nonAlphanumeric.ReplaceAllString(id, "-")
	return strings.Trim(id, "-")
}

// BuildConditions converts request payloads into stored conditions, deriving
// ids and applying defaults (admin_verified, required=true).
func BuildConditions(payloads []dto.GuaranteeConditionPayload) ([]entity.GuaranteeCondition, error) {
	seen := make(map[string]bool, len(payloads))
	conditions := make([]entity.GuaranteeCondition, 0, len(payloads))

	for _, p := range payloads {
		label := strings.TrimSpace(p.Label)
		if label == "" {
			return nil, fmt.Errorf("condition label must not be empty")
		}

		id := ConditionIDFromLabel(label)
		if id == "" {
			return nil, fmt.Errorf("condition label %q yields an empty id", p.Label)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate condition id %q", id)
		}
		seen[id] = true

		method := entity.VerificationMethod(p.VerificationMethod)
		if method == "" {
			method = entity.VerificationAdmin
		}

		required := true
		if p.Required != nil {
			required = *p.Required
		}

		conditions = append(conditions, entity.GuaranteeCondition{
			Id:                 id,
			Label:              label,
			Description:        p.Description,
			VerificationMethod: method,
			Required:           required,
		})
	}

	return conditions, nil
}

// ValidateTemplateInput enforces the template-level rules that go beyond
// field-shape validation.
func ValidateTemplateInput(req dto.CreateGuaranteeTemplateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	if req.DurationDays < 1 {
		return fmt.Errorf("duration_days must be at least 1")
	}

	guaranteeType := req.GuaranteeType
	if guaranteeType == "" {
		guaranteeType = string(entity.GuaranteeTypeConditional)
	}
	if guaranteeType == string(entity.GuaranteeTypeConditional) && len(req.Conditions) == 0 {
		return fmt.Errorf("conditional guarantees need at least one condition")
	}

	amountType := req.PayoutAmountType
	if amountType == "" {
		amountType = string(entity.PayoutAmountFull)
	}
	switch entity.PayoutAmountType(amountType) {
	case entity.PayoutAmountPartial:
		if req.PayoutAmountValue == nil || *req.PayoutAmountValue < 0 || *req.PayoutAmountValue > 100 {
			return fmt.Errorf("partial payout requires a percentage value between 0 and 100")
		}
	case entity.PayoutAmountFixed:
		if req.PayoutAmountValue == nil || *req.PayoutAmountValue < 0 {
			return fmt.Errorf("fixed payout requires a non-negative value")
		}
	}

	switch entity.PayoutType(req.DefaultPayoutType) {
	case entity.PayoutTypeRolloverUpsell:
		if len(req.RolloverUpsellServiceIds) == 0 {
			return fmt.Errorf("rollover_upsell requires eligible service ids")
		}
	case entity.PayoutTypeRolloverContinuity:
		if req.RolloverContinuityPlanId == nil {
			return fmt.Errorf("rollover_continuity requires a target continuity plan")
		}
	}

	if req.RolloverBonusMultiplier != nil && *req.RolloverBonusMultiplier < 1 {
		return fmt.Errorf("rollover bonus multiplier must be at least 1")
	}

	return nil
}
