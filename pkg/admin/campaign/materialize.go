package campaign

import (
	"fmt"
	"regexp"
	"strings"

	"offerstack-be/internal/entity"

	"github.com/google/uuid"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.]+)\s*\}\}`)

// Prefixes a threshold_source path may start with, mapped to the section of
// the personalization context they read from.
var thresholdSections = map[string]string{
	"audit":    "audit_data",
	"evidence": "value_evidence",
	"chat":     "chat_insights",
	"custom":   "custom_overrides",
}

// Interpolate substitutes {{var}} placeholders in a criteria template with
// values from the enrollment's personalization context. Placeholders support
// dot paths ({{audit.monthly_revenue}}). Unresolved placeholders stay in the
// text so admins can spot missing context.
func Interpolate(template string, context map[string]interface{}) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		path := placeholderPattern.FindStringSubmatch(match)[1]
		if v, ok := lookupPath(context, strings.Split(path, ".")); ok {
			return stringify(v)
		}
		return match
	})
}

// ResolveThreshold pulls a criterion's target value out of the personalization
// context via its threshold_source dot path, falling back to the template
// default when the path is empty or missing.
func ResolveThreshold(source, fallback string, context map[string]interface{}) string {
	if source == "" {
		return fallback
	}

	segments := strings.Split(source, ".")
	if mapped, ok := thresholdSections[segments[0]]; ok {
		segments[0] = mapped
	}

	if v, ok := lookupPath(context, segments); ok {
		return stringify(v)
	}
	return fallback
}

// Materialize turns a campaign's criteria templates into concrete criteria
// for one enrollment, interpolating labels and resolving thresholds against
// the client's personalization context.
func Materialize(templates []*entity.CampaignCriteriaTemplate, enrollmentId uuid.UUID, context map[string]interface{}) []*entity.EnrollmentCriterion {
	criteria := make([]*entity.EnrollmentCriterion, 0, len(templates))
	for _, tpl := range templates {
		criteria = append(criteria, &entity.EnrollmentCriterion{
			Id:                  uuid.New(),
			EnrollmentId:        enrollmentId,
			TemplateCriterionId: tpl.Id,
			Label:               Interpolate(tpl.LabelTemplate, context),
			Description:         Interpolate(tpl.DescriptionTemplate, context),
			CriteriaType:        tpl.CriteriaType,
			TrackingSource:      tpl.TrackingSource,
			TrackingConfig:      tpl.TrackingConfig,
			TargetValue:         ResolveThreshold(tpl.ThresholdSource, tpl.ThresholdDefault, context),
			Required:            tpl.Required,
			DisplayOrder:        tpl.DisplayOrder,
		})
	}
	return criteria
}

func lookupPath(context map[string]interface{}, segments []string) (interface{}, bool) {
	var current interface{} = context
	for _, seg := range segments {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = node[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; render integers without the
		// trailing .0.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
