package campaign

import (
	"testing"

	"offerstack-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolate(t *testing.T) {
	context := map[string]interface{}{
		"client_name": "Acme Co",
		"audit_data": map[string]interface{}{
			"target_revenue": 10000.0,
			"growth_rate":    2.5,
		},
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "simple variable",
			template: "Welcome, {{client_name}}",
			want:     "Welcome, Acme Co",
		},
		{
			name:     "dot path",
			template: "Hit {{audit_data.target_revenue}} in revenue",
			want:     "Hit 10000 in revenue",
		},
		{
			name:     "whitespace inside braces",
			template: "Hello {{ client_name }}",
			want:     "Hello Acme Co",
		},
		{
			name:     "integral float renders without decimal",
			template: "{{audit_data.target_revenue}}",
			want:     "10000",
		},
		{
			name:     "fractional float keeps decimals",
			template: "{{audit_data.growth_rate}}x",
			want:     "2.5x",
		},
		{
			name:     "unresolved placeholder stays visible",
			template: "Reach {{audit_data.missing}} users",
			want:     "Reach {{audit_data.missing}} users",
		},
		{
			name:     "no placeholders",
			template: "Complete the onboarding diagnostic",
			want:     "Complete the onboarding diagnostic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpolate(tt.template, context))
		})
	}
}

func TestResolveThreshold(t *testing.T) {
	context := map[string]interface{}{
		"audit_data":       map[string]interface{}{"target_revenue": 25000.0},
		"value_evidence":   map[string]interface{}{"case_study_count": 3.0},
		"chat_insights":    map[string]interface{}{"team_size": "12"},
		"custom_overrides": map[string]interface{}{"sessions": 6.0},
	}

	tests := []struct {
		name     string
		source   string
		fallback string
		want     string
	}{
		{"empty source uses fallback", "", "10000", "10000"},
		{"audit prefix maps to audit_data", "audit.target_revenue", "10000", "25000"},
		{"evidence prefix maps to value_evidence", "evidence.case_study_count", "1", "3"},
		{"chat prefix maps to chat_insights", "chat.team_size", "5", "12"},
		{"custom prefix maps to custom_overrides", "custom.sessions", "4", "6"},
		{"missing path uses fallback", "audit.nothing_here", "10000", "10000"},
		{"unmapped prefix reads the context directly", "audit_data.target_revenue", "0", "25000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveThreshold(tt.source, tt.fallback, context))
		})
	}
}

func TestMaterialize(t *testing.T) {
	enrollmentId := uuid.New()
	templates := []*entity.CampaignCriteriaTemplate{
		{
			Id:             uuid.New(),
			LabelTemplate:  "Complete the onboarding diagnostic",
			CriteriaType:   entity.CriteriaTypeAction,
			TrackingSource: entity.TrackingDiagnosticCompletion,
			Required:       true,
			DisplayOrder:   1,
		},
		{
			Id:               uuid.New(),
			LabelTemplate:    "Hit {{audit.target_revenue}} in attributed revenue",
			CriteriaType:     entity.CriteriaTypeResult,
			TrackingSource:   entity.TrackingManual,
			ThresholdSource:  "audit.target_revenue",
			ThresholdDefault: "10000",
			Required:         true,
			DisplayOrder:     2,
		},
	}

	context := map[string]interface{}{
		"audit_data": map[string]interface{}{"target_revenue": 25000.0},
	}

	criteria := Materialize(templates, enrollmentId, context)
	require.Len(t, criteria, 2)

	assert.Equal(t, enrollmentId, criteria[0].EnrollmentId)
	assert.Equal(t, templates[0].Id, criteria[0].TemplateCriterionId)
	assert.Equal(t, "Complete the onboarding diagnostic", criteria[0].Label)
	assert.Empty(t, criteria[0].TargetValue)

	// Section prefixes only apply to thresholds; the label placeholder reads
	// the raw context and stays visible when its path is absent there.
	assert.Equal(t, "Hit {{audit.target_revenue}} in attributed revenue", criteria[1].Label)
	assert.Equal(t, "25000", criteria[1].TargetValue)
	assert.Equal(t, 2, criteria[1].DisplayOrder)
}

func TestMaterializeFallsBackToDefaults(t *testing.T) {
	templates := []*entity.CampaignCriteriaTemplate{
		{
			Id:               uuid.New(),
			LabelTemplate:    "Hit {{target_revenue}} in revenue",
			ThresholdSource:  "audit.target_revenue",
			ThresholdDefault: "10000",
		},
	}

	criteria := Materialize(templates, uuid.New(), map[string]interface{}{})
	require.Len(t, criteria, 1)

	assert.Equal(t, "Hit {{target_revenue}} in revenue", criteria[0].Label)
	assert.Equal(t, "10000", criteria[0].TargetValue)
}
