package campaign

import (
	"testing"

	"offerstack-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOverallProgress(t *testing.T) {
	rows := func(statuses ...entity.ProgressStatus) []entity.CampaignProgress {
		progress := make([]entity.CampaignProgress, 0, len(statuses))
		for _, s := range statuses {
			progress = append(progress, entity.CampaignProgress{Status: s})
		}
		return progress
	}

	tests := []struct {
		name     string
		progress []entity.CampaignProgress
		want     int
	}{
		{"no rows", nil, 0},
		{"none satisfied", rows(entity.ProgressStatusPending, entity.ProgressStatusInProgress), 0},
		{"half satisfied", rows(entity.ProgressStatusMet, entity.ProgressStatusPending), 50},
		{"waived counts", rows(entity.ProgressStatusWaived, entity.ProgressStatusPending), 50},
		{"not_met does not count", rows(entity.ProgressStatusMet, entity.ProgressStatusNotMet), 50},
		{"one of three rounds to 33", rows(entity.ProgressStatusMet, entity.ProgressStatusPending, entity.ProgressStatusPending), 33},
		{"two of three rounds to 67", rows(entity.ProgressStatusMet, entity.ProgressStatusMet, entity.ProgressStatusPending), 67},
		{"all satisfied", rows(entity.ProgressStatusMet, entity.ProgressStatusWaived), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverallProgress(tt.progress))
		})
	}
}

func TestCampaignAllRequiredSatisfied(t *testing.T) {
	requiredId := uuid.New()
	optionalId := uuid.New()

	criteria := []entity.EnrollmentCriterion{
		{Id: requiredId, Label: "Hit revenue target", Required: true},
		{Id: optionalId, Label: "Leave a review", Required: false},
	}

	t.Run("required met", func(t *testing.T) {
		progress := []entity.CampaignProgress{
			{CriterionId: requiredId, Status: entity.ProgressStatusMet},
			{CriterionId: optionalId, Status: entity.ProgressStatusPending},
		}
		assert.True(t, AllRequiredSatisfied(criteria, progress))
	})

	t.Run("required waived", func(t *testing.T) {
		progress := []entity.CampaignProgress{
			{CriterionId: requiredId, Status: entity.ProgressStatusWaived},
		}
		assert.True(t, AllRequiredSatisfied(criteria, progress))
	})

	t.Run("required still in progress", func(t *testing.T) {
		progress := []entity.CampaignProgress{
			{CriterionId: requiredId, Status: entity.ProgressStatusInProgress},
			{CriterionId: optionalId, Status: entity.ProgressStatusMet},
		}
		assert.False(t, AllRequiredSatisfied(criteria, progress))
	})

	t.Run("missing progress row blocks", func(t *testing.T) {
		assert.False(t, AllRequiredSatisfied(criteria, nil))
	})

	t.Run("optional not_met never blocks", func(t *testing.T) {
		progress := []entity.CampaignProgress{
			{CriterionId: requiredId, Status: entity.ProgressStatusMet},
			{CriterionId: optionalId, Status: entity.ProgressStatusNotMet},
		}
		assert.True(t, AllRequiredSatisfied(criteria, progress))
	})
}
