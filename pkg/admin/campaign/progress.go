package campaign

import (
	"math"

	"offerstack-be/internal/entity"
)

// OverallProgress is the percentage of criteria satisfied (met or waived),
// rounded to the nearest integer. Optional criteria count toward the
// percentage even though they never gate eligibility.
func OverallProgress(progress []entity.CampaignProgress) int {
	if len(progress) == 0 {
		return 0
	}
	satisfied := 0
	for _, p := range progress {
		if p.Status.Satisfied() {
			satisfied++
		}
	}
	return int(math.Round(100 * float64(satisfied) / float64(len(progress))))
}

// AllRequiredSatisfied reports whether every required criterion's progress row
// is met or waived.
func AllRequiredSatisfied(criteria []entity.EnrollmentCriterion, progress []entity.CampaignProgress) bool {
	byId := make(map[string]entity.ProgressStatus, len(progress))
	for _, p := range progress {
		byId[p.CriterionId.String()] = p.Status
	}
	for _, c := range criteria {
		if !c.Required {
			continue
		}
		if !byId[c.Id.String()].Satisfied() {
			return false
		}
	}
	return true
}
