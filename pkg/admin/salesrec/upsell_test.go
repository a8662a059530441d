package salesrec

import (
	"testing"

	"offerstack-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsellConfidence(t *testing.T) {
	assert.Equal(t, 0.85, upsellConfidence(ObjectionPositive))
	assert.Equal(t, 0.45, upsellConfidence(ObjectionPrice))
	assert.Equal(t, 0.80, upsellConfidence(ObjectionFeatureConcern))
	assert.Equal(t, 0.70, upsellConfidence(ObjectionNeutral))
	assert.Equal(t, 0.70, upsellConfidence(ObjectionTiming))
}

func TestUpsellRecommendations(t *testing.T) {
	withSteps := &entity.UpsellPath{
		Id:          uuid.New(),
		UpsellTitle: "Sales Call Coaching",
		PointOfSaleSteps: []entity.UpsellStep{
			{Title: "Bridge", TalkingPoints: []string{"Your closers are the next bottleneck..."}},
		},
	}
	withoutSteps := &entity.UpsellPath{
		Id:          uuid.New(),
		UpsellTitle: "Growth Retainer",
	}

	recs := UpsellRecommendations([]*entity.UpsellPath{withSteps, withoutSteps}, ObjectionPositive, "Dana")
	require.Len(t, recs, 1, "paths without point-of-sale steps are skipped")

	rec := recs[0]
	assert.Equal(t, string(StrategyDifferentProduct), rec.Strategy)
	assert.Equal(t, 0.85, rec.Confidence)
	assert.Equal(t, "upsell_path", rec.Source)
	require.NotNil(t, rec.UpsellPathId)
	assert.Equal(t, withSteps.Id, *rec.UpsellPathId)
	assert.Equal(t, []string{"Your closers are the next bottleneck..."}, rec.TalkingPoints)
}

func TestUpsellTalkingPointFallbacks(t *testing.T) {
	path := &entity.UpsellPath{
		Id:               uuid.New(),
		UpsellTitle:      "Growth Retainer",
		PointOfSaleSteps: []entity.UpsellStep{{Title: "Bridge"}},
	}

	t.Run("value frame text when the step has no talking points", func(t *testing.T) {
		path.ValueFrameText = "Keep the momentum going after the sprint."
		points := upsellTalkingPoints(path, "Dana")
		assert.Equal(t, []string{"Keep the momentum going after the sprint."}, points)
	})

	t.Run("generated line as the last resort", func(t *testing.T) {
		path.ValueFrameText = ""
		points := upsellTalkingPoints(path, "Dana")
		require.Len(t, points, 1)
		assert.Contains(t, points[0], "Dana")
		assert.Contains(t, points[0], "Growth Retainer")
	})
}
