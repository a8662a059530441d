package bundle

import (
	"testing"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestResolveItem(t *testing.T) {
	catalogRow := catalogEntry{
		Title:          "Growth Sprint (6 weeks)",
		Price:          7500,
		PerceivedValue: f64(20000),
		Found:          true,
	}

	t.Run("catalog pricing", func(t *testing.T) {
		item := entity.BundleItem{ContentType: entity.ContentTypeService, Role: entity.OfferRoleCoreOffer}
		resolved := ResolveItem(item, catalogRow)

		assert.Equal(t, "Growth Sprint (6 weeks)", resolved.Title)
		assert.Equal(t, 7500.0, resolved.Price)
		assert.Equal(t, 20000.0, resolved.PerceivedValue)
	})

	t.Run("override price wins over catalog", func(t *testing.T) {
		item := entity.BundleItem{OverridePrice: f64(4999)}
		resolved := ResolveItem(item, catalogRow)

		assert.Equal(t, 4999.0, resolved.Price)
		assert.Equal(t, 20000.0, resolved.PerceivedValue)
	})

	t.Run("override title wins over catalog", func(t *testing.T) {
		item := entity.BundleItem{OverrideTitle: "Sprint (Bundle Edition)"}
		resolved := ResolveItem(item, catalogRow)

		assert.Equal(t, "Sprint (Bundle Edition)", resolved.Title)
	})

	t.Run("perceived value defaults to the resolved price", func(t *testing.T) {
		entry := catalogEntry{Title: "Playbook", Price: 190, Found: true}
		resolved := ResolveItem(entity.BundleItem{}, entry)

		assert.Equal(t, 190.0, resolved.Price)
		assert.Equal(t, 190.0, resolved.PerceivedValue)
	})

	t.Run("not found with overrides still prices", func(t *testing.T) {
		item := entity.BundleItem{
			ContentType:            entity.ContentTypeVideo,
			OverrideTitle:          "Pricing Teardown Video",
			OverridePrice:          f64(250),
			OverridePerceivedValue: f64(600),
		}
		resolved := ResolveItem(item, catalogEntry{})

		assert.Equal(t, 250.0, resolved.Price)
		assert.Equal(t, 600.0, resolved.PerceivedValue)
	})

	t.Run("not found without overrides contributes zero", func(t *testing.T) {
		resolved := ResolveItem(entity.BundleItem{}, catalogEntry{})

		assert.Equal(t, 0.0, resolved.Price)
		assert.Equal(t, 0.0, resolved.PerceivedValue)
	})
}

func TestTotals(t *testing.T) {
	items := []dto.ResolvedBundleItem{
		{Price: 7500, PerceivedValue: 20000},
		{Price: 190, PerceivedValue: 600},
		{Price: 0, PerceivedValue: 250},
	}

	retail, perceived := Totals(items)
	assert.Equal(t, 7690.0, retail)
	assert.Equal(t, 20850.0, perceived)

	retail, perceived = Totals(nil)
	assert.Equal(t, 0.0, retail)
	assert.Equal(t, 0.0, perceived)
}

func TestEffectivePrice(t *testing.T) {
	assert.Equal(t, 4999.0, EffectivePrice(f64(4999), 7690))
	assert.Equal(t, 7690.0, EffectivePrice(nil, 7690))
	assert.Equal(t, 0.0, EffectivePrice(f64(0), 7690), "an explicit zero price is honored")
}
