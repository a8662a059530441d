package bundle

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
	"offerstack-be/internal/pkg/logger"
	"offerstack-be/internal/repository/specification"
	"offerstack-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PreviewItemLimit caps how many items list views resolve per bundle.
const PreviewItemLimit = 5

const catalogCacheTTL = 5 * time.Minute

// catalogEntry is the canonical pricing row a bundle item resolves against.
type catalogEntry struct {
	Title          string   `json:"title"`
	Price          float64  `json:"price"`
	PerceivedValue *float64 `json:"perceived_value,omitempty"`
	Found          bool     `json:"found"`
}

// Resolver turns bundle items into priced rows, reading catalog prices
// through a Redis cache.
type Resolver struct {
	redis  *redis.Client
	logger logger.ILogger
}

func NewResolver(rdb *redis.Client, log logger.ILogger) *Resolver {
	return &Resolver{
		redis:  rdb,
		logger: log,
	}
}

// ResolveItems prices the first limit items of a bundle (limit <= 0 resolves
// everything) and reports whether items were truncated.
func (r *Resolver) ResolveItems(ctx context.Context, uow unitofwork.UnitOfWork, items []entity.BundleItem, limit int) ([]dto.ResolvedBundleItem, bool, error) {
	truncated := false
	if limit > 0 && len(items) > limit {
		items = items[:limit]
		truncated = true
	}

	resolved := make([]dto.ResolvedBundleItem, 0, len(items))
	for _, item := range items {
		entry, err := r.lookup(ctx, uow, item.ContentType, item.ContentId)
		if err != nil {
			return nil, false, err
		}
		resolved = append(resolved, ResolveItem(item, entry))
	}
	return resolved, truncated, nil
}

// ResolveItem applies override-wins pricing: an item's override price and
// perceived value beat the catalog's; a row with neither contributes 0.
func ResolveItem(item entity.BundleItem, entry catalogEntry) dto.ResolvedBundleItem {
	title := item.OverrideTitle
	if title == "" {
		title = entry.Title
	}

	price := 0.0
	if item.OverridePrice != nil {
		price = *item.OverridePrice
	} else if entry.Found {
		price = entry.Price
	}

	perceived := price
	if item.OverridePerceivedValue != nil {
		perceived = *item.OverridePerceivedValue
	} else if entry.Found && entry.PerceivedValue != nil {
		perceived = *entry.PerceivedValue
	}

	return dto.ResolvedBundleItem{
		Id:             item.Id,
		ContentType:    string(item.ContentType),
		ContentId:      item.ContentId,
		Role:           string(item.Role),
		Title:          title,
		Price:          price,
		PerceivedValue: perceived,
		DisplayOrder:   item.DisplayOrder,
	}
}

// Totals sums retail and perceived value over resolved items.
func Totals(items []dto.ResolvedBundleItem) (retail, perceived float64) {
	for _, item := range items {
		retail += item.Price
		perceived += item.PerceivedValue
	}
	return retail, perceived
}

// EffectivePrice is the bundle's explicit price, defaulting to the total
// retail value when unset.
func EffectivePrice(price *float64, totalRetail float64) float64 {
	if price != nil {
		return *price
	}
	return totalRetail
}

// lookup reads a catalog row through the cache. Content types without a
// catalog table (videos, prototypes, lead magnets) resolve as not found and
// rely on overrides.
func (r *Resolver) lookup(ctx context.Context, uow unitofwork.UnitOfWork, contentType entity.ContentType, contentId string) (catalogEntry, error) {
	key := fmt.Sprintf("catalog:%s:%s", contentType, contentId)

	if r.redis != nil {
		if raw, err := r.redis.Get(ctx, key).Result(); err == nil {
			var entry catalogEntry
			if err := json.Unmarshal([]byte(raw), &entry); err == nil {
				return entry, nil
			}
		}
	}

	entry, err := r.fetch(ctx, uow, contentType, contentId)
	if err != nil {
		return catalogEntry{}, err
	}

	if r.redis != nil {
		if raw, err := json.Marshal(entry); err == nil {
			if err := r.redis.Set(ctx, key, raw, catalogCacheTTL).Err(); err != nil {
				r.logger.Warn("BUNDLE", "Catalog cache write failed", map[string]interface{}{
					"key":   key,
					"error": err.Error(),
				})
			}
		}
	}

	return entry, nil
}

func (r *Resolver) fetch(ctx context.Context, uow unitofwork.UnitOfWork, contentType entity.ContentType, contentId string) (catalogEntry, error) {
	id, err := uuid.Parse(contentId)
	if err != nil {
		return catalogEntry{}, nil
	}

	switch contentType {
	case entity.ContentTypeProduct:
		product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return catalogEntry{}, err
		}
		if product == nil {
			return catalogEntry{}, nil
		}
		return catalogEntry{Title: product.Title, Price: product.Price, PerceivedValue: product.PerceivedValue, Found: true}, nil
	case entity.ContentTypeService:
		service, err := uow.ServiceRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return catalogEntry{}, err
		}
		if service == nil {
			return catalogEntry{}, nil
		}
		return catalogEntry{Title: service.Title, Price: service.Price, PerceivedValue: service.PerceivedValue, Found: true}, nil
	default:
		return catalogEntry{}, nil
	}
}

// InvalidateCatalogEntry drops a cached price after a catalog write.
func (r *Resolver) InvalidateCatalogEntry(ctx context.Context, contentType entity.ContentType, contentId string) {
	if r.redis == nil {
		return
	}
	key := fmt.Sprintf("catalog:%s:%s", contentType, contentId)
	if err := r.redis.Del(ctx, key).Err(); err != nil {
		r.logger.Warn("BUNDLE", "Catalog cache invalidation failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
