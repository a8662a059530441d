package bundle

import (
	"context"
	"regexp"
	"strings"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
	"offerstack-be/internal/pkg/logger"
	"offerstack-be/internal/repository/specification"
	"offerstack-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Manager composes offer bundles: item stacks with role tagging, override
// pricing and save-as forking.
type Manager struct {
	logger   logger.ILogger
	resolver *Resolver
}

func NewManager(log logger.ILogger, resolver *Resolver) *Manager {
	return &Manager{
		logger:   log,
		resolver: resolver,
	}
}

// Resolver exposes the pricing resolver for services that render bundles.
func (m *Manager) Resolver() *Resolver {
	return m.resolver
}

// Create stores a bundle. When base_bundle_id is set the base bundle's items
// are inherited first, then the request's own items are appended after them.
func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateBundleRequest, createdBy *uuid.UUID) (*entity.OfferBundle, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	bundle := &entity.OfferBundle{
		Id:           uuid.New(),
		Name:         name,
		Slug:         slugify(name),
		Description:  req.Description,
		Price:        req.Price,
		BaseBundleId: req.BaseBundleId,
		ServiceId:    req.ServiceId,
		IsActive:     true,
		CreatedBy:    createdBy,
	}

	var items []*entity.BundleItem
	order := 0

	if req.BaseBundleId != nil {
		base, err := uow.BundleRepository().FindOneWithItems(ctx, specification.ByID{ID: *req.BaseBundleId})
		if err != nil {
			return nil, err
		}
		if base == nil {
			return nil, ErrBaseBundleNotFound
		}
		for _, item := range base.Items {
			copied := item
			copied.Id = uuid.New()
			copied.BundleId = bundle.Id
			copied.DisplayOrder = order
			order++
			items = append(items, &copied)
		}
	}

	for _, payload := range req.Items {
		items = append(items, itemFromPayload(bundle.Id, payload, order))
		order++
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.BundleRepository().Create(ctx, bundle); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := uow.BundleItemRepository().CreateBatch(ctx, items); err != nil {
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Created Offer Bundle", map[string]interface{}{
		"bundleId": bundle.Id.String(),
		"slug":     bundle.Slug,
		"items":    len(items),
	})

	for _, item := range items {
		bundle.Items = append(bundle.Items, *item)
	}
	return bundle, nil
}

// Get loads one bundle with every item fully resolved.
func (m *Manager) Get(ctx context.Context, uow unitofwork.UnitOfWork, bundleId uuid.UUID) (*entity.OfferBundle, []dto.ResolvedBundleItem, error) {
	bundle, err := uow.BundleRepository().FindOneWithItems(ctx, specification.ByID{ID: bundleId})
	if err != nil {
		return nil, nil, err
	}
	if bundle == nil {
		return nil, nil, ErrBundleNotFound
	}

	resolved, _, err := m.resolver.ResolveItems(ctx, uow, bundle.Items, 0)
	if err != nil {
		return nil, nil, err
	}
	return bundle, resolved, nil
}

// List returns bundles with preview-capped item resolution.
func (m *Manager) List(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, activeOnly bool) ([]*entity.OfferBundle, map[uuid.UUID][]dto.ResolvedBundleItem, map[uuid.UUID]bool, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var specs []specification.Specification
	if activeOnly {
		specs = append(specs, specification.ActiveOnly{})
	}
	specs = append(specs,
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
		specification.OrderBy{Field: "created_at", Desc: true},
	)

	bundles, err := uow.BundleRepository().FindAllWithItems(ctx, specs...)
	if err != nil {
		return nil, nil, nil, err
	}

	resolvedByBundle := make(map[uuid.UUID][]dto.ResolvedBundleItem, len(bundles))
	truncatedByBundle := make(map[uuid.UUID]bool, len(bundles))
	for _, b := range bundles {
		resolved, truncated, err := m.resolver.ResolveItems(ctx, uow, b.Items, PreviewItemLimit)
		if err != nil {
			return nil, nil, nil, err
		}
		resolvedByBundle[b.Id] = resolved
		truncatedByBundle[b.Id] = truncated
	}

	return bundles, resolvedByBundle, truncatedByBundle, nil
}

// Update applies partial updates; a non-nil Items slice replaces the item
// stack wholesale.
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, bundleId uuid.UUID, req dto.UpdateBundleRequest) (*entity.OfferBundle, error) {
	bundle, err := uow.BundleRepository().FindOne(ctx, specification.ByID{ID: bundleId})
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, ErrBundleNotFound
	}

	if req.Name != nil {
		bundle.Name = strings.TrimSpace(*req.Name)
		if bundle.Name == "" {
			return nil, ErrEmptyName
		}
		bundle.Slug = slugify(bundle.Name)
	}
	if req.Description != nil {
		bundle.Description = *req.Description
	}
	if req.Price != nil {
		bundle.Price = req.Price
	}
	if req.ServiceId != nil {
		bundle.ServiceId = req.ServiceId
	}
	if req.IsActive != nil {
		bundle.IsActive = *req.IsActive
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.BundleRepository().Update(ctx, bundle); err != nil {
		return nil, err
	}

	if req.Items != nil {
		if err := uow.BundleItemRepository().DeleteAllByBundle(ctx, bundleId); err != nil {
			return nil, err
		}
		items := make([]*entity.BundleItem, 0, len(req.Items))
		for i, payload := range req.Items {
			items = append(items, itemFromPayload(bundleId, payload, i))
		}
		if len(items) > 0 {
			if err := uow.BundleItemRepository().CreateBatch(ctx, items); err != nil {
				return nil, err
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return bundle, nil
}

// SaveAs forks a bundle: the copy gets its own items and records the source
// as parent_bundle_id for lineage display.
func (m *Manager) SaveAs(ctx context.Context, uow unitofwork.UnitOfWork, req dto.SaveBundleAsRequest, createdBy *uuid.UUID) (*entity.OfferBundle, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	source, err := uow.BundleRepository().FindOneWithItems(ctx, specification.ByID{ID: req.SourceBundleId})
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, ErrBundleNotFound
	}

	fork := &entity.OfferBundle{
		Id:             uuid.New(),
		Name:           name,
		Slug:           slugify(name),
		Description:    req.Description,
		Price:          source.Price,
		ParentBundleId: &source.Id,
		ServiceId:      source.ServiceId,
		IsActive:       true,
		CreatedBy:      createdBy,
	}

	items := make([]*entity.BundleItem, 0, len(source.Items))
	for _, item := range source.Items {
		copied := item
		copied.Id = uuid.New()
		copied.BundleId = fork.Id
		items = append(items, &copied)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.BundleRepository().Create(ctx, fork); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := uow.BundleItemRepository().CreateBatch(ctx, items); err != nil {
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Forked Offer Bundle", map[string]interface{}{
		"sourceId": source.Id.String(),
		"forkId":   fork.Id.String(),
	})

	for _, item := range items {
		fork.Items = append(fork.Items, *item)
	}
	return fork, nil
}

// Delete removes a bundle and its items.
func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, bundleId uuid.UUID) error {
	bundle, err := uow.BundleRepository().FindOne(ctx, specification.ByID{ID: bundleId})
	if err != nil {
		return err
	}
	if bundle == nil {
		return ErrBundleNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.BundleItemRepository().DeleteAllByBundle(ctx, bundleId); err != nil {
		return err
	}
	if err := uow.BundleRepository().Delete(ctx, bundleId); err != nil {
		return err
	}
	return uow.Commit()
}

func itemFromPayload(bundleId uuid.UUID, payload dto.BundleItemPayload, order int) *entity.BundleItem {
	displayOrder := payload.DisplayOrder
	if displayOrder == 0 {
		displayOrder = order
	}
	return &entity.BundleItem{
		Id:                     uuid.New(),
		BundleId:               bundleId,
		ContentType:            entity.ContentType(payload.ContentType),
		ContentId:              payload.ContentId,
		Role:                   entity.OfferRole(payload.Role),
		OverridePrice:          payload.OverridePrice,
		OverridePerceivedValue: payload.OverridePerceivedValue,
		OverrideTitle:          payload.OverrideTitle,
		DisplayOrder:           displayOrder,
	}
}
