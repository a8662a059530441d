package implementation

import (
	"context"

	"offerstack-be/internal/entity"
	"offerstack-be/internal/model"
	"offerstack-be/internal/repository/contract"
	"offerstack-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bundleRepositoryImpl struct {
	db *gorm.DB
}

func NewBundleRepository(db *gorm.DB) contract.BundleRepository {
	return &bundleRepositoryImpl{db: db}
}

func (r *bundleRepositoryImpl) Create(ctx context.Context, bundle *entity.OfferBundle) error {
	m := &model.OfferBundle{
		Id:             bundle.Id,
		Name:           bundle.Name,
		Slug:           bundle.Slug,
		Description:    bundle.Description,
		Price:          bundle.Price,
		ParentBundleId: bundle.ParentBundleId,
		BaseBundleId:   bundle.BaseBundleId,
		ServiceId:      bundle.ServiceId,
		IsActive:       bundle.IsActive,
		CreatedBy:      bundle.CreatedBy,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	bundle.Id = m.Id
	bundle.CreatedAt = m.CreatedAt
	return nil
}

func (r *bundleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OfferBundle, error) {
	return r.findOne(r.db.WithContext(ctx), specs...)
}

func (r *bundleRepositoryImpl) FindOneWithItems(ctx context.Context, specs ...specification.Specification) (*entity.OfferBundle, error) {
	query := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		})
	return r.findOne(query, specs...)
}

func (r *bundleRepositoryImpl) findOne(query *gorm.DB, specs ...specification.Specification) (*entity.OfferBundle, error) {
	var m model.OfferBundle

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&m), nil
}

func (r *bundleRepositoryImpl) FindAllWithItems(ctx context.Context, specs ...specification.Specification) ([]*entity.OfferBundle, error) {
	var ms []*model.OfferBundle
	query := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	var bundles []*entity.OfferBundle
	for _, m := range ms {
		bundles = append(bundles, r.mapToEntity(m))
	}

	return bundles, nil
}

func (r *bundleRepositoryImpl) Update(ctx context.Context, bundle *entity.OfferBundle) error {
	return r.db.WithContext(ctx).Model(&model.OfferBundle{}).
		Where("id = ?", bundle.Id).
		Updates(map[string]interface{}{
			"name":        bundle.Name,
			"description": bundle.Description,
			"price":       bundle.Price,
			"service_id":  bundle.ServiceId,
			"is_active":   bundle.IsActive,
		}).Error
}

func (r *bundleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.OfferBundle{}, id).Error
}

func (r *bundleRepositoryImpl) mapToEntity(m *model.OfferBundle) *entity.OfferBundle {
	b := &entity.OfferBundle{
		Id:             m.Id,
		Name:           m.Name,
		Slug:           m.Slug,
		Description:    m.Description,
		Price:          m.Price,
		ParentBundleId: m.ParentBundleId,
		BaseBundleId:   m.BaseBundleId,
		ServiceId:      m.ServiceId,
		IsActive:       m.IsActive,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	for _, mi := range m.Items {
		b.Items = append(b.Items, entity.BundleItem{
			Id:                     mi.Id,
			BundleId:               mi.BundleId,
			ContentType:            entity.ContentType(mi.ContentType),
			ContentId:              mi.ContentId,
			Role:                   entity.OfferRole(mi.Role),
			OverridePrice:          mi.OverridePrice,
			OverridePerceivedValue: mi.OverridePerceivedValue,
			OverrideTitle:          mi.OverrideTitle,
			DisplayOrder:           mi.DisplayOrder,
			CreatedAt:              mi.CreatedAt,
		})
	}
	return b
}

// --- Bundle Item Repository ---

type bundleItemRepositoryImpl struct {
	db *gorm.DB
}

func NewBundleItemRepository(db *gorm.DB) contract.BundleItemRepository {
	return &bundleItemRepositoryImpl{db: db}
}

func (r *bundleItemRepositoryImpl) CreateBatch(ctx context.Context, items []*entity.BundleItem) error {
	if len(items) == 0 {
		return nil
	}
	ms := make([]*model.BundleItem, 0, len(items))
	for _, item := range items {
		ms = append(ms, &model.BundleItem{
			Id:                     item.Id,
			BundleId:               item.BundleId,
			ContentType:            string(item.ContentType),
			ContentId:              item.ContentId,
			Role:                   string(item.Role),
			OverridePrice:          item.OverridePrice,
			OverridePerceivedValue: item.OverridePerceivedValue,
			OverrideTitle:          item.OverrideTitle,
			DisplayOrder:           item.DisplayOrder,
		})
	}
	return r.db.WithContext(ctx).Create(&ms).Error
}

func (r *bundleItemRepositoryImpl) DeleteAllByBundle(ctx context.Context, bundleId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("bundle_id = ?", bundleId).Delete(&model.BundleItem{}).Error
}
