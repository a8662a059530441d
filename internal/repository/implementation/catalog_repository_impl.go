package implementation

import (
	"context"
	"strings"

	"offerstack-be/internal/entity"
	"offerstack-be/internal/model"
	"offerstack-be/internal/repository/contract"
	"offerstack-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- Product Repository ---

type productRepositoryImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &productRepositoryImpl{db: db}
}

func (r *productRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	m := &model.Product{
		Id:             product.Id,
		Title:          product.Title,
		Description:    product.Description,
		Price:          product.Price,
		PerceivedValue: product.PerceivedValue,
		OfferRole:      string(product.OfferRole),
		ImageURL:       product.ImageURL,
		IsActive:       product.IsActive,
		IsFeatured:     product.IsFeatured,
		DisplayOrder:   product.DisplayOrder,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	product.Id = m.Id
	return nil
}

func (r *productRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
	query := r.db.WithContext(ctx)

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

func (r *productRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var ms []*model.Product
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	var products []*entity.Product
	for _, m := range ms {
		products = append(products, r.mapToEntity(m))
	}

	return products, nil
}

func (r *productRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.Id).
		Updates(map[string]interface{}{
			"title":           product.Title,
			"description":     product.Description,
			"price":           product.Price,
			"perceived_value": product.PerceivedValue,
			"offer_role":      string(product.OfferRole),
			"image_url":       product.ImageURL,
			"is_active":       product.IsActive,
			"is_featured":     product.IsFeatured,
			"display_order":   product.DisplayOrder,
		}).Error
}

func (r *productRepositoryImpl) mapToEntity(m *model.Product) *entity.Product {
	return &entity.Product{
		Id:             m.Id,
		Title:          m.Title,
		Description:    m.Description,
		Price:          m.Price,
		PerceivedValue: m.PerceivedValue,
		OfferRole:      entity.OfferRole(m.OfferRole),
		ImageURL:       m.ImageURL,
		IsActive:       m.IsActive,
		IsFeatured:     m.IsFeatured,
		DisplayOrder:   m.DisplayOrder,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// --- Service Repository ---

type serviceRepositoryImpl struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) contract.ServiceRepository {
	return &serviceRepositoryImpl{db: db}
}

func (r *serviceRepositoryImpl) Create(ctx context.Context, service *entity.Service) error {
	m := &model.Service{
		Id:             service.Id,
		Title:          service.Title,
		Description:    service.Description,
		Price:          service.Price,
		PerceivedValue: service.PerceivedValue,
		OfferRole:      string(service.OfferRole),
		ImageURL:       service.ImageURL,
		IsActive:       service.IsActive,
		DisplayOrder:   service.DisplayOrder,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	service.Id = m.Id
	return nil
}

func (r *serviceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Service, error) {
	var m model.Service
	query := r.db.WithContext(ctx)

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

func (r *serviceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Service, error) {
	var ms []*model.Service
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	var services []*entity.Service
	for _, m := range ms {
		services = append(services, r.mapToEntity(m))
	}

	return services, nil
}

func (r *serviceRepositoryImpl) Update(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Model(&model.Service{}).
		Where("id = ?", service.Id).
		Updates(map[string]interface{}{
			"title":           service.Title,
			"description":     service.Description,
			"price":           service.Price,
			"perceived_value": service.PerceivedValue,
			"offer_role":      string(service.OfferRole),
			"image_url":       service.ImageURL,
			"is_active":       service.IsActive,
			"display_order":   service.DisplayOrder,
		}).Error
}

func (r *serviceRepositoryImpl) mapToEntity(m *model.Service) *entity.Service {
	return &entity.Service{
		Id:             m.Id,
		Title:          m.Title,
		Description:    m.Description,
		Price:          m.Price,
		PerceivedValue: m.PerceivedValue,
		OfferRole:      entity.OfferRole(m.OfferRole),
		ImageURL:       m.ImageURL,
		IsActive:       m.IsActive,
		DisplayOrder:   m.DisplayOrder,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// --- Order Repository ---

type orderRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &orderRepositoryImpl{db: db}
}

func (r *orderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var m model.Order
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &entity.Order{
		Id:               m.Id,
		ClientEmail:      m.ClientEmail,
		ClientName:       m.ClientName,
		Amount:           m.Amount,
		Status:           entity.OrderStatus(m.Status),
		GatewayPaymentId: m.GatewayPaymentId,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}

func (r *orderRepositoryImpl) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", order.Id).
		Updates(map[string]interface{}{
			"status": string(order.Status),
		}).Error
}

// --- Discount Code Repository ---

type discountCodeRepositoryImpl struct {
	db *gorm.DB
}

func NewDiscountCodeRepository(db *gorm.DB) contract.DiscountCodeRepository {
	return &discountCodeRepositoryImpl{db: db}
}

func (r *discountCodeRepositoryImpl) Create(ctx context.Context, code *entity.DiscountCode) error {
	m := &model.DiscountCode{
		Id:            code.Id,
		Code:          code.Code,
		DiscountType:  string(code.DiscountType),
		DiscountValue: code.DiscountValue,
		MaxUses:       code.MaxUses,
		TimesUsed:     code.TimesUsed,
		ExpiresAt:     code.ExpiresAt,
		IsActive:      code.IsActive,
		CreatedBy:     code.CreatedBy,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	code.Id = m.Id
	return nil
}

func (r *discountCodeRepositoryImpl) FindByCode(ctx context.Context, code string) (*entity.DiscountCode, error) {
	var m model.DiscountCode
	err := r.db.WithContext(ctx).
		Where("UPPER(code) = ?", strings.ToUpper(code)).
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&m), nil
}

func (r *discountCodeRepositoryImpl) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.DiscountCode{}).
		Where("id = ?", id).
		UpdateColumn("times_used", gorm.Expr("times_used + 1")).Error
}

func (r *discountCodeRepositoryImpl) Update(ctx context.Context, code *entity.DiscountCode) error {
	return r.db.WithContext(ctx).Model(&model.DiscountCode{}).
		Where("id = ?", code.Id).
		Updates(map[string]interface{}{
			"is_active":  code.IsActive,
			"expires_at": code.ExpiresAt,
			"max_uses":   code.MaxUses,
		}).Error
}

func (r *discountCodeRepositoryImpl) mapToEntity(m *model.DiscountCode) *entity.DiscountCode {
	return &entity.DiscountCode{
		Id:            m.Id,
		Code:          m.Code,
		DiscountType:  entity.DiscountType(m.DiscountType),
		DiscountValue: m.DiscountValue,
		MaxUses:       m.MaxUses,
		TimesUsed:     m.TimesUsed,
		ExpiresAt:     m.ExpiresAt,
		IsActive:      m.IsActive,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
