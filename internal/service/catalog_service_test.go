// FILE: internal/service/catalog_service_test.go
package service

import (
	"context"
	"testing"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
	"offerstack-be/internal/repository/contract"
	"offerstack-be/internal/repository/specification"
	"offerstack-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Read-only stubs for the catalog list path. Embedding the interfaces panics
// on anything beyond FindAll, so a test reaching a write is itself a failure.
type stubCatalogProductRepo struct {
	contract.ProductRepository
	products []*entity.Product
}

func (r stubCatalogProductRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	return r.products, nil
}

type stubCatalogServiceRepo struct {
	contract.ServiceRepository
	services []*entity.Service
}

func (r stubCatalogServiceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Service, error) {
	return r.services, nil
}

type stubCatalogUow struct {
	unitofwork.UnitOfWork
	products stubCatalogProductRepo
	services stubCatalogServiceRepo
}

func (u stubCatalogUow) ProductRepository() contract.ProductRepository {
	return u.products
}

func (u stubCatalogUow) ServiceRepository() contract.ServiceRepository {
	return u.services
}

type stubCatalogFactory struct {
	uow stubCatalogUow
}

func (f stubCatalogFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func TestGetContentMergesAndSorts(t *testing.T) {
	factory := stubCatalogFactory{uow: stubCatalogUow{
		products: stubCatalogProductRepo{products: []*entity.Product{
			{Id: uuid.New(), Title: "Template Pack", OfferRole: entity.OfferRoleBonus, DisplayOrder: 2},
			{Id: uuid.New(), Title: "Playbook", OfferRole: entity.OfferRoleCoreOffer, DisplayOrder: 1},
		}},
		services: stubCatalogServiceRepo{services: []*entity.Service{
			{Id: uuid.New(), Title: "Implementation Sprint", OfferRole: entity.OfferRoleUpsell, DisplayOrder: 1},
		}},
	}}
	svc := NewCatalogService(factory, nil, nil)

	rows, err := svc.GetContent(context.Background(), "", "", true)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Grouped by content type, then display order within the group.
	assert.Equal(t, "Playbook", rows[0].Title)
	assert.Equal(t, "product", rows[0].ContentType)
	assert.Equal(t, "Template Pack", rows[1].Title)
	assert.Equal(t, "Implementation Sprint", rows[2].Title)
	assert.Equal(t, "service", rows[2].ContentType)
	assert.Equal(t, "upsell", rows[2].OfferRole)
}

func TestGetContentSingleType(t *testing.T) {
	// The product repo stays untouched when only services are requested; a
	// call through the nil embedded interface would panic.
	factory := stubCatalogFactory{uow: stubCatalogUow{
		services: stubCatalogServiceRepo{services: []*entity.Service{
			{Id: uuid.New(), Title: "Audit", OfferRole: entity.OfferRoleCoreOffer},
		}},
	}}
	svc := NewCatalogService(factory, nil, nil)

	rows, err := svc.GetContent(context.Background(), "service", "", true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "service", rows[0].ContentType)
}

func TestUpsertContentRoleUnknownType(t *testing.T) {
	svc := NewCatalogService(nil, nil, nil)

	_, err := svc.UpsertContentRole(context.Background(), &dto.UpsertContentRoleRequest{
		ContentType: "video",
		OfferRole:   "bonus",
	})

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fiberErr.Code)
}

func TestUpsertContentRoleNewRowNeedsTitle(t *testing.T) {
	svc := NewCatalogService(stubCatalogFactory{}, nil, nil)

	_, err := svc.UpsertContentRole(context.Background(), &dto.UpsertContentRoleRequest{
		ContentType: "product",
		OfferRole:   "bonus",
	})

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fiberErr.Code)
}

func TestApplyProductClassificationPartial(t *testing.T) {
	product := &entity.Product{
		Id:           uuid.New(),
		Title:        "Playbook",
		Description:  "Step-by-step launch plan",
		Price:        500,
		OfferRole:    entity.OfferRoleCoreOffer,
		IsActive:     true,
		DisplayOrder: 1,
	}

	price := 750.0
	applyProductClassification(product, &dto.UpsertContentRoleRequest{
		OfferRole: "anchor",
		Price:     &price,
	})

	// The role always follows the request; omitted fields keep their values.
	assert.Equal(t, entity.OfferRoleAnchor, product.OfferRole)
	assert.Equal(t, 750.0, product.Price)
	assert.Equal(t, "Playbook", product.Title)
	assert.Equal(t, "Step-by-step launch plan", product.Description)
	assert.True(t, product.IsActive)
	assert.Equal(t, 1, product.DisplayOrder)
}

func TestApplyServiceClassificationDeactivates(t *testing.T) {
	svc := &entity.Service{
		Id:        uuid.New(),
		Title:     "Audit",
		OfferRole: entity.OfferRoleCoreOffer,
		IsActive:  true,
	}

	inactive := false
	perceived := 2000.0
	applyServiceClassification(svc, &dto.UpsertContentRoleRequest{
		OfferRole:      "decoy",
		IsActive:       &inactive,
		PerceivedValue: &perceived,
	})

	assert.Equal(t, entity.OfferRoleDecoy, svc.OfferRole)
	assert.False(t, svc.IsActive)
	require.NotNil(t, svc.PerceivedValue)
	assert.Equal(t, 2000.0, *svc.PerceivedValue)
}
