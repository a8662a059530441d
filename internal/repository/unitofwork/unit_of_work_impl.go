package unitofwork

import (
	"context"
	"fmt"

	"offerstack-be/internal/repository/contract"
	"offerstack-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) GuaranteeTemplateRepository() contract.GuaranteeTemplateRepository {
	return implementation.NewGuaranteeTemplateRepository(u.getDB())
}

func (u *UnitOfWorkImpl) GuaranteeInstanceRepository() contract.GuaranteeInstanceRepository {
	return implementation.NewGuaranteeInstanceRepository(u.getDB())
}

func (u *UnitOfWorkImpl) GuaranteeMilestoneRepository() contract.GuaranteeMilestoneRepository {
	return implementation.NewGuaranteeMilestoneRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CampaignRepository() contract.CampaignRepository {
	return implementation.NewCampaignRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CriteriaTemplateRepository() contract.CriteriaTemplateRepository {
	return implementation.NewCriteriaTemplateRepository(u.getDB())
}

func (u *UnitOfWorkImpl) EnrollmentRepository() contract.EnrollmentRepository {
	return implementation.NewEnrollmentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) EnrollmentCriterionRepository() contract.EnrollmentCriterionRepository {
	return implementation.NewEnrollmentCriterionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CampaignProgressRepository() contract.CampaignProgressRepository {
	return implementation.NewCampaignProgressRepository(u.getDB())
}

func (u *UnitOfWorkImpl) BundleRepository() contract.BundleRepository {
	return implementation.NewBundleRepository(u.getDB())
}

func (u *UnitOfWorkImpl) BundleItemRepository() contract.BundleItemRepository {
	return implementation.NewBundleItemRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ContinuityPlanRepository() contract.ContinuityPlanRepository {
	return implementation.NewContinuityPlanRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ClientSubscriptionRepository() contract.ClientSubscriptionRepository {
	return implementation.NewClientSubscriptionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ProductRepository() contract.ProductRepository {
	return implementation.NewProductRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ServiceRepository() contract.ServiceRepository {
	return implementation.NewServiceRepository(u.getDB())
}

func (u *UnitOfWorkImpl) OrderRepository() contract.OrderRepository {
	return implementation.NewOrderRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DiscountCodeRepository() contract.DiscountCodeRepository {
	return implementation.NewDiscountCodeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatSessionRepository() contract.ChatSessionRepository {
	return implementation.NewChatSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatMessageRepository() contract.ChatMessageRepository {
	return implementation.NewChatMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LeadRepository() contract.LeadRepository {
	return implementation.NewLeadRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UpsellPathRepository() contract.UpsellPathRepository {
	return implementation.NewUpsellPathRepository(u.getDB())
}
