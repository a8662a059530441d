package unitofwork

import (
	"context"

	"offerstack-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository

	GuaranteeTemplateRepository() contract.GuaranteeTemplateRepository
	GuaranteeInstanceRepository() contract.GuaranteeInstanceRepository
	GuaranteeMilestoneRepository() contract.GuaranteeMilestoneRepository

	CampaignRepository() contract.CampaignRepository
	CriteriaTemplateRepository() contract.CriteriaTemplateRepository
	EnrollmentRepository() contract.EnrollmentRepository
	EnrollmentCriterionRepository() contract.EnrollmentCriterionRepository
	CampaignProgressRepository() contract.CampaignProgressRepository

	BundleRepository() contract.BundleRepository
	BundleItemRepository() contract.BundleItemRepository

	ContinuityPlanRepository() contract.ContinuityPlanRepository
	ClientSubscriptionRepository() contract.ClientSubscriptionRepository

	ProductRepository() contract.ProductRepository
	ServiceRepository() contract.ServiceRepository
	OrderRepository() contract.OrderRepository
	DiscountCodeRepository() contract.DiscountCodeRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository

	LeadRepository() contract.LeadRepository
	UpsellPathRepository() contract.UpsellPathRepository
}
