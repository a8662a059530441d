package guarantee

import (
	"context"
	"testing"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
	"offerstack-be/internal/repository/contract"
	"offerstack-be/internal/repository/specification"
	"offerstack-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Read-only stubs for the lookup phase of milestone verification. Embedding
// the interfaces panics on anything past the gates, so a test reaching a
// write is itself a failure.
type stubInstanceRepo struct {
	contract.GuaranteeInstanceRepository
	instance *entity.GuaranteeInstance
}

func (r stubInstanceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GuaranteeInstance, error) {
	return r.instance, nil
}

type stubMilestoneRepo struct {
	contract.GuaranteeMilestoneRepository
	milestone *entity.GuaranteeMilestone
}

func (r stubMilestoneRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GuaranteeMilestone, error) {
	return r.milestone, nil
}

type stubUow struct {
	unitofwork.UnitOfWork
	instances  stubInstanceRepo
	milestones stubMilestoneRepo
}

func (u stubUow) GuaranteeInstanceRepository() contract.GuaranteeInstanceRepository {
	return u.instances
}

func (u stubUow) GuaranteeMilestoneRepository() contract.GuaranteeMilestoneRepository {
	return u.milestones
}

func TestVerifyMilestoneRejectsTerminalStatuses(t *testing.T) {
	manager := NewManager(nil, nil, nil, nil)
	instanceId := uuid.New()
	milestoneId := uuid.New()

	for _, status := range []entity.MilestoneStatus{
		entity.MilestoneStatusMet,
		entity.MilestoneStatusNotMet,
		entity.MilestoneStatusWaived,
	} {
		t.Run(string(status), func(t *testing.T) {
			uow := stubUow{
				instances: stubInstanceRepo{instance: &entity.GuaranteeInstance{
					Id:     instanceId,
					Status: entity.InstanceStatusActive,
				}},
				milestones: stubMilestoneRepo{milestone: &entity.GuaranteeMilestone{
					Id:                  milestoneId,
					GuaranteeInstanceId: instanceId,
					Status:              status,
				}},
			}

			_, _, err := manager.VerifyMilestone(context.Background(), uow, instanceId, milestoneId,
				dto.VerifyMilestoneRequest{Status: "met"}, nil)
			assert.ErrorIs(t, err, ErrMilestoneAlreadyResolved)
		})
	}
}

func TestVerifyMilestoneRequiresActiveInstance(t *testing.T) {
	manager := NewManager(nil, nil, nil, nil)
	instanceId := uuid.New()

	uow := stubUow{
		instances: stubInstanceRepo{instance: &entity.GuaranteeInstance{
			Id:     instanceId,
			Status: entity.InstanceStatusConditionsMet,
		}},
	}

	_, _, err := manager.VerifyMilestone(context.Background(), uow, instanceId, uuid.New(),
		dto.VerifyMilestoneRequest{Status: "met"}, nil)
	assert.ErrorIs(t, err, ErrInstanceNotActive)
}

func TestVerifyMilestoneUnknownMilestone(t *testing.T) {
	manager := NewManager(nil, nil, nil, nil)
	instanceId := uuid.New()

	uow := stubUow{
		instances: stubInstanceRepo{instance: &entity.GuaranteeInstance{
			Id:     instanceId,
			Status: entity.InstanceStatusActive,
		}},
		milestones: stubMilestoneRepo{milestone: &entity.GuaranteeMilestone{
			Id:                  uuid.New(),
			GuaranteeInstanceId: uuid.New(), // belongs to another instance
			Status:              entity.MilestoneStatusPending,
		}},
	}

	_, _, err := manager.VerifyMilestone(context.Background(), uow, instanceId, uuid.New(),
		dto.VerifyMilestoneRequest{Status: "met"}, nil)
	assert.ErrorIs(t, err, ErrMilestoneNotFound)
}
