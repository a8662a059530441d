package campaign

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

// Read-only stubs for the lookup phase of progress verification. Embedding
// the interfaces panics on anything past the gates, so a test reaching a
// write is itself a failure.
type stubEnrollmentRepo struct {
	contract.EnrollmentRepository
	enrollment *entity.CampaignEnrollment
}

func (r stubEnrollmentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CampaignEnrollment, error) {
	return r.enrollment, nil
}

type stubProgressRepo struct {
	contract.CampaignProgressRepository
	row *entity.CampaignProgress
}

func (r stubProgressRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CampaignProgress, error) {
	return r.row, nil
}

type stubUow struct {
	unitofwork.UnitOfWork
	enrollments stubEnrollmentRepo
	progress    stubProgressRepo
}

func (u stubUow) EnrollmentRepository() contract.EnrollmentRepository {
	return u.enrollments
}

func (u stubUow) CampaignProgressRepository() contract.CampaignProgressRepository {
	return u.progress
}

func TestVerifyProgressRejectsTerminalStatuses(t *testing.T) {
	manager := NewManager(nil, nil, nil)
	enrollmentId := uuid.New()
	criterionId := uuid.New()

	for _, status := range []entity.ProgressStatus{
		entity.ProgressStatusMet,
		entity.ProgressStatusNotMet,
		entity.ProgressStatusWaived,
	} {
		t.Run(string(status), func(t *testing.T) {
			uow := stubUow{
				enrollments: stubEnrollmentRepo{enrollment: &entity.CampaignEnrollment{
					Id:     enrollmentId,
					Status: entity.EnrollmentStatusActive,
				}},
				progress: stubProgressRepo{row: &entity.CampaignProgress{
					EnrollmentId: enrollmentId,
					CriterionId:  criterionId,
					Status:       status,
				}},
			}

			_, _, err := manager.VerifyProgress(context.Background(), uow, enrollmentId, criterionId,
				dto.VerifyProgressRequest{Status: "met"}, nil)
			assert.ErrorIs(t, err, ErrProgressAlreadyResolved)
		})
	}
}

func TestVerifyProgressRequiresActiveEnrollment(t *testing.T) {
	manager := NewManager(nil, nil, nil)
	enrollmentId := uuid.New()

	uow := stubUow{
		enrollments: stubEnrollmentRepo{enrollment: &entity.CampaignEnrollment{
			Id:     enrollmentId,
			Status: entity.EnrollmentStatusWithdrawn,
		}},
	}

	_, _, err := manager.VerifyProgress(context.Background(), uow, enrollmentId, uuid.New(),
		dto.VerifyProgressRequest{Status: "met"}, nil)
	assert.ErrorIs(t, err, ErrEnrollmentNotActive)
}

func TestTrackProgressRejectsTerminalRows(t *testing.T) {
	manager := NewManager(nil, nil, nil)
	enrollmentId := uuid.New()
	criterionId := uuid.New()

	uow := stubUow{
		progress: stubProgressRepo{row: &entity.CampaignProgress{
			EnrollmentId: enrollmentId,
			CriterionId:  criterionId,
			Status:       entity.ProgressStatusMet,
		}},
	}

	err := manager.TrackProgress(context.Background(), uow, enrollmentId, criterionId, "3", "video_platform")
	assert.ErrorIs(t, err, ErrProgressAlreadyResolved)
}
