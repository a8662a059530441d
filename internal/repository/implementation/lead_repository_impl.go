package implementation

import (
	"context"
	"strings"

	"offerstack-be/internal/entity"
	"offerstack-be/internal/model"
	"offerstack-be/internal/repository/contract"
	"offerstack-be/internal/repository/specification"

	"gorm.io/gorm"
)

type leadRepositoryImpl struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) contract.LeadRepository {
	return &leadRepositoryImpl{db: db}
}

func (r *leadRepositoryImpl) Create(ctx context.Context, lead *entity.Lead) error {
	m := &model.Lead{
		Id:             lead.Id,
		Email:          strings.ToLower(lead.Email),
		FullName:       lead.FullName,
		Company:        lead.Company,
		LinkedInHandle: lead.LinkedInHandle,
		Source:         string(lead.Source),
		Status:         string(lead.Status),
		Notes:          lead.Notes,
		CreatedBy:      lead.CreatedBy,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	lead.Id = m.Id
	lead.CreatedAt = m.CreatedAt
	return nil
}

func (r *leadRepositoryImpl) FindDuplicate(ctx context.Context, email, linkedInHandle string) (*entity.Lead, error) {
	var m model.Lead
	query := r.db.WithContext(ctx)

	if email != "" {
		query = query.Where("email = ?", strings.ToLower(email))
	} else if linkedInHandle != "" {
		query = query.Where("linked_in_handle = ?", linkedInHandle)
	} else {
		return nil, nil
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&m), nil
}

func (r *leadRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lead, error) {
	var ms []*model.Lead
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	var leads []*entity.Lead
	for _, m := range ms {
		leads = append(leads, r.mapToEntity(m))
	}

	return leads, nil
}

func (r *leadRepositoryImpl) Update(ctx context.Context, lead *entity.Lead) error {
	return r.db.WithContext(ctx).Model(&model.Lead{}).
		Where("id = ?", lead.Id).
		Updates(map[string]interface{}{
			"full_name": lead.FullName,
			"company":   lead.Company,
			"status":    string(lead.Status),
			"notes":     lead.Notes,
		}).Error
}

func (r *leadRepositoryImpl) mapToEntity(m *model.Lead) *entity.Lead {
	return &entity.Lead{
		Id:             m.Id,
		Email:          m.Email,
		FullName:       m.FullName,
		Company:        m.Company,
		LinkedInHandle: m.LinkedInHandle,
		Source:         entity.LeadSource(m.Source),
		Status:         entity.LeadStatus(m.Status),
		Notes:          m.Notes,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
