package salesrec

import (
	"context"
	"errors"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
	"offerstack-be/internal/pkg/logger"
	"offerstack-be/internal/repository/specification"
	"offerstack-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// MaxRecommendations caps how many suggestions one request returns.
const MaxRecommendations = 3

var (
	ErrUnknownObjection   = errors.New("unknown objection type")
	ErrUpsellPathNotFound = errors.New("upsell path not found")
)

// Manager produces sales recommendations and owns upsell-path authoring.
type Manager struct {
	logger logger.ILogger
}

func NewManager(log logger.ILogger) *Manager {
	return &Manager{logger: log}
}

// Recommend scores the objection-strategy table against the diagnostic
// profile, folds in upsell paths matching the already-presented content, and
// returns the top suggestions by confidence.
func (m *Manager) Recommend(ctx context.Context, uow unitofwork.UnitOfWork, req dto.RecommendRequest) ([]dto.Recommendation, error) {
	if !IsValidObjectionType(req.Profile.ObjectionType) {
		return nil, ErrUnknownObjection
	}

	recommendations := BuildRecommendations(req.Profile)

	if len(req.PresentedContent) > 0 {
		sources := make([]entity.ContentKey, 0, len(req.PresentedContent))
		for _, item := range req.PresentedContent {
			sources = append(sources, entity.ContentKey{
				ContentType: entity.ContentType(item.ContentType),
				ContentId:   item.ContentId,
			})
		}

		paths, err := uow.UpsellPathRepository().FindActiveBySources(ctx, sources)
		if err != nil {
			return nil, err
		}

		objection := ObjectionType(req.Profile.ObjectionType)
		recommendations = append(recommendations, UpsellRecommendations(paths, objection, req.Profile.ClientName)...)
	}

	ranked := RankTop(recommendations, MaxRecommendations)

	m.logger.Debug("ADMIN", "Generated Sales Recommendations", map[string]interface{}{
		"objection":  req.Profile.ObjectionType,
		"candidates": len(recommendations),
		"returned":   len(ranked),
	})

	return ranked, nil
}

// CreateUpsellPath stores a source-to-upsell content mapping.
func (m *Manager) CreateUpsellPath(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateUpsellPathRequest) (*entity.UpsellPath, error) {
	steps := make([]entity.UpsellStep, 0, len(req.PointOfSaleSteps))
	for _, s := range req.PointOfSaleSteps {
		steps = append(steps, entity.UpsellStep{
			Title:         s.Title,
			TalkingPoints: s.TalkingPoints,
		})
	}

	path := &entity.UpsellPath{
		Id:                       uuid.New(),
		SourceContentType:        entity.ContentType(req.SourceContentType),
		SourceContentId:          req.SourceContentId,
		SourceTitle:              req.SourceTitle,
		UpsellContentType:        entity.ContentType(req.UpsellContentType),
		UpsellContentId:          req.UpsellContentId,
		UpsellTitle:              req.UpsellTitle,
		NextProblem:              req.NextProblem,
		ValueFrameText:           req.ValueFrameText,
		PointOfSaleSteps:         steps,
		CreditPreviousInvestment: req.CreditPreviousInvestment,
		IsActive:                 true,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UpsellPathRepository().Create(ctx, path); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Created Upsell Path", map[string]interface{}{
		"pathId": path.Id.String(),
		"source": req.SourceContentType + ":" + req.SourceContentId,
		"upsell": req.UpsellContentType + ":" + req.UpsellContentId,
	})

	return path, nil
}

// ListUpsellPaths returns paths newest-first.
func (m *Manager) ListUpsellPaths(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, activeOnly bool) ([]*entity.UpsellPath, error) {
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

	return uow.UpsellPathRepository().FindAll(ctx, specs...)
}

// DeactivateUpsellPath retires a path without deleting its history.
func (m *Manager) DeactivateUpsellPath(ctx context.Context, uow unitofwork.UnitOfWork, pathId uuid.UUID) error {
	path, err := uow.UpsellPathRepository().FindOne(ctx, specification.ByID{ID: pathId})
	if err != nil {
		return err
	}
	if path == nil {
		return ErrUpsellPathNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	path.IsActive = false
	if err := uow.UpsellPathRepository().Update(ctx, path); err != nil {
		return err
	}
	return uow.Commit()
}

// DeleteUpsellPath removes a path outright.
func (m *Manager) DeleteUpsellPath(ctx context.Context, uow unitofwork.UnitOfWork, pathId uuid.UUID) error {
	path, err := uow.UpsellPathRepository().FindOne(ctx, specification.ByID{ID: pathId})
	if err != nil {
		return err
	}
	if path == nil {
		return ErrUpsellPathNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UpsellPathRepository().Delete(ctx, pathId); err != nil {
		return err
	}
	return uow.Commit()
}
