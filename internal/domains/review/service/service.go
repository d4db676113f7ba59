package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contributormodel "bookmarket-backend/internal/domains/contributor/model"
	"bookmarket-backend/internal/domains/review/model"
	"bookmarket-backend/internal/domains/review/repository"
	"bookmarket-backend/internal/shared/apperror"
	"bookmarket-backend/internal/shared/policy"
)

// ContributorLookup checks that the reviewed contributor exists.
type ContributorLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*contributormodel.Contributor, error)
}

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	contributors ContributorLookup
}

func NewReviewService(reviewRepo repository.ReviewRepository, contributors ContributorLookup) ServiceInterface {
	return &reviewService{
		reviewRepo:   reviewRepo,
		contributors: contributors,
	}
}

// =====================================================
// CREATE REVIEW
// =====================================================

func (s *reviewService) CreateReview(ctx context.Context, actor policy.Actor, contributorID uuid.UUID, req model.CreateReviewRequest) (*model.Review, error) {
	// Step 1: Contributor phải tồn tại
	if _, err := s.contributors.GetByID(ctx, contributorID); err != nil {
		return nil, err
	}

	// Step 2: Validate request
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	// Step 3: Persist; unique (contributor_id, user_id) → ErrAlreadyReviewed
	review := &model.Review{
		ID:            uuid.New(),
		Title:         strings.TrimSpace(req.Title),
		Text:          req.Text,
		Rating:        req.Rating,
		ContributorID: contributorID,
		UserID:        actor.ID,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	log.Info().
		Str("review_id", review.ID.String()).
		Str("contributor_id", contributorID.String()).
		Int("rating", review.Rating).
		Msg("review created")
	return review, nil
}

// =====================================================
// READ
// =====================================================

func (s *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	return s.reviewRepo.GetByID(ctx, id)
}

func (s *reviewService) ListReviews(ctx context.Context, req model.ListReviewsRequest) ([]*model.Review, int64, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, apperror.FromValidation(err)
	}
	return s.reviewRepo.List(ctx, req)
}

func (s *reviewService) ListContributorReviews(ctx context.Context, contributorID uuid.UUID) ([]*model.Review, error) {
	return s.reviewRepo.ListByContributor(ctx, contributorID)
}

// =====================================================
// UPDATE / DELETE
// =====================================================

func (s *reviewService) UpdateReview(ctx context.Context, actor policy.Actor, id uuid.UUID, req model.UpdateReviewRequest) (*model.Review, error) {
	// Step 1: Lookup → ownership
	review, err := s.loadForMutation(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	// Step 2: Validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}
	if req.IsEmpty() {
		return nil, model.ErrEmptyUpdate
	}

	// Step 3: Apply + persist
	if req.Title != nil {
		review.Title = strings.TrimSpace(*req.Title)
	}
	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if _, err := s.loadForMutation(ctx, actor, id); err != nil {
		return err
	}
	return s.reviewRepo.Delete(ctx, id)
}

func (s *reviewService) loadForMutation(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutate(actor, review) {
		return nil, model.ErrNotOwner
	}
	return review, nil
}
